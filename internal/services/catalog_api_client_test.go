package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"phonestock/server/internal/pricing"
)

func TestUpdateProductPricing(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody pricing.MarginUpdate

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if r.Method != http.MethodPut {
			t.Errorf("метод = %s, ожидался PUT", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("ошибка разбора тела: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewCatalogAPIClient(server.URL, "secret-token")
	percent := 17.5439
	update := pricing.MarginUpdate{Marge: 20, MargePercent: &percent, RecommendedPrice: 134}

	if err := client.UpdateProductPricing(context.Background(), 42, update); err != nil {
		t.Fatalf("UpdateProductPricing: %v", err)
	}

	if gotPath != "/products/42" {
		t.Errorf("путь = %q, ожидался /products/42", gotPath)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotBody.Marge != 20 || gotBody.RecommendedPrice != 134 {
		t.Errorf("тело = %+v", gotBody)
	}
	if gotBody.MargePercent == nil || *gotBody.MargePercent != 17.5439 {
		t.Errorf("marge_percent = %v", gotBody.MargePercent)
	}
}

func TestUpdateProductPricingServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"validation failed"}`, http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := NewCatalogAPIClient(server.URL, "")
	err := client.UpdateProductPricing(context.Background(), 1, pricing.MarginUpdate{Marge: 5})
	if err == nil {
		t.Fatal("ожидалась ошибка при статусе 422")
	}
}

func TestUpdateProductPricingUnreachable(t *testing.T) {
	client := NewCatalogAPIClient("http://127.0.0.1:1", "")
	if err := client.UpdateProductPricing(context.Background(), 1, pricing.MarginUpdate{}); err == nil {
		t.Fatal("ожидалась ошибка при недоступном API")
	}
}

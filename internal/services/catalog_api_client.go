package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"phonestock/server/internal/pricing"
)

// CatalogAPIClient — клиент внешнего каталожного API, в котором живет
// справочник товаров. Ценовые поля сохраняются туда первыми.
type CatalogAPIClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewCatalogAPIClient создает клиент каталожного API
func NewCatalogAPIClient(baseURL, token string) *CatalogAPIClient {
	return &CatalogAPIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// UpdateProductPricing сохраняет маржу и рекомендованную цену товара
// во внешнем каталоге
func (c *CatalogAPIClient) UpdateProductPricing(ctx context.Context, productID uint, update pricing.MarginUpdate) error {
	body, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("ошибка сериализации: %w", err)
	}

	url := fmt.Sprintf("%s/products/%d", c.baseURL, productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("каталожный API недоступен: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("каталожный API вернул %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	return nil
}

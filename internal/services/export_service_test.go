package services

import (
	"bytes"
	"strings"
	"testing"

	"phonestock/server/internal/pricing"

	"github.com/xuri/excelize/v2"
)

func sampleProducts() []pricing.AggregatedProduct {
	percent := 17.5439
	return []pricing.AggregatedProduct{
		{
			ID:           42,
			Name:         "Apple iPhone 13 128GB",
			BuyPrices:    map[string]float64{"TechTrade": 118, "MobilHub": 115},
			MinBuyPrice:  115,
			TCP:          14,
			Marge:        20,
			MargePercent: &percent,
			AveragePrice: 149,
		},
		{
			ID:           7,
			Name:         "USB-C Cable 2m",
			BuyPrices:    map[string]float64{},
			MinBuyPrice:  0,
			AveragePrice: 0,
		},
	}
}

func TestBuildGrid(t *testing.T) {
	es := NewExportService()
	grid := es.BuildGrid(sampleProducts())

	if len(grid) != 3 {
		t.Fatalf("len(grid) = %d, ожидалось 3 (заголовок + 2 товара)", len(grid))
	}
	if grid[0][1] != "Produit" {
		t.Errorf("заголовок = %v", grid[0])
	}

	row := grid[1]
	if row[0] != "42" || row[1] != "Apple iPhone 13 128GB" || row[2] != "115.00" {
		t.Errorf("строка товара разобрана неверно: %v", row)
	}
	if row[5] != "17.5439" {
		t.Errorf("Marge %% = %q, ожидалось 17.5439", row[5])
	}
	// Поставщики отсортированы по имени
	if row[7] != "MobilHub: 115.00; TechTrade: 118.00" {
		t.Errorf("Fournisseurs = %q", row[7])
	}

	// Товар без маржи: пустой процент, нули в ценах
	if grid[2][5] != "" || grid[2][2] != "0.00" {
		t.Errorf("строка без данных: %v", grid[2])
	}
}

func TestExportXLSX(t *testing.T) {
	es := NewExportService()
	data, err := es.ExportXLSX(sampleProducts())
	if err != nil {
		t.Fatalf("ExportXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("выгруженный файл не открывается: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Catalogue")
	if err != nil {
		t.Fatalf("лист Catalogue не найден: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, ожидалось 3", len(rows))
	}
	if rows[1][1] != "Apple iPhone 13 128GB" {
		t.Errorf("ячейка B2 = %q", rows[1][1])
	}
}

func TestExportHTML(t *testing.T) {
	es := NewExportService()
	data, err := es.ExportHTML(sampleProducts())
	if err != nil {
		t.Fatalf("ExportHTML: %v", err)
	}

	html := string(data)
	for _, want := range []string{"<th>Produit</th>", "Apple iPhone 13 128GB", "17.5439", "MobilHub: 115.00"} {
		if !strings.Contains(html, want) {
			t.Errorf("в HTML нет %q", want)
		}
	}
}

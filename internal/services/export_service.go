package services

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"strconv"
	"strings"

	"phonestock/server/internal/pricing"

	"github.com/xuri/excelize/v2"
)

// Заголовки ценовой сетки. Сетку смотрят менеджеры по закупкам,
// поэтому колонки подписаны по-французски.
var exportHeaders = []string{"ID", "Produit", "Prix achat min", "TCP", "Marge", "Marge %", "Prix recommandé", "Fournisseurs"}

// ExportService выгружает агрегированный каталог в XLSX и HTML
type ExportService struct{}

// NewExportService создает новый сервис экспорта
func NewExportService() *ExportService {
	return &ExportService{}
}

// BuildGrid строит ценовую сетку: первая строка — заголовки, дальше товары.
// Поставщики внутри ячейки отсортированы по имени для воспроизводимости.
func (es *ExportService) BuildGrid(products []pricing.AggregatedProduct) [][]string {
	grid := make([][]string, 0, len(products)+1)
	grid = append(grid, append([]string(nil), exportHeaders...))

	for _, p := range products {
		supplierNames := make([]string, 0, len(p.BuyPrices))
		for name := range p.BuyPrices {
			supplierNames = append(supplierNames, name)
		}
		sort.Strings(supplierNames)

		suppliers := make([]string, 0, len(supplierNames))
		for _, name := range supplierNames {
			suppliers = append(suppliers, fmt.Sprintf("%s: %s", name, formatMoney(p.BuyPrices[name])))
		}

		margePercent := ""
		if p.MargePercent != nil {
			margePercent = strconv.FormatFloat(*p.MargePercent, 'f', 4, 64)
		}

		grid = append(grid, []string{
			strconv.FormatUint(uint64(p.ID), 10),
			p.Name,
			formatMoney(p.MinBuyPrice),
			formatMoney(p.TCP),
			formatMoney(p.Marge),
			margePercent,
			formatMoney(p.AveragePrice),
			strings.Join(suppliers, "; "),
		})
	}

	return grid
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ExportXLSX выгружает сетку в XLSX
func (es *ExportService) ExportXLSX(products []pricing.AggregatedProduct) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Catalogue"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	for rowIdx, row := range es.BuildGrid(products) {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("ошибка записи XLSX: %w", err)
	}
	return buf.Bytes(), nil
}

var catalogTemplate = template.Must(template.New("catalog").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Catalogue</title></head>
<body>
<table border="1" cellspacing="0" cellpadding="4">
{{range $i, $row := .}}<tr>{{range $row}}{{if eq $i 0}}<th>{{.}}</th>{{else}}<td>{{.}}</td>{{end}}{{end}}</tr>
{{end}}</table>
</body>
</html>
`))

// ExportHTML выгружает сетку в HTML таблицу
func (es *ExportService) ExportHTML(products []pricing.AggregatedProduct) ([]byte, error) {
	var buf bytes.Buffer
	if err := catalogTemplate.Execute(&buf, es.BuildGrid(products)); err != nil {
		return nil, fmt.Errorf("ошибка рендеринга HTML: %w", err)
	}
	return buf.Bytes(), nil
}

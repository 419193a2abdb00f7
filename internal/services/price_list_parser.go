package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// RawPriceRow — одна строка прайс-листа до обработки движком
type RawPriceRow struct {
	RowNum   int
	Name     string
	Price    float64
	HasPrice bool
}

// Ключевые слова для поиска колонок. Поставщики присылают файлы
// на английском, французском и русском вперемешку.
var (
	nameKeywords  = []string{"наименование", "товар", "name", "product", "item", "model", "désignation", "designation", "libellé", "libelle", "article"}
	priceKeywords = []string{"цена", "price", "prix", "tarif", "cost", "montant"}
)

// ParsePriceList парсит загруженный прайс-лист (CSV или XLSX) и возвращает
// сырые строки с названием и закупочной ценой
func ParsePriceList(data []byte, filename string) ([]RawPriceRow, error) {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		return parseCSVPriceList(data)
	case strings.HasSuffix(lower, ".xlsx"), strings.HasSuffix(lower, ".xls"):
		return parseXLSXPriceList(data)
	}
	return nil, fmt.Errorf("неподдерживаемый формат файла: %s. Используйте .csv или .xlsx", filename)
}

// parseCSVPriceList парсит CSV с автоматическим определением разделителя и кодировки
func parseCSVPriceList(data []byte) ([]RawPriceRow, error) {
	// Определяем кодировку и конвертируем в UTF-8
	utf8Data := data
	if !utf8.Valid(data) {
		// Пробуем Windows-1251
		decoder := charmap.Windows1251.NewDecoder()
		converted, _, err := transform.Bytes(decoder, data)
		if err == nil {
			utf8Data = converted
		}
	}

	delimiter := detectDelimiter(utf8Data)

	reader := csv.NewReader(bytes.NewReader(utf8Data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Пропускаем строки с ошибками, но логируем
			log.Printf("⚠️ Ошибка чтения строки CSV: %v, пропускаем", err)
			continue
		}
		rows = append(rows, record)
	}

	return extractPriceRows(rows)
}

// parseXLSXPriceList парсит первый лист XLSX файла
func parseXLSXPriceList(data []byte) ([]RawPriceRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия XLSX файла: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("файл не содержит листов")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения листа: %w", err)
	}

	return extractPriceRows(rows)
}

// detectDelimiter определяет разделитель CSV файла
func detectDelimiter(data []byte) rune {
	// Берем первые 1000 байт для анализа
	sample := string(data)
	if len(sample) > 1000 {
		sample = sample[:1000]
	}

	commaCount := strings.Count(sample, ",")
	semicolonCount := strings.Count(sample, ";")
	tabCount := strings.Count(sample, "\t")
	pipeCount := strings.Count(sample, "|")

	// Выбираем наиболее частый разделитель
	maxCount := commaCount
	delimiter := ','

	if semicolonCount > maxCount {
		maxCount = semicolonCount
		delimiter = ';'
	}
	if tabCount > maxCount {
		maxCount = tabCount
		delimiter = '\t'
	}
	if pipeCount > maxCount {
		delimiter = '|'
	}

	return delimiter
}

// extractPriceRows находит строку заголовков, колонки названия и цены,
// и выбирает данные из оставшихся строк
func extractPriceRows(rows [][]string) ([]RawPriceRow, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("файл пуст")
	}

	headerIdx, nameCol, priceCol := findHeaderRow(rows)
	if nameCol < 0 || priceCol < 0 {
		return nil, fmt.Errorf("не удалось определить колонки названия и цены")
	}

	var result []RawPriceRow
	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]

		name := ""
		if nameCol < len(row) {
			name = cleanCell(row[nameCol])
		}

		priceText := ""
		if priceCol < len(row) {
			priceText = cleanCell(row[priceCol])
		}

		// Полностью пустые строки не считаем
		if name == "" && priceText == "" {
			continue
		}

		price, ok := parsePrice(priceText)
		result = append(result, RawPriceRow{
			RowNum:   i + 1,
			Name:     name,
			Price:    price,
			HasPrice: ok,
		})
	}

	return result, nil
}

// findHeaderRow ищет строку заголовков в первых 10 строках по ключевым словам.
// Возвращает индекс строки и индексы колонок названия и цены (-1 если не найдены).
func findHeaderRow(rows [][]string) (headerIdx, nameCol, priceCol int) {
	nameCol, priceCol = -1, -1

	maxRows := 10
	if len(rows) < maxRows {
		maxRows = len(rows)
	}

	for i := 0; i < maxRows; i++ {
		nc, pc := -1, -1
		for col, cell := range rows[i] {
			cellLower := strings.ToLower(strings.TrimSpace(cell))
			if nc < 0 && matchesAny(cellLower, nameKeywords) {
				nc = col
			}
			if pc < 0 && matchesAny(cellLower, priceKeywords) {
				pc = col
			}
		}
		if nc >= 0 && pc >= 0 && nc != pc {
			return i, nc, pc
		}
	}

	return 0, nameCol, priceCol
}

func matchesAny(cell string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(cell, keyword) {
			return true
		}
	}
	return false
}

func cleanCell(value string) string {
	return strings.TrimSpace(strings.Trim(value, "\"'\t"))
}

// parsePrice разбирает цену из ячейки. Поставщики пишут "1 234,56",
// "1234.56", "€ 1234" — приводим все к числу через decimal.
func parsePrice(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}

	cleaned := strings.NewReplacer(
		" ", "",
		" ", "", // неразрывный пробел
		" ", "", // узкий неразрывный пробел
		"€", "",
		"EUR", "",
		"eur", "",
		",", ".",
	).Replace(text)

	// "1.234.56" после замены запятой: оставляем только последнюю точку
	if strings.Count(cleaned, ".") > 1 {
		last := strings.LastIndex(cleaned, ".")
		cleaned = strings.ReplaceAll(cleaned[:last], ".", "") + cleaned[last:]
	}

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, false
	}

	price := value.InexactFloat64()
	if price < 0 {
		return 0, false
	}
	return price, true
}

package pricing

// DedupeByLowestPrice оставляет по одной строке на название товара.
// Выигрывает наименьшая закупочная цена, при равенстве — первая встреченная.
// Порядок первых вхождений сохраняется, функция идемпотентна.
func DedupeByLowestPrice(rows []Row) []Row {
	if len(rows) == 0 {
		return []Row{}
	}

	index := make(map[string]int, len(rows))
	result := make([]Row, 0, len(rows))

	for _, row := range rows {
		pos, seen := index[row.Name]
		if !seen {
			index[row.Name] = len(result)
			result = append(result, row)
			continue
		}
		if row.PurchasePrice < result[pos].PurchasePrice {
			result[pos] = row
		}
	}

	return result
}

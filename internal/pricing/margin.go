package pricing

// MarginUpdate — результат редактирования маржи, уходит во внешний
// каталог и в локальную БД в одном и том же виде
type MarginUpdate struct {
	Marge            float64  `json:"marge"`
	MargePercent     *float64 `json:"marge_percent"`
	RecommendedPrice float64  `json:"recommended_price"`
}

// ComputeMarginUpdate пересчитывает цены товара для новой абсолютной маржи.
// База = минимальная закупка + TCP. Процент маржи считается от базы;
// при нулевой базе сохраняется прежний процент, если он был, иначе nil.
func ComputeMarginUpdate(product AggregatedProduct, newMargin float64) MarginUpdate {
	base := 0.0
	if isFinite(product.MinBuyPrice) {
		base = product.MinBuyPrice
	} else {
		first := true
		for _, price := range product.BuyPrices {
			if !isFinite(price) {
				continue
			}
			if first || price < base {
				base = price
				first = false
			}
		}
		if first {
			base = 0
		}
	}

	tcp := 0.0
	if isFinite(product.TCP) {
		tcp = product.TCP
	}
	baseCost := base + tcp

	if !isFinite(newMargin) || newMargin < 0 {
		newMargin = 0
	}
	marge := Round2(newMargin)

	var margePercent *float64
	if baseCost != 0 {
		v := Round4(marge / baseCost * 100)
		margePercent = &v
	} else if product.MargePercent != nil && isFinite(*product.MargePercent) {
		v := Round4(*product.MargePercent)
		margePercent = &v
	}

	return MarginUpdate{
		Marge:            marge,
		MargePercent:     margePercent,
		RecommendedPrice: Round2(baseCost + marge),
	}
}

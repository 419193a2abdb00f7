package pricing

// SupplierOffer — актуальная закупочная цена одного поставщика на товар
type SupplierOffer struct {
	Supplier string  `json:"supplier"`
	BuyPrice float64 `json:"buy_price"`
}

// BackendPricing — ценовые поля, сохраненные на стороне каталога.
// Указатели различают отсутствующее значение и явный ноль.
type BackendPricing struct {
	TCP              *float64 `json:"tcp"`
	Marge            *float64 `json:"marge"`
	MargePercent     *float64 `json:"marge_percent"`
	RecommendedPrice *float64 `json:"recommended_price"`
	AveragePrice     *float64 `json:"average_price"`
}

// AggregatedProduct — товар каталога, собранный из предложений поставщиков
type AggregatedProduct struct {
	ID           uint               `json:"id"`
	Name         string             `json:"name"`
	BuyPrices    map[string]float64 `json:"buy_prices"`
	MinBuyPrice  float64            `json:"min_buy_price"`
	TCP          float64            `json:"tcp"`
	Marge        float64            `json:"marge"`
	MargePercent *float64           `json:"marge_percent"`
	AveragePrice float64            `json:"average_price"`
}

// Aggregate сворачивает предложения поставщиков в карточку каталога.
// По каждому поставщику действует последняя цена, минимум считается
// по всем поставщикам (0 без предложений). Рекомендованная цена берется
// из сохраненной, иначе из средней по серверу, иначе 0.
// Повторный вызов с теми же данными дает тот же результат.
func Aggregate(id uint, name string, offers []SupplierOffer, backend BackendPricing) AggregatedProduct {
	buyPrices := make(map[string]float64, len(offers))
	for _, offer := range offers {
		if !isFinite(offer.BuyPrice) {
			continue
		}
		buyPrices[offer.Supplier] = offer.BuyPrice
	}

	minBuy := 0.0
	first := true
	for _, price := range buyPrices {
		if first || price < minBuy {
			minBuy = price
			first = false
		}
	}

	tcp := 0.0
	if backend.TCP != nil && isFinite(*backend.TCP) {
		tcp = *backend.TCP
	}

	marge := 0.0
	if backend.Marge != nil && isFinite(*backend.Marge) {
		marge = *backend.Marge
	}

	var margePercent *float64
	if backend.MargePercent != nil && isFinite(*backend.MargePercent) {
		v := *backend.MargePercent
		margePercent = &v
	}

	average := 0.0
	switch {
	case backend.RecommendedPrice != nil && isFinite(*backend.RecommendedPrice) && *backend.RecommendedPrice != 0:
		average = *backend.RecommendedPrice
	case backend.AveragePrice != nil && isFinite(*backend.AveragePrice):
		average = *backend.AveragePrice
	}

	return AggregatedProduct{
		ID:           id,
		Name:         name,
		BuyPrices:    buyPrices,
		MinBuyPrice:  minBuy,
		TCP:          tcp,
		Marge:        marge,
		MargePercent: margePercent,
		AveragePrice: average,
	}
}

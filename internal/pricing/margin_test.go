package pricing

import (
	"math"
	"testing"
)

func TestComputeMarginUpdate(t *testing.T) {
	product := AggregatedProduct{
		ID:          42,
		Name:        "Apple iPhone 13 128GB",
		MinBuyPrice: 100,
		TCP:         14,
	}

	got := ComputeMarginUpdate(product, 20)

	if got.Marge != 20 {
		t.Errorf("Marge = %v, ожидалось 20", got.Marge)
	}
	if got.RecommendedPrice != 134 {
		t.Errorf("RecommendedPrice = %v, ожидалось 134 (100+14+20)", got.RecommendedPrice)
	}
	if got.MargePercent == nil {
		t.Fatal("MargePercent = nil, ожидался процент от базы 114")
	}
	if *got.MargePercent != 17.5439 {
		t.Errorf("MargePercent = %v, ожидалось 17.5439", *got.MargePercent)
	}
}

func TestComputeMarginUpdateZeroBase(t *testing.T) {
	// База 0 и процента не было: процент остается неопределенным
	got := ComputeMarginUpdate(AggregatedProduct{}, 25)
	if got.MargePercent != nil {
		t.Errorf("MargePercent = %v, ожидался nil при нулевой базе", *got.MargePercent)
	}
	if got.RecommendedPrice != 25 {
		t.Errorf("RecommendedPrice = %v, ожидалось 25", got.RecommendedPrice)
	}

	// База 0, но прежний процент был: сохраняем его
	existing := 12.34567
	got = ComputeMarginUpdate(AggregatedProduct{MargePercent: &existing}, 25)
	if got.MargePercent == nil || *got.MargePercent != 12.3457 {
		t.Errorf("MargePercent = %v, ожидалось сохранение 12.3457", got.MargePercent)
	}
}

func TestComputeMarginUpdateFallbackToBuyPrices(t *testing.T) {
	// Испорченный минимум: база берется из карты цен поставщиков
	product := AggregatedProduct{
		MinBuyPrice: math.NaN(),
		BuyPrices:   map[string]float64{"A": 90, "B": 80, "C": math.Inf(1)},
		TCP:         10,
	}
	got := ComputeMarginUpdate(product, 15)
	if got.RecommendedPrice != 105 {
		t.Errorf("RecommendedPrice = %v, ожидалось 105 (80+10+15)", got.RecommendedPrice)
	}
}

func TestComputeMarginUpdateClampsMargin(t *testing.T) {
	product := AggregatedProduct{MinBuyPrice: 50, TCP: 10}

	for _, margin := range []float64{-5, math.NaN(), math.Inf(1)} {
		got := ComputeMarginUpdate(product, margin)
		if got.Marge != 0 {
			t.Errorf("маржа %v: Marge = %v, ожидалось 0", margin, got.Marge)
		}
		if got.RecommendedPrice != 60 {
			t.Errorf("маржа %v: RecommendedPrice = %v, ожидалось 60", margin, got.RecommendedPrice)
		}
	}
}

func TestComputeMarginUpdateRounding(t *testing.T) {
	product := AggregatedProduct{MinBuyPrice: 33.333, TCP: 0}
	got := ComputeMarginUpdate(product, 10.005)

	if got.Marge != 10.01 {
		t.Errorf("Marge = %v, ожидалось 10.01 (половина от нуля)", got.Marge)
	}
	if got.RecommendedPrice != 43.34 {
		t.Errorf("RecommendedPrice = %v, ожидалось 43.34", got.RecommendedPrice)
	}
}

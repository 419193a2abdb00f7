package pricing

import (
	"math"
	"reflect"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestAggregate(t *testing.T) {
	offers := []SupplierOffer{
		{Supplier: "TechTrade", BuyPrice: 120},
		{Supplier: "MobilHub", BuyPrice: 115},
		{Supplier: "TechTrade", BuyPrice: 118}, // свежая цена того же поставщика
	}

	got := Aggregate(42, "Apple iPhone 13 128GB", offers, BackendPricing{
		TCP:              ptr(14),
		Marge:            ptr(20),
		MargePercent:     ptr(15.5),
		RecommendedPrice: ptr(149),
	})

	wantBuy := map[string]float64{"TechTrade": 118, "MobilHub": 115}
	if !reflect.DeepEqual(got.BuyPrices, wantBuy) {
		t.Errorf("BuyPrices = %v, ожидалось %v", got.BuyPrices, wantBuy)
	}
	if got.MinBuyPrice != 115 {
		t.Errorf("MinBuyPrice = %v, ожидалось 115", got.MinBuyPrice)
	}
	if got.TCP != 14 || got.Marge != 20 {
		t.Errorf("TCP/Marge = %v/%v, ожидалось 14/20", got.TCP, got.Marge)
	}
	if got.MargePercent == nil || *got.MargePercent != 15.5 {
		t.Errorf("MargePercent = %v, ожидалось 15.5", got.MargePercent)
	}
	if got.AveragePrice != 149 {
		t.Errorf("AveragePrice = %v, ожидалось 149 (рекомендованная)", got.AveragePrice)
	}
}

func TestAggregateDefaults(t *testing.T) {
	got := Aggregate(7, "USB-C Cable 2m", nil, BackendPricing{})

	if got.MinBuyPrice != 0 {
		t.Errorf("MinBuyPrice = %v, ожидалось 0 без предложений", got.MinBuyPrice)
	}
	if got.TCP != 0 || got.Marge != 0 || got.AveragePrice != 0 {
		t.Errorf("пустой бэкенд должен давать нули: %+v", got)
	}
	if got.MargePercent != nil {
		t.Errorf("MargePercent = %v, ожидался nil", *got.MargePercent)
	}
	if len(got.BuyPrices) != 0 {
		t.Errorf("BuyPrices = %v, ожидалась пустая карта", got.BuyPrices)
	}
}

func TestAggregateAverageFallback(t *testing.T) {
	// Без рекомендованной цены берется серверная средняя
	got := Aggregate(1, "X", nil, BackendPricing{AveragePrice: ptr(99.5)})
	if got.AveragePrice != 99.5 {
		t.Errorf("AveragePrice = %v, ожидалось 99.5", got.AveragePrice)
	}

	// Нулевая рекомендованная не перекрывает среднюю
	got = Aggregate(1, "X", nil, BackendPricing{RecommendedPrice: ptr(0), AveragePrice: ptr(80)})
	if got.AveragePrice != 80 {
		t.Errorf("AveragePrice = %v, ожидалось 80", got.AveragePrice)
	}
}

func TestAggregateSkipsNonFiniteOffers(t *testing.T) {
	offers := []SupplierOffer{
		{Supplier: "Junk", BuyPrice: math.NaN()},
		{Supplier: "Good", BuyPrice: 50},
	}
	got := Aggregate(1, "X", offers, BackendPricing{})
	if len(got.BuyPrices) != 1 || got.MinBuyPrice != 50 {
		t.Errorf("нечисловая цена не должна попадать в агрегат: %+v", got)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	offers := []SupplierOffer{{Supplier: "A", BuyPrice: 10}, {Supplier: "B", BuyPrice: 12}}
	backend := BackendPricing{TCP: ptr(14), RecommendedPrice: ptr(30)}

	first := Aggregate(5, "X", offers, backend)
	second := Aggregate(5, "X", offers, backend)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("агрегация недетерминирована: %+v != %+v", first, second)
	}
}

package pricing

import (
	"math"
	"testing"
)

func TestTCPFee(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		want float64
	}{
		{"Apple iPhone 13 128GB", 14},
		{"Samsung Galaxy A15 32GB", 10},
		{"Xiaomi Redmi 13C 64GB", 12},
		{"Samsung S24 Ultra 256GB", 14},
		{"Apple iPhone 15 Pro 512GB", 14},
		{"Apple iPhone 15 Pro Max 1TB", 14},
		{"samsung galaxy 128gb", 14}, // регистр не важен
		{"USB-C Cable 2m", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := cfg.TCPFee(tt.name); got != tt.want {
			t.Errorf("TCPFee(%q) = %v, ожидалось %v", tt.name, got, tt.want)
		}
	}
}

// При нескольких ключевых словах в названии действует первое правило таблицы
func TestTCPFeePrecedence(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.TCPFee("Bundle 32GB + 128GB"); got != 10 {
		t.Errorf("TCPFee = %v, ожидалось 10 (правило 32GB раньше)", got)
	}
}

func TestTierMultiplier(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		price float64
		want  float64
	}{
		{0, 1.25},
		{15, 1.25},   // порог включительно
		{15.01, 1.22},
		{49, 1.20},
		{100, 1.11},
		{129, 1.11},
		{129.01, 1.10},
		{999, 1.07},
		{1000, 1.06},
		{1500, 1.06},
	}

	for _, tt := range tests {
		if got := cfg.TierMultiplier(tt.price); got != tt.want {
			t.Errorf("TierMultiplier(%v) = %v, ожидалось %v", tt.price, got, tt.want)
		}
	}
}

func TestCalculateRow(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name  string
		price float64
		want  PricedRow
	}{
		{
			name:  "Samsung 8/256GB DS",
			price: 100,
			want: PricedRow{
				Name:            "Samsung 8/256GB DS",
				PurchasePrice:   100,
				TCP:             14,
				Margin45:        4.5,
				PriceWithTCP:    118.5,
				PriceWithMargin: 111.0,
				MaxPrice:        119,
			},
		},
		{
			name:  "Apple iPhone 15 Pro Max 1TB",
			price: 1500,
			want: PricedRow{
				Name:            "Apple iPhone 15 Pro Max 1TB",
				PurchasePrice:   1500,
				TCP:             14,
				Margin45:        67.5,
				PriceWithTCP:    1581.5,
				PriceWithMargin: 1590.0,
				MaxPrice:        1590,
			},
		},
		{
			name:  "USB-C Cable 2m",
			price: 10,
			want: PricedRow{
				Name:            "USB-C Cable 2m",
				PurchasePrice:   10,
				TCP:             0,
				Margin45:        0.45,
				PriceWithTCP:    10.45,
				PriceWithMargin: 12.5,
				MaxPrice:        13,
			},
		},
		{
			name:  "Samsung Galaxy A15 32GB",
			price: 0,
			want: PricedRow{
				Name:          "Samsung Galaxy A15 32GB",
				PurchasePrice: 0,
				TCP:           10,
				PriceWithTCP:  10,
				MaxPrice:      10,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cfg.CalculateRow(tt.name, tt.price)
			if got != tt.want {
				t.Errorf("CalculateRow(%q, %v) =\n  %+v\nожидалось\n  %+v", tt.name, tt.price, got, tt.want)
			}
		})
	}
}

// Отрицательные и нечисловые цены приводятся к нулю, расчет не падает
func TestCalculateRowDegenerateInput(t *testing.T) {
	cfg := DefaultConfig()

	for _, price := range []float64{-50, math.NaN(), math.Inf(1), math.Inf(-1)} {
		got := cfg.CalculateRow("Apple iPhone 13 128GB", price)
		if got.PurchasePrice != 0 {
			t.Errorf("цена %v: PurchasePrice = %v, ожидалось 0", price, got.PurchasePrice)
		}
		if got.PriceWithTCP != 14 {
			t.Errorf("цена %v: PriceWithTCP = %v, ожидалось 14", price, got.PriceWithTCP)
		}
		if got.MaxPrice != 14 {
			t.Errorf("цена %v: MaxPrice = %v, ожидалось 14", price, got.MaxPrice)
		}
	}
}

func TestRound2HalfAwayFromZero(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.01},
		{2.675, 2.68},
		{-1.005, -1.01},
		{118.5, 118.5},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, ожидалось %v", tt.in, got, tt.want)
		}
	}
}

package pricing

import (
	"math"
	"strings"
)

// Row — строка прайс-листа после санитизации названия
type Row struct {
	Name          string  `json:"name"`
	PurchasePrice float64 `json:"purchase_price"`
}

// PricedRow — строка после расчета сборов и наценок
type PricedRow struct {
	Name            string  `json:"name"`
	PurchasePrice   float64 `json:"purchase_price"`
	TCP             float64 `json:"tcp"`
	Margin45        float64 `json:"margin45"`
	PriceWithTCP    float64 `json:"price_with_tcp"`
	PriceWithMargin float64 `json:"price_with_margin"`
	MaxPrice        float64 `json:"max_price"`
}

// TCPFee возвращает таможенный сбор по первому сработавшему правилу.
// Название без ключевых слов объема памяти — сбор 0 (аксессуары).
func (c *Config) TCPFee(name string) float64 {
	upper := strings.ToUpper(name)
	for _, rule := range c.TCPRules {
		if strings.Contains(upper, strings.ToUpper(rule.Keyword)) {
			return rule.Fee
		}
	}
	return 0
}

// TierMultiplier возвращает множитель наценки для закупочной цены.
// Берется первый порог, не меньший цены; выше всех порогов — TopMultiplier.
func (c *Config) TierMultiplier(price float64) float64 {
	for _, tier := range c.Tiers {
		if price <= tier.Threshold {
			return tier.Multiplier
		}
	}
	return c.TopMultiplier
}

// CalculateRow считает сборы и обе наценки для одной строки прайса.
// Некорректная цена (отрицательная, NaN, Inf) приводится к нулю,
// расчет никогда не падает.
func (c *Config) CalculateRow(name string, purchasePrice float64) PricedRow {
	if !isFinite(purchasePrice) || purchasePrice < 0 {
		purchasePrice = 0
	}

	price := Round2(purchasePrice)
	tcp := c.TCPFee(name)
	margin45 := Round2(price * c.CommissionRate)
	priceWithTCP := Round2(price + tcp + margin45)
	priceWithMargin := Round2(price * c.TierMultiplier(price))

	return PricedRow{
		Name:            name,
		PurchasePrice:   price,
		TCP:             tcp,
		Margin45:        margin45,
		PriceWithTCP:    priceWithTCP,
		PriceWithMargin: priceWithMargin,
		MaxPrice:        math.Ceil(math.Max(priceWithTCP, priceWithMargin)),
	}
}

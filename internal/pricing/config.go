package pricing

import (
	"encoding/json"
	"fmt"
	"os"
)

// TCPRule связывает ключевое слово объема памяти с таможенным сбором (TCP).
// Правила проверяются по порядку, срабатывает первое совпадение.
type TCPRule struct {
	Keyword string  `json:"keyword"`
	Fee     float64 `json:"fee"`
}

// PriceTier задает множитель наценки для цен до порога включительно
type PriceTier struct {
	Threshold  float64 `json:"threshold"`
	Multiplier float64 `json:"multiplier"`
}

// Replacement описывает литеральную замену в названии товара
type Replacement struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Config содержит все таблицы ценового движка.
// После создания конфиг не изменяется, сервисы получают его по ссылке.
type Config struct {
	CommissionRate float64       `json:"commission_rate"` // комиссия маркетплейса (0.045 = 4.5%)
	TCPRules       []TCPRule     `json:"tcp_rules"`
	Tiers          []PriceTier   `json:"tiers"`
	TopMultiplier  float64       `json:"top_multiplier"` // множитель для цен выше всех порогов
	Exclusions     []string      `json:"exclusions"`
	Replacements   []Replacement `json:"replacements"`
}

// DefaultConfig возвращает рабочие таблицы ценообразования
func DefaultConfig() *Config {
	return &Config{
		CommissionRate: 0.045,
		TCPRules: []TCPRule{
			{Keyword: "32GB", Fee: 10},
			{Keyword: "64GB", Fee: 12},
			{Keyword: "128GB", Fee: 14},
			{Keyword: "256GB", Fee: 14},
			{Keyword: "512GB", Fee: 14},
			{Keyword: "1TB", Fee: 14},
		},
		Tiers: []PriceTier{
			{Threshold: 15, Multiplier: 1.25},
			{Threshold: 29, Multiplier: 1.22},
			{Threshold: 49, Multiplier: 1.20},
			{Threshold: 79, Multiplier: 1.18},
			{Threshold: 99, Multiplier: 1.15},
			{Threshold: 129, Multiplier: 1.11},
			{Threshold: 149, Multiplier: 1.10},
			{Threshold: 179, Multiplier: 1.09},
			{Threshold: 209, Multiplier: 1.09},
			{Threshold: 299, Multiplier: 1.08},
			{Threshold: 499, Multiplier: 1.08},
			{Threshold: 799, Multiplier: 1.07},
			{Threshold: 999, Multiplier: 1.07},
		},
		TopMultiplier: 1.06,
		Exclusions:    []string{"Mac", "Backbone", "Bulk", "OH25B", "Soundbar"},
		Replacements: []Replacement{
			{From: "Dual Sim", To: "DS"},
			{From: "GB RAM ", To: "/"},
			{From: " - ", To: " "},
			{From: "Tablet Apple", To: "Apple"},
			{From: "Tablet Honor", To: "Honor"},
			{From: "Tablet Samsung", To: "Samsung"},
			{From: "Tablet Xiaomi", To: "Xiaomi"},
			{From: "Tablet Google", To: "Google"},
			{From: "Watch Apple", To: "Apple"},
			{From: "Watch Honor", To: "Honor"},
			{From: "Watch Samsung", To: "Samsung"},
			{From: "Watch Xiaomi", To: "Xiaomi"},
			{From: "Watch Google", To: "Google"},
		},
	}
}

// LoadConfig читает JSON-файл с таблицами ценообразования.
// Пустой путь или отсутствующий файл — возвращаем дефолтные таблицы.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("ошибка чтения файла конфигурации цен: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации цен: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность таблиц
func (c *Config) Validate() error {
	if c.CommissionRate < 0 || c.CommissionRate >= 1 {
		return fmt.Errorf("комиссия вне диапазона [0,1): %f", c.CommissionRate)
	}
	if len(c.Tiers) == 0 {
		return fmt.Errorf("таблица порогов наценки пуста")
	}
	for i := 1; i < len(c.Tiers); i++ {
		if c.Tiers[i].Threshold <= c.Tiers[i-1].Threshold {
			return fmt.Errorf("пороги наценки должны строго возрастать: %f после %f",
				c.Tiers[i].Threshold, c.Tiers[i-1].Threshold)
		}
	}
	if c.TopMultiplier <= 0 {
		return fmt.Errorf("множитель верхнего диапазона должен быть положительным")
	}
	for _, rule := range c.TCPRules {
		if rule.Keyword == "" {
			return fmt.Errorf("правило TCP с пустым ключевым словом")
		}
		if rule.Fee < 0 {
			return fmt.Errorf("отрицательный сбор TCP для %s", rule.Keyword)
		}
	}
	return nil
}

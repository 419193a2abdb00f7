package pricing

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("дефолтный конфиг не проходит валидацию: %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("отсутствующий файл не должен быть ошибкой: %v", err)
	}
	if cfg.CommissionRate != 0.045 {
		t.Errorf("CommissionRate = %v, ожидался дефолт 0.045", cfg.CommissionRate)
	}
}

func TestLoadConfigOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.json")
	data := `{"commission_rate": 0.05, "top_multiplier": 1.05, "tiers": [{"threshold": 100, "multiplier": 1.2}]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.CommissionRate != 0.05 {
		t.Errorf("CommissionRate = %v, ожидалось 0.05", cfg.CommissionRate)
	}
	if len(cfg.Tiers) != 1 || cfg.Tiers[0].Threshold != 100 {
		t.Errorf("Tiers = %v, ожидался один порог 100", cfg.Tiers)
	}
	// Не переопределенные таблицы остаются дефолтными
	if len(cfg.TCPRules) != 6 {
		t.Errorf("TCPRules = %v, ожидались дефолтные правила", cfg.TCPRules)
	}
}

func TestLoadConfigRejectsBrokenTiers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.json")
	data := `{"tiers": [{"threshold": 100, "multiplier": 1.2}, {"threshold": 50, "multiplier": 1.1}]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("убывающие пороги должны отклоняться")
	}
}

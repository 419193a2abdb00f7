package services

import (
	"log"
	"sync"

	"phonestock/server/internal/pricing"
)

// PricingConfigService хранит таблицы ценообразования и умеет
// перечитывать их с диска без перезапуска сервера
type PricingConfigService struct {
	mu   sync.RWMutex
	path string
	cfg  *pricing.Config
}

// NewPricingConfigService загружает таблицы из файла (пустой путь = дефолты)
func NewPricingConfigService(path string) (*PricingConfigService, error) {
	cfg, err := pricing.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if path != "" {
		log.Printf("📋 Таблицы ценообразования загружены из %s", path)
	}
	return &PricingConfigService{path: path, cfg: cfg}, nil
}

// Config возвращает актуальные таблицы ценообразования
func (s *PricingConfigService) Config() *pricing.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Reload перечитывает таблицы с диска. При ошибке старые таблицы
// остаются действующими.
func (s *PricingConfigService) Reload() error {
	cfg, err := pricing.LoadConfig(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()

	log.Printf("✅ Таблицы ценообразования перезагружены")
	return nil
}

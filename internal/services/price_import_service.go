package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"phonestock/server/internal/models"
	"phonestock/server/internal/pricing"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Размер батча при вставке котировок (прайсы бывают на десятки тысяч строк)
const quoteBatchSize = 1500

// PriceImportService прогоняет загруженные прайс-листы через ценовой движок
// и сохраняет результат
type PriceImportService struct {
	db         *gorm.DB
	pricingCfg *PricingConfigService
	catalog    *CatalogService      // может быть nil
	events     *PriceEventPublisher // может быть nil
}

// NewPriceImportService создает новый сервис импорта прайс-листов
func NewPriceImportService(db *gorm.DB, pricingCfg *PricingConfigService, catalog *CatalogService, events *PriceEventPublisher) *PriceImportService {
	return &PriceImportService{
		db:         db,
		pricingCfg: pricingCfg,
		catalog:    catalog,
		events:     events,
	}
}

// ProcessPriceList обрабатывает один загруженный прайс-лист:
// парсинг -> санитизация -> исключения -> дедупликация -> расчет -> сохранение.
// Строки с нечитаемой ценой пропускаются и считаются, импорт не прерывается.
func (s *PriceImportService) ProcessPriceList(ctx context.Context, supplierID, filename string, data []byte) (*models.PriceImport, error) {
	var supplier models.Supplier
	if err := s.db.First(&supplier, "id = ?", supplierID).Error; err != nil {
		return nil, fmt.Errorf("поставщик не найден: %w", err)
	}

	imp := &models.PriceImport{
		SupplierID: supplier.ID,
		Filename:   filename,
		Status:     models.ImportStatusProcessing,
	}
	if err := s.db.Create(imp).Error; err != nil {
		return nil, fmt.Errorf("ошибка создания записи импорта: %w", err)
	}

	if err := s.runPipeline(supplier, imp, data, filename); err != nil {
		imp.Status = models.ImportStatusFailed
		imp.Error = err.Error()
		s.db.Save(imp)
		return imp, err
	}

	imp.Status = models.ImportStatusCompleted
	if err := s.db.Save(imp).Error; err != nil {
		return imp, fmt.Errorf("ошибка сохранения результата импорта: %w", err)
	}

	log.Printf("✅ Импорт %s (%s): строк=%d, сохранено=%d, исключено=%d, дублей=%d, пропущено=%d",
		imp.ID, supplier.Name, imp.RowCount, imp.ImportedCount, imp.ExcludedCount, imp.DedupedCount, imp.SkippedCount)

	if s.catalog != nil {
		s.catalog.PublishCatalogUpdated("import-completed")
	}
	if s.events != nil {
		s.events.Publish(ctx, PriceEvent{
			Type:          EventImportCompleted,
			ImportID:      imp.ID,
			SupplierID:    supplier.ID,
			ImportedCount: imp.ImportedCount,
		})
	}

	return imp, nil
}

// runPipeline выполняет разбор и расчет, пишет котировки и цены в одной транзакции
func (s *PriceImportService) runPipeline(supplier models.Supplier, imp *models.PriceImport, data []byte, filename string) error {
	rawRows, err := ParsePriceList(data, filename)
	if err != nil {
		return err
	}
	imp.RowCount = len(rawRows)

	cfg := s.pricingCfg.Config()

	// Санитизация названий и фильтр исключений
	rows := make([]pricing.Row, 0, len(rawRows))
	rawNames := make(map[string]string, len(rawRows))
	for _, raw := range rawRows {
		name := cfg.Sanitize(raw.Name)
		if name == "" || !raw.HasPrice {
			imp.SkippedCount++
			continue
		}
		if cfg.IsExcluded(name) {
			imp.ExcludedCount++
			continue
		}
		if _, seen := rawNames[name]; !seen {
			rawNames[name] = raw.Name
		}
		rows = append(rows, pricing.Row{Name: name, PurchasePrice: raw.Price})
	}

	// Дедупликация: по одному названию остается самая дешевая строка
	deduped := pricing.DedupeByLowestPrice(rows)
	imp.DedupedCount = len(rows) - len(deduped)

	// Расчет сборов и наценок
	priced := make([]pricing.PricedRow, 0, len(deduped))
	for _, row := range deduped {
		priced = append(priced, cfg.CalculateRow(row.Name, row.PurchasePrice))
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(priced) > 0 {
			quotes := make([]models.SupplierQuote, 0, len(priced))
			for _, p := range priced {
				quotes = append(quotes, models.SupplierQuote{
					ImportID:        imp.ID,
					SupplierID:      supplier.ID,
					RawName:         rawNames[p.Name],
					Name:            p.Name,
					PurchasePrice:   p.PurchasePrice,
					TCP:             p.TCP,
					Margin45:        p.Margin45,
					PriceWithTCP:    p.PriceWithTCP,
					PriceWithMargin: p.PriceWithMargin,
					MaxPrice:        p.MaxPrice,
				})
			}
			if err := tx.CreateInBatches(quotes, quoteBatchSize).Error; err != nil {
				return fmt.Errorf("ошибка сохранения котировок: %w", err)
			}
		}

		now := time.Now().UTC()
		for _, p := range priced {
			product, err := s.upsertProduct(tx, p)
			if err != nil {
				return err
			}

			// Цена поставщика: свежая запись перезаписывает старую
			supplierPrice := models.SupplierPrice{
				ProductID:  product.ID,
				SupplierID: supplier.ID,
				BuyPrice:   p.PurchasePrice,
				QuotedAt:   now,
			}
			err = tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "product_id"}, {Name: "supplier_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"buy_price", "quoted_at", "updated_at"}),
			}).Create(&supplierPrice).Error
			if err != nil {
				return fmt.Errorf("ошибка обновления цены поставщика для %s: %w", p.Name, err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	imp.ImportedCount = len(priced)
	return nil
}

// upsertProduct находит товар по каноническому названию или создает его.
// TCP товара обновляется из свежего расчета.
func (s *PriceImportService) upsertProduct(tx *gorm.DB, p pricing.PricedRow) (*models.Product, error) {
	var product models.Product
	err := tx.Where("name = ?", p.Name).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		product = models.Product{Name: p.Name, TCP: p.TCP, IsActive: true}
		if err := tx.Create(&product).Error; err != nil {
			return nil, fmt.Errorf("ошибка создания товара %s: %w", p.Name, err)
		}
		return &product, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска товара %s: %w", p.Name, err)
	}

	if product.TCP != p.TCP {
		if err := tx.Model(&product).Update("tcp", p.TCP).Error; err != nil {
			return nil, fmt.Errorf("ошибка обновления TCP товара %s: %w", p.Name, err)
		}
	}

	return &product, nil
}

// GetImports возвращает историю импортов (свежие первыми)
func (s *PriceImportService) GetImports(limit int) ([]models.PriceImport, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var imports []models.PriceImport
	err := s.db.Preload("Supplier").
		Order("created_at DESC").
		Limit(limit).
		Find(&imports).Error
	return imports, err
}

// GetImportByID возвращает один импорт
func (s *PriceImportService) GetImportByID(id string) (*models.PriceImport, error) {
	var imp models.PriceImport
	if err := s.db.Preload("Supplier").First(&imp, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &imp, nil
}

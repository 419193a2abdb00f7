package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"phonestock/server/internal/models"
	"phonestock/server/internal/pricing"

	"gorm.io/gorm"
)

// ErrMarginEditInProgress возвращается при одновременном редактировании
// маржи одного товара
var ErrMarginEditInProgress = errors.New("маржа этого товара уже редактируется")

// Сколько товаров обновляем параллельно при массовом редактировании,
// чтобы не задушить внешний каталог
const bulkMarginWorkers = 8

// MarginService применяет редактирование маржи: сначала внешний каталог,
// потом локальная БД. При ошибке внешнего API локально ничего не меняется.
type MarginService struct {
	db        *gorm.DB
	apiClient *CatalogAPIClient    // может быть nil, тогда пишем только локально
	catalog   *CatalogService
	events    *PriceEventPublisher // может быть nil
	inFlight  sync.Map             // productID -> struct{}, защита от двойного клика
}

// NewMarginService создает новый сервис редактирования маржи
func NewMarginService(db *gorm.DB, apiClient *CatalogAPIClient, catalog *CatalogService, events *PriceEventPublisher) *MarginService {
	return &MarginService{
		db:        db,
		apiClient: apiClient,
		catalog:   catalog,
		events:    events,
	}
}

// UpdateProductMargin пересчитывает и сохраняет маржу одного товара
func (ms *MarginService) UpdateProductMargin(ctx context.Context, productID uint, newMargin float64) (*pricing.MarginUpdate, error) {
	if _, busy := ms.inFlight.LoadOrStore(productID, struct{}{}); busy {
		return nil, ErrMarginEditInProgress
	}
	defer ms.inFlight.Delete(productID)

	var product models.Product
	if err := ms.db.Preload("BuyPrices.Supplier").First(&product, productID).Error; err != nil {
		return nil, fmt.Errorf("товар не найден: %w", err)
	}

	aggregated := ms.catalog.aggregate(product)
	update := pricing.ComputeMarginUpdate(aggregated, newMargin)

	// Сначала внешний каталог. Если он отклонил изменение,
	// локальная запись остается нетронутой.
	if ms.apiClient != nil {
		if err := ms.apiClient.UpdateProductPricing(ctx, productID, update); err != nil {
			return nil, fmt.Errorf("ошибка сохранения во внешнем каталоге: %w", err)
		}
	}

	err := ms.db.Model(&models.Product{}).Where("id = ?", productID).Updates(map[string]interface{}{
		"marge":             update.Marge,
		"marge_percent":     update.MargePercent,
		"recommended_price": update.RecommendedPrice,
		"average_price":     update.RecommendedPrice,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("ошибка обновления товара: %w", err)
	}

	log.Printf("💰 Маржа товара %d (%s): marge=%.2f, recommended=%.2f",
		productID, product.Name, update.Marge, update.RecommendedPrice)

	ms.catalog.PublishCatalogUpdated("margin-updated")
	if ms.events != nil {
		ms.events.Publish(ctx, PriceEvent{
			Type:             EventPriceUpdated,
			ProductID:        productID,
			RecommendedPrice: update.RecommendedPrice,
		})
	}

	return &update, nil
}

// BulkMarginResult — результат обновления одного товара при массовом
// редактировании
type BulkMarginResult struct {
	ProductID uint                  `json:"product_id"`
	Success   bool                  `json:"success"`
	Error     string                `json:"error,omitempty"`
	Update    *pricing.MarginUpdate `json:"update,omitempty"`
}

// BulkUpdateMargins применяет одну и ту же маржу к набору товаров.
// Каждый товар обновляется независимо, ошибка одного не откатывает остальные.
func (ms *MarginService) BulkUpdateMargins(ctx context.Context, productIDs []uint, newMargin float64) []BulkMarginResult {
	results := make([]BulkMarginResult, len(productIDs))

	var wg sync.WaitGroup
	sem := make(chan struct{}, bulkMarginWorkers)

	for i, id := range productIDs {
		wg.Add(1)
		go func(i int, id uint) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			update, err := ms.UpdateProductMargin(ctx, id, newMargin)
			if err != nil {
				results[i] = BulkMarginResult{ProductID: id, Error: err.Error()}
				return
			}
			results[i] = BulkMarginResult{ProductID: id, Success: true, Update: update}
		}(i, id)
	}
	wg.Wait()

	return results
}

package services

import (
	"log"
	"time"

	"phonestock/server/internal/models"
	"phonestock/server/internal/pricing"
	"phonestock/server/internal/utils"

	"gorm.io/gorm"
)

const (
	catalogCacheKey      = "catalog:products"
	catalogCacheTTL      = 5 * time.Minute
	CatalogUpdateChannel = "catalog:update" // Канал Pub/Sub для уведомлений об изменениях
)

// CatalogService собирает агрегированный каталог из цен поставщиков
// и кэширует его в Redis
type CatalogService struct {
	db        *gorm.DB
	redisUtil *utils.RedisClient // может быть nil, тогда работаем без кэша
}

// NewCatalogService создает новый сервис каталога
func NewCatalogService(db *gorm.DB, redisUtil *utils.RedisClient) *CatalogService {
	return &CatalogService{db: db, redisUtil: redisUtil}
}

// GetCatalog возвращает все активные товары с агрегированными ценами.
// Результат кэшируется, кэш сбрасывается при импортах и правках маржи.
func (cs *CatalogService) GetCatalog() ([]pricing.AggregatedProduct, error) {
	if cs.redisUtil != nil {
		var cached []pricing.AggregatedProduct
		if err := cs.redisUtil.GetJSON(catalogCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	var products []models.Product
	err := cs.db.Preload("BuyPrices.Supplier").
		Where("is_active = ?", true).
		Order("name").
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	result := make([]pricing.AggregatedProduct, 0, len(products))
	for _, product := range products {
		result = append(result, cs.aggregate(product))
	}

	if cs.redisUtil != nil {
		if err := cs.redisUtil.Set(catalogCacheKey, result, catalogCacheTTL); err != nil {
			log.Printf("⚠️ Не удалось закэшировать каталог: %v", err)
		}
	}

	return result, nil
}

// GetProduct возвращает один товар с агрегированными ценами
func (cs *CatalogService) GetProduct(id uint) (*pricing.AggregatedProduct, error) {
	var product models.Product
	if err := cs.db.Preload("BuyPrices.Supplier").First(&product, id).Error; err != nil {
		return nil, err
	}
	aggregated := cs.aggregate(product)
	return &aggregated, nil
}

// aggregate сворачивает запись БД в карточку каталога
func (cs *CatalogService) aggregate(product models.Product) pricing.AggregatedProduct {
	offers := make([]pricing.SupplierOffer, 0, len(product.BuyPrices))
	for _, sp := range product.BuyPrices {
		supplierName := sp.SupplierID
		if sp.Supplier != nil {
			supplierName = sp.Supplier.Name
		}
		offers = append(offers, pricing.SupplierOffer{
			Supplier: supplierName,
			BuyPrice: sp.BuyPrice,
		})
	}

	return pricing.Aggregate(product.ID, product.Name, offers, pricing.BackendPricing{
		TCP:              &product.TCP,
		Marge:            &product.Marge,
		MargePercent:     product.MargePercent,
		RecommendedPrice: &product.RecommendedPrice,
		AveragePrice:     &product.AveragePrice,
	})
}

// PublishCatalogUpdated сбрасывает кэш и оповещает остальные инстансы
// через Pub/Sub
func (cs *CatalogService) PublishCatalogUpdated(reason string) {
	if cs.redisUtil == nil {
		return
	}
	if err := cs.redisUtil.Delete(catalogCacheKey); err != nil {
		log.Printf("⚠️ Не удалось сбросить кэш каталога: %v", err)
	}
	if err := cs.redisUtil.Publish(CatalogUpdateChannel, reason); err != nil {
		log.Printf("⚠️ Не удалось отправить уведомление об обновлении каталога: %v", err)
	}
}

// StartUpdateListener подписывается на канал обновлений каталога.
// onUpdate вызывается для каждого сообщения (в том числе своего).
func (cs *CatalogService) StartUpdateListener(onUpdate func(reason string)) {
	if cs.redisUtil == nil {
		return
	}

	pubsub := cs.redisUtil.Subscribe(CatalogUpdateChannel)
	go func() {
		log.Printf("📡 Подписка на канал %s активна", CatalogUpdateChannel)
		for msg := range pubsub.Channel() {
			onUpdate(msg.Payload)
		}
	}()
}

package api

import (
	"net/http"

	"phonestock/server/internal/services"

	"github.com/gin-gonic/gin"
)

// AdminController управляет служебными endpoints
type AdminController struct {
	pricingConfig  *services.PricingConfigService
	catalogService *services.CatalogService
}

// NewAdminController создает новый админ-контроллер
func NewAdminController(pricingConfig *services.PricingConfigService, catalogService *services.CatalogService) *AdminController {
	return &AdminController{
		pricingConfig:  pricingConfig,
		catalogService: catalogService,
	}
}

// GetPricingConfig возвращает действующие таблицы ценообразования
// GET /api/v1/admin/pricing-config
func (ac *AdminController) GetPricingConfig(c *gin.Context) {
	c.JSON(http.StatusOK, ac.pricingConfig.Config())
}

// ReloadPricingConfig перечитывает таблицы ценообразования с диска
// (hot-reload без рестарта) и сбрасывает кэш каталога
// POST /api/v1/admin/reload-pricing-config
func (ac *AdminController) ReloadPricingConfig(c *gin.Context) {
	if err := ac.pricingConfig.Reload(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Ошибка перезагрузки таблиц ценообразования",
			"details": err.Error(),
		})
		return
	}

	// Старые агрегаты посчитаны по старым таблицам
	if ac.catalogService != nil {
		ac.catalogService.PublishCatalogUpdated("pricing-config-reloaded")
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Таблицы ценообразования перезагружены",
	})
}

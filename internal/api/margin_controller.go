package api

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"phonestock/server/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MarginController управляет редактированием маржи товаров
type MarginController struct {
	marginService *services.MarginService
}

// NewMarginController создает новый контроллер маржи
func NewMarginController(marginService *services.MarginService) *MarginController {
	return &MarginController{
		marginService: marginService,
	}
}

type updateMarginRequest struct {
	Marge *float64 `json:"marge"`
}

type bulkMarginRequest struct {
	ProductIDs []uint   `json:"product_ids"`
	Marge      *float64 `json:"marge"`
}

// validMargin отклоняет отрицательные и нечисловые значения до движка
func validMargin(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0) && *v >= 0
}

// UpdateMargin обновляет маржу одного товара
// PUT /api/v1/products/:id/margin
func (mc *MarginController) UpdateMargin(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Неверный ID товара",
		})
		return
	}

	var req updateMarginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Неверные данные",
			"details": err.Error(),
		})
		return
	}

	if !validMargin(req.Marge) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Маржа должна быть неотрицательным числом",
		})
		return
	}

	update, err := mc.marginService.UpdateProductMargin(c.Request.Context(), uint(id), *req.Marge)
	if err != nil {
		if errors.Is(err, services.ErrMarginEditInProgress) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Маржа этого товара уже редактируется",
			})
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Товар не найден",
			})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Ошибка обновления маржи",
			"details": err.Error(),
		})
		return
	}

	CatalogHub.NotifyCatalogUpdated("margin-updated")

	c.JSON(http.StatusOK, update)
}

// BulkUpdateMargins применяет одну маржу к набору товаров
// POST /api/v1/products/margins/bulk
func (mc *MarginController) BulkUpdateMargins(c *gin.Context) {
	var req bulkMarginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Неверные данные",
			"details": err.Error(),
		})
		return
	}

	if len(req.ProductIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Не выбраны товары",
		})
		return
	}
	if !validMargin(req.Marge) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Маржа должна быть неотрицательным числом",
		})
		return
	}

	results := mc.marginService.BulkUpdateMargins(c.Request.Context(), req.ProductIDs, *req.Marge)

	succeeded := 0
	for _, r := range results {
		if r.Success {
			succeeded++
		}
	}
	if succeeded > 0 {
		CatalogHub.NotifyCatalogUpdated("margin-updated")
	}

	c.JSON(http.StatusOK, gin.H{
		"results":   results,
		"succeeded": succeeded,
		"failed":    len(results) - succeeded,
	})
}

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"phonestock/server/internal/services"

	"github.com/gin-gonic/gin"
)

// CatalogController управляет API endpoints агрегированного каталога
type CatalogController struct {
	catalogService *services.CatalogService
	exportService  *services.ExportService
}

// NewCatalogController создает новый контроллер каталога
func NewCatalogController(catalogService *services.CatalogService, exportService *services.ExportService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
		exportService:  exportService,
	}
}

// GetCatalog возвращает все товары с агрегированными ценами поставщиков
// GET /api/v1/catalog
func (cc *CatalogController) GetCatalog(c *gin.Context) {
	products, err := cc.catalogService.GetCatalog()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Ошибка получения каталога",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct возвращает один товар с разбивкой по поставщикам
// GET /api/v1/catalog/:id
func (cc *CatalogController) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Неверный ID товара",
		})
		return
	}

	product, err := cc.catalogService.GetProduct(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Товар не найден",
		})
		return
	}

	c.JSON(http.StatusOK, product)
}

// ExportXLSX выгружает ценовую сетку в XLSX
// GET /api/v1/catalog/export/xlsx
func (cc *CatalogController) ExportXLSX(c *gin.Context) {
	products, err := cc.catalogService.GetCatalog()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Ошибка получения каталога",
			"details": err.Error(),
		})
		return
	}

	data, err := cc.exportService.ExportXLSX(products)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Ошибка экспорта XLSX",
			"details": err.Error(),
		})
		return
	}

	filename := fmt.Sprintf("catalogue_%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ExportHTML выгружает ценовую сетку в HTML таблицу
// GET /api/v1/catalog/export/html
func (cc *CatalogController) ExportHTML(c *gin.Context) {
	products, err := cc.catalogService.GetCatalog()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Ошибка получения каталога",
			"details": err.Error(),
		})
		return
	}

	data, err := cc.exportService.ExportHTML(products)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Ошибка экспорта HTML",
			"details": err.Error(),
		})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}

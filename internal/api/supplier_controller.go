package api

import (
	"net/http"

	"phonestock/server/internal/models"
	"phonestock/server/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SupplierController управляет API endpoints для поставщиков
type SupplierController struct {
	service *services.SupplierService
}

// NewSupplierController создает новый контроллер поставщиков
func NewSupplierController(service *services.SupplierService) *SupplierController {
	return &SupplierController{
		service: service,
	}
}

// GetSuppliers получает список всех поставщиков
// GET /api/v1/suppliers
func (sc *SupplierController) GetSuppliers(c *gin.Context) {
	suppliers, err := sc.service.GetAllSuppliers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Ошибка получения поставщиков",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suppliers": suppliers,
		"count":     len(suppliers),
	})
}

// GetSupplier получает поставщика по ID
// GET /api/v1/suppliers/:id
func (sc *SupplierController) GetSupplier(c *gin.Context) {
	id := c.Param("id")
	supplier, err := sc.service.GetSupplierByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Поставщик не найден",
		})
		return
	}

	c.JSON(http.StatusOK, supplier)
}

// CreateSupplier создает нового поставщика
// POST /api/v1/suppliers
func (sc *SupplierController) CreateSupplier(c *gin.Context) {
	var req models.Supplier
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Неверные данные",
			"details": err.Error(),
		})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Название поставщика обязательно",
		})
		return
	}

	// Генерируем ID если не указан
	if req.ID == "" {
		req.ID = uuid.New().String()
	}

	if err := sc.service.CreateSupplier(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Ошибка создания поставщика",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, req)
}

// UpdateSupplier обновляет данные поставщика
// PUT /api/v1/suppliers/:id
func (sc *SupplierController) UpdateSupplier(c *gin.Context) {
	id := c.Param("id")

	var req models.Supplier
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Неверные данные",
			"details": err.Error(),
		})
		return
	}

	if err := sc.service.UpdateSupplier(id, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Ошибка обновления поставщика",
			"details": err.Error(),
		})
		return
	}

	supplier, err := sc.service.GetSupplierByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Ошибка получения обновленного поставщика",
		})
		return
	}

	c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier удаляет поставщика
// DELETE /api/v1/suppliers/:id
func (sc *SupplierController) DeleteSupplier(c *gin.Context) {
	id := c.Param("id")
	if err := sc.service.DeleteSupplier(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Ошибка удаления поставщика",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Поставщик удален",
	})
}

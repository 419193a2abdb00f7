package api

import (
	"io"
	"net/http"
	"strconv"

	"phonestock/server/internal/services"

	"github.com/gin-gonic/gin"
)

// Максимальный размер загружаемого прайс-листа (20 МБ)
const maxUploadSize = 20 << 20

// ImportController управляет загрузкой прайс-листов
type ImportController struct {
	importService *services.PriceImportService
}

// NewImportController создает новый контроллер импорта
func NewImportController(importService *services.PriceImportService) *ImportController {
	return &ImportController{
		importService: importService,
	}
}

// UploadPriceList принимает прайс-лист поставщика (multipart: file + supplier_id)
// POST /api/v1/imports/upload
func (ic *ImportController) UploadPriceList(c *gin.Context) {
	supplierID := c.PostForm("supplier_id")
	if supplierID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Не указан supplier_id",
		})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Файл не найден в запросе",
			"details": err.Error(),
		})
		return
	}

	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Файл слишком большой (максимум 20 МБ)",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Не удалось открыть файл",
			"details": err.Error(),
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Не удалось прочитать файл",
			"details": err.Error(),
		})
		return
	}

	imp, err := ic.importService.ProcessPriceList(c.Request.Context(), supplierID, fileHeader.Filename, data)
	if err != nil {
		status := http.StatusInternalServerError
		if imp == nil {
			// Поставщик не найден или запись импорта не создалась
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{
			"error":   "Ошибка обработки прайс-листа",
			"details": err.Error(),
			"import":  imp,
		})
		return
	}

	// Оповещаем фронтенд: каталог изменился
	CatalogHub.NotifyCatalogUpdated("import-completed")

	c.JSON(http.StatusOK, imp)
}

// GetImports возвращает историю импортов
// GET /api/v1/imports
func (ic *ImportController) GetImports(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	imports, err := ic.importService.GetImports(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Ошибка получения истории импортов",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"imports": imports,
		"count":   len(imports),
	})
}

// GetImport возвращает один импорт по ID
// GET /api/v1/imports/:id
func (ic *ImportController) GetImport(c *gin.Context) {
	imp, err := ic.importService.GetImportByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Импорт не найден",
		})
		return
	}

	c.JSON(http.StatusOK, imp)
}

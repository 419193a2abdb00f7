package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"phonestock/server/internal/api"
	"phonestock/server/internal/config"
	"phonestock/server/internal/database"
	"phonestock/server/internal/models"
	"phonestock/server/internal/services"
	"phonestock/server/internal/utils"
)

func main() {
	// Загружаем переменные окружения из .env файла (если существует)
	// Игнорируем ошибку, если файл не найден (для production окружений)
	if err := godotenv.Load(); err != nil {
		log.Printf("ℹ️ .env файл не найден, используем переменные окружения системы")
	} else {
		log.Printf("✅ Переменные окружения загружены из .env файла")
	}

	// Загрузка конфигурации
	cfg := config.Load()

	// Логируем наличие DATABASE_URL (без пароля)
	if cfg.DatabaseURL != "" {
		safeURL := cfg.DatabaseURL
		if idx := strings.Index(safeURL, "@"); idx > 0 {
			if schemeIdx := strings.Index(safeURL, "://"); schemeIdx > 0 {
				safeURL = safeURL[:schemeIdx+3] + "***@" + safeURL[idx+1:]
			}
		}
		log.Printf("📋 DATABASE_URL установлен: %s", safeURL)
	}

	if cfg.KafkaBrokers != "" {
		log.Printf("📡 KAFKA_BROKERS установлен: %s", cfg.KafkaBrokers)
	} else {
		log.Printf("⚠️ KAFKA_BROKERS не установлен, ценовые события отключены")
	}

	// Таблицы ценообразования (дефолтные или из PRICING_CONFIG_PATH)
	pricingConfig, err := services.NewPricingConfigService(cfg.PricingConfigPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки таблиц ценообразования: %v", err)
	}

	// Подключение к PostgreSQL
	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Printf("❌ PostgreSQL connection failed: %v", err)
		log.Printf("⚠️ Продолжаем без БД (ограниченная функциональность)")
		db = nil
	} else {
		defer database.ClosePostgres(db)

		// Выполняем миграции
		if err := models.AutoMigrate(db); err != nil {
			log.Printf("❌ Migration failed: %v", err)
			log.Printf("⚠️ Continuing with limited functionality")
		} else {
			log.Println("✅ Database migrations completed")
		}
	}

	// Подключение к Redis
	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	var redisUtil *utils.RedisClient
	if err != nil {
		log.Printf("⚠️ Redis connection failed: %v (continuing without cache)", err)
		redisClient = nil
		redisUtil = nil
	} else {
		redisUtil = utils.NewRedisClient(redisClient)
	}
	defer database.CloseRedis(redisClient)

	// Kafka publisher ценовых событий
	var priceEvents *services.PriceEventPublisher
	if cfg.KafkaBrokers != "" {
		dialer := services.CreateKafkaDialer(cfg.KafkaUsername, cfg.KafkaPassword, cfg.KafkaCACert)
		priceEvents = services.NewPriceEventPublisher(
			services.ParseKafkaBrokers(cfg.KafkaBrokers),
			cfg.KafkaPriceTopic,
			dialer,
		)
		defer priceEvents.Close()
	}

	// Клиент внешнего каталожного API (маржа сохраняется туда первой)
	var catalogAPI *services.CatalogAPIClient
	if cfg.CatalogAPIURL != "" {
		catalogAPI = services.NewCatalogAPIClient(cfg.CatalogAPIURL, cfg.CatalogAPIToken)
		log.Printf("🔗 Каталожный API: %s", cfg.CatalogAPIURL)
	} else {
		log.Printf("⚠️ CATALOG_API_URL не установлен, маржа сохраняется только локально")
	}

	// Сервисы каталога
	var catalogService *services.CatalogService
	var importService *services.PriceImportService
	var marginService *services.MarginService
	var supplierService *services.SupplierService
	if db != nil {
		catalogService = services.NewCatalogService(db, redisUtil)
		importService = services.NewPriceImportService(db, pricingConfig, catalogService, priceEvents)
		marginService = services.NewMarginService(db, catalogAPI, catalogService, priceEvents)
		supplierService = services.NewSupplierService(db)
	} else {
		log.Println("⚠️ Сервисы каталога не запущены: PostgreSQL недоступен")
	}
	exportService := services.NewExportService()

	// WebSocket хаб для уведомлений фронтенда
	go api.CatalogHub.Run()

	// Обновления каталога с других инстансов ретранслируем в WebSocket
	if catalogService != nil {
		catalogService.StartUpdateListener(func(reason string) {
			api.CatalogHub.NotifyCatalogUpdated(reason)
		})
	}

	gin.SetMode(gin.ReleaseMode)

	// Создаем пустой движок без лишних прослоек
	r := gin.New()

	// Health check endpoint (должен быть до CORS)
	r.GET("/api/v1/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "Catalog & Pricing Server",
			"version": "1.0.0",
		})
	})

	// Логирование всех запросов
	r.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		log.Printf("🌐 %s %s - Status: %d - Latency: %v", method, path, status, latency)
	})

	// CORS для фронтенда
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// API routes
	apiGroup := r.Group("/api/v1")

	// WebSocket подключения фронтенда
	apiGroup.GET("/ws", api.ServeWS)

	// Служебные endpoints (таблицы ценообразования)
	adminController := api.NewAdminController(pricingConfig, catalogService)
	adminGroup := apiGroup.Group("/admin")
	{
		adminGroup.GET("/pricing-config", adminController.GetPricingConfig)         // Просмотр таблиц
		adminGroup.POST("/reload-pricing-config", adminController.ReloadPricingConfig) // Hot-reload таблиц
	}

	if db != nil {
		// Поставщики
		supplierController := api.NewSupplierController(supplierService)
		supplierGroup := apiGroup.Group("/suppliers")
		{
			supplierGroup.GET("", supplierController.GetSuppliers)          // Список поставщиков
			supplierGroup.GET("/:id", supplierController.GetSupplier)       // Один поставщик
			supplierGroup.POST("", supplierController.CreateSupplier)       // Создание
			supplierGroup.PUT("/:id", supplierController.UpdateSupplier)    // Обновление
			supplierGroup.DELETE("/:id", supplierController.DeleteSupplier) // Удаление (soft)
		}

		// Импорт прайс-листов
		importController := api.NewImportController(importService)
		importGroup := apiGroup.Group("/imports")
		{
			importGroup.POST("/upload", importController.UploadPriceList) // Загрузка прайса
			importGroup.GET("", importController.GetImports)              // История импортов
			importGroup.GET("/:id", importController.GetImport)           // Один импорт
		}

		// Агрегированный каталог
		catalogController := api.NewCatalogController(catalogService, exportService)
		catalogGroup := apiGroup.Group("/catalog")
		{
			catalogGroup.GET("", catalogController.GetCatalog)                // Каталог с ценами
			catalogGroup.GET("/export/xlsx", catalogController.ExportXLSX)    // Выгрузка XLSX
			catalogGroup.GET("/export/html", catalogController.ExportHTML)    // Выгрузка HTML
			catalogGroup.GET("/:id", catalogController.GetProduct)            // Один товар
		}

		// Редактирование маржи
		marginController := api.NewMarginController(marginService)
		productGroup := apiGroup.Group("/products")
		{
			productGroup.PUT("/:id/margin", marginController.UpdateMargin)          // Одна позиция
			productGroup.POST("/margins/bulk", marginController.BulkUpdateMargins)  // Массовое изменение
		}

		log.Println("📋 Endpoints каталога зарегистрированы")
	} else {
		log.Println("⚠️ Endpoints каталога не зарегистрированы: PostgreSQL недоступен")
	}

	port := cfg.ServerPort
	log.Printf("🚀 Server starting on port %s", port)
	log.Printf("📡 API доступен на http://0.0.0.0:%s/api/v1", port)
	if err := r.Run("0.0.0.0:" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

package models

import (
	"log"

	"gorm.io/gorm"
)

// AutoMigrate создает таблицы в БД
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&Supplier{},
		&Product{},
		&SupplierPrice{},
		&PriceImport{},
		&SupplierQuote{},
	)
	if err != nil {
		log.Printf("❌ AutoMigrate failed: %v", err)
		return err
	}
	log.Println("✅ Таблицы каталога мигрированы")
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SupplierPrice представляет актуальную закупочную цену поставщика на товар.
// Пара (товар, поставщик) уникальна, свежий импорт перезаписывает цену.
type SupplierPrice struct {
	ID         string    `json:"id" gorm:"type:uuid;primaryKey"`
	ProductID  uint      `json:"product_id" gorm:"uniqueIndex:idx_product_supplier;not null"`
	SupplierID string    `json:"supplier_id" gorm:"type:uuid;uniqueIndex:idx_product_supplier;not null"`
	Supplier   *Supplier `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	BuyPrice   float64   `json:"buy_price" gorm:"type:decimal(10,2);not null"`
	QuotedAt   time.Time `json:"quoted_at" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName указывает имя таблицы в БД
func (SupplierPrice) TableName() string {
	return "supplier_prices"
}

// BeforeCreate hook для генерации UUID если не указан
func (sp *SupplierPrice) BeforeCreate(tx *gorm.DB) error {
	if sp.ID == "" {
		sp.ID = uuid.New().String()
	}
	return nil
}

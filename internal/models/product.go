package models

import (
	"time"

	"gorm.io/gorm"
)

// Product представляет агрегированный товар каталога.
// Числовой ID приходит из справочного каталога, название каноническое
// (после санитизации), ценовые поля обновляются при импортах и
// редактировании маржи.
type Product struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	Name             string          `json:"name" gorm:"type:varchar(255);uniqueIndex;not null"`
	TCP              float64         `json:"tcp" gorm:"type:decimal(10,2);default:0"`
	Marge            float64         `json:"marge" gorm:"type:decimal(10,2);default:0"`
	MargePercent     *float64        `json:"marge_percent" gorm:"type:decimal(10,4)"`
	RecommendedPrice float64         `json:"recommended_price" gorm:"type:decimal(10,2);default:0"`
	AveragePrice     float64         `json:"average_price" gorm:"type:decimal(10,2);default:0"`
	IsActive         bool            `json:"is_active" gorm:"default:true"`
	BuyPrices        []SupplierPrice `json:"buy_prices,omitempty" gorm:"foreignKey:ProductID"`
	CreatedAt        time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt        gorm.DeletedAt  `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName указывает имя таблицы в БД
func (Product) TableName() string {
	return "products"
}

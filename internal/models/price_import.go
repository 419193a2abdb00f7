package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Статусы импорта прайс-листа
const (
	ImportStatusProcessing = "processing"
	ImportStatusCompleted  = "completed"
	ImportStatusFailed     = "failed"
)

// PriceImport представляет одну загрузку прайс-листа поставщика
type PriceImport struct {
	ID            string    `json:"id" gorm:"type:uuid;primaryKey"`
	SupplierID    string    `json:"supplier_id" gorm:"type:uuid;index;not null"`
	Supplier      *Supplier `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	Filename      string    `json:"filename" gorm:"type:varchar(255)"`
	RowCount      int       `json:"row_count" gorm:"default:0"`       // строк в файле
	ImportedCount int       `json:"imported_count" gorm:"default:0"`  // сохранено котировок
	ExcludedCount int       `json:"excluded_count" gorm:"default:0"`  // отсечено фильтром исключений
	DedupedCount  int       `json:"deduped_count" gorm:"default:0"`   // схлопнуто дублей
	SkippedCount  int       `json:"skipped_count" gorm:"default:0"`   // строки без названия или цены
	Status        string    `json:"status" gorm:"type:varchar(20);default:'processing'"`
	Error         string    `json:"error,omitempty" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName указывает имя таблицы в БД
func (PriceImport) TableName() string {
	return "price_imports"
}

// BeforeCreate hook для генерации UUID если не указан
func (pi *PriceImport) BeforeCreate(tx *gorm.DB) error {
	if pi.ID == "" {
		pi.ID = uuid.New().String()
	}
	return nil
}

// SupplierQuote представляет одну рассчитанную строку импорта.
// Хранится как история расчетов, по ней восстанавливается TCP товара.
type SupplierQuote struct {
	ID              string    `json:"id" gorm:"type:uuid;primaryKey"`
	ImportID        string    `json:"import_id" gorm:"type:uuid;index;not null"`
	SupplierID      string    `json:"supplier_id" gorm:"type:uuid;index;not null"`
	RawName         string    `json:"raw_name" gorm:"type:varchar(255)"`
	Name            string    `json:"name" gorm:"type:varchar(255);index;not null"`
	PurchasePrice   float64   `json:"purchase_price" gorm:"type:decimal(10,2);not null"`
	TCP             float64   `json:"tcp" gorm:"type:decimal(10,2);default:0"`
	Margin45        float64   `json:"margin45" gorm:"type:decimal(10,2);default:0"`
	PriceWithTCP    float64   `json:"price_with_tcp" gorm:"type:decimal(10,2);default:0"`
	PriceWithMargin float64   `json:"price_with_margin" gorm:"type:decimal(10,2);default:0"`
	MaxPrice        float64   `json:"max_price" gorm:"type:decimal(10,2);default:0"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName указывает имя таблицы в БД
func (SupplierQuote) TableName() string {
	return "supplier_quotes"
}

// BeforeCreate hook для генерации UUID если не указан
func (sq *SupplierQuote) BeforeCreate(tx *gorm.DB) error {
	if sq.ID == "" {
		sq.ID = uuid.New().String()
	}
	return nil
}

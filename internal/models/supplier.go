package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Supplier представляет поставщика прайс-листов
type Supplier struct {
	ID           string         `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string         `json:"name" gorm:"type:varchar(255);uniqueIndex;not null"`
	ContactEmail string         `json:"contact_email" gorm:"type:varchar(255)"`
	ContactPhone string         `json:"contact_phone" gorm:"type:varchar(50)"`
	Currency     string         `json:"currency" gorm:"type:varchar(3);default:'EUR'"`
	Comment      string         `json:"comment" gorm:"type:text"`
	IsActive     bool           `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName указывает имя таблицы в БД
func (Supplier) TableName() string {
	return "suppliers"
}

// BeforeCreate hook для генерации UUID если не указан
func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

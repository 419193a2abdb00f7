package services

import (
	"fmt"

	"phonestock/server/internal/models"

	"gorm.io/gorm"
)

// SupplierService управляет поставщиками
type SupplierService struct {
	db *gorm.DB
}

// NewSupplierService создает новый экземпляр SupplierService
func NewSupplierService(db *gorm.DB) *SupplierService {
	return &SupplierService{db: db}
}

// GetAllSuppliers получает список всех активных поставщиков
func (s *SupplierService) GetAllSuppliers() ([]models.Supplier, error) {
	var suppliers []models.Supplier
	if err := s.db.Where("is_active = ?", true).Order("name").Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

// GetSupplierByID получает поставщика по ID
func (s *SupplierService) GetSupplierByID(id string) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := s.db.First(&supplier, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

// CreateSupplier создает нового поставщика
func (s *SupplierService) CreateSupplier(supplier *models.Supplier) error {
	// Проверяем уникальность имени
	var existing models.Supplier
	if err := s.db.Where("name = ?", supplier.Name).First(&existing).Error; err == nil {
		return fmt.Errorf("поставщик %s уже существует", supplier.Name)
	}

	if err := s.db.Create(supplier).Error; err != nil {
		return err
	}
	return nil
}

// UpdateSupplier обновляет данные поставщика
func (s *SupplierService) UpdateSupplier(id string, supplier *models.Supplier) error {
	// Проверяем уникальность имени (если изменилось)
	if supplier.Name != "" {
		var existing models.Supplier
		if err := s.db.Where("name = ? AND id != ?", supplier.Name, id).First(&existing).Error; err == nil {
			return fmt.Errorf("поставщик %s уже существует", supplier.Name)
		}
	}

	if err := s.db.Model(&models.Supplier{}).Where("id = ?", id).Updates(supplier).Error; err != nil {
		return err
	}
	return nil
}

// DeleteSupplier удаляет поставщика (soft delete)
func (s *SupplierService) DeleteSupplier(id string) error {
	if err := s.db.Delete(&models.Supplier{}, "id = ?", id).Error; err != nil {
		return err
	}
	return nil
}

package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type CatalogRepository struct {
	DB *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

func (r *CatalogRepository) Categories() ([]entity.Category, error) {
	var cats []entity.Category
	err := r.DB.Order("id").Find(&cats).Error
	return cats, err
}

// AvailableItems returns every menu item currently offered for ordering.
func (r *CatalogRepository) AvailableItems() ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	err := r.DB.Where("is_available = ?", true).Order("id").Find(&items).Error
	return items, err
}

// ItemsByIDs resolves cart entries against the catalog. IDs with no
// matching row are simply absent from the result.
func (r *CatalogRepository) ItemsByIDs(ids []uint) ([]entity.MenuItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []entity.MenuItem
	err := r.DB.Where("id IN ?", ids).Find(&items).Error
	return items, err
}

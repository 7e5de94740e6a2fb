package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type PageViewRepository struct {
	DB *gorm.DB
}

func NewPageViewRepository(db *gorm.DB) *PageViewRepository {
	return &PageViewRepository{DB: db}
}

func (r *PageViewRepository) Create(v *entity.PageView) error {
	return r.DB.Create(v).Error
}

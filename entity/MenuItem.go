package entity

import (
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	// no gorm default: a column default would silently overwrite an
	// explicit false on insert. Creators set this field themselves.
	IsAvailable bool `json:"is_available"`
	Image       string  `json:"image"`

	CategoryID uint     `json:"category_id"`
	Category   Category `json:"-"`

	OrderItems []OrderItem `json:"-"`
}

package entity

import (
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	DeliveryAddress string  `json:"delivery_address"`
	Phone           string  `json:"phone"`
	Notes           string  `json:"notes"`
	Status          string  `gorm:"not null;default:pending" json:"status"`
	TotalAmount     float64 `json:"total_amount"`

	UserID uint `json:"user_id"`
	User   User `json:"-"` // preload only for admin listings

	// preload only for order detail
	Items []OrderItem `json:"-"`
}

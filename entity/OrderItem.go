package entity

import (
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	Quantity int `gorm:"not null" json:"quantity"`
	// catalog price copied at order creation, never re-read afterwards
	PriceAtTime float64 `gorm:"not null" json:"price_at_time"`

	OrderID uint  `json:"order_id"`
	Order   Order `json:"-"`

	MenuItemID uint     `json:"menu_item_id"`
	MenuItem   MenuItem `json:"-"` // preload only when the item name is needed
}

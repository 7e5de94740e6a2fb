package entity

import (
	"time"

	"gorm.io/gorm"
)

// PageView is append-only request telemetry. Rows are never updated or
// deleted by the application.
type PageView struct {
	gorm.Model
	Path      string    `json:"path"`
	ViewedAt  time.Time `json:"viewed_at"`
	IPAddress string    `json:"ip_address"`

	UserID uint `json:"user_id"`
	User   User `json:"-"`
}

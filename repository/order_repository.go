package repository

import (
	"time"

	"gorm.io/gorm"

	"backend/entity"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// GetOrderForUser resolves an order only when it belongs to the user,
// with line items and their menu item names loaded.
func (r *OrderRepository) GetOrderForUser(userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Preload("Items").Preload("Items.MenuItem").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// ListForUser returns the user's most recent orders, each with its line
// items and their menu item names preloaded.
func (r *OrderRepository) ListForUser(userID uint, limit int) ([]entity.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	var orders []entity.Order
	err := r.DB.Preload("Items").Preload("Items.MenuItem").
		Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).
		Find(&orders).Error
	return orders, err
}

// ListFiltered is the admin view: newest first, optional status filter,
// optional creation-date filter (whole calendar day).
func (r *OrderRepository) ListFiltered(status string, day *time.Time, limit int) ([]entity.Order, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := r.DB.Preload("User")
	if status != "" && status != "all" {
		q = q.Where("status = ?", status)
	}
	if day != nil {
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		q = q.Where("created_at >= ? AND created_at < ?", start, start.Add(24*time.Hour))
	}
	var orders []entity.Order
	err := q.Order("created_at DESC").Limit(limit).Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) UpdateStatus(orderID uint, status string) error {
	return r.DB.Model(&entity.Order{}).
		Where("id = ?", orderID).
		Update("status", status).Error
}

// ---------------- Aggregates (admin stats) ----------------

func (r *OrderRepository) CountAll() (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Order{}).Count(&n).Error
	return n, err
}

func (r *OrderRepository) CountByStatus(status string) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Order{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

func (r *OrderRepository) CountSince(t time.Time) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.Order{}).Where("created_at >= ?", t).Count(&n).Error
	return n, err
}

func (r *OrderRepository) SumRevenue() (float64, error) {
	var row struct{ Total float64 }
	err := r.DB.Model(&entity.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS total").
		Scan(&row).Error
	return row.Total, err
}

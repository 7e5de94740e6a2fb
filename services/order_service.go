package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"backend/entity"
	"backend/repository"
)

// OrderNotifier receives fire-and-forget order lifecycle events. The
// websocket hub implements it; delivery failures never surface here.
type OrderNotifier interface {
	NotifyNewOrder(o *entity.Order)
	NotifyOrderStatus(o *entity.Order)
}

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	Catalog  *repository.CatalogRepository
	Notifier OrderNotifier
}

func NewOrderService(db *gorm.DB, repo *repository.OrderRepository, catalog *repository.CatalogRepository, notifier OrderNotifier) *OrderService {
	return &OrderService{DB: db, Repo: repo, Catalog: catalog, Notifier: notifier}
}

// ----- DTOs from Controller -----

type CartItemIn struct {
	ID       uint `json:"id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

type SubmitOrderReq struct {
	Items           []CartItemIn `json:"items" binding:"dive"`
	DeliveryAddress string       `json:"delivery_address"`
	Phone           string       `json:"phone"`
	Notes           string       `json:"notes"`
}

type SubmitOrderRes struct {
	OrderID     uint    `json:"order_id"`
	TotalAmount float64 `json:"total_amount"`
}

// ----- Submit -----

// Submit validates the cart against the catalog, snapshots prices and
// persists the order with its line items in one transaction.
//
// Cart entries referencing unknown menu items are dropped, not
// rejected; only a cart with zero surviving entries is an error. Keep
// it that way: clients rely on stale carts still going through.
func (s *OrderService) Submit(userID uint, req *SubmitOrderReq) (*SubmitOrderRes, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	ids := make([]uint, 0, len(req.Items))
	for _, it := range req.Items {
		ids = append(ids, it.ID)
	}
	items, err := s.Catalog.ItemsByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	byID := make(map[uint]entity.MenuItem, len(items))
	for _, m := range items {
		byID[m.ID] = m
	}

	type line struct {
		menuItemID uint
		quantity   int
		price      float64
	}
	var total float64
	lines := make([]line, 0, len(req.Items))
	for _, it := range req.Items {
		m, ok := byID[it.ID]
		if !ok {
			continue // unknown item: drop silently
		}
		total += m.Price * float64(it.Quantity)
		lines = append(lines, line{menuItemID: m.ID, quantity: it.Quantity, price: m.Price})
	}
	if len(lines) == 0 {
		return nil, ErrNoValidItems
	}

	order := entity.Order{
		UserID:          userID,
		DeliveryAddress: req.DeliveryAddress,
		Phone:           req.Phone,
		Notes:           req.Notes,
		Status:          entity.StatusPending,
		TotalAmount:     total,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}
		for _, l := range lines {
			oi := entity.OrderItem{
				OrderID:     order.ID,
				MenuItemID:  l.menuItemID,
				Quantity:    l.quantity,
				PriceAtTime: l.price,
			}
			if err := s.Repo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// after commit only; a lost notification must not undo the order
	if s.Notifier != nil {
		s.Notifier.NotifyNewOrder(&order)
	}

	return &SubmitOrderRes{OrderID: order.ID, TotalAmount: order.TotalAmount}, nil
}

// ----- Status update -----

// UpdateStatus sets any recognized status on the order. There is no
// transition table: delivered back to pending is allowed.
func (s *OrderService) UpdateStatus(orderID uint, actorRole, newStatus string) error {
	if actorRole != entity.RoleAdmin {
		return ErrForbidden
	}

	order, err := s.Repo.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if !entity.ValidStatus(newStatus) {
		return ErrInvalidStatus
	}

	if err := s.Repo.UpdateStatus(order.ID, newStatus); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	order.Status = newStatus

	if s.Notifier != nil {
		s.Notifier.NotifyOrderStatus(order)
	}
	return nil
}

// ----- Polling views -----

const createdAtLayout = "02.01.2006 15:04"

type OrderItemView struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type UserOrderView struct {
	ID              uint            `json:"id"`
	TotalAmount     float64         `json:"total_amount"`
	Status          string          `json:"status"`
	CreatedAt       string          `json:"created_at"`
	DeliveryAddress string          `json:"delivery_address"`
	Phone           string          `json:"phone"`
	ItemsCount      int             `json:"items_count"`
	Items           []OrderItemView `json:"items"`
}

// ListForUser returns the caller's most recent orders with up to five
// line items each.
func (s *OrderService) ListForUser(userID uint, limit int) ([]UserOrderView, error) {
	orders, err := s.Repo.ListForUser(userID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]UserOrderView, 0, len(orders))
	for _, o := range orders {
		v := UserOrderView{
			ID:              o.ID,
			TotalAmount:     o.TotalAmount,
			Status:          o.Status,
			CreatedAt:       o.CreatedAt.Format(createdAtLayout),
			DeliveryAddress: o.DeliveryAddress,
			Phone:           o.Phone,
			ItemsCount:      len(o.Items),
			Items:           make([]OrderItemView, 0, 5),
		}
		for i, it := range o.Items {
			if i >= 5 {
				break
			}
			v.Items = append(v.Items, OrderItemView{
				Name:     it.MenuItem.Name,
				Quantity: it.Quantity,
				Price:    it.PriceAtTime,
			})
		}
		out = append(out, v)
	}
	return out, nil
}

type OrderDetailView struct {
	ID              uint            `json:"id"`
	TotalAmount     float64         `json:"total_amount"`
	Status          string          `json:"status"`
	CreatedAt       string          `json:"created_at"`
	DeliveryAddress string          `json:"delivery_address"`
	Phone           string          `json:"phone"`
	Notes           string          `json:"notes"`
	Items           []OrderItemView `json:"items"`
}

// DetailForUser returns one order with every line item, scoped to the
// owner: someone else's order id reads as not found.
func (s *OrderService) DetailForUser(userID, orderID uint) (*OrderDetailView, error) {
	o, err := s.Repo.GetOrderForUser(userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	detail := &OrderDetailView{
		ID:              o.ID,
		TotalAmount:     o.TotalAmount,
		Status:          o.Status,
		CreatedAt:       o.CreatedAt.Format(createdAtLayout),
		DeliveryAddress: o.DeliveryAddress,
		Phone:           o.Phone,
		Notes:           o.Notes,
		Items:           make([]OrderItemView, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		detail.Items = append(detail.Items, OrderItemView{
			Name:     it.MenuItem.Name,
			Quantity: it.Quantity,
			Price:    it.PriceAtTime,
		})
	}
	return detail, nil
}

type AdminOrderView struct {
	ID              uint    `json:"id"`
	Username        string  `json:"username"`
	TotalAmount     float64 `json:"total_amount"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"created_at"`
	DeliveryAddress string  `json:"delivery_address"`
	Phone           string  `json:"phone"`
}

// ListFiltered is the admin polling view. status "" or "all" means no
// status filter; dateStr outside YYYY-MM-DD is ignored, not rejected.
func (s *OrderService) ListFiltered(status, dateStr string, limit int) ([]AdminOrderView, error) {
	var day *time.Time
	if dateStr != "" {
		if d, err := time.Parse("2006-01-02", dateStr); err == nil {
			day = &d
		}
	}

	orders, err := s.Repo.ListFiltered(status, day, limit)
	if err != nil {
		return nil, err
	}

	out := make([]AdminOrderView, 0, len(orders))
	for _, o := range orders {
		addr := o.DeliveryAddress
		if len(addr) > 50 {
			addr = addr[:50] + "..."
		}
		out = append(out, AdminOrderView{
			ID:              o.ID,
			Username:        o.User.Username,
			TotalAmount:     o.TotalAmount,
			Status:          o.Status,
			CreatedAt:       o.CreatedAt.Format(createdAtLayout),
			DeliveryAddress: addr,
			Phone:           o.Phone,
		})
	}
	return out, nil
}

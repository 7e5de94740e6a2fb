package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"backend/entity"
	"backend/repository"
)

func newOrderService(db *gorm.DB, notifier OrderNotifier) *OrderService {
	return NewOrderService(db, repository.NewOrderRepository(db), repository.NewCatalogRepository(db), notifier)
}

func TestSubmitComputesTotalFromCurrentPrices(t *testing.T) {
	db := newTestDB(t)
	a := seedMenuItem(t, db, "Steak", 12.50, true)
	b := seedMenuItem(t, db, "Coffee", 7.00, true)
	user := seedUser(t, db, "alice", entity.RoleCustomer)

	notifier := &fakeNotifier{}
	svc := newOrderService(db, notifier)

	res, err := svc.Submit(user.ID, &SubmitOrderReq{
		Items: []CartItemIn{
			{ID: a.ID, Quantity: 2},
			{ID: b.ID, Quantity: 1},
		},
		DeliveryAddress: "1 Main St",
		Phone:           "555-0100",
	})
	require.NoError(t, err)
	assert.InDelta(t, 32.00, res.TotalAmount, 1e-9)

	var order entity.Order
	require.NoError(t, db.Preload("Items").First(&order, res.OrderID).Error)
	assert.Equal(t, entity.StatusPending, order.Status)
	assert.Equal(t, user.ID, order.UserID)
	assert.InDelta(t, 32.00, order.TotalAmount, 1e-9)
	require.Len(t, order.Items, 2)
	assert.InDelta(t, 12.50, order.Items[0].PriceAtTime, 1e-9)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.InDelta(t, 7.00, order.Items[1].PriceAtTime, 1e-9)

	require.Len(t, notifier.newOrders, 1)
	assert.Equal(t, res.OrderID, notifier.newOrders[0].ID)
}

func TestSubmitEmptyCart(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice", entity.RoleCustomer)
	svc := newOrderService(db, &fakeNotifier{})

	_, err := svc.Submit(user.ID, &SubmitOrderReq{})
	assert.ErrorIs(t, err, ErrEmptyCart)

	var count int64
	db.Model(&entity.Order{}).Count(&count)
	assert.Zero(t, count)
}

func TestSubmitAllUnknownItems(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice", entity.RoleCustomer)
	svc := newOrderService(db, &fakeNotifier{})

	_, err := svc.Submit(user.ID, &SubmitOrderReq{
		Items: []CartItemIn{{ID: 9991, Quantity: 1}, {ID: 9992, Quantity: 3}},
	})
	assert.ErrorIs(t, err, ErrNoValidItems)

	var count int64
	db.Model(&entity.Order{}).Count(&count)
	assert.Zero(t, count)
}

// Unknown item ids in a cart are dropped, not rejected. Do not "fix"
// this: clients with a stale cart expect the rest of the order to go
// through.
func TestSubmitDropsUnknownItems(t *testing.T) {
	db := newTestDB(t)
	a := seedMenuItem(t, db, "Steak", 120, true)
	user := seedUser(t, db, "alice", entity.RoleCustomer)
	svc := newOrderService(db, &fakeNotifier{})

	res, err := svc.Submit(user.ID, &SubmitOrderReq{
		Items: []CartItemIn{
			{ID: a.ID, Quantity: 1},
			{ID: 4242, Quantity: 5},
		},
	})
	require.NoError(t, err)
	assert.InDelta(t, 120, res.TotalAmount, 1e-9)

	var items []entity.OrderItem
	require.NoError(t, db.Where("order_id = ?", res.OrderID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, a.ID, items[0].MenuItemID)
}

func TestSubmitSnapshotsPriceAtOrderTime(t *testing.T) {
	db := newTestDB(t)
	item := seedMenuItem(t, db, "Tiramisu", 40, true)
	user := seedUser(t, db, "alice", entity.RoleCustomer)
	svc := newOrderService(db, &fakeNotifier{})

	res, err := svc.Submit(user.ID, &SubmitOrderReq{
		Items: []CartItemIn{{ID: item.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// catalog price changes after the order
	require.NoError(t, db.Model(&entity.MenuItem{}).Where("id = ?", item.ID).Update("price", 99).Error)

	var oi entity.OrderItem
	require.NoError(t, db.Where("order_id = ?", res.OrderID).First(&oi).Error)
	assert.InDelta(t, 40, oi.PriceAtTime, 1e-9)

	var order entity.Order
	require.NoError(t, db.First(&order, res.OrderID).Error)
	assert.InDelta(t, 40, order.TotalAmount, 1e-9)
}

func TestUpdateStatusRequiresAdmin(t *testing.T) {
	db := newTestDB(t)
	item := seedMenuItem(t, db, "Coffee", 20, true)
	user := seedUser(t, db, "alice", entity.RoleCustomer)
	notifier := &fakeNotifier{}
	svc := newOrderService(db, notifier)

	res, err := svc.Submit(user.ID, &SubmitOrderReq{Items: []CartItemIn{{ID: item.ID, Quantity: 1}}})
	require.NoError(t, err)

	err = svc.UpdateStatus(res.OrderID, entity.RoleCustomer, entity.StatusReady)
	assert.ErrorIs(t, err, ErrForbidden)

	var order entity.Order
	require.NoError(t, db.First(&order, res.OrderID).Error)
	assert.Equal(t, entity.StatusPending, order.Status)
	assert.Empty(t, notifier.statuses)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	db := newTestDB(t)
	item := seedMenuItem(t, db, "Coffee", 20, true)
	user := seedUser(t, db, "alice", entity.RoleCustomer)
	svc := newOrderService(db, &fakeNotifier{})

	res, err := svc.Submit(user.ID, &SubmitOrderReq{Items: []CartItemIn{{ID: item.ID, Quantity: 1}}})
	require.NoError(t, err)

	err = svc.UpdateStatus(res.OrderID, entity.RoleAdmin, "shipped")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	var order entity.Order
	require.NoError(t, db.First(&order, res.OrderID).Error)
	assert.Equal(t, entity.StatusPending, order.Status)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db, &fakeNotifier{})

	err := svc.UpdateStatus(777, entity.RoleAdmin, entity.StatusReady)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateStatusAllowsAnyTransition(t *testing.T) {
	db := newTestDB(t)
	item := seedMenuItem(t, db, "Coffee", 20, true)
	user := seedUser(t, db, "alice", entity.RoleCustomer)
	notifier := &fakeNotifier{}
	svc := newOrderService(db, notifier)

	res, err := svc.Submit(user.ID, &SubmitOrderReq{Items: []CartItemIn{{ID: item.ID, Quantity: 1}}})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(res.OrderID, entity.RoleAdmin, entity.StatusDelivered))
	// no transition table: delivered may go back to pending
	require.NoError(t, svc.UpdateStatus(res.OrderID, entity.RoleAdmin, entity.StatusPending))

	var order entity.Order
	require.NoError(t, db.First(&order, res.OrderID).Error)
	assert.Equal(t, entity.StatusPending, order.Status)

	require.Len(t, notifier.statuses, 2)
	assert.Equal(t, entity.StatusDelivered, notifier.statuses[0].Status)
	assert.Equal(t, entity.StatusPending, notifier.statuses[1].Status)
	assert.Equal(t, user.ID, notifier.statuses[1].UserID)
}

func TestListForUserLimitsItems(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice", entity.RoleCustomer)
	svc := newOrderService(db, &fakeNotifier{})

	items := make([]CartItemIn, 0, 7)
	for i := 0; i < 7; i++ {
		m := seedMenuItem(t, db, "Dish", 10, true)
		items = append(items, CartItemIn{ID: m.ID, Quantity: 1})
	}
	_, err := svc.Submit(user.ID, &SubmitOrderReq{Items: items})
	require.NoError(t, err)

	views, err := svc.ListForUser(user.ID, 20)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, 7, views[0].ItemsCount)
	assert.Len(t, views[0].Items, 5)
	assert.Equal(t, "Dish", views[0].Items[0].Name)
}

func TestListFilteredByStatus(t *testing.T) {
	db := newTestDB(t)
	item := seedMenuItem(t, db, "Coffee", 20, true)
	user := seedUser(t, db, "alice", entity.RoleCustomer)
	svc := newOrderService(db, &fakeNotifier{})

	first, err := svc.Submit(user.ID, &SubmitOrderReq{Items: []CartItemIn{{ID: item.ID, Quantity: 1}}})
	require.NoError(t, err)
	second, err := svc.Submit(user.ID, &SubmitOrderReq{Items: []CartItemIn{{ID: item.ID, Quantity: 2}}})
	require.NoError(t, err)
	require.NoError(t, svc.UpdateStatus(second.OrderID, entity.RoleAdmin, entity.StatusReady))

	views, err := svc.ListFiltered(entity.StatusReady, "", 50)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, second.OrderID, views[0].ID)
	assert.Equal(t, "alice", views[0].Username)

	all, err := svc.ListFiltered("all", "", 50)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	_ = first
}

// An unparsable date filter is ignored, not an error.
func TestListFilteredIgnoresBadDate(t *testing.T) {
	db := newTestDB(t)
	item := seedMenuItem(t, db, "Coffee", 20, true)
	user := seedUser(t, db, "alice", entity.RoleCustomer)
	svc := newOrderService(db, &fakeNotifier{})

	_, err := svc.Submit(user.ID, &SubmitOrderReq{Items: []CartItemIn{{ID: item.ID, Quantity: 1}}})
	require.NoError(t, err)

	views, err := svc.ListFiltered("all", "not-a-date", 50)
	require.NoError(t, err)
	assert.Len(t, views, 1)
}

func TestListFilteredTruncatesAddress(t *testing.T) {
	db := newTestDB(t)
	item := seedMenuItem(t, db, "Coffee", 20, true)
	user := seedUser(t, db, "alice", entity.RoleCustomer)
	svc := newOrderService(db, &fakeNotifier{})

	long := make([]byte, 80)
	for i := range long {
		long[i] = 'a'
	}
	_, err := svc.Submit(user.ID, &SubmitOrderReq{
		Items:           []CartItemIn{{ID: item.ID, Quantity: 1}},
		DeliveryAddress: string(long),
	})
	require.NoError(t, err)

	views, err := svc.ListFiltered("all", "", 50)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Len(t, views[0].DeliveryAddress, 53)
	assert.Equal(t, "...", views[0].DeliveryAddress[50:])
}

func TestDetailForUserScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	a := seedMenuItem(t, db, "Steak", 120, true)
	b := seedMenuItem(t, db, "Coffee", 20, true)
	owner := seedUser(t, db, "alice", entity.RoleCustomer)
	other := seedUser(t, db, "bob", entity.RoleCustomer)
	svc := newOrderService(db, &fakeNotifier{})

	res, err := svc.Submit(owner.ID, &SubmitOrderReq{
		Items: []CartItemIn{
			{ID: a.ID, Quantity: 1},
			{ID: b.ID, Quantity: 2},
		},
		DeliveryAddress: "1 Main St",
		Notes:           "ring twice",
	})
	require.NoError(t, err)

	detail, err := svc.DetailForUser(owner.ID, res.OrderID)
	require.NoError(t, err)
	assert.Equal(t, res.OrderID, detail.ID)
	assert.Equal(t, entity.StatusPending, detail.Status)
	assert.Equal(t, "ring twice", detail.Notes)
	assert.InDelta(t, 160, detail.TotalAmount, 1e-9)
	require.Len(t, detail.Items, 2)
	assert.Equal(t, "Steak", detail.Items[0].Name)
	assert.InDelta(t, 20, detail.Items[1].Price, 1e-9)

	// someone else's order reads as not found
	_, err = svc.DetailForUser(other.ID, res.OrderID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = svc.DetailForUser(owner.ID, 9999)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestListFilteredByDate(t *testing.T) {
	db := newTestDB(t)
	item := seedMenuItem(t, db, "Coffee", 20, true)
	user := seedUser(t, db, "alice", entity.RoleCustomer)
	svc := newOrderService(db, &fakeNotifier{})

	res, err := svc.Submit(user.ID, &SubmitOrderReq{Items: []CartItemIn{{ID: item.ID, Quantity: 1}}})
	require.NoError(t, err)

	// pin the order to a known calendar day
	pinned := time.Date(2026, 8, 10, 13, 30, 0, 0, time.UTC)
	require.NoError(t, db.Model(&entity.Order{}).Where("id = ?", res.OrderID).Update("created_at", pinned).Error)

	hit, err := svc.ListFiltered("all", "2026-08-10", 50)
	require.NoError(t, err)
	require.Len(t, hit, 1)
	assert.Equal(t, res.OrderID, hit[0].ID)

	miss, err := svc.ListFiltered("all", "2026-08-11", 50)
	require.NoError(t, err)
	assert.Empty(t, miss)
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/entity"
	"backend/repository"
)

func TestOverviewCountsAndRevenue(t *testing.T) {
	db := newTestDB(t)
	item := seedMenuItem(t, db, "Steak", 120, true)
	user := seedUser(t, db, "alice", entity.RoleCustomer)
	orders := newOrderService(db, &fakeNotifier{})

	first, err := orders.Submit(user.ID, &SubmitOrderReq{Items: []CartItemIn{{ID: item.ID, Quantity: 1}}})
	require.NoError(t, err)
	_, err = orders.Submit(user.ID, &SubmitOrderReq{Items: []CartItemIn{{ID: item.ID, Quantity: 2}}})
	require.NoError(t, err)
	require.NoError(t, orders.UpdateStatus(first.OrderID, entity.RoleAdmin, entity.StatusDelivered))

	svc := NewStatsService(repository.NewOrderRepository(db))
	stats, err := svc.Overview()
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalOrders)
	assert.Equal(t, int64(1), stats.PendingOrders)
	assert.Equal(t, int64(2), stats.TodayOrders)
	assert.InDelta(t, 360, stats.TotalRevenue, 1e-9)
}

// Re-reading stats without intervening writes is idempotent.
func TestOverviewIdempotentWithoutWrites(t *testing.T) {
	db := newTestDB(t)
	item := seedMenuItem(t, db, "Coffee", 20, true)
	user := seedUser(t, db, "alice", entity.RoleCustomer)
	orders := newOrderService(db, &fakeNotifier{})

	_, err := orders.Submit(user.ID, &SubmitOrderReq{Items: []CartItemIn{{ID: item.ID, Quantity: 3}}})
	require.NoError(t, err)

	svc := NewStatsService(repository.NewOrderRepository(db))
	a, err := svc.Overview()
	require.NoError(t, err)
	b, err := svc.Overview()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestOverviewEmptyDatabase(t *testing.T) {
	db := newTestDB(t)

	svc := NewStatsService(repository.NewOrderRepository(db))
	stats, err := svc.Overview()
	require.NoError(t, err)

	assert.Zero(t, stats.TotalOrders)
	assert.Zero(t, stats.PendingOrders)
	assert.Zero(t, stats.TodayOrders)
	assert.Zero(t, stats.TotalRevenue)
}

package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"backend/entity"
)

// newTestDB opens a per-test in-memory sqlite database with the full
// schema migrated. The shared-cache DSN keeps gorm's pooled connections
// on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Category{}, &entity.MenuItem{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.PageView{},
	))
	return db
}

func seedMenuItem(t *testing.T, db *gorm.DB, name string, price float64, available bool) entity.MenuItem {
	t.Helper()

	cat := entity.Category{Name: "Main Dishes"}
	require.NoError(t, db.FirstOrCreate(&cat, entity.Category{Name: "Main Dishes"}).Error)

	item := entity.MenuItem{Name: name, Price: price, IsAvailable: available, CategoryID: cat.ID}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) entity.User {
	t.Helper()

	u := entity.User{Username: username, Email: username + "@example.com", Password: "x", Role: role}
	require.NoError(t, db.Create(&u).Error)
	return u
}

// fakeNotifier records notifications instead of pushing them.
type fakeNotifier struct {
	newOrders []*entity.Order
	statuses  []*entity.Order
}

func (f *fakeNotifier) NotifyNewOrder(o *entity.Order)    { f.newOrders = append(f.newOrders, o) }
func (f *fakeNotifier) NotifyOrderStatus(o *entity.Order) { f.statuses = append(f.statuses, o) }

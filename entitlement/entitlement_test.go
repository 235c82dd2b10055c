package entitlement

import (
	"fmt"
	"testing"

	"coursestore/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbCounter int

func newTestDB(t *testing.T) *gorm.DB {
	dbCounter++
	dsn := fmt.Sprintf("file:entitlement%d?mode=memory&cache=shared", dbCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Order{}, &models.OrderItem{}))
	return db
}

func createOrder(t *testing.T, db *gorm.DB, userID, courseID uint, status string) *models.Order {
	order := &models.Order{
		OrderNumber: fmt.Sprintf("ord-%d-%d-%s", userID, courseID, status),
		UserID:      userID,
		Status:      status,
	}
	require.NoError(t, db.Create(order).Error)
	require.NoError(t, db.Create(&models.OrderItem{OrderID: order.ID, CourseID: courseID, Quantity: 1}).Error)
	return order
}

func TestResolveNoOrders(t *testing.T) {
	db := newTestDB(t)
	require.Equal(t, None, Resolve(db, 1, 1))
}

func TestResolveOrderLifecycle(t *testing.T) {
	db := newTestDB(t)

	order := createOrder(t, db, 1, 42, models.OrderStatusPending)
	require.Equal(t, Pending, Resolve(db, 1, 42))

	// Approval grants access
	order.Status = models.OrderStatusApproved
	require.NoError(t, db.Save(order).Error)
	require.Equal(t, Active, Resolve(db, 1, 42))

	// Revoke drops back to pending, not none - the order still exists
	order.Status = models.OrderStatusPending
	require.NoError(t, db.Save(order).Error)
	require.Equal(t, Pending, Resolve(db, 1, 42))

	order.Status = models.OrderStatusRejected
	require.NoError(t, db.Save(order).Error)
	require.Equal(t, None, Resolve(db, 1, 42))
}

func TestResolveIgnoresOtherUsersAndCourses(t *testing.T) {
	db := newTestDB(t)

	createOrder(t, db, 1, 42, models.OrderStatusApproved)

	require.Equal(t, Active, Resolve(db, 1, 42))
	require.Equal(t, None, Resolve(db, 2, 42))
	require.Equal(t, None, Resolve(db, 1, 43))
}

func TestResolveUsesLatestOrder(t *testing.T) {
	db := newTestDB(t)

	first := createOrder(t, db, 1, 42, models.OrderStatusRejected)
	createOrder(t, db, 1, 42, models.OrderStatusApproved)

	require.Equal(t, Active, Resolve(db, 1, 42))

	// Earlier rejected order does not shadow the newer approval
	require.NotZero(t, first.ID)
}

func TestResolveSkipsDeletedOrders(t *testing.T) {
	db := newTestDB(t)

	order := createOrder(t, db, 1, 42, models.OrderStatusApproved)
	order.IsDeleted = true
	require.NoError(t, db.Save(order).Error)

	require.Equal(t, None, Resolve(db, 1, 42))
}

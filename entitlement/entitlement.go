// Package entitlement projects a student's access level for a course
// from their most recent order. It never mutates state and is cheap
// enough to back every curriculum read.
package entitlement

import (
	"coursestore/models"

	"gorm.io/gorm"
)

// Level is the access a student holds for a course.
type Level string

const (
	None    Level = "none"    // no live order for the course
	Pending Level = "pending" // order awaiting admin review; visible but locked
	Active  Level = "active"  // approved order; full access
)

// Resolve maps the latest non-deleted order referencing the course to an
// access level. Rejected orders grant nothing, matching absence.
func Resolve(db *gorm.DB, userID, courseID uint) Level {
	var order models.Order
	err := db.
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Where("orders.user_id = ? AND order_items.course_id = ? AND orders.is_deleted = ?", userID, courseID, false).
		Order("orders.created_at desc, orders.id desc").
		First(&order).Error
	if err != nil {
		return None
	}

	switch order.Status {
	case models.OrderStatusApproved:
		return Active
	case models.OrderStatusPending:
		return Pending
	}
	return None
}

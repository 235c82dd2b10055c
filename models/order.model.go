package models

import (
	"gorm.io/gorm"
)

const (
	OrderStatusPending  = "PENDING"
	OrderStatusApproved = "APPROVED"
	OrderStatusRejected = "REJECTED"
)

// Order is an immutable snapshot of a checkout. Totals and the applied
// coupon (type and value) are frozen at submission time; later coupon
// edits must not change what the student was charged. Only Status is
// mutated afterwards, and only by the admin approval flow.
type Order struct {
	gorm.Model
	OrderNumber string `json:"order_number" gorm:"uniqueIndex;not null"`
	UserID      uint   `json:"user_id" gorm:"index;not null"`
	Subtotal    int64  `json:"subtotal" gorm:"default:0"` // minor currency units
	Discount    int64  `json:"discount" gorm:"default:0"`
	Total       int64  `json:"total" gorm:"default:0"`
	CouponCode  string `json:"coupon_code"`
	CouponType  string `json:"coupon_type"`
	CouponValue int64  `json:"coupon_value"`
	ProofURL    string `json:"proof_url"`
	Status      string `json:"status" gorm:"default:'PENDING';index"` // PENDING, APPROVED, REJECTED
	IsDeleted   bool   `gorm:"default:false"`

	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

// OrderItem is one cart line frozen into an order. Quantity is always 1
// per distinct course; adding an already-present course is a no-op at
// cart level, not an increment.
type OrderItem struct {
	gorm.Model
	OrderID   uint   `json:"order_id" gorm:"index;not null"`
	CourseID  uint   `json:"course_id" gorm:"index;not null"`
	Title     string `json:"title"`
	UnitPrice int64  `json:"unit_price" gorm:"default:0"`
	Quantity  int    `json:"quantity" gorm:"default:1"`
}

// OrderStatusAudit is the append-only record of approval decisions. One
// row per actual transition; idempotent no-op requests never append.
type OrderStatusAudit struct {
	gorm.Model
	OrderID    uint   `json:"order_id" gorm:"index;not null"`
	ActorID    uint   `json:"actor_id" gorm:"index;not null"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
}

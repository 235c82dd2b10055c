// Package pricing computes cart totals and coupon discounts. All amounts
// are integers in the smallest currency unit and every function is pure,
// so a stored order's totals can be replayed for auditing.
package pricing

import (
	"strings"

	"coursestore/models"
)

// CartItem is one line of a cart at checkout time.
type CartItem struct {
	CourseID  uint   `json:"course_id" validate:"required,gt=0"`
	Title     string `json:"title"`
	UnitPrice int64  `json:"unit_price" validate:"gte=0"`
	Quantity  int    `json:"quantity" validate:"gte=0,lte=1"`
}

// Quote is the priced result for a cart.
type Quote struct {
	Subtotal int64 `json:"subtotal"`
	Discount int64 `json:"discount"`
	Total    int64 `json:"total"`
}

// NormalizeCode trims and uppercases a coupon code for lookup.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizeItems collapses duplicate course ids and forces quantity to 1.
// Adding an already-present course to a cart is a no-op, not an increment.
func NormalizeItems(items []CartItem) []CartItem {
	seen := make(map[uint]bool, len(items))
	out := make([]CartItem, 0, len(items))
	for _, it := range items {
		if seen[it.CourseID] {
			continue
		}
		seen[it.CourseID] = true
		it.Quantity = 1
		out = append(out, it)
	}
	return out
}

// Subtotal sums unitPrice * quantity over the items.
func Subtotal(items []CartItem) int64 {
	var sum int64
	for _, it := range items {
		sum += it.UnitPrice * int64(it.Quantity)
	}
	return sum
}

// Discount computes the coupon discount for a subtotal. Percent coupons
// round half up; fixed coupons clamp at the subtotal so the discount
// never exceeds it.
func Discount(subtotal int64, couponType string, couponValue int64) int64 {
	if subtotal <= 0 || couponValue <= 0 {
		return 0
	}
	switch couponType {
	case models.CouponTypePercent:
		d := (subtotal*couponValue + 50) / 100
		if d > subtotal {
			d = subtotal
		}
		return d
	case models.CouponTypeFixed:
		if couponValue > subtotal {
			return subtotal
		}
		return couponValue
	}
	return 0
}

// PriceCart prices a cart with an optional coupon. Total clamps to zero.
func PriceCart(items []CartItem, coupon *models.Coupon) Quote {
	subtotal := Subtotal(items)

	var discount int64
	if coupon != nil {
		discount = Discount(subtotal, coupon.Type, coupon.Value)
	}

	total := subtotal - discount
	if total < 0 {
		total = 0
	}

	return Quote{Subtotal: subtotal, Discount: discount, Total: total}
}

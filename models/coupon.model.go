package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	CouponTypePercent = "PERCENT"
	CouponTypeFixed   = "FIXED"
)

// Coupon is a discount code managed by admins and read-only to pricing.
// Code is stored uppercase; lookups normalize the same way. Value is
// percent points for PERCENT coupons and minor currency units for FIXED.
type Coupon struct {
	gorm.Model
	Code      string     `json:"code" gorm:"uniqueIndex;not null"`
	Type      string     `json:"type" gorm:"default:'PERCENT'"` // PERCENT, FIXED
	Value     int64      `json:"value" gorm:"default:0"`
	Label     string     `json:"label"`
	IsRetired bool       `json:"is_retired" gorm:"default:false"`
	ExpiresAt *time.Time `json:"expires_at"`
	IsDeleted bool       `gorm:"default:false"`
}

// Usable reports whether the coupon can still be applied to new carts.
func (c *Coupon) Usable(now time.Time) bool {
	if c.IsRetired || c.IsDeleted {
		return false
	}
	if c.ExpiresAt != nil && c.ExpiresAt.Before(now) {
		return false
	}
	return true
}

package pricing

import (
	"testing"

	"coursestore/models"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "SAVE10", NormalizeCode("  save10 "))
	assert.Equal(t, "SAVE10", NormalizeCode("Save10"))
	assert.Equal(t, "", NormalizeCode("   "))
}

func TestNormalizeItemsCollapsesDuplicates(t *testing.T) {
	items := NormalizeItems([]CartItem{
		{CourseID: 1, UnitPrice: 5000, Quantity: 1},
		{CourseID: 1, UnitPrice: 5000, Quantity: 3},
		{CourseID: 2, UnitPrice: 8000, Quantity: 0},
	})

	assert.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, 1, item.Quantity)
	}
}

func TestPercentDiscount(t *testing.T) {
	// The documented checkout example: 13000 at 10% -> 1300 off
	assert.Equal(t, int64(1300), Discount(13000, models.CouponTypePercent, 10))

	// Half-up rounding
	assert.Equal(t, int64(13), Discount(125, models.CouponTypePercent, 10))
	assert.Equal(t, int64(12), Discount(124, models.CouponTypePercent, 10))

	// 100% never exceeds the subtotal
	assert.Equal(t, int64(13000), Discount(13000, models.CouponTypePercent, 100))
}

func TestFixedDiscountClampsAtSubtotal(t *testing.T) {
	assert.Equal(t, int64(2000), Discount(13000, models.CouponTypeFixed, 2000))
	assert.Equal(t, int64(13000), Discount(13000, models.CouponTypeFixed, 99999))
}

func TestDiscountEdgeCases(t *testing.T) {
	assert.Equal(t, int64(0), Discount(0, models.CouponTypePercent, 10))
	assert.Equal(t, int64(0), Discount(13000, models.CouponTypePercent, 0))
	assert.Equal(t, int64(0), Discount(13000, "UNKNOWN", 10))
}

func TestPriceCartInvariants(t *testing.T) {
	items := []CartItem{
		{CourseID: 1, Title: "Go Basics", UnitPrice: 5000, Quantity: 1},
		{CourseID: 2, Title: "Advanced Go", UnitPrice: 8000, Quantity: 1},
	}

	coupons := []*models.Coupon{
		nil,
		{Code: "SAVE10", Type: models.CouponTypePercent, Value: 10},
		{Code: "HALF", Type: models.CouponTypePercent, Value: 50},
		{Code: "ALL", Type: models.CouponTypePercent, Value: 100},
		{Code: "FLAT", Type: models.CouponTypeFixed, Value: 2000},
		{Code: "HUGE", Type: models.CouponTypeFixed, Value: 1000000},
	}

	for _, coupon := range coupons {
		quote := PriceCart(items, coupon)

		assert.Equal(t, int64(13000), quote.Subtotal)
		assert.GreaterOrEqual(t, quote.Discount, int64(0))
		assert.LessOrEqual(t, quote.Discount, quote.Subtotal)
		assert.Equal(t, quote.Subtotal-quote.Discount, quote.Total)
		assert.GreaterOrEqual(t, quote.Total, int64(0))
	}
}

func TestPriceCartDeterministic(t *testing.T) {
	items := []CartItem{{CourseID: 1, UnitPrice: 13000, Quantity: 1}}
	coupon := &models.Coupon{Code: "SAVE10", Type: models.CouponTypePercent, Value: 10}

	first := PriceCart(items, coupon)
	second := PriceCart(items, coupon)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1300), first.Discount)
	assert.Equal(t, int64(11700), first.Total)
}

package couponController

import (
	"coursestore/database"
	"coursestore/middleware"
	"coursestore/models"
	"time"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateCoupon creates a new coupon code.
func AdminCreateCoupon(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCoupon").(*struct {
		Code      string `json:"code"`
		Type      string `json:"type"`
		Value     int64  `json:"value"`
		Label     string `json:"label"`
		ExpiresAt string `json:"expires_at"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if code already exists
	if err := db.Where("code = ? AND is_deleted = ?", reqData.Code, false).First(&models.Coupon{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Coupon code already exists!", fiber.Map{"code": "CONFLICT"})
	}

	coupon := models.Coupon{
		Code:  reqData.Code,
		Type:  reqData.Type,
		Value: reqData.Value,
		Label: reqData.Label,
	}

	if reqData.ExpiresAt != "" {
		expires, err := time.Parse(time.RFC3339, reqData.ExpiresAt)
		if err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"expires_at": "Expiry must be an RFC3339 timestamp!",
			})
		}
		coupon.ExpiresAt = &expires
	}

	if err := db.Create(&coupon).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create coupon!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Coupon created successfully!", coupon)
}

// AdminRetireCoupon retires a coupon so new carts cannot apply it.
// Orders that already reference the coupon keep their frozen pricing.
func AdminRetireCoupon(c *fiber.Ctx) error {
	code := c.Locals("couponCode").(string)

	db := database.Database.Db

	var coupon models.Coupon
	if err := db.Where("code = ? AND is_deleted = ?", code, false).First(&coupon).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Coupon not found!", fiber.Map{"code": "NOT_FOUND"})
	}

	if coupon.IsRetired {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Coupon already retired.", coupon)
	}

	coupon.IsRetired = true
	if err := db.Save(&coupon).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to retire coupon!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Coupon retired successfully!", coupon)
}

// AdminListCoupons lists all live coupons with their usage counts.
func AdminListCoupons(c *fiber.Ctx) error {
	db := database.Database.Db

	var coupons []models.Coupon
	if err := db.Where("is_deleted = ?", false).Order("created_at desc").Find(&coupons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch coupons!", nil)
	}

	type CouponWithUsage struct {
		models.Coupon
		OrderCount int64 `json:"order_count"`
	}

	result := make([]CouponWithUsage, len(coupons))
	for i, coupon := range coupons {
		var count int64
		db.Model(&models.Order{}).Where("coupon_code = ? AND is_deleted = ?", coupon.Code, false).Count(&count)
		result[i] = CouponWithUsage{Coupon: coupon, OrderCount: count}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Coupons fetched successfully!", fiber.Map{
		"coupons": result,
		"total":   len(result),
	})
}

package couponController

import (
	"coursestore/database"
	"coursestore/middleware"
	"coursestore/models"
	"time"

	"github.com/gofiber/fiber/v2"
)

// GetCoupon validates a coupon code for checkout. The code arrives
// normalized (trimmed, uppercased) from the validator.
func GetCoupon(c *fiber.Ctx) error {
	code := c.Locals("couponCode").(string)

	var coupon models.Coupon
	if err := database.Database.Db.Where("code = ? AND is_deleted = ?", code, false).First(&coupon).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Coupon not found!", fiber.Map{"code": "NOT_FOUND"})
	}

	if !coupon.Usable(time.Now()) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Coupon is no longer valid!", fiber.Map{"code": "NOT_FOUND"})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Coupon is valid!", fiber.Map{
		"coupon": fiber.Map{
			"code":  coupon.Code,
			"type":  coupon.Type,
			"value": coupon.Value,
			"label": coupon.Label,
		},
	})
}

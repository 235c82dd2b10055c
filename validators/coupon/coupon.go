package couponValidator

import (
	"coursestore/middleware"
	"coursestore/models"
	"coursestore/pricing"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

func GetCoupon() fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := pricing.NormalizeCode(c.Params("code"))
		if code == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Coupon code is required in the URL!", nil)
		}

		c.Locals("couponCode", code)
		return c.Next()
	}
}

func CreateCoupon() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Code      string `json:"code"`
			Type      string `json:"type"`
			Value     int64  `json:"value"`
			Label     string `json:"label"`
			ExpiresAt string `json:"expires_at"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Code = pricing.NormalizeCode(reqData.Code)
		reqData.Type = strings.ToUpper(strings.TrimSpace(reqData.Type))
		reqData.Label = strings.TrimSpace(reqData.Label)

		if reqData.Code == "" {
			errors["code"] = "Code is required!"
		} else if len(reqData.Code) > 32 {
			errors["code"] = "Code must not exceed 32 characters!"
		}

		if reqData.Type != models.CouponTypePercent && reqData.Type != models.CouponTypeFixed {
			errors["type"] = "Type must be PERCENT or FIXED!"
		}

		if reqData.Value < 0 {
			errors["value"] = "Value must not be negative!"
		}
		if reqData.Type == models.CouponTypePercent && reqData.Value > 100 {
			errors["value"] = "Percent value must not exceed 100!"
		}

		if reqData.ExpiresAt != "" {
			if _, err := time.Parse(time.RFC3339, reqData.ExpiresAt); err != nil {
				errors["expires_at"] = "Expiry must be an RFC3339 timestamp!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCoupon", reqData)
		return c.Next()
	}
}

func RetireCoupon() fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := pricing.NormalizeCode(c.Params("code"))
		if code == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Coupon code is required in the URL!", nil)
		}

		c.Locals("couponCode", code)
		return c.Next()
	}
}

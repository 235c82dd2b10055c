package couponRoutes

import (
	controllers "coursestore/controllers/coupon"
	"coursestore/middleware"
	validators "coursestore/validators/coupon"

	"github.com/gofiber/fiber/v2"
)

// SetupCouponRoutes sets up coupon lookup and admin management routes
func SetupCouponRoutes(app *fiber.App) {
	couponGroup := app.Group("/coupons")

	// Checkout-time validation
	couponGroup.Get("/:code", middleware.JWTMiddleware, validators.GetCoupon(), controllers.GetCoupon)

	adminGroup := app.Group("/admin/coupons")
	adminGroup.Get("/", middleware.JWTMiddleware, middleware.AdminMiddleware, controllers.AdminListCoupons)
	adminGroup.Post("/", middleware.JWTMiddleware, middleware.AdminMiddleware, validators.CreateCoupon(), controllers.AdminCreateCoupon)
	adminGroup.Delete("/:code", middleware.JWTMiddleware, middleware.AdminMiddleware, validators.RetireCoupon(), controllers.AdminRetireCoupon)
}

package orderRoutes

import (
	controllers "coursestore/controllers/orders"
	"coursestore/middleware"
	validators "coursestore/validators/order"

	"github.com/gofiber/fiber/v2"
)

// SetupOrderRoutes sets up checkout and admin review routes
func SetupOrderRoutes(app *fiber.App) {
	orderGroup := app.Group("/orders")

	// Checkout (multipart: items JSON, couponCode?, proof image)
	orderGroup.Post("/", middleware.JWTMiddleware, validators.SubmitOrder(), controllers.SubmitOrder)
	orderGroup.Get("/my", middleware.JWTMiddleware, controllers.GetMyOrders)

	// Admin review
	adminGroup := app.Group("/admin/orders")
	adminGroup.Get("/", middleware.JWTMiddleware, middleware.AdminMiddleware, validators.OrderList(), controllers.AdminGetOrders)
	adminGroup.Put("/:id/status", middleware.JWTMiddleware, middleware.AdminMiddleware, validators.UpdateOrderStatus(), controllers.UpdateOrderStatus)
	adminGroup.Get("/:id/audit", middleware.JWTMiddleware, middleware.AdminMiddleware, validators.OrderID(), controllers.AdminGetOrderAudit)
	adminGroup.Delete("/:id", middleware.JWTMiddleware, middleware.AdminMiddleware, validators.OrderID(), controllers.AdminDeleteOrder)
}

package orderController

import (
	"coursestore/config"
	"coursestore/database"
	"coursestore/middleware"
	"coursestore/models"
	courseModels "coursestore/models/course"
	"coursestore/pricing"
	"coursestore/utils"
	"log"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SubmitOrder snapshots the cart into an immutable PENDING order. The
// local user record is provisioned lazily from the external identity if
// this is their first order; the unique index on identity_token keeps
// concurrent first submissions from creating duplicates. Proof file and
// order are recorded together or not at all.
func SubmitOrder(c *fiber.Ctx) error {
	identityToken, ok := c.Locals("identityToken").(string)
	if !ok || identityToken == "" {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	items := c.Locals("validatedOrderItems").([]pricing.CartItem)
	couponCode := c.Locals("couponCode").(string)
	proof := c.Locals("proofFile").(*multipart.FileHeader)

	db := database.Database.Db

	// Re-snapshot titles and prices from the catalog so a stale client
	// cannot submit drifted amounts.
	for i := range items {
		var course courseModels.Course
		if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", items[i].CourseID, false, true).First(&course).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", fiber.Map{"code": "NOT_FOUND"})
		}
		items[i].Title = course.Title
		items[i].UnitPrice = course.Price
		items[i].Quantity = 1
	}

	// Resolve the coupon, if any
	var coupon *models.Coupon
	if couponCode != "" {
		var found models.Coupon
		if err := db.Where("code = ? AND is_deleted = ?", couponCode, false).First(&found).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Coupon not found!", fiber.Map{"code": "NOT_FOUND"})
		}
		if !found.Usable(time.Now()) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Coupon is no longer valid!", fiber.Map{"code": "NOT_FOUND"})
		}
		coupon = &found
	}

	quote := pricing.PriceCart(items, coupon)

	// Persist the proof before the transaction; removed again if the
	// transaction rolls back.
	proofPath, err := utils.SaveUploadedFile(proof, config.AppConfig.UploadDir)
	if err != nil {
		log.Printf("Error saving payment proof: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store payment proof!", nil)
	}

	name, _ := c.Locals("name").(string)
	email, _ := c.Locals("email").(string)

	order := models.Order{
		OrderNumber: uuid.NewString(),
		Subtotal:    quote.Subtotal,
		Discount:    quote.Discount,
		Total:       quote.Total,
		ProofURL:    utils.GetFileURL(proofPath),
		Status:      models.OrderStatusPending,
	}
	if coupon != nil {
		order.CouponCode = coupon.Code
		order.CouponType = coupon.Type
		order.CouponValue = coupon.Value
	}

	tx := db.Begin()

	// Lazy identity provisioning, idempotent on identity_token
	var user models.User
	if err := tx.Where(models.User{IdentityToken: identityToken}).
		Attrs(models.User{Name: name, Email: email, Role: models.RoleStudent}).
		FirstOrCreate(&user).Error; err != nil {
		tx.Rollback()
		utils.RemoveFile(proofPath)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit order!", nil)
	}

	order.UserID = user.ID
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		utils.RemoveFile(proofPath)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit order!", nil)
	}

	for _, item := range items {
		orderItem := models.OrderItem{
			OrderID:   order.ID,
			CourseID:  item.CourseID,
			Title:     item.Title,
			UnitPrice: item.UnitPrice,
			Quantity:  1,
		}
		if err := tx.Create(&orderItem).Error; err != nil {
			tx.Rollback()
			utils.RemoveFile(proofPath)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit order!", nil)
		}
	}

	tx.Commit()

	go utils.SendOrderReceivedEmail(user.Email, user.Name, order.OrderNumber, order.Total)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Order submitted successfully!", fiber.Map{
		"orderId":     order.ID,
		"orderNumber": order.OrderNumber,
		"status":      order.Status,
		"subtotal":    order.Subtotal,
		"discount":    order.Discount,
		"total":       order.Total,
	})
}

// GetMyOrders returns the authenticated student's order history.
func GetMyOrders(c *fiber.Ctx) error {
	user, authed := middleware.CurrentUser(c)
	if !authed {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Orders fetched successfully!", fiber.Map{
			"orders": []models.Order{},
			"total":  0,
		})
	}

	var orders []models.Order
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", user.ID, false).
		Preload("Items").Order("created_at desc").Find(&orders).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch orders!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Orders fetched successfully!", fiber.Map{
		"orders": orders,
		"total":  len(orders),
	})
}

package orderController

import (
	"coursestore/database"
	"coursestore/middleware"
	"coursestore/models"
	"coursestore/utils"
	"time"

	"github.com/gofiber/fiber/v2"
)

// UpdateOrderStatus applies an admin approval decision. Repeating the
// current status is a no-op success and appends no audit row, so
// duplicate clicks and retried requests stay consistent. REJECTED is
// terminal.
func UpdateOrderStatus(c *fiber.Ctx) error {
	admin, authed := middleware.CurrentUser(c)
	if !authed || admin == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	orderID := c.Locals("orderID").(int)
	newStatus := c.Locals("newStatus").(string)

	db := database.Database.Db

	tx := db.Begin()

	var order models.Order
	if err := tx.Where("id = ? AND is_deleted = ?", orderID, false).First(&order).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Order not found!", fiber.Map{"code": "NOT_FOUND"})
	}

	// Idempotent no-op: the order is already where the admin wants it.
	if order.Status == newStatus {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Order status unchanged.", fiber.Map{
			"orderId": order.ID,
			"status":  order.Status,
		})
	}

	if order.Status == models.OrderStatusRejected {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Rejected orders cannot transition!", fiber.Map{"code": "CONFLICT"})
	}

	// APPROVED can only move back to PENDING (revoke); only PENDING can
	// be approved or rejected.
	if order.Status == models.OrderStatusApproved && newStatus != models.OrderStatusPending {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Invalid status transition!", fiber.Map{"code": "CONFLICT"})
	}

	fromStatus := order.Status
	order.Status = newStatus
	if err := tx.Save(&order).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update order status!", nil)
	}

	audit := models.OrderStatusAudit{
		OrderID:    order.ID,
		ActorID:    admin.ID,
		FromStatus: fromStatus,
		ToStatus:   newStatus,
	}
	if err := tx.Create(&audit).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record audit event!", nil)
	}

	tx.Commit()

	// Notify the student and the back office outside the transaction
	var student models.User
	if err := db.Where("id = ?", order.UserID).First(&student).Error; err == nil {
		go utils.SendOrderStatusEmail(student.Email, student.Name, order.OrderNumber, newStatus)
	}

	utils.NotifyOrderStatusChange(utils.OrderStatusEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		ActorID:     admin.ID,
		FromStatus:  fromStatus,
		ToStatus:    newStatus,
		OccurredAt:  time.Now(),
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Order status updated successfully!", fiber.Map{
		"orderId": order.ID,
		"status":  order.Status,
	})
}

// AdminGetOrders lists orders for review, optionally filtered by status.
func AdminGetOrders(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedOrderList").(*struct {
		Page   *int   `query:"page"`
		Limit  *int   `query:"limit"`
		Status string `query:"status"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	page := *reqData.Page
	limit := *reqData.Limit
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&models.Order{}).Where("is_deleted = ?", false)
	if reqData.Status != "" {
		db = db.Where("status = ?", reqData.Status)
	}

	var total int64
	db.Count(&total)

	var orders []models.Order
	if err := db.Preload("Items").Offset(offset).Limit(limit).Order("created_at desc").Find(&orders).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch orders!", nil)
	}

	response := map[string]interface{}{
		"orders": orders,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Orders fetched successfully!", response)
}

// AdminGetOrderAudit returns the append-only transition history of an order.
func AdminGetOrderAudit(c *fiber.Ctx) error {
	orderID := c.Locals("orderID").(int)

	db := database.Database.Db

	var order models.Order
	if err := db.Where("id = ?", orderID).First(&order).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Order not found!", fiber.Map{"code": "NOT_FOUND"})
	}

	var audits []models.OrderStatusAudit
	if err := db.Where("order_id = ?", orderID).Order("created_at asc, id asc").Find(&audits).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch audit trail!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Audit trail fetched successfully!", fiber.Map{
		"orderId": order.ID,
		"status":  order.Status,
		"events":  audits,
	})
}

// AdminDeleteOrder soft-deletes an order as administrative cleanup. A
// deleted order no longer contributes to entitlements and cannot
// transition again.
func AdminDeleteOrder(c *fiber.Ctx) error {
	admin, authed := middleware.CurrentUser(c)
	if !authed || admin == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	orderID := c.Locals("orderID").(int)

	db := database.Database.Db

	var order models.Order
	if err := db.Where("id = ? AND is_deleted = ?", orderID, false).First(&order).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Order not found!", fiber.Map{"code": "NOT_FOUND"})
	}

	order.IsDeleted = true
	if err := db.Save(&order).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete order!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Order deleted successfully!", nil)
}

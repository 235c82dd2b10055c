package orderValidator

import (
	"coursestore/config"
	"coursestore/middleware"
	"coursestore/models"
	"coursestore/pricing"
	"coursestore/utils"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// SubmitOrder validates the multipart checkout payload: an items JSON
// array, an optional coupon code and a payment proof image.
func SubmitOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		itemsRaw := strings.TrimSpace(c.FormValue("items"))
		if itemsRaw == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cart is empty!", fiber.Map{"code": "EMPTY_CART"})
		}

		var items []pricing.CartItem
		if err := json.Unmarshal([]byte(itemsRaw), &items); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid items payload!", fiber.Map{"code": "VALIDATION"})
		}

		items = pricing.NormalizeItems(items)
		if len(items) == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cart is empty!", fiber.Map{"code": "EMPTY_CART"})
		}

		for _, item := range items {
			if err := validate.Struct(item); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid cart item!", fiber.Map{"code": "VALIDATION"})
			}
		}

		proof, err := c.FormFile("proof")
		if err != nil || proof == nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment proof is required!", fiber.Map{"code": "INVALID_PROOF"})
		}

		maxBytes := int64(config.AppConfig.MaxProofSizeMB) * 1024 * 1024
		if proof.Size > maxBytes {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment proof exceeds the size limit!", fiber.Map{"code": "INVALID_PROOF"})
		}

		if !utils.IsImageUpload(proof) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment proof must be an image!", fiber.Map{"code": "INVALID_PROOF"})
		}

		c.Locals("validatedOrderItems", items)
		c.Locals("couponCode", pricing.NormalizeCode(c.FormValue("couponCode")))
		c.Locals("proofFile", proof)

		return c.Next()
	}
}

// UpdateOrderStatus validates an admin status transition request.
func UpdateOrderStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orderIDStr := strings.TrimSpace(c.Params("id"))
		orderID, err := strconv.Atoi(orderIDStr)
		if err != nil || orderID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Order ID!", nil)
		}

		reqData := new(struct {
			Status string `json:"status"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Status = strings.ToUpper(strings.TrimSpace(reqData.Status))
		switch reqData.Status {
		case models.OrderStatusPending, models.OrderStatusApproved, models.OrderStatusRejected:
		default:
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Status must be one of PENDING, APPROVED, REJECTED!",
			})
		}

		c.Locals("orderID", orderID)
		c.Locals("newStatus", reqData.Status)
		return c.Next()
	}
}

// OrderID validates an order id path parameter.
func OrderID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orderID, err := strconv.Atoi(strings.TrimSpace(c.Params("id")))
		if err != nil || orderID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Order ID!", nil)
		}

		c.Locals("orderID", orderID)
		return c.Next()
	}
}

// OrderList validates optional pagination and status filter query params.
func OrderList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page   *int   `query:"page"`
			Limit  *int   `query:"limit"`
			Status string `query:"status"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		defaultPage := 1
		defaultLimit := 10
		if reqData.Page == nil || *reqData.Page < 1 {
			reqData.Page = &defaultPage
		}
		if reqData.Limit == nil || *reqData.Limit < 1 {
			reqData.Limit = &defaultLimit
		}

		reqData.Status = strings.ToUpper(strings.TrimSpace(reqData.Status))
		if reqData.Status != "" {
			switch reqData.Status {
			case models.OrderStatusPending, models.OrderStatusApproved, models.OrderStatusRejected:
			default:
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid status filter!", nil)
			}
		}

		c.Locals("validatedOrderList", reqData)
		return c.Next()
	}
}

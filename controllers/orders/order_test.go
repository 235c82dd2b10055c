package orderController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"coursestore/config"
	"coursestore/database"
	"coursestore/entitlement"
	"coursestore/middleware"
	"coursestore/models"
	courseModels "coursestore/models/course"
	orderRoutes "coursestore/routers/orderRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbCounter int

func setupTest(t *testing.T) (*fiber.App, *gorm.DB) {
	config.AppConfig = &config.Config{
		JWTKey:          "test-secret",
		UploadDir:       t.TempDir(),
		MaxProofSizeMB:  5,
		PollIntervalSec: 5,
		AppName:         "Course Store",
	}

	dbCounter++
	dsn := fmt.Sprintf("file:orders%d?mode=memory&cache=shared", dbCounter)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	orderRoutes.SetupOrderRoutes(app)

	return app, db
}

func studentToken(t *testing.T, identity string) string {
	token, err := middleware.GenerateJWT(identity, "Test Student", models.RoleStudent, identity+"@example.com")
	require.NoError(t, err)
	return token
}

func adminToken(t *testing.T, db *gorm.DB) (string, *models.User) {
	admin := &models.User{IdentityToken: "admin-1", Name: "Admin", Email: "admin@example.com", Role: models.RoleAdmin}
	require.NoError(t, db.Where(models.User{IdentityToken: admin.IdentityToken}).FirstOrCreate(admin).Error)

	token, err := middleware.GenerateJWT(admin.IdentityToken, admin.Name, admin.Role, admin.Email)
	require.NoError(t, err)
	return token, admin
}

type envelope struct {
	Status  bool                   `json:"status"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func decode(t *testing.T, resp *http.Response) envelope {
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func orderBody(t *testing.T, items, couponCode string, withProof bool, proofMime string) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	require.NoError(t, writer.WriteField("items", items))
	if couponCode != "" {
		require.NoError(t, writer.WriteField("couponCode", couponCode))
	}

	if withProof {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="proof"; filename="proof.png"`)
		header.Set("Content-Type", proofMime)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("not-a-real-png-but-close-enough"))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func seedCourse(t *testing.T, db *gorm.DB, title string, price int64) *courseModels.Course {
	course := &courseModels.Course{Title: title, Price: price, IsPublished: true}
	require.NoError(t, db.Create(course).Error)
	return course
}

func submitOrder(t *testing.T, app *fiber.App, token, items, couponCode string) *http.Response {
	body, contentType := orderBody(t, items, couponCode, true, "image/png")
	req := httptest.NewRequest("POST", "/orders/", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestSubmitOrderEmptyCart(t *testing.T) {
	app, _ := setupTest(t)

	resp := submitOrder(t, app, studentToken(t, "stu-1"), "[]", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	env := decode(t, resp)
	assert.Equal(t, "EMPTY_CART", env.Data["code"])
}

func TestSubmitOrderMissingProof(t *testing.T) {
	app, db := setupTest(t)
	course := seedCourse(t, db, "Go Basics", 13000)

	body, contentType := orderBody(t, fmt.Sprintf(`[{"course_id":%d}]`, course.ID), "", false, "")
	req := httptest.NewRequest("POST", "/orders/", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+studentToken(t, "stu-1"))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	env := decode(t, resp)
	assert.Equal(t, "INVALID_PROOF", env.Data["code"])
}

func TestSubmitOrderNonImageProof(t *testing.T) {
	app, db := setupTest(t)
	course := seedCourse(t, db, "Go Basics", 13000)

	body, contentType := orderBody(t, fmt.Sprintf(`[{"course_id":%d}]`, course.ID), "", true, "application/pdf")
	req := httptest.NewRequest("POST", "/orders/", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+studentToken(t, "stu-1"))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	env := decode(t, resp)
	assert.Equal(t, "INVALID_PROOF", env.Data["code"])
}

func TestSubmitOrderWithPercentCoupon(t *testing.T) {
	app, db := setupTest(t)
	course := seedCourse(t, db, "Go Basics", 13000)
	require.NoError(t, db.Create(&models.Coupon{Code: "SAVE10", Type: models.CouponTypePercent, Value: 10, Label: "10% off"}).Error)

	resp := submitOrder(t, app, studentToken(t, "stu-1"), fmt.Sprintf(`[{"course_id":%d}]`, course.ID), "save10")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var order models.Order
	require.NoError(t, db.Preload("Items").First(&order).Error)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, int64(13000), order.Subtotal)
	assert.Equal(t, int64(1300), order.Discount)
	assert.Equal(t, int64(11700), order.Total)
	assert.Equal(t, "SAVE10", order.CouponCode)
	assert.Equal(t, int64(10), order.CouponValue)
	assert.NotEmpty(t, order.ProofURL)
	require.Len(t, order.Items, 1)
	assert.Equal(t, course.ID, order.Items[0].CourseID)
	assert.Equal(t, 1, order.Items[0].Quantity)

	// Lazy identity provisioning created exactly one user
	var users int64
	db.Model(&models.User{}).Count(&users)
	assert.Equal(t, int64(1), users)

	// New order for the same course resolves as pending
	assert.Equal(t, entitlement.Pending, entitlement.Resolve(db, order.UserID, course.ID))
}

func TestSubmitOrderDuplicateCourseCollapses(t *testing.T) {
	app, db := setupTest(t)
	course := seedCourse(t, db, "Go Basics", 13000)

	items := fmt.Sprintf(`[{"course_id":%d},{"course_id":%d}]`, course.ID, course.ID)
	resp := submitOrder(t, app, studentToken(t, "stu-1"), items, "")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var order models.Order
	require.NoError(t, db.Preload("Items").First(&order).Error)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, int64(13000), order.Subtotal)
}

func TestSubmitOrderIdentityIdempotent(t *testing.T) {
	app, db := setupTest(t)
	course := seedCourse(t, db, "Go Basics", 13000)

	items := fmt.Sprintf(`[{"course_id":%d}]`, course.ID)
	resp := submitOrder(t, app, studentToken(t, "stu-1"), items, "")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp = submitOrder(t, app, studentToken(t, "stu-1"), items, "")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var users int64
	db.Model(&models.User{}).Where("identity_token = ?", "stu-1").Count(&users)
	assert.Equal(t, int64(1), users)

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.Equal(t, int64(2), orders)
}

func TestSubmitOrderUnknownCoupon(t *testing.T) {
	app, db := setupTest(t)
	course := seedCourse(t, db, "Go Basics", 13000)

	resp := submitOrder(t, app, studentToken(t, "stu-1"), fmt.Sprintf(`[{"course_id":%d}]`, course.ID), "NOPE")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.Equal(t, int64(0), orders)
}

func transition(t *testing.T, app *fiber.App, token string, orderID uint, status string) *http.Response {
	payload, _ := json.Marshal(map[string]string{"status": status})
	req := httptest.NewRequest("PUT", fmt.Sprintf("/admin/orders/%d/status", orderID), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func seedPendingOrder(t *testing.T, db *gorm.DB, courseID uint) (*models.Order, *models.User) {
	student := &models.User{IdentityToken: "stu-seed", Name: "Student", Email: "stu@example.com", Role: models.RoleStudent}
	require.NoError(t, db.Create(student).Error)

	order := &models.Order{OrderNumber: "seed-order", UserID: student.ID, Subtotal: 13000, Total: 13000, Status: models.OrderStatusPending}
	require.NoError(t, db.Create(order).Error)
	require.NoError(t, db.Create(&models.OrderItem{OrderID: order.ID, CourseID: courseID, Quantity: 1}).Error)
	return order, student
}

func TestApproveRevokeIdempotentAudit(t *testing.T) {
	app, db := setupTest(t)
	course := seedCourse(t, db, "Go Basics", 13000)
	order, student := seedPendingOrder(t, db, course.ID)
	token, _ := adminToken(t, db)

	// Pending -> Approved
	resp := transition(t, app, token, order.ID, models.OrderStatusApproved)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, entitlement.Active, entitlement.Resolve(db, student.ID, course.ID))

	// Duplicate click: no-op success, no audit row
	resp = transition(t, app, token, order.ID, models.OrderStatusApproved)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var audits int64
	db.Model(&models.OrderStatusAudit{}).Where("order_id = ?", order.ID).Count(&audits)
	assert.Equal(t, int64(1), audits)

	// Revoke
	resp = transition(t, app, token, order.ID, models.OrderStatusPending)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, entitlement.Pending, entitlement.Resolve(db, student.ID, course.ID))

	// Approve again: replay always ends active with one row per real transition
	resp = transition(t, app, token, order.ID, models.OrderStatusApproved)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, entitlement.Active, entitlement.Resolve(db, student.ID, course.ID))

	db.Model(&models.OrderStatusAudit{}).Where("order_id = ?", order.ID).Count(&audits)
	assert.Equal(t, int64(3), audits)
}

func TestRejectedIsTerminal(t *testing.T) {
	app, db := setupTest(t)
	course := seedCourse(t, db, "Go Basics", 13000)
	order, student := seedPendingOrder(t, db, course.ID)
	token, _ := adminToken(t, db)

	resp := transition(t, app, token, order.ID, models.OrderStatusRejected)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, entitlement.None, entitlement.Resolve(db, student.ID, course.ID))

	resp = transition(t, app, token, order.ID, models.OrderStatusApproved)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	env := decode(t, resp)
	assert.Equal(t, "CONFLICT", env.Data["code"])
}

func TestApprovedCannotBeRejectedDirectly(t *testing.T) {
	app, db := setupTest(t)
	course := seedCourse(t, db, "Go Basics", 13000)
	order, _ := seedPendingOrder(t, db, course.ID)
	token, _ := adminToken(t, db)

	resp := transition(t, app, token, order.ID, models.OrderStatusApproved)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = transition(t, app, token, order.ID, models.OrderStatusRejected)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestStudentCannotTransition(t *testing.T) {
	app, db := setupTest(t)
	course := seedCourse(t, db, "Go Basics", 13000)
	order, _ := seedPendingOrder(t, db, course.ID)

	resp := transition(t, app, studentToken(t, "stu-other"), order.ID, models.OrderStatusApproved)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestDeletedOrderDropsEntitlement(t *testing.T) {
	app, db := setupTest(t)
	course := seedCourse(t, db, "Go Basics", 13000)
	order, student := seedPendingOrder(t, db, course.ID)
	token, _ := adminToken(t, db)

	resp := transition(t, app, token, order.ID, models.OrderStatusApproved)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/admin/orders/%d", order.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, entitlement.None, entitlement.Resolve(db, student.ID, course.ID))
}

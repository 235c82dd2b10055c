package courseController

import (
	"coursestore/database"
	"coursestore/entitlement"
	"coursestore/middleware"
	"coursestore/models"
	courseModels "coursestore/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetStudentCourses lists every course a student has ordered with the
// resolved entitlement and progress percentage. Students can only read
// their own list; admins can read anyone's.
func GetStudentCourses(c *fiber.Ctx) error {
	user, authed := middleware.CurrentUser(c)
	if !authed {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	targetUserID := c.Locals("targetUserID").(int)

	role, _ := c.Locals("role").(string)
	if role != models.RoleAdmin {
		if user == nil || user.ID != uint(targetUserID) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only view your own courses!", fiber.Map{"code": "ACCESS_DENIED"})
		}
	}

	db := database.Database.Db

	var student models.User
	if err := db.Where("id = ? AND is_deleted = ?", targetUserID, false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", fiber.Map{"code": "NOT_FOUND"})
	}

	// Distinct courses across the student's live orders
	var items []models.OrderItem
	db.Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND orders.is_deleted = ?", targetUserID, false).
		Order("order_items.created_at asc").
		Find(&items)

	type CourseEntry struct {
		CourseID        uint              `json:"course_id"`
		Title           string            `json:"title"`
		Entitlement     entitlement.Level `json:"entitlement"`
		ProgressPercent int               `json:"progress_percent"`
	}

	seen := make(map[uint]bool)
	result := make([]CourseEntry, 0, len(items))
	for _, item := range items {
		if seen[item.CourseID] {
			continue
		}
		seen[item.CourseID] = true

		var course courseModels.Course
		if err := db.Where("id = ? AND is_deleted = ?", item.CourseID, false).First(&course).Error; err != nil {
			continue
		}

		result = append(result, CourseEntry{
			CourseID:        course.ID,
			Title:           course.Title,
			Entitlement:     entitlement.Resolve(db, uint(targetUserID), course.ID),
			ProgressPercent: ProgressPercent(db, uint(targetUserID), course.ID),
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": result,
		"total":   len(result),
	})
}

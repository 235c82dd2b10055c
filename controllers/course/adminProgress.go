package courseController

import (
	"coursestore/database"
	"coursestore/middleware"
	"coursestore/models"
	courseModels "coursestore/models/course"

	"github.com/gofiber/fiber/v2"
)

// AdminResetProgress clears a student's completion set for a course.
// Badges earned before the reset are kept; re-crossing a threshold
// afterwards does not award a second badge.
func AdminResetProgress(c *fiber.Ctx) error {
	targetUserID := c.Locals("targetUserID").(int)
	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var student models.User
	if err := db.Where("id = ? AND is_deleted = ?", targetUserID, false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", fiber.Map{"code": "NOT_FOUND"})
	}

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", fiber.Map{"code": "NOT_FOUND"})
	}

	result := db.Model(&courseModels.LectureCompletion{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", targetUserID, courseID, false).
		Update("is_deleted", true)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress reset successfully!", fiber.Map{
		"userId":   targetUserID,
		"courseId": courseID,
		"cleared":  result.RowsAffected,
	})
}

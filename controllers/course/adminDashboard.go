package courseController

import (
	"coursestore/config"
	"coursestore/database"
	"coursestore/middleware"
	"coursestore/models"
	courseModels "coursestore/models/course"

	"github.com/gofiber/fiber/v2"
)

// AdminDashboardStats returns back-office counters. The response carries
// the configured poll interval so dashboards refresh at the server's
// cadence.
func AdminDashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var pendingOrders int64
	db.Model(&models.Order{}).Where("status = ? AND is_deleted = ?", models.OrderStatusPending, false).Count(&pendingOrders)

	var approvedOrders int64
	db.Model(&models.Order{}).Where("status = ? AND is_deleted = ?", models.OrderStatusApproved, false).Count(&approvedOrders)

	var revenue int64
	db.Model(&models.Order{}).Where("status = ? AND is_deleted = ?", models.OrderStatusApproved, false).
		Select("COALESCE(SUM(total), 0)").Scan(&revenue)

	var studentCount int64
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RoleStudent, false).Count(&studentCount)

	var publishedCourses int64
	db.Model(&courseModels.Course{}).Where("is_published = ? AND is_deleted = ?", true, false).Count(&publishedCourses)

	var badgesAwarded int64
	db.Model(&courseModels.Badge{}).Count(&badgesAwarded)

	// Per-course approved enrollments
	type CourseStat struct {
		CourseID  uint   `json:"course_id"`
		Title     string `json:"title"`
		Approved  int64  `json:"approved_orders"`
		Completed int64  `json:"completions"`
	}

	var courses []courseModels.Course
	db.Where("is_deleted = ?", false).Order("created_at desc").Find(&courses)

	courseStats := make([]CourseStat, len(courses))
	for i, course := range courses {
		var approved int64
		db.Model(&models.Order{}).
			Joins("JOIN order_items ON order_items.order_id = orders.id").
			Where("order_items.course_id = ? AND orders.status = ? AND orders.is_deleted = ?", course.ID, models.OrderStatusApproved, false).
			Count(&approved)

		var completions int64
		db.Model(&courseModels.LectureCompletion{}).
			Where("course_id = ? AND is_deleted = ?", course.ID, false).
			Count(&completions)

		courseStats[i] = CourseStat{
			CourseID:  course.ID,
			Title:     course.Title,
			Approved:  approved,
			Completed: completions,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"pending_orders":      pendingOrders,
		"approved_orders":     approvedOrders,
		"revenue":             revenue,
		"students":            studentCount,
		"published_courses":   publishedCourses,
		"badges_awarded":      badgesAwarded,
		"courses":             courseStats,
		"pollIntervalSeconds": config.AppConfig.PollIntervalSec,
	})
}

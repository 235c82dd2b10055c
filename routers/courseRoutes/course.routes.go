package courseRoutes

import (
	controllers "coursestore/controllers/course"
	"coursestore/middleware"
	validators "coursestore/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all student-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses")

	// Catalog
	courseGroup.Get("/", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)

	// Curriculum, gated by entitlement
	courseGroup.Get("/:id/curriculum", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCurriculum)

	// Progress
	courseGroup.Post("/:id/lectures/:lecture_id/complete", middleware.JWTMiddleware, validators.MarkLectureComplete(), controllers.MarkLectureComplete)
	courseGroup.Get("/:id/progress", middleware.JWTMiddleware, validators.CourseID(), controllers.GetProgress)

	// Student course list with entitlement and progress
	studentGroup := app.Group("/students")
	studentGroup.Get("/:id/courses", middleware.JWTMiddleware, validators.StudentCourses(), controllers.GetStudentCourses)
}

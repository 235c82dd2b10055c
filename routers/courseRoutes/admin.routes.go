package courseRoutes

import (
	controllers "coursestore/controllers/course"
	"coursestore/middleware"
	validators "coursestore/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/courses")

	// Course CRUD
	adminGroup.Post("/", middleware.JWTMiddleware, middleware.AdminMiddleware, validators.CreateCourseAdmin(), controllers.AdminCreateCourse)
	adminGroup.Put("/:id", middleware.JWTMiddleware, middleware.AdminMiddleware, validators.UpdateCourseAdmin(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/:id", middleware.JWTMiddleware, middleware.AdminMiddleware, validators.CourseID(), controllers.AdminDeleteCourse)
	adminGroup.Post("/:id/publish", middleware.JWTMiddleware, middleware.AdminMiddleware, validators.CourseID(), controllers.AdminPublishCourse)

	// Curriculum whole-document management
	adminGroup.Get("/:id/curriculum", middleware.JWTMiddleware, middleware.AdminMiddleware, validators.CourseID(), controllers.AdminGetCurriculum)
	adminGroup.Put("/:id/curriculum", middleware.JWTMiddleware, middleware.AdminMiddleware, validators.ReplaceCurriculum(), controllers.ReplaceCurriculum)
	adminGroup.Get("/:id/students", middleware.JWTMiddleware, middleware.AdminMiddleware, validators.CourseID(), controllers.AdminGetEnrolledStudents)

	// Section quiz and structural deletes
	sectionGroup := app.Group("/admin/sections")
	sectionGroup.Put("/:section_id/quiz", middleware.JWTMiddleware, middleware.AdminMiddleware, validators.SetQuiz(), controllers.SetQuiz)
	sectionGroup.Delete("/:section_id", middleware.JWTMiddleware, middleware.AdminMiddleware, validators.SectionID(), controllers.AdminDeleteSection)

	lectureGroup := app.Group("/admin/lectures")
	lectureGroup.Delete("/:lecture_id", middleware.JWTMiddleware, middleware.AdminMiddleware, validators.LectureID(), controllers.AdminDeleteLecture)

	// Progress reset
	studentGroup := app.Group("/admin/students")
	studentGroup.Post("/:user_id/courses/:course_id/progress/reset", middleware.JWTMiddleware, middleware.AdminMiddleware, validators.ResetProgress(), controllers.AdminResetProgress)

	// Dashboard
	dashGroup := app.Group("/admin/dashboard")
	dashGroup.Get("/stats", middleware.JWTMiddleware, middleware.AdminMiddleware, controllers.AdminDashboardStats)
}

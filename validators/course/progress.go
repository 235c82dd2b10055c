package courseValidator

import (
	"coursestore/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// MarkLectureComplete validates the completion path parameters.
func MarkLectureComplete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, err := strconv.Atoi(strings.TrimSpace(c.Params("id")))
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		lectureID, err := strconv.Atoi(strings.TrimSpace(c.Params("lecture_id")))
		if err != nil || lectureID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lecture ID!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("lectureID", lectureID)
		return c.Next()
	}
}

// ResetProgress validates the admin reset path parameters.
func ResetProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := strconv.Atoi(strings.TrimSpace(c.Params("user_id")))
		if err != nil || userID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		}

		courseID, err := strconv.Atoi(strings.TrimSpace(c.Params("course_id")))
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("targetUserID", userID)
		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// StudentCourses validates the student id path parameter.
func StudentCourses() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := strconv.Atoi(strings.TrimSpace(c.Params("id")))
		if err != nil || userID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Student ID!", nil)
		}

		c.Locals("targetUserID", userID)
		return c.Next()
	}
}

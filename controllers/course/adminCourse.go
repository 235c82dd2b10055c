package courseController

import (
	"coursestore/database"
	"coursestore/middleware"
	"coursestore/models"
	courseModels "coursestore/models/course"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateCourse creates a new unpublished course.
func AdminCreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		Author       string `json:"author"`
		Price        int64  `json:"price"`
		ThumbnailURL string `json:"thumbnail_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := courseModels.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		Author:       reqData.Author,
		Price:        reqData.Price,
		ThumbnailURL: reqData.ThumbnailURL,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// AdminUpdateCourse updates catalog fields of a course.
func AdminUpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title        *string `json:"title"`
		Description  *string `json:"description"`
		Author       *string `json:"author"`
		Price        *int64  `json:"price"`
		ThumbnailURL *string `json:"thumbnail_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", fiber.Map{"code": "NOT_FOUND"})
	}

	if reqData.Title != nil {
		course.Title = *reqData.Title
	}
	if reqData.Description != nil {
		course.Description = *reqData.Description
	}
	if reqData.Author != nil {
		course.Author = *reqData.Author
	}
	if reqData.Price != nil {
		course.Price = *reqData.Price
	}
	if reqData.ThumbnailURL != nil {
		course.ThumbnailURL = *reqData.ThumbnailURL
	}

	if err := db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// AdminPublishCourse makes a course visible in the catalog.
func AdminPublishCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", fiber.Map{"code": "NOT_FOUND"})
	}

	course.IsPublished = true
	if err := db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", course)
}

// AdminDeleteCourse soft-deletes a course.
func AdminDeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", fiber.Map{"code": "NOT_FOUND"})
	}

	course.IsDeleted = true
	course.IsPublished = false
	if err := db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// AdminGetCurriculum returns the full curriculum document including
// video references and correct quiz answers.
func AdminGetCurriculum(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", fiber.Map{"code": "NOT_FOUND"})
	}

	var sections []courseModels.Section
	db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&sections)

	tree := courseModels.CurriculumTree{Sections: make([]courseModels.SectionNode, len(sections))}
	for i, section := range sections {
		node := courseModels.SectionNode{ID: section.ID, Title: section.Title}

		var lectures []courseModels.Lecture
		db.Where("section_id = ? AND is_deleted = ?", section.ID, false).Order("order_index asc").Find(&lectures)

		node.Lectures = make([]courseModels.LectureNode, len(lectures))
		for j, lecture := range lectures {
			var resources []string
			if len(lecture.Resources) > 0 {
				_ = json.Unmarshal(lecture.Resources, &resources)
			}
			node.Lectures[j] = courseModels.LectureNode{
				ID:            lecture.ID,
				Title:         lecture.Title,
				Description:   lecture.Description,
				VideoURL:      lecture.VideoURL,
				Resources:     resources,
				DurationLabel: lecture.DurationLabel,
			}
		}

		var questions []courseModels.Question
		db.Where("section_id = ? AND is_deleted = ?", section.ID, false).Order("order_index asc").Find(&questions)
		for _, q := range questions {
			var options []string
			_ = json.Unmarshal(q.Options, &options)
			correct := q.CorrectOption
			node.Quiz = append(node.Quiz, courseModels.QuestionNode{
				ID:            q.ID,
				Text:          q.Text,
				Options:       options,
				CorrectOption: &correct,
			})
		}

		tree.Sections[i] = node
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Curriculum fetched successfully!", fiber.Map{
		"course":     course,
		"curriculum": tree,
	})
}

// AdminGetEnrolledStudents lists students holding an approved order for
// a course, with their progress.
func AdminGetEnrolledStudents(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", fiber.Map{"code": "NOT_FOUND"})
	}

	var orders []models.Order
	db.Joins("JOIN order_items ON order_items.order_id = orders.id").
		Where("order_items.course_id = ? AND orders.status = ? AND orders.is_deleted = ?", courseID, models.OrderStatusApproved, false).
		Find(&orders)

	type StudentProgress struct {
		UserID   uint   `json:"user_id"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		Percent  int    `json:"percent"`
		OrderID  uint   `json:"order_id"`
		Approved bool   `json:"approved"`
	}

	seen := make(map[uint]bool)
	result := make([]StudentProgress, 0, len(orders))
	for _, order := range orders {
		if seen[order.UserID] {
			continue
		}
		seen[order.UserID] = true

		var student models.User
		if err := db.Where("id = ?", order.UserID).First(&student).Error; err != nil {
			continue
		}

		result = append(result, StudentProgress{
			UserID:   student.ID,
			Name:     student.Name,
			Email:    student.Email,
			Percent:  ProgressPercent(db, student.ID, uint(courseID)),
			OrderID:  order.ID,
			Approved: true,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled students fetched successfully!", fiber.Map{
		"students": result,
		"total":    len(result),
	})
}

package courseController

import (
	"coursestore/database"
	"coursestore/entitlement"
	"coursestore/middleware"
	courseModels "coursestore/models/course"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetAllCourses lists the published catalog.
func GetAllCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourseList").(*struct {
		Page  *int `query:"page"`
		Limit *int `query:"limit"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	page := *reqData.Page
	limit := *reqData.Limit
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).Where("is_deleted = ? AND is_published = ?", false, true)

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// GetCurriculum returns the course's curriculum tree filtered by the
// caller's entitlement: locked viewers get structure metadata only,
// pending orders unlock the preview, approved orders unlock playable
// content. Correct quiz answers are never included for students.
func GetCurriculum(c *fiber.Ctx) error {
	user, authed := middleware.CurrentUser(c)
	if !authed {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", fiber.Map{"code": "NOT_FOUND"})
	}

	level := entitlement.None
	var userID uint
	if user != nil {
		userID = user.ID
		level = entitlement.Resolve(db, user.ID, uint(courseID))
	}

	tree := buildStudentTree(db, uint(courseID), level, userID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Curriculum fetched successfully!", fiber.Map{
		"course": fiber.Map{
			"id":            course.ID,
			"title":         course.Title,
			"author":        course.Author,
			"thumbnail_url": course.ThumbnailURL,
		},
		"entitlement": level,
		"curriculum":  tree,
	})
}

// buildStudentTree assembles the curriculum document for a student at
// the given access level.
func buildStudentTree(db *gorm.DB, courseID uint, level entitlement.Level, userID uint) courseModels.CurriculumTree {
	var sections []courseModels.Section
	db.Where("course_id = ? AND is_deleted = ?", courseID, false).Order("order_index asc").Find(&sections)

	completed := make(map[uint]bool)
	if level == entitlement.Active && userID > 0 {
		var completions []courseModels.LectureCompletion
		db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).Find(&completions)
		for _, cc := range completions {
			completed[cc.LectureID] = true
		}
	}

	tree := courseModels.CurriculumTree{Sections: make([]courseModels.SectionNode, len(sections))}
	for i, section := range sections {
		node := courseModels.SectionNode{
			ID:    section.ID,
			Title: section.Title,
		}

		var lectures []courseModels.Lecture
		db.Where("section_id = ? AND is_deleted = ?", section.ID, false).Order("order_index asc").Find(&lectures)

		node.Lectures = make([]courseModels.LectureNode, len(lectures))
		for j, lecture := range lectures {
			ln := courseModels.LectureNode{
				ID:            lecture.ID,
				Title:         lecture.Title,
				DurationLabel: lecture.DurationLabel,
			}

			// Locked viewers get metadata only
			if level == entitlement.Pending || level == entitlement.Active {
				ln.Description = lecture.Description
			}

			// Playable content requires an approved order
			if level == entitlement.Active {
				ln.VideoURL = lecture.VideoURL
				if len(lecture.Resources) > 0 {
					var resources []string
					if err := json.Unmarshal(lecture.Resources, &resources); err == nil {
						ln.Resources = resources
					}
				}
				ln.IsCompleted = completed[lecture.ID]
			}

			node.Lectures[j] = ln
		}

		if level == entitlement.Active {
			var questions []courseModels.Question
			db.Where("section_id = ? AND is_deleted = ?", section.ID, false).Order("order_index asc").Find(&questions)
			for _, q := range questions {
				var options []string
				_ = json.Unmarshal(q.Options, &options)
				// CorrectOption stays server-side for students
				node.Quiz = append(node.Quiz, courseModels.QuestionNode{
					ID:      q.ID,
					Text:    q.Text,
					Options: options,
				})
			}
		}

		tree.Sections[i] = node
	}

	return tree
}

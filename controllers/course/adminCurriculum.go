package courseController

import (
	"coursestore/database"
	"coursestore/middleware"
	courseModels "coursestore/models/course"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// ReplaceCurriculum applies a whole-document curriculum edit. Nodes with
// id 0 are created; every existing section/lecture id must appear exactly
// once and unknown ids are rejected, since a divergent id set means the
// client edited stale state. Ordering is taken from array positions.
// Concurrent admin edits are last-write-wins on the full document.
func ReplaceCurriculum(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	tree := c.Locals("validatedTree").(*courseModels.CurriculumTree)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", fiber.Map{"code": "NOT_FOUND"})
	}

	// Load the server-side id sets
	var existingSections []courseModels.Section
	db.Where("course_id = ? AND is_deleted = ?", courseID, false).Find(&existingSections)
	sectionIDs := make(map[uint]bool, len(existingSections))
	for _, s := range existingSections {
		sectionIDs[s.ID] = false // false = not yet seen in the payload
	}

	var existingLectures []courseModels.Lecture
	db.Where("course_id = ? AND is_deleted = ?", courseID, false).Find(&existingLectures)
	lectureIDs := make(map[uint]bool, len(existingLectures))
	for _, l := range existingLectures {
		lectureIDs[l.ID] = false
	}

	// Validate the payload id sets against the stored ones
	for _, section := range tree.Sections {
		if section.ID != 0 {
			seen, known := sectionIDs[section.ID]
			if !known || seen {
				return middleware.JsonResponse(c, fiber.StatusConflict, false, "Curriculum does not match server state!", fiber.Map{"code": "STRUCTURAL_MISMATCH"})
			}
			sectionIDs[section.ID] = true
		}
		for _, lecture := range section.Lectures {
			if lecture.ID != 0 {
				seen, known := lectureIDs[lecture.ID]
				if !known || seen {
					return middleware.JsonResponse(c, fiber.StatusConflict, false, "Curriculum does not match server state!", fiber.Map{"code": "STRUCTURAL_MISMATCH"})
				}
				lectureIDs[lecture.ID] = true
			}
		}
	}
	for _, seen := range sectionIDs {
		if !seen {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Curriculum does not match server state!", fiber.Map{"code": "STRUCTURAL_MISMATCH"})
		}
	}
	for _, seen := range lectureIDs {
		if !seen {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Curriculum does not match server state!", fiber.Map{"code": "STRUCTURAL_MISMATCH"})
		}
	}

	tx := db.Begin()

	for sectionIndex, sectionNode := range tree.Sections {
		var section courseModels.Section
		if sectionNode.ID == 0 {
			section = courseModels.Section{
				CourseID:   uint(courseID),
				Title:      sectionNode.Title,
				OrderIndex: sectionIndex,
			}
			if err := tx.Create(&section).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update curriculum!", nil)
			}
		} else {
			if err := tx.Where("id = ?", sectionNode.ID).First(&section).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update curriculum!", nil)
			}
			section.Title = sectionNode.Title
			section.OrderIndex = sectionIndex
			if err := tx.Save(&section).Error; err != nil {
				tx.Rollback()
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update curriculum!", nil)
			}
		}

		for lectureIndex, lectureNode := range sectionNode.Lectures {
			resources := datatypes.JSON(nil)
			if len(lectureNode.Resources) > 0 {
				if raw, err := json.Marshal(lectureNode.Resources); err == nil {
					resources = raw
				}
			}

			if lectureNode.ID == 0 {
				lecture := courseModels.Lecture{
					SectionID:     section.ID,
					CourseID:      uint(courseID),
					Title:         lectureNode.Title,
					Description:   lectureNode.Description,
					VideoURL:      lectureNode.VideoURL,
					Resources:     resources,
					DurationLabel: lectureNode.DurationLabel,
					OrderIndex:    lectureIndex,
				}
				if err := tx.Create(&lecture).Error; err != nil {
					tx.Rollback()
					return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update curriculum!", nil)
				}
			} else {
				var lecture courseModels.Lecture
				if err := tx.Where("id = ?", lectureNode.ID).First(&lecture).Error; err != nil {
					tx.Rollback()
					return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update curriculum!", nil)
				}
				lecture.SectionID = section.ID
				lecture.Title = lectureNode.Title
				lecture.Description = lectureNode.Description
				lecture.VideoURL = lectureNode.VideoURL
				lecture.Resources = resources
				lecture.DurationLabel = lectureNode.DurationLabel
				lecture.OrderIndex = lectureIndex
				if err := tx.Save(&lecture).Error; err != nil {
					tx.Rollback()
					return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update curriculum!", nil)
				}
			}
		}
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Curriculum updated successfully!", fiber.Map{
		"courseId": course.ID,
	})
}

// SetQuiz replaces a section's question list. Existing questions are
// soft-deleted and the new list written in order.
func SetQuiz(c *fiber.Ctx) error {
	sectionID := c.Locals("sectionID").(int)
	questions := c.Locals("validatedQuestions").([]courseModels.QuestionNode)

	db := database.Database.Db

	var section courseModels.Section
	if err := db.Where("id = ? AND is_deleted = ?", sectionID, false).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", fiber.Map{"code": "NOT_FOUND"})
	}

	tx := db.Begin()

	if err := tx.Model(&courseModels.Question{}).Where("section_id = ? AND is_deleted = ?", sectionID, false).
		Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update quiz!", nil)
	}

	for i, node := range questions {
		options, err := json.Marshal(node.Options)
		if err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz options!", nil)
		}

		question := courseModels.Question{
			SectionID:     uint(sectionID),
			Text:          node.Text,
			Options:       options,
			CorrectOption: *node.CorrectOption,
			OrderIndex:    i,
		}
		if err := tx.Create(&question).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update quiz!", nil)
		}
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz updated successfully!", fiber.Map{
		"sectionId": section.ID,
		"questions": len(questions),
	})
}

// AdminDeleteSection soft-deletes a section and its lectures. Removal is
// deliberately not expressible through the replace operation.
func AdminDeleteSection(c *fiber.Ctx) error {
	sectionID := c.Locals("sectionID").(int)

	db := database.Database.Db

	var section courseModels.Section
	if err := db.Where("id = ? AND is_deleted = ?", sectionID, false).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", fiber.Map{"code": "NOT_FOUND"})
	}

	tx := db.Begin()

	section.IsDeleted = true
	if err := tx.Save(&section).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete section!", nil)
	}

	if err := tx.Model(&courseModels.Lecture{}).Where("section_id = ? AND is_deleted = ?", sectionID, false).
		Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete section!", nil)
	}

	if err := tx.Model(&courseModels.Question{}).Where("section_id = ? AND is_deleted = ?", sectionID, false).
		Update("is_deleted", true).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete section!", nil)
	}

	tx.Commit()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section deleted successfully!", nil)
}

// AdminDeleteLecture soft-deletes a single lecture.
func AdminDeleteLecture(c *fiber.Ctx) error {
	lectureID := c.Locals("lectureID").(int)

	db := database.Database.Db

	var lecture courseModels.Lecture
	if err := db.Where("id = ? AND is_deleted = ?", lectureID, false).First(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", fiber.Map{"code": "NOT_FOUND"})
	}

	lecture.IsDeleted = true
	if err := db.Save(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lecture!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture deleted successfully!", nil)
}

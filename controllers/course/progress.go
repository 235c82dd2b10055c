package courseController

import (
	"coursestore/database"
	"coursestore/entitlement"
	"coursestore/middleware"
	courseModels "coursestore/models/course"
	"coursestore/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ProgressPercent computes a student's completion percentage for a
// course, rounded down. Soft-deleted completions (admin resets) do not
// count, and neither do completions of lectures an admin has since
// removed, so the percent stays within 0..100 after structural deletes.
func ProgressPercent(db *gorm.DB, userID, courseID uint) int {
	var totalLectures int64
	db.Model(&courseModels.Lecture{}).Where("course_id = ? AND is_deleted = ?", courseID, false).Count(&totalLectures)
	if totalLectures == 0 {
		return 0
	}

	var completed int64
	db.Model(&courseModels.LectureCompletion{}).
		Joins("JOIN lectures ON lectures.id = lecture_completions.lecture_id AND lectures.is_deleted = ?", false).
		Where("lecture_completions.user_id = ? AND lecture_completions.course_id = ? AND lecture_completions.is_deleted = ?", userID, courseID, false).
		Count(&completed)

	return int(completed * 100 / totalLectures)
}

// MarkLectureComplete records a lecture completion for an actively
// entitled student. Repeats are no-op successes. Each milestone
// threshold newly crossed awards at most one badge per (student, course,
// threshold), ever.
func MarkLectureComplete(c *fiber.Ctx) error {
	user, authed := middleware.CurrentUser(c)
	if !authed {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lectureID := c.Locals("lectureID").(int)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", fiber.Map{"code": "NOT_FOUND"})
	}

	if user == nil || entitlement.Resolve(db, user.ID, uint(courseID)) != entitlement.Active {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Course access requires an approved order!", fiber.Map{"code": "ACCESS_DENIED"})
	}

	var lecture courseModels.Lecture
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", lectureID, courseID, false).First(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", fiber.Map{"code": "NOT_FOUND"})
	}

	percentBefore := ProgressPercent(db, user.ID, uint(courseID))

	// Idempotent: a live completion leaves progress untouched. A row
	// soft-deleted by an admin reset is revived rather than duplicated,
	// keeping one row per (user, lecture) under the unique index.
	var existing courseModels.LectureCompletion
	err := db.Where("user_id = ? AND lecture_id = ?", user.ID, lectureID).First(&existing).Error
	alreadyDone := err == nil && !existing.IsDeleted

	switch {
	case err != nil:
		completion := courseModels.LectureCompletion{
			UserID:    user.ID,
			CourseID:  uint(courseID),
			LectureID: uint(lectureID),
			Status:    "COMPLETED",
		}

		tx := db.Begin()
		if cErr := tx.Create(&completion).Error; cErr != nil {
			tx.Rollback()
			// A concurrent request may have won the insert race on the
			// unique index; then the completion already exists.
			if db.Where("user_id = ? AND lecture_id = ?", user.ID, lectureID).First(&existing).Error != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark lecture as completed!", nil)
			}
			alreadyDone = true
		} else {
			tx.Commit()
		}
	case existing.IsDeleted:
		existing.IsDeleted = false
		existing.Status = "COMPLETED"
		if err := db.Save(&existing).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark lecture as completed!", nil)
		}
	}

	percentAfter := ProgressPercent(db, user.ID, uint(courseID))

	awarded := awardBadges(db, user.ID, uint(courseID), percentBefore, percentAfter)
	for _, threshold := range awarded {
		go utils.SendBadgeEmail(user.Email, user.Name, course.Title, threshold)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture marked as completed!", fiber.Map{
		"lectureId":     lectureID,
		"percent":       percentAfter,
		"newBadges":     awarded,
		"alreadyDone":   alreadyDone,
		"courseId":      courseID,
		"percentBefore": percentBefore,
	})
}

// awardBadges creates badge rows for thresholds crossed between the two
// percentages. The existence check keeps awards idempotent across resets
// and re-completions; the unique (user, course, threshold) index backs
// it under concurrency, with the failed insert skipped.
func awardBadges(db *gorm.DB, userID, courseID uint, percentBefore, percentAfter int) []int {
	var awarded []int
	for _, threshold := range courseModels.BadgeThresholds {
		if percentBefore >= threshold || percentAfter < threshold {
			continue
		}

		var existing courseModels.Badge
		if err := db.Where("user_id = ? AND course_id = ? AND threshold = ?", userID, courseID, threshold).First(&existing).Error; err == nil {
			continue
		}

		badge := courseModels.Badge{
			UserID:    userID,
			CourseID:  courseID,
			Threshold: threshold,
			AwardedAt: time.Now(),
		}
		if err := db.Create(&badge).Error; err != nil {
			continue
		}
		awarded = append(awarded, threshold)
	}
	return awarded
}

// GetProgress returns the caller's progress and badges for a course.
func GetProgress(c *fiber.Ctx) error {
	user, authed := middleware.CurrentUser(c)
	if !authed {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", fiber.Map{"code": "NOT_FOUND"})
	}

	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
			"percent":       0,
			"completed_ids": []uint{},
			"badges":        []courseModels.Badge{},
			"entitlement":   entitlement.None,
		})
	}

	// Completions of lectures removed since are not reported
	var completions []courseModels.LectureCompletion
	db.Joins("JOIN lectures ON lectures.id = lecture_completions.lecture_id AND lectures.is_deleted = ?", false).
		Where("lecture_completions.user_id = ? AND lecture_completions.course_id = ? AND lecture_completions.is_deleted = ?", user.ID, courseID, false).
		Find(&completions)

	completedIDs := make([]uint, len(completions))
	for i, cc := range completions {
		completedIDs[i] = cc.LectureID
	}

	var badges []courseModels.Badge
	db.Where("user_id = ? AND course_id = ?", user.ID, courseID).Order("threshold asc").Find(&badges)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"percent":       ProgressPercent(db, user.ID, uint(courseID)),
		"completed_ids": completedIDs,
		"badges":        badges,
		"entitlement":   entitlement.Resolve(db, user.ID, uint(courseID)),
	})
}

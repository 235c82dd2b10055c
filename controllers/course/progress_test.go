package courseController_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	courseController "coursestore/controllers/course"
	"coursestore/models"
	courseModels "coursestore/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedCourseWithLectures builds a published course with one section and
// n lectures.
func seedCourseWithLectures(t *testing.T, db *gorm.DB, n int) (*courseModels.Course, []courseModels.Lecture) {
	course := &courseModels.Course{Title: "Go In Depth", Price: 20000, IsPublished: true}
	require.NoError(t, db.Create(course).Error)

	section := &courseModels.Section{CourseID: course.ID, Title: "Main", OrderIndex: 0}
	require.NoError(t, db.Create(section).Error)

	lectures := make([]courseModels.Lecture, n)
	for i := 0; i < n; i++ {
		lectures[i] = courseModels.Lecture{
			SectionID:     section.ID,
			CourseID:      course.ID,
			Title:         fmt.Sprintf("Lecture %d", i+1),
			DurationLabel: "10:00",
			OrderIndex:    i,
		}
		require.NoError(t, db.Create(&lectures[i]).Error)
	}
	return course, lectures
}

func markComplete(t *testing.T, app *fiber.App, token string, courseID, lectureID uint) *http.Response {
	req := httptest.NewRequest("POST", fmt.Sprintf("/courses/%d/lectures/%d/complete", courseID, lectureID), nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestMarkLectureRequiresActiveEntitlement(t *testing.T) {
	app, db := setupTest(t)
	course, lectures := seedCourseWithLectures(t, db, 4)
	student := seedStudent(t, db, "stu-1")
	seedOrderFor(t, db, student, course.ID, models.OrderStatusPending)

	resp := markComplete(t, app, tokenFor(t, "stu-1", models.RoleStudent), course.ID, lectures[0].ID)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	env := decode(t, resp)
	assert.Equal(t, "ACCESS_DENIED", env.Data["code"])
}

func TestMarkLectureProgressAndBadges(t *testing.T) {
	app, db := setupTest(t)
	course, lectures := seedCourseWithLectures(t, db, 4)
	student := seedStudent(t, db, "stu-1")
	seedOrderFor(t, db, student, course.ID, models.OrderStatusApproved)
	token := tokenFor(t, "stu-1", models.RoleStudent)

	// 1/4 complete crosses the 25% milestone
	resp := markComplete(t, app, token, course.ID, lectures[0].ID)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	env := decode(t, resp)
	assert.Equal(t, float64(25), env.Data["percent"])
	assert.Equal(t, []interface{}{float64(25)}, env.Data["newBadges"])

	// Repeating the same lecture is a no-op success
	resp = markComplete(t, app, token, course.ID, lectures[0].ID)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	env = decode(t, resp)
	assert.Equal(t, float64(25), env.Data["percent"])
	assert.Equal(t, true, env.Data["alreadyDone"])
	assert.Nil(t, env.Data["newBadges"])

	// Completing the rest walks through every remaining milestone
	for _, lecture := range lectures[1:] {
		resp = markComplete(t, app, token, course.ID, lecture.ID)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	var badges []courseModels.Badge
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", student.ID, course.ID).Order("threshold asc").Find(&badges).Error)
	require.Len(t, badges, 4)
	thresholds := make([]int, len(badges))
	for i, b := range badges {
		thresholds[i] = b.Threshold
	}
	assert.Equal(t, courseModels.BadgeThresholds, thresholds)
}

func TestProgressIgnoresCompletionsOfDeletedLectures(t *testing.T) {
	app, db := setupTest(t)
	course, lectures := seedCourseWithLectures(t, db, 2)
	student := seedStudent(t, db, "stu-1")
	seedOrderFor(t, db, student, course.ID, models.OrderStatusApproved)
	studentTok := tokenFor(t, "stu-1", models.RoleStudent)
	adminTok, _ := seedAdmin(t, db)

	resp := markComplete(t, app, studentTok, course.ID, lectures[0].ID)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	env := decode(t, resp)
	assert.Equal(t, float64(50), env.Data["percent"])

	// Removing the completed lecture drops it from the rollup entirely
	req := httptest.NewRequest("DELETE", fmt.Sprintf("/admin/lectures/%d", lectures[0].ID), nil)
	req.Header.Set("Authorization", "Bearer "+adminTok)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("GET", fmt.Sprintf("/courses/%d/progress", course.ID), nil)
	req.Header.Set("Authorization", "Bearer "+studentTok)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	env = decode(t, resp)
	assert.Equal(t, float64(0), env.Data["percent"])
	assert.Empty(t, env.Data["completed_ids"])
}

func TestProgressStaysBoundedAfterLectureDelete(t *testing.T) {
	app, db := setupTest(t)
	course, lectures := seedCourseWithLectures(t, db, 2)
	student := seedStudent(t, db, "stu-1")
	seedOrderFor(t, db, student, course.ID, models.OrderStatusApproved)
	studentTok := tokenFor(t, "stu-1", models.RoleStudent)
	adminTok, _ := seedAdmin(t, db)

	for _, lecture := range lectures {
		resp := markComplete(t, app, studentTok, course.ID, lecture.ID)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, 100, courseController.ProgressPercent(db, student.ID, course.ID))

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/admin/lectures/%d", lectures[0].ID), nil)
	req.Header.Set("Authorization", "Bearer "+adminTok)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// One live completion of one live lecture: still 100, never 200
	percent := courseController.ProgressPercent(db, student.ID, course.ID)
	assert.LessOrEqual(t, percent, 100)
	assert.Equal(t, 100, percent)
}

func TestMarkUnknownLecture(t *testing.T) {
	app, db := setupTest(t)
	course, _ := seedCourseWithLectures(t, db, 2)
	student := seedStudent(t, db, "stu-1")
	seedOrderFor(t, db, student, course.ID, models.OrderStatusApproved)

	resp := markComplete(t, app, tokenFor(t, "stu-1", models.RoleStudent), course.ID, 9999)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestResetKeepsBadges(t *testing.T) {
	app, db := setupTest(t)
	course, lectures := seedCourseWithLectures(t, db, 2)
	student := seedStudent(t, db, "stu-1")
	seedOrderFor(t, db, student, course.ID, models.OrderStatusApproved)
	studentTok := tokenFor(t, "stu-1", models.RoleStudent)
	adminTok, _ := seedAdmin(t, db)

	for _, lecture := range lectures {
		resp := markComplete(t, app, studentTok, course.ID, lecture.ID)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	var badgeCount int64
	db.Model(&courseModels.Badge{}).Where("user_id = ?", student.ID).Count(&badgeCount)
	assert.Equal(t, int64(4), badgeCount)

	// Admin reset clears completions but not badges
	req := httptest.NewRequest("POST", fmt.Sprintf("/admin/students/%d/courses/%d/progress/reset", student.ID, course.ID), nil)
	req.Header.Set("Authorization", "Bearer "+adminTok)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decode(t, resp)
	assert.Equal(t, float64(2), env.Data["cleared"])

	db.Model(&courseModels.Badge{}).Where("user_id = ?", student.ID).Count(&badgeCount)
	assert.Equal(t, int64(4), badgeCount)

	// Re-crossing a threshold after the reset awards nothing new
	resp = markComplete(t, app, studentTok, course.ID, lectures[0].ID)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	env = decode(t, resp)
	assert.Equal(t, float64(50), env.Data["percent"])
	assert.Nil(t, env.Data["newBadges"])

	db.Model(&courseModels.Badge{}).Where("user_id = ?", student.ID).Count(&badgeCount)
	assert.Equal(t, int64(4), badgeCount)

	// Re-completion revived the reset row; one row per (user, lecture)
	var completionRows int64
	db.Model(&courseModels.LectureCompletion{}).
		Where("user_id = ? AND lecture_id = ?", student.ID, lectures[0].ID).
		Count(&completionRows)
	assert.Equal(t, int64(1), completionRows)
}

func TestGetProgress(t *testing.T) {
	app, db := setupTest(t)
	course, lectures := seedCourseWithLectures(t, db, 2)
	student := seedStudent(t, db, "stu-1")
	seedOrderFor(t, db, student, course.ID, models.OrderStatusApproved)
	token := tokenFor(t, "stu-1", models.RoleStudent)

	resp := markComplete(t, app, token, course.ID, lectures[0].ID)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req := httptest.NewRequest("GET", fmt.Sprintf("/courses/%d/progress", course.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	env := decode(t, resp)
	assert.Equal(t, float64(50), env.Data["percent"])
	assert.Equal(t, "active", env.Data["entitlement"])
	assert.Equal(t, []interface{}{float64(lectures[0].ID)}, env.Data["completed_ids"])

	badges := env.Data["badges"].([]interface{})
	require.Len(t, badges, 1)
}

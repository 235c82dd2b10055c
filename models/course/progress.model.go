package course

import (
	"time"

	"gorm.io/gorm"
)

// BadgeThresholds are the milestone percentages that earn a badge.
var BadgeThresholds = []int{25, 50, 75, 100}

// LectureCompletion records that a student finished a lecture. The
// unique (user, lecture) index holds one row per pair even under
// concurrent completes; admin reset soft-deletes the row and a later
// re-completion revives it instead of inserting a duplicate.
type LectureCompletion struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_user_lecture"`
	CourseID  uint   `json:"course_id" gorm:"index;not null"`
	LectureID uint   `json:"lecture_id" gorm:"not null;uniqueIndex:idx_user_lecture"`
	Status    string `json:"status" gorm:"default:'COMPLETED'"`
	IsDeleted bool   `gorm:"default:false"`
}

// Badge is a milestone award. The unique (user, course, threshold)
// index guarantees at most one row per triple ever exists; resets do
// not retract badges and re-crossing a threshold never awards a second
// one.
type Badge struct {
	gorm.Model
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_course_threshold"`
	CourseID  uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_user_course_threshold"`
	Threshold int       `json:"threshold" gorm:"not null;uniqueIndex:idx_user_course_threshold"` // 25, 50, 75, 100
	AwardedAt time.Time `json:"awarded_at"`
}

package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lecture is a single unit of playable content within a section.
// Resources holds an array of opaque reference URLs.
type Lecture struct {
	gorm.Model
	SectionID     uint           `json:"section_id" gorm:"index;not null"`
	CourseID      uint           `json:"course_id" gorm:"index;not null"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	VideoURL      string         `json:"video_url,omitempty"`
	Resources     datatypes.JSON `json:"resources,omitempty"`
	DurationLabel string         `json:"duration_label"`
	OrderIndex    int            `json:"order_index" gorm:"default:0"`
	IsDeleted     bool           `gorm:"default:false"`
}

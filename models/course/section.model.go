package course

import "gorm.io/gorm"

// Section is an ordered group of lectures within a course. Identity is
// durable across reorders; OrderIndex is a property, not identity.
type Section struct {
	gorm.Model
	CourseID   uint   `json:"course_id" gorm:"index;not null"`
	Title      string `json:"title"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}

package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question is one quiz question attached to a section. Options is a JSON
// array of choice strings; CorrectOption indexes into it and is never
// serialized to students.
type Question struct {
	gorm.Model
	SectionID     uint           `json:"section_id" gorm:"index;not null"`
	Text          string         `json:"text"`
	Options       datatypes.JSON `json:"options"`
	CorrectOption int            `json:"correct_option"`
	OrderIndex    int            `json:"order_index" gorm:"default:0"`
	IsDeleted     bool           `gorm:"default:false"`
}

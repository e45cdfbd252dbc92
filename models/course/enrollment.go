package course

import "gorm.io/gorm"

// Enrollment grants a user access to a course's modules. Rows are created
// once and never mutated; progress is derived from module completions.
type Enrollment struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	CourseID  uint   `json:"course_id" gorm:"index;not null"`
	Course    Course `json:"course" gorm:"foreignKey:CourseID"`
	IsDeleted bool   `gorm:"default:false"`
}

package course

import (
	"time"

	"gorm.io/gorm"
)

// ModuleProgress marks a user's one-time completion of a module. A duplicate
// completion never creates a second row.
type ModuleProgress struct {
	gorm.Model
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	CourseID    uint      `json:"course_id" gorm:"index;not null"`
	ModuleID    uint      `json:"module_id" gorm:"index;not null"`
	CompletedAt time.Time `json:"completed_at"`
	IsDeleted   bool      `gorm:"default:false"`
}

package course

import "gorm.io/gorm"

// Module represents one ordered video unit within a course. OrderIndex
// defines the only traversal order and must not repeat within a course.
type Module struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoKey    string `json:"video_key"` // opaque storage path, resolved to a signed URL on playback
	OrderIndex  int    `json:"order_index" gorm:"default:0"`
	IsDeleted   bool   `gorm:"default:false"`
}

package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizQuestion is one multiple-choice question of a course's final quiz.
// Options is a JSON array of option strings; CorrectIndex points into it.
type QuizQuestion struct {
	gorm.Model
	CourseID     uint           `json:"course_id" gorm:"index;not null"`
	Text         string         `json:"text"`
	Options      datatypes.JSON `json:"options"`
	CorrectIndex int            `json:"correct_index"`
	IsDeleted    bool           `gorm:"default:false"`
}

// QuizAttempt is one scored submission of quiz answers. Every attempt is
// kept; only the latest one gates pass/fail decisions.
type QuizAttempt struct {
	gorm.Model
	UserID        uint           `json:"user_id" gorm:"index;not null"`
	CourseID      uint           `json:"course_id" gorm:"index;not null"`
	Answers       datatypes.JSON `json:"answers"` // selected option index per question, in question order
	Score         float64        `json:"score"`   // 0-100
	Passed        bool           `json:"passed" gorm:"default:false"`
	AttemptNumber int            `json:"attempt_number" gorm:"default:1"`
	CompletedAt   time.Time      `json:"completed_at"`
	IsDeleted     bool           `gorm:"default:false"`
}

package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MCQOption represents an option for a multiple choice question content
type MCQOption struct {
	gorm.Model
	ContentID  uint   `json:"content_id" gorm:"index;not null"`
	OptionText string `json:"option_text"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}

// MCQAttempt represents a student's attempt at answering an MCQ quiz
type MCQAttempt struct {
	gorm.Model
	UserID          uint           `json:"user_id" gorm:"index;not null"`
	CourseID        uint           `json:"course_id" gorm:"index;not null"`
	ContentID       uint           `json:"content_id" gorm:"index;not null"`
	SelectedOptions datatypes.JSON `json:"selected_options"` // array of selected option IDs
	Score           int            `json:"score"`
	MaxScore        int            `json:"max_score"`
	IsPassed        bool           `json:"is_passed" gorm:"default:false"`
	AttemptNumber   int            `json:"attempt_number" gorm:"default:1"`
	IsDeleted       bool           `gorm:"default:false"`
}

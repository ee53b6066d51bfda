package course

import (
	"time"

	"gorm.io/gorm"
)

// Assignment is a graded task attached to a course module
type Assignment struct {
	gorm.Model
	CourseID    uint       `json:"course_id" gorm:"index;not null"`
	ModuleID    uint       `json:"module_id" gorm:"index;not null"`
	Title       string     `json:"title"`
	Description string     `json:"description" gorm:"type:text"`
	MaxGrade    float64    `json:"max_grade" gorm:"default:100"`
	DueDate     *time.Time `json:"due_date"`
	IsPublished bool       `json:"is_published" gorm:"default:false"`
	IsDeleted   bool       `gorm:"default:false"`
}

// AssignmentSubmission tracks a student's submission and its grade.
// Grade is a percentage (0-100) once IsGraded is set.
type AssignmentSubmission struct {
	gorm.Model
	UserID       uint       `json:"user_id" gorm:"index;not null"`
	CourseID     uint       `json:"course_id" gorm:"index;not null"`
	AssignmentID uint       `json:"assignment_id" gorm:"index;not null"`
	Content      string     `json:"content" gorm:"type:text"`
	FileURL      string     `json:"file_url"`
	SubmittedAt  time.Time  `json:"submitted_at"`
	Grade        float64    `json:"grade" gorm:"default:0"`
	Feedback     string     `json:"feedback" gorm:"type:text"`
	IsGraded     bool       `json:"is_graded" gorm:"default:false"`
	GradedAt     *time.Time `json:"graded_at"`
	GradedBy     *uint      `json:"graded_by"`
	IsDeleted    bool       `gorm:"default:false"`
}

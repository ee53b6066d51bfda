package course

import (
	"time"

	"gorm.io/gorm"
)

// CourseContent represents content within a module, organized by day
type CourseContent struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	ModuleID    uint   `json:"module_id" gorm:"index;not null"`
	Day         int    `json:"day" gorm:"default:1"` // Day number within module
	Title       string `json:"title"`
	Description string `json:"description"`
	ContentType string `json:"content_type" gorm:"default:'TEXT'"` // TEXT, MCQ, VIDEO, IMAGE
	TextContent string `json:"text_content" gorm:"type:text"`
	VideoURL    string `json:"video_url"`
	ImageURL    string `json:"image_url"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}

// ContentCompletion tracks when a user finished a piece of course content.
// CompletedAt feeds the certificate completion date.
type ContentCompletion struct {
	gorm.Model
	UserID          uint      `json:"user_id" gorm:"index;not null"`
	CourseID        uint      `json:"course_id" gorm:"index;not null"`
	CourseContentID uint      `json:"course_content_id" gorm:"index;not null"`
	ModuleID        uint      `json:"module_id" gorm:"index;not null"`
	Status          string    `json:"status" gorm:"default:'COMPLETED'"`
	CompletedAt     time.Time `json:"completed_at"`
	IsDeleted       bool      `gorm:"default:false"`
}

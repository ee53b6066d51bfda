package repository

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"

	courseModels "lms/models/course"
)

// ProgressStore answers module-completion questions from the relational
// store. A module counts as completed once every published content in it
// has a completion row for the user.
type ProgressStore struct {
	db *gorm.DB
}

func NewProgressStore(db *gorm.DB) *ProgressStore {
	return &ProgressStore{db: db}
}

func (s *ProgressStore) GetModuleCompletion(ctx context.Context, userID, courseID uint) (int, int, error) {
	var modules []courseModels.Module
	if err := s.db.WithContext(ctx).
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Find(&modules).Error; err != nil {
		return 0, 0, err
	}

	completed := 0
	for _, mod := range modules {
		var totalContent int64
		var completedContent int64

		if err := s.db.WithContext(ctx).Model(&courseModels.CourseContent{}).
			Where("module_id = ? AND is_deleted = ? AND is_published = ?", mod.ID, false, true).
			Count(&totalContent).Error; err != nil {
			return 0, 0, err
		}
		if err := s.db.WithContext(ctx).Model(&courseModels.ContentCompletion{}).
			Where("user_id = ? AND module_id = ? AND is_deleted = ?", userID, mod.ID, false).
			Count(&completedContent).Error; err != nil {
			return 0, 0, err
		}

		if totalContent > 0 && completedContent >= totalContent {
			completed++
		}
	}

	return completed, len(modules), nil
}

func (s *ProgressStore) GetLastCompletionTime(ctx context.Context, userID, courseID uint) (*time.Time, error) {
	var last sql.NullTime
	err := s.db.WithContext(ctx).Model(&courseModels.ContentCompletion{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		Select("MAX(completed_at)").
		Scan(&last).Error
	if err != nil {
		return nil, err
	}
	if !last.Valid {
		return nil, nil
	}
	return &last.Time, nil
}

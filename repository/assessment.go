package repository

import (
	"context"

	"gorm.io/gorm"

	courseModels "lms/models/course"
)

// AssessmentStore answers quiz and assignment-grade questions.
type AssessmentStore struct {
	db *gorm.DB
}

func NewAssessmentStore(db *gorm.DB) *AssessmentStore {
	return &AssessmentStore{db: db}
}

func (s *AssessmentStore) GetQuizStats(ctx context.Context, userID, courseID uint) (int, int, error) {
	var attempts int64
	if err := s.db.WithContext(ctx).Model(&courseModels.MCQAttempt{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		Count(&attempts).Error; err != nil {
		return 0, 0, err
	}

	var passed int64
	if err := s.db.WithContext(ctx).Model(&courseModels.MCQAttempt{}).
		Where("user_id = ? AND course_id = ? AND is_passed = ? AND is_deleted = ?", userID, courseID, true, false).
		Count(&passed).Error; err != nil {
		return 0, 0, err
	}

	return int(attempts), int(passed), nil
}

// GetAverageAssignmentGrade averages the grade over graded submissions,
// 0 when nothing has been graded yet.
func (s *AssessmentStore) GetAverageAssignmentGrade(ctx context.Context, userID, courseID uint) (float64, error) {
	var avg float64
	err := s.db.WithContext(ctx).Model(&courseModels.AssignmentSubmission{}).
		Where("user_id = ? AND course_id = ? AND is_graded = ? AND is_deleted = ?", userID, courseID, true, false).
		Select("COALESCE(AVG(grade), 0)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	return avg, nil
}

package certificate

import "time"

// EligibilitySnapshot holds the facts needed to decide whether one learner
// qualifies for a completion certificate in one course. It is assembled
// fresh from the stores right before every decision and never persisted.
type EligibilitySnapshot struct {
	TotalModules           int
	CompletedModules       int
	QuizAttempts           int
	PassedQuizzes          int
	AverageAssignmentGrade float64    // percentage 0-100, 0 when nothing is graded
	LastModuleCompletedAt  *time.Time // nil when no completion timestamp exists
}

// Validate reports malformed counts. A failing snapshot indicates a bug in
// the caller that built it, not user error.
func (s EligibilitySnapshot) Validate() error {
	switch {
	case s.TotalModules < 0:
		return &InvalidSnapshotError{Field: "TotalModules", Reason: "must not be negative"}
	case s.CompletedModules < 0:
		return &InvalidSnapshotError{Field: "CompletedModules", Reason: "must not be negative"}
	case s.CompletedModules > s.TotalModules:
		return &InvalidSnapshotError{Field: "CompletedModules", Reason: "exceeds TotalModules"}
	case s.QuizAttempts < 0:
		return &InvalidSnapshotError{Field: "QuizAttempts", Reason: "must not be negative"}
	case s.PassedQuizzes < 0:
		return &InvalidSnapshotError{Field: "PassedQuizzes", Reason: "must not be negative"}
	case s.PassedQuizzes > s.QuizAttempts:
		return &InvalidSnapshotError{Field: "PassedQuizzes", Reason: "exceeds QuizAttempts"}
	case s.AverageAssignmentGrade < 0 || s.AverageAssignmentGrade > 100:
		return &InvalidSnapshotError{Field: "AverageAssignmentGrade", Reason: "must be within [0,100]"}
	}
	return nil
}

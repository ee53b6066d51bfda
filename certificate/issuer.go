package certificate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	courseModels "lms/models/course"
)

// ProgressStore supplies module completion facts per (user, course).
type ProgressStore interface {
	GetModuleCompletion(ctx context.Context, userID, courseID uint) (completed, total int, err error)
	// GetLastCompletionTime returns the latest module-completion timestamp,
	// or nil when no timestamp exists.
	GetLastCompletionTime(ctx context.Context, userID, courseID uint) (*time.Time, error)
}

// AssessmentStore supplies quiz and assignment facts per (user, course).
type AssessmentStore interface {
	GetQuizStats(ctx context.Context, userID, courseID uint) (attempts, passed int, err error)
	// GetAverageAssignmentGrade returns the average grade over graded
	// submissions as a percentage, 0 when nothing is graded.
	GetAverageAssignmentGrade(ctx context.Context, userID, courseID uint) (float64, error)
}

// Repository owns certificate records keyed by (user, course).
type Repository interface {
	// Find returns the certificate for the pair or ErrNotFound.
	Find(ctx context.Context, userID, courseID uint) (*courseModels.Certificate, error)
	// InsertIfAbsent atomically inserts cert unless a record for the same
	// (user, course) already exists. It returns the stored record and
	// whether this call inserted it. The atomicity must come from the
	// storage layer (unique index / conditional write), never from a
	// check-then-act in application code.
	InsertIfAbsent(ctx context.Context, cert *courseModels.Certificate) (*courseModels.Certificate, bool, error)
}

// Issuer orchestrates idempotent certificate issuance. It holds no mutable
// state of its own; all shared state lives in the Repository, so any number
// of request handlers may share one Issuer.
type Issuer struct {
	progress    ProgressStore
	assessments AssessmentStore
	certs       Repository
	baseURL     string
	now         func() time.Time
}

func NewIssuer(progress ProgressStore, assessments AssessmentStore, certs Repository, baseURL string) *Issuer {
	return &Issuer{
		progress:    progress,
		assessments: assessments,
		certs:       certs,
		baseURL:     baseURL,
		now:         time.Now,
	}
}

// Snapshot assembles a fresh EligibilitySnapshot from the stores.
func (i *Issuer) Snapshot(ctx context.Context, userID, courseID uint) (EligibilitySnapshot, error) {
	var snap EligibilitySnapshot

	completed, total, err := i.progress.GetModuleCompletion(ctx, userID, courseID)
	if err != nil {
		return snap, &StorageError{Op: "module completion", Err: err}
	}
	attempts, passed, err := i.assessments.GetQuizStats(ctx, userID, courseID)
	if err != nil {
		return snap, &StorageError{Op: "quiz stats", Err: err}
	}
	avg, err := i.assessments.GetAverageAssignmentGrade(ctx, userID, courseID)
	if err != nil {
		return snap, &StorageError{Op: "assignment grade", Err: err}
	}
	last, err := i.progress.GetLastCompletionTime(ctx, userID, courseID)
	if err != nil {
		return snap, &StorageError{Op: "last completion time", Err: err}
	}

	snap = EligibilitySnapshot{
		TotalModules:           total,
		CompletedModules:       completed,
		QuizAttempts:           attempts,
		PassedQuizzes:          passed,
		AverageAssignmentGrade: avg,
		LastModuleCompletedAt:  last,
	}
	return snap, nil
}

// Issue evaluates eligibility against current progress and creates the
// certificate at most once per (user, course). Calling it again, or
// concurrently, always yields the same stored record: the first writer
// wins and every loser reads the winner's row. The bool reports whether
// this call created the record.
func (i *Issuer) Issue(ctx context.Context, userID, courseID uint) (*courseModels.Certificate, bool, error) {
	// Never trust a snapshot computed earlier in the request; progress can
	// change between an eligibility check and the issuance click.
	snap, err := i.Snapshot(ctx, userID, courseID)
	if err != nil {
		return nil, false, err
	}

	result, err := Evaluate(snap)
	if err != nil {
		return nil, false, err
	}
	if !result.IsEligible {
		return nil, false, &NotEligibleError{Reasons: result.Reasons}
	}

	existing, err := i.certs.Find(ctx, userID, courseID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, &StorageError{Op: "find certificate", Err: err}
	}

	// Abort point: nothing has been written yet.
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	issuedAt := i.now()

	completionDate := issuedAt
	if snap.LastModuleCompletedAt != nil {
		completionDate = *snap.LastModuleCompletedAt
	} else {
		log.Printf("[CERTIFICATE] ambiguous completion date for user=%d course=%d, falling back to issuance time", userID, courseID)
	}

	code, err := GenerateVerificationCode(issuedAt)
	if err != nil {
		return nil, false, err
	}

	token := uuid.NewString()
	cert := &courseModels.Certificate{
		UserID:            userID,
		CourseID:          courseID,
		CertificateNumber: fmt.Sprintf("CERT-%s-%d-%d", issuedAt.Format("20060102"), userID, courseID),
		VerificationCode:  code,
		DownloadToken:     token,
		CertificateURL:    fmt.Sprintf("%s/certificates/%s/download", i.baseURL, token),
		IssuedAt:          issuedAt,
		CompletionDate:    completionDate,
	}

	stored, inserted, err := i.certs.InsertIfAbsent(ctx, cert)
	if err != nil {
		return nil, false, &StorageError{Op: "insert certificate", Err: err}
	}
	return stored, inserted, nil
}

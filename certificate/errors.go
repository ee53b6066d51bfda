package certificate

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Repository.Find when no certificate exists
// for the given (user, course) pair.
var ErrNotFound = errors.New("certificate not found")

// InvalidSnapshotError reports a malformed EligibilitySnapshot.
type InvalidSnapshotError struct {
	Field  string
	Reason string
}

func (e *InvalidSnapshotError) Error() string {
	return fmt.Sprintf("invalid eligibility snapshot: %s %s", e.Field, e.Reason)
}

// NotEligibleError is returned by Issue when the learner does not qualify.
// It is terminal: retrying without new progress cannot succeed.
type NotEligibleError struct {
	Reasons []string
}

func (e *NotEligibleError) Error() string {
	return "not eligible for certificate: " + strings.Join(e.Reasons, "; ")
}

// StorageError wraps a transient collaborator failure. Issuance is
// idempotent, so callers may retry with backoff.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("certificate storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

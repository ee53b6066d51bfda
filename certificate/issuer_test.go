package certificate

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	courseModels "lms/models/course"
)

type fakeProgressStore struct {
	completed int
	total     int
	last      *time.Time
	err       error
}

func (f *fakeProgressStore) GetModuleCompletion(ctx context.Context, userID, courseID uint) (int, int, error) {
	return f.completed, f.total, f.err
}

func (f *fakeProgressStore) GetLastCompletionTime(ctx context.Context, userID, courseID uint) (*time.Time, error) {
	return f.last, f.err
}

type fakeAssessmentStore struct {
	attempts int
	passed   int
	avg      float64
	err      error
}

func (f *fakeAssessmentStore) GetQuizStats(ctx context.Context, userID, courseID uint) (int, int, error) {
	return f.attempts, f.passed, f.err
}

func (f *fakeAssessmentStore) GetAverageAssignmentGrade(ctx context.Context, userID, courseID uint) (float64, error) {
	return f.avg, f.err
}

// memCertRepo mimics a unique-constraint-backed table: InsertIfAbsent is
// atomic under the mutex, so concurrent writers race exactly like they
// would against the real index.
type memCertRepo struct {
	mu        sync.Mutex
	certs     map[[2]uint]*courseModels.Certificate
	nextID    uint
	insertErr error
}

func newMemCertRepo() *memCertRepo {
	return &memCertRepo{certs: make(map[[2]uint]*courseModels.Certificate), nextID: 1}
}

func (r *memCertRepo) Find(ctx context.Context, userID, courseID uint) (*courseModels.Certificate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cert, ok := r.certs[[2]uint{userID, courseID}]; ok {
		return cert, nil
	}
	return nil, ErrNotFound
}

func (r *memCertRepo) InsertIfAbsent(ctx context.Context, cert *courseModels.Certificate) (*courseModels.Certificate, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return nil, false, r.insertErr
	}
	key := [2]uint{cert.UserID, cert.CourseID}
	if existing, ok := r.certs[key]; ok {
		return existing, false, nil
	}
	cert.ID = r.nextID
	r.nextID++
	r.certs[key] = cert
	return cert, true, nil
}

func (r *memCertRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.certs)
}

func eligibleStores() (*fakeProgressStore, *fakeAssessmentStore) {
	last := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	progress := &fakeProgressStore{completed: 4, total: 4, last: &last}
	assessments := &fakeAssessmentStore{attempts: 2, passed: 1, avg: 75.0}
	return progress, assessments
}

func TestIssueCreatesCertificateOnce(t *testing.T) {
	progress, assessments := eligibleStores()
	repo := newMemCertRepo()
	issuer := NewIssuer(progress, assessments, repo, "https://lms.example.com")

	cert, inserted, err := issuer.Issue(context.Background(), 42, 7)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Equal(t, uint(42), cert.UserID)
	assert.Equal(t, uint(7), cert.CourseID)
	assert.Regexp(t, codePattern, cert.VerificationCode)
	assert.Equal(t, *progress.last, cert.CompletionDate)
	assert.Contains(t, cert.CertificateNumber, "CERT-")
	assert.Contains(t, cert.CertificateURL, cert.DownloadToken)

	again, inserted, err := issuer.Issue(context.Background(), 42, 7)
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, cert.ID, again.ID)
	assert.Equal(t, cert.VerificationCode, again.VerificationCode)
	assert.Equal(t, 1, repo.count())
}

func TestIssueConcurrentCallsShareOneRecord(t *testing.T) {
	progress, assessments := eligibleStores()
	repo := newMemCertRepo()
	issuer := NewIssuer(progress, assessments, repo, "https://lms.example.com")

	const callers = 16
	results := make([]*courseModels.Certificate, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _, errs[i] = issuer.Issue(context.Background(), 42, 7)
		}(i)
	}
	wg.Wait()

	require.Equal(t, 1, repo.count())
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.NotNil(t, results[i])
		assert.Equal(t, results[0].ID, results[i].ID)
		assert.Equal(t, results[0].VerificationCode, results[i].VerificationCode)
	}
}

func TestIssueNotEligible(t *testing.T) {
	progress := &fakeProgressStore{completed: 3, total: 4}
	assessments := &fakeAssessmentStore{attempts: 1, passed: 1, avg: 80.0}
	repo := newMemCertRepo()
	issuer := NewIssuer(progress, assessments, repo, "https://lms.example.com")

	_, _, err := issuer.Issue(context.Background(), 1, 1)
	var notEligible *NotEligibleError
	require.ErrorAs(t, err, &notEligible)
	assert.Equal(t, []string{"Complete all modules (3/4 completed)"}, notEligible.Reasons)
	assert.Equal(t, 0, repo.count(), "no partial record may be written")
}

func TestIssueStorageErrorIsRetryable(t *testing.T) {
	progress, assessments := eligibleStores()
	repo := newMemCertRepo()
	repo.insertErr = errors.New("connection reset")
	issuer := NewIssuer(progress, assessments, repo, "https://lms.example.com")

	_, _, err := issuer.Issue(context.Background(), 9, 3)
	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)

	// Retrying after the transient failure clears succeeds and still
	// creates exactly one record.
	repo.insertErr = nil
	cert, inserted, err := issuer.Issue(context.Background(), 9, 3)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.NotNil(t, cert)
	assert.Equal(t, 1, repo.count())
}

func TestIssueFallsBackToIssuanceTimeWithoutCompletionTimestamp(t *testing.T) {
	progress, assessments := eligibleStores()
	progress.last = nil
	repo := newMemCertRepo()
	issuer := NewIssuer(progress, assessments, repo, "https://lms.example.com")

	fixed := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return fixed }

	cert, _, err := issuer.Issue(context.Background(), 5, 5)
	require.NoError(t, err)
	assert.Equal(t, fixed, cert.CompletionDate)
	assert.Equal(t, fixed, cert.IssuedAt)
	assert.Equal(t, "CERT-20250820-5-5", cert.CertificateNumber)
}

func TestIssueAbortsBeforeWriteOnCancelledContext(t *testing.T) {
	progress, assessments := eligibleStores()
	repo := newMemCertRepo()
	issuer := NewIssuer(progress, assessments, repo, "https://lms.example.com")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := issuer.Issue(ctx, 2, 2)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, repo.count())
}

func TestSnapshotWrapsStoreFailures(t *testing.T) {
	progress := &fakeProgressStore{err: errors.New("timeout")}
	assessments := &fakeAssessmentStore{}
	issuer := NewIssuer(progress, assessments, newMemCertRepo(), "https://lms.example.com")

	_, err := issuer.Snapshot(context.Background(), 1, 1)
	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
}

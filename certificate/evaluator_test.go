package certificate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateEligibleSnapshot(t *testing.T) {
	res, err := Evaluate(EligibilitySnapshot{
		TotalModules:           4,
		CompletedModules:       4,
		QuizAttempts:           2,
		PassedQuizzes:          1,
		AverageAssignmentGrade: 75.0,
	})
	require.NoError(t, err)
	assert.True(t, res.IsEligible)
	assert.Empty(t, res.Reasons)
	assert.True(t, res.CompletedAllModules)
	assert.True(t, res.PassedQuiz)
	assert.True(t, res.HasPassingGrade)
}

func TestEvaluateIncompleteModules(t *testing.T) {
	res, err := Evaluate(EligibilitySnapshot{
		TotalModules:           4,
		CompletedModules:       3,
		QuizAttempts:           1,
		PassedQuizzes:          1,
		AverageAssignmentGrade: 80.0,
	})
	require.NoError(t, err)
	assert.False(t, res.IsEligible)
	assert.Equal(t, []string{"Complete all modules (3/4 completed)"}, res.Reasons)
}

func TestEvaluateNoPassedQuiz(t *testing.T) {
	res, err := Evaluate(EligibilitySnapshot{
		TotalModules:           3,
		CompletedModules:       3,
		QuizAttempts:           2,
		PassedQuizzes:          0,
		AverageAssignmentGrade: 90.0,
	})
	require.NoError(t, err)
	assert.False(t, res.IsEligible)
	assert.Equal(t, []string{"Pass at least one quiz"}, res.Reasons)
}

func TestEvaluateGradeBoundary(t *testing.T) {
	base := EligibilitySnapshot{
		TotalModules:     2,
		CompletedModules: 2,
		QuizAttempts:     1,
		PassedQuizzes:    1,
	}

	base.AverageAssignmentGrade = 50.0
	res, err := Evaluate(base)
	require.NoError(t, err)
	assert.True(t, res.IsEligible, "exactly at threshold must pass")

	base.AverageAssignmentGrade = 49.999
	res, err = Evaluate(base)
	require.NoError(t, err)
	assert.False(t, res.IsEligible)
	assert.Equal(t, "Average assignment grade (50.0%) needs to be at least 50%", res.Reasons[0])
}

func TestEvaluateZeroModuleCourseNeverEligible(t *testing.T) {
	res, err := Evaluate(EligibilitySnapshot{
		TotalModules:           0,
		CompletedModules:       0,
		QuizAttempts:           1,
		PassedQuizzes:          1,
		AverageAssignmentGrade: 100,
	})
	require.NoError(t, err)
	assert.False(t, res.IsEligible)
	assert.Equal(t, "Complete all modules (0/0 completed)", res.Reasons[0])
}

func TestEvaluateReasonOrdering(t *testing.T) {
	res, err := Evaluate(EligibilitySnapshot{
		TotalModules:           5,
		CompletedModules:       1,
		QuizAttempts:           3,
		PassedQuizzes:          0,
		AverageAssignmentGrade: 10.0,
	})
	require.NoError(t, err)
	require.Len(t, res.Reasons, 3)
	assert.Equal(t, "Complete all modules (1/5 completed)", res.Reasons[0])
	assert.Equal(t, "Pass at least one quiz", res.Reasons[1])
	assert.Equal(t, "Average assignment grade (10.0%) needs to be at least 50%", res.Reasons[2])
}

func TestEvaluateMonotonicity(t *testing.T) {
	eligible := EligibilitySnapshot{
		TotalModules:           4,
		CompletedModules:       4,
		QuizAttempts:           2,
		PassedQuizzes:          1,
		AverageAssignmentGrade: 60.0,
	}
	res, err := Evaluate(eligible)
	require.NoError(t, err)
	require.True(t, res.IsEligible)

	// Improving any input never flips eligibility off.
	improved := []EligibilitySnapshot{
		{TotalModules: 4, CompletedModules: 4, QuizAttempts: 3, PassedQuizzes: 2, AverageAssignmentGrade: 60.0},
		{TotalModules: 4, CompletedModules: 4, QuizAttempts: 2, PassedQuizzes: 1, AverageAssignmentGrade: 100.0},
		{TotalModules: 4, CompletedModules: 4, QuizAttempts: 2, PassedQuizzes: 2, AverageAssignmentGrade: 99.5},
	}
	for _, snap := range improved {
		res, err := Evaluate(snap)
		require.NoError(t, err)
		assert.True(t, res.IsEligible, "snapshot %+v", snap)
	}
}

func TestEvaluateRejectsMalformedSnapshots(t *testing.T) {
	bad := map[string]EligibilitySnapshot{
		"negative total":       {TotalModules: -1},
		"negative completed":   {TotalModules: 2, CompletedModules: -1},
		"completed over total": {TotalModules: 2, CompletedModules: 3},
		"negative attempts":    {TotalModules: 1, CompletedModules: 1, QuizAttempts: -2},
		"passed over attempts": {TotalModules: 1, CompletedModules: 1, QuizAttempts: 1, PassedQuizzes: 2},
		"grade below range":    {TotalModules: 1, CompletedModules: 1, AverageAssignmentGrade: -0.5},
		"grade above range":    {TotalModules: 1, CompletedModules: 1, AverageAssignmentGrade: 100.5},
	}
	for name, snap := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := Evaluate(snap)
			var invalid *InvalidSnapshotError
			require.ErrorAs(t, err, &invalid)
		})
	}
}

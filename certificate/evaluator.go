package certificate

import "fmt"

// PassingGradeThreshold is the minimum average assignment grade (percent)
// required for certificate eligibility.
const PassingGradeThreshold = 50.0

// EligibilityResult is the outcome of evaluating one snapshot. Reasons
// contains a human-readable line per failed check, in fixed priority order
// (modules, quiz, grade); callers that surface a single blocker show
// Reasons[0].
type EligibilityResult struct {
	IsEligible          bool     `json:"is_eligible"`
	Reasons             []string `json:"reasons"`
	CompletedAllModules bool     `json:"completed_all_modules"`
	PassedQuiz          bool     `json:"passed_quiz"`
	HasPassingGrade     bool     `json:"has_passing_grade"`
}

// Evaluate decides certificate eligibility from a snapshot. It is pure and
// does no I/O. A course with zero modules is never eligible. A course with
// no graded assignments carries an average of 0 and fails the grade check;
// relaxing that for assignment-free courses is a deliberate policy change,
// not a bug fix.
func Evaluate(s EligibilitySnapshot) (EligibilityResult, error) {
	if err := s.Validate(); err != nil {
		return EligibilityResult{}, err
	}

	res := EligibilityResult{
		CompletedAllModules: s.TotalModules > 0 && s.CompletedModules == s.TotalModules,
		PassedQuiz:          s.PassedQuizzes > 0,
		HasPassingGrade:     s.AverageAssignmentGrade >= PassingGradeThreshold,
	}
	res.IsEligible = res.CompletedAllModules && res.PassedQuiz && res.HasPassingGrade

	if !res.CompletedAllModules {
		res.Reasons = append(res.Reasons, fmt.Sprintf("Complete all modules (%d/%d completed)", s.CompletedModules, s.TotalModules))
	}
	if !res.PassedQuiz {
		res.Reasons = append(res.Reasons, "Pass at least one quiz")
	}
	if !res.HasPassingGrade {
		res.Reasons = append(res.Reasons, fmt.Sprintf("Average assignment grade (%.1f%%) needs to be at least %.0f%%", s.AverageAssignmentGrade, PassingGradeThreshold))
	}

	return res, nil
}

package attempt

import (
	"strings"

	"adaptlearn-service/internal/apperr"
	"adaptlearn-service/internal/models"
)

// ValidateAnswer enforces the answer-shape contract for a question
// type before grading. Multiple-choice and true/false answers must be
// one of the question's options; short answers must not be blank.
func ValidateAnswer(q *models.Question, userAnswer string) error {
	switch q.Type {
	case models.MultipleChoice:
		if len(q.Options) == 0 {
			return apperr.Validationf("question %s has no options", q.ID)
		}
		if !contains(q.Options, userAnswer) {
			return apperr.Validationf("answer %q is not one of the options", userAnswer)
		}
	case models.TrueFalse:
		if !contains(models.TrueFalseOptions, userAnswer) {
			return apperr.Validationf("answer %q must be %q or %q", userAnswer, "True", "False")
		}
	case models.ShortAnswer:
		if strings.TrimSpace(userAnswer) == "" {
			return apperr.Validationf("short answer must not be blank")
		}
	default:
		return apperr.Validationf("unknown question type %q", q.Type)
	}
	return nil
}

// Grade compares a user answer with the question's correct answer:
// whitespace-trimmed, case-insensitive string equality. No partial
// credit, no numeric tolerance. A question without a correct answer is
// ungradable: it returns (false, false) and is excluded from strict
// correctness totals while still counting toward max score.
func Grade(q *models.Question, userAnswer string) (isCorrect, graded bool) {
	if q.CorrectAnswer == "" {
		return false, false
	}
	return normalize(userAnswer) == normalize(q.CorrectAnswer), true
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func contains(options []string, answer string) bool {
	for _, opt := range options {
		if opt == answer {
			return true
		}
	}
	return false
}

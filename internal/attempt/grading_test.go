package attempt

import (
	"errors"
	"testing"

	"adaptlearn-service/internal/apperr"
	"adaptlearn-service/internal/models"
)

func TestGrade_TrimAndCaseInsensitive(t *testing.T) {
	testCases := []struct {
		name       string
		correct    string
		userAnswer string
		isCorrect  bool
	}{
		{"exact match", "Paris", "Paris", true},
		{"trailing spaces and case", "Paris", "  paris ", true},
		{"upper case", "paris", "PARIS", true},
		{"wrong answer", "Paris", "London", false},
		{"no fuzzy matching", "Paris", "Pariss", false},
		{"no numeric tolerance", "3.14", "3.140", false},
		{"internal whitespace matters", "New York", "NewYork", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := &models.Question{
				ID:            "q1",
				Type:          models.ShortAnswer,
				CorrectAnswer: tc.correct,
			}
			isCorrect, graded := Grade(q, tc.userAnswer)
			if !graded {
				t.Fatal("Expected question to be gradable")
			}
			if isCorrect != tc.isCorrect {
				t.Errorf("Grade(%q vs %q): expected %v, got %v", tc.userAnswer, tc.correct, tc.isCorrect, isCorrect)
			}
		})
	}
}

func TestGrade_MissingCorrectAnswerIsUngradable(t *testing.T) {
	q := &models.Question{ID: "q1", Type: models.ShortAnswer}
	isCorrect, graded := Grade(q, "anything")
	if graded {
		t.Error("Expected question without correct answer to be ungradable")
	}
	if isCorrect {
		t.Error("Ungradable question must not count as correct")
	}
}

func TestValidateAnswer_MultipleChoice(t *testing.T) {
	q := &models.Question{
		ID:            "q1",
		Type:          models.MultipleChoice,
		Options:       []string{"Paris", "London", "Berlin"},
		CorrectAnswer: "Paris",
	}

	if err := ValidateAnswer(q, "London"); err != nil {
		t.Errorf("Expected option to be accepted, got %v", err)
	}
	err := ValidateAnswer(q, "Madrid")
	if err == nil {
		t.Fatal("Expected an answer outside the options to be rejected")
	}
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("Expected a validation error, got %v", err)
	}
}

func TestValidateAnswer_MultipleChoiceWithoutOptions(t *testing.T) {
	q := &models.Question{ID: "q1", Type: models.MultipleChoice, CorrectAnswer: "x"}
	if err := ValidateAnswer(q, "x"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("Expected a validation error for missing options, got %v", err)
	}
}

func TestValidateAnswer_TrueFalse(t *testing.T) {
	q := &models.Question{ID: "q1", Type: models.TrueFalse, CorrectAnswer: "True"}

	for _, answer := range []string{"True", "False"} {
		if err := ValidateAnswer(q, answer); err != nil {
			t.Errorf("Expected %q to be accepted, got %v", answer, err)
		}
	}
	for _, answer := range []string{"true", "yes", "", "T"} {
		if err := ValidateAnswer(q, answer); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("Expected %q to be rejected with a validation error, got %v", answer, err)
		}
	}
}

func TestValidateAnswer_ShortAnswer(t *testing.T) {
	q := &models.Question{ID: "q1", Type: models.ShortAnswer, CorrectAnswer: "42"}

	if err := ValidateAnswer(q, "some attempt"); err != nil {
		t.Errorf("Expected non-blank answer to be accepted, got %v", err)
	}
	for _, answer := range []string{"", "   ", "\t\n"} {
		if err := ValidateAnswer(q, answer); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("Expected blank answer %q to be rejected, got %v", answer, err)
		}
	}
}

func TestParseQuestionType(t *testing.T) {
	testCases := []struct {
		in   string
		want models.QuestionType
		ok   bool
	}{
		{"multiple choice", models.MultipleChoice, true},
		{"Multiple Choice", models.MultipleChoice, true},
		{"multiple_choice", models.MultipleChoice, true},
		{"true/false", models.TrueFalse, true},
		{"True/False", models.TrueFalse, true},
		{"short answer", models.ShortAnswer, true},
		{"essay", "", false},
		{"", "", false},
	}

	for _, tc := range testCases {
		got, ok := models.ParseQuestionType(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseQuestionType(%q) = (%q, %v), expected (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

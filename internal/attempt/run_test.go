package attempt

import (
	"errors"
	"testing"
	"time"

	"adaptlearn-service/internal/apperr"
	"adaptlearn-service/internal/models"
)

func threeQuestionQuiz() (*models.Quiz, []models.Question) {
	quiz := &models.Quiz{ID: "quiz-1", UserID: "owner", Title: "Capitals", Topic: "Geography"}
	questions := []models.Question{
		{
			ID:            "q1",
			QuizID:        "quiz-1",
			Text:          "Capital of France?",
			Type:          models.MultipleChoice,
			Options:       []string{"Paris", "London", "Berlin"},
			CorrectAnswer: "Paris",
			SkillID:       "geography",
			Position:      0,
		},
		{
			ID:            "q2",
			QuizID:        "quiz-1",
			Text:          "Berlin is in Germany.",
			Type:          models.TrueFalse,
			Options:       []string{"True", "False"},
			CorrectAnswer: "True",
			SkillID:       "geography",
			Position:      1,
		},
		{
			ID:            "q3",
			QuizID:        "quiz-1",
			Text:          "Capital of Spain?",
			Type:          models.ShortAnswer,
			CorrectAnswer: "Madrid",
			SkillID:       "vocabulary",
			Position:      2,
		},
	}
	return quiz, questions
}

func TestStart_SetsMaxScoreAndIndex(t *testing.T) {
	quiz, questions := threeQuestionQuiz()
	run, err := Start(quiz, questions, "u1", time.Now())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if run.Attempt.MaxScore != 3 {
		t.Errorf("Expected max score 3, got %d", run.Attempt.MaxScore)
	}
	if run.Index() != 0 {
		t.Errorf("Expected index 0, got %d", run.Index())
	}
	if run.Attempt.Score != 0 || run.Attempt.Completed {
		t.Error("Expected a fresh attempt with score 0 and completed=false")
	}
	if run.Attempt.StartTime.IsZero() {
		t.Error("Expected start time to be set")
	}
}

func TestStart_RejectsEmptyQuiz(t *testing.T) {
	quiz := &models.Quiz{ID: "quiz-1"}
	_, err := Start(quiz, nil, "u1", time.Now())
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("Expected a validation error for an empty quiz, got %v", err)
	}

	if _, err := Start(nil, nil, "u1", time.Now()); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Expected not-found for a nil quiz, got %v", err)
	}
}

func TestStart_OrdersQuestionsByPosition(t *testing.T) {
	quiz, questions := threeQuestionQuiz()
	// Shuffle the input order; position defines display order.
	shuffled := []models.Question{questions[2], questions[0], questions[1]}

	run, err := Start(quiz, shuffled, "u1", time.Now())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for i, want := range []string{"q1", "q2", "q3"} {
		if run.Questions[i].ID != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, run.Questions[i].ID)
		}
	}
}

func TestRun_FullPass(t *testing.T) {
	quiz, questions := threeQuestionQuiz()
	now := time.Now()
	run, err := Start(quiz, questions, "u1", now)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	answers := []struct {
		questionID string
		answer     string
		correct    bool
	}{
		{"q1", "Paris", true},
		{"q2", "False", false},
		{"q3", "  madrid ", true}, // trim + case-insensitive
	}

	for i, a := range answers {
		resp, err := run.Answer(a.questionID, a.answer, 5, now)
		if err != nil {
			t.Fatalf("Answer %d: unexpected error: %v", i, err)
		}
		if resp.IsCorrect != a.correct {
			t.Errorf("Answer %d: expected correct=%v, got %v", i, a.correct, resp.IsCorrect)
		}
		if run.Index() != i+1 {
			t.Errorf("Answer %d: expected index %d, got %d", i, i+1, run.Index())
		}
	}

	if run.Attempt.Score != 2 {
		t.Errorf("Expected score 2, got %d", run.Attempt.Score)
	}

	if err := run.Complete(now); err != nil {
		t.Fatalf("Complete: unexpected error: %v", err)
	}
	if !run.Attempt.Completed {
		t.Error("Expected attempt to be completed")
	}
	if run.Attempt.EndTime == nil {
		t.Error("Expected end time to be set on completion")
	}

	// A fourth answer must be rejected.
	if _, err := run.Answer("q3", "Madrid", 1, now); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("Expected a contract error answering after completion, got %v", err)
	}
}

func TestRun_CompleteBeforeAllAnswered(t *testing.T) {
	quiz, questions := threeQuestionQuiz()
	now := time.Now()
	run, _ := Start(quiz, questions, "u1", now)

	if err := run.Complete(now); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("Expected a contract error completing at index 0, got %v", err)
	}

	if _, err := run.Answer("q1", "Paris", 2, now); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := run.Complete(now); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("Expected a contract error completing at index 1, got %v", err)
	}
}

func TestRun_DoubleAnswerRejected(t *testing.T) {
	quiz, questions := threeQuestionQuiz()
	now := time.Now()
	run, _ := Start(quiz, questions, "u1", now)

	if _, err := run.Answer("q1", "Paris", 2, now); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	_, err := run.Answer("q1", "London", 2, now)
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("Expected a contract error for a double answer, got %v", err)
	}

	// State must not be corrupted by the rejected call.
	if run.Index() != 1 {
		t.Errorf("Expected index 1 after rejected double answer, got %d", run.Index())
	}
	if run.Attempt.Score != 1 {
		t.Errorf("Expected score 1, got %d", run.Attempt.Score)
	}
}

func TestRun_OutOfOrderAnswerRejected(t *testing.T) {
	quiz, questions := threeQuestionQuiz()
	now := time.Now()
	run, _ := Start(quiz, questions, "u1", now)

	if _, err := run.Answer("q3", "Madrid", 2, now); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("Expected skipping ahead to be rejected, got %v", err)
	}
	if _, err := run.Answer("nope", "Madrid", 2, now); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Expected unknown question to be not-found, got %v", err)
	}
}

func TestRun_InvalidShapeDoesNotAdvance(t *testing.T) {
	quiz, questions := threeQuestionQuiz()
	now := time.Now()
	run, _ := Start(quiz, questions, "u1", now)

	// "Madrid" is not one of q1's options.
	if _, err := run.Answer("q1", "Madrid", 2, now); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("Expected a validation error, got %v", err)
	}
	if run.Index() != 0 {
		t.Errorf("Expected rejected answer to leave index at 0, got %d", run.Index())
	}
	if len(run.Responses) != 0 {
		t.Errorf("Expected no response recorded, got %d", len(run.Responses))
	}
}

func TestRun_UngradableQuestionCountsTowardMaxScore(t *testing.T) {
	quiz := &models.Quiz{ID: "quiz-1"}
	questions := []models.Question{
		{ID: "q1", QuizID: "quiz-1", Type: models.ShortAnswer, CorrectAnswer: "yes", Position: 0},
		{ID: "q2", QuizID: "quiz-1", Type: models.ShortAnswer, Position: 1}, // no correct answer
	}
	now := time.Now()
	run, err := Start(quiz, questions, "u1", now)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if run.Attempt.MaxScore != 2 {
		t.Errorf("Expected ungradable question to count toward max score, got %d", run.Attempt.MaxScore)
	}

	if _, err := run.Answer("q1", "yes", 1, now); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	resp, err := run.Answer("q2", "whatever", 1, now)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resp.Graded {
		t.Error("Expected response to be marked ungraded")
	}
	if resp.IsCorrect {
		t.Error("Ungraded response must not be correct")
	}

	if err := run.Complete(now); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if run.Attempt.Score != 1 {
		t.Errorf("Expected score 1 (ungradable excluded), got %d", run.Attempt.Score)
	}
}

func TestRun_ScoreNeverExceedsCorrectResponses(t *testing.T) {
	quiz, questions := threeQuestionQuiz()
	now := time.Now()
	run, _ := Start(quiz, questions, "u1", now)

	run.Answer("q1", "London", 1, now) // wrong
	run.Answer("q2", "True", 1, now)   // right
	run.Answer("q3", "Lisbon", 1, now) // wrong

	correct := 0
	for _, resp := range run.Responses {
		if resp.Graded && resp.IsCorrect {
			correct++
		}
	}
	if run.Attempt.Score > correct {
		t.Errorf("Score %d exceeds correct response count %d", run.Attempt.Score, correct)
	}
	if run.Attempt.Score != 1 {
		t.Errorf("Expected score 1, got %d", run.Attempt.Score)
	}
}

func TestResume_RestoresIndex(t *testing.T) {
	quiz, questions := threeQuestionQuiz()
	now := time.Now()
	run, _ := Start(quiz, questions, "u1", now)
	run.Answer("q1", "Paris", 1, now)
	run.Answer("q2", "True", 1, now)

	resumed, err := Resume(run.Attempt, questions, run.Responses)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resumed.Index() != 2 {
		t.Errorf("Expected resumed index 2, got %d", resumed.Index())
	}
	if current := resumed.Current(); current == nil || current.ID != "q3" {
		t.Errorf("Expected current question q3, got %v", current)
	}
}

func TestResume_RecomputesStaleScore(t *testing.T) {
	quiz, questions := threeQuestionQuiz()
	now := time.Now()
	run, _ := Start(quiz, questions, "u1", now)
	run.Answer("q1", "Paris", 1, now)
	run.Answer("q2", "True", 1, now)

	// A stored attempt whose score write was missed lags its responses.
	stale := *run.Attempt
	stale.Score = 0

	resumed, err := Resume(&stale, questions, run.Responses)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resumed.Attempt.Score != 2 {
		t.Errorf("Expected recomputed score 2, got %d", resumed.Attempt.Score)
	}

	resumed.Answer("q3", "Madrid", 1, now)
	if err := resumed.Complete(now); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resumed.Attempt.Score != 3 {
		t.Errorf("Expected completed score 3, got %d", resumed.Attempt.Score)
	}
}

func TestRun_SkillIDs(t *testing.T) {
	quiz, questions := threeQuestionQuiz()
	run, _ := Start(quiz, questions, "u1", time.Now())

	ids := run.SkillIDs()
	if len(ids) != 2 {
		t.Fatalf("Expected 2 distinct skills, got %d", len(ids))
	}
	if ids[0] != "geography" || ids[1] != "vocabulary" {
		t.Errorf("Expected [geography vocabulary], got %v", ids)
	}
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"adaptlearn-service/internal/apperr"
	"adaptlearn-service/internal/models"
)

type fakeAttemptStore struct {
	attempts       map[string]*models.QuizAttempt
	failNext       bool
	failScoreWrite bool
	completeErr    error
}

func newFakeAttemptStore() *fakeAttemptStore {
	return &fakeAttemptStore{attempts: make(map[string]*models.QuizAttempt)}
}

func (f *fakeAttemptStore) Create(_ context.Context, a *models.QuizAttempt) error {
	if f.failNext {
		f.failNext = false
		return errors.New("insert failed")
	}
	stored := *a
	f.attempts[a.ID] = &stored
	return nil
}

func (f *fakeAttemptStore) FindByID(_ context.Context, id string) (*models.QuizAttempt, error) {
	a, ok := f.attempts[id]
	if !ok {
		return nil, nil
	}
	dup := *a
	return &dup, nil
}

func (f *fakeAttemptStore) UpdateScore(_ context.Context, id string, score int) error {
	if f.failScoreWrite {
		f.failScoreWrite = false
		return errors.New("write failed")
	}
	if a, ok := f.attempts[id]; ok {
		a.Score = score
	}
	return nil
}

func (f *fakeAttemptStore) MarkCompleted(_ context.Context, a *models.QuizAttempt) error {
	if f.completeErr != nil {
		return f.completeErr
	}
	stored, ok := f.attempts[a.ID]
	if !ok || stored.Completed {
		return mongo.ErrNoDocuments
	}
	stored.Completed = true
	stored.Score = a.Score
	stored.EndTime = a.EndTime
	return nil
}

func (f *fakeAttemptStore) FindByUser(_ context.Context, userID string, limit int) ([]models.QuizAttempt, error) {
	var out []models.QuizAttempt
	for _, a := range f.attempts {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeResponseStore struct {
	responses []models.QuestionResponse
	failNext  bool
}

func (f *fakeResponseStore) Create(_ context.Context, r *models.QuestionResponse) error {
	if f.failNext {
		f.failNext = false
		return errors.New("insert failed")
	}
	f.responses = append(f.responses, *r)
	return nil
}

func (f *fakeResponseStore) FindByAttempt(_ context.Context, attemptID string) ([]models.QuestionResponse, error) {
	var out []models.QuestionResponse
	for _, r := range f.responses {
		if r.AttemptID == attemptID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeQuizStore struct {
	quizzes map[string]*models.Quiz
}

func (f *fakeQuizStore) FindByID(_ context.Context, id string) (*models.Quiz, error) {
	q, ok := f.quizzes[id]
	if !ok {
		return nil, nil
	}
	dup := *q
	return &dup, nil
}

type fakeQuestionStore struct {
	questions map[string][]models.Question
}

func (f *fakeQuestionStore) FindByQuizID(_ context.Context, quizID string) ([]models.Question, error) {
	return f.questions[quizID], nil
}

type fakeOutcomes struct {
	calls []outcomeCall
}

type outcomeCall struct {
	userID   string
	skillIDs []string
	score    int
	maxScore int
}

func (f *fakeOutcomes) ApplyQuizOutcome(_ context.Context, userID string, skillIDs []string, score, maxScore int) error {
	f.calls = append(f.calls, outcomeCall{userID, skillIDs, score, maxScore})
	return nil
}

func geographyQuiz() (*models.Quiz, []models.Question) {
	quiz := &models.Quiz{ID: "quiz-1", UserID: "author", Title: "Capitals"}
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
			Text:          "Paris is in France.",
			Type:          models.TrueFalse,
			Options:       models.TrueFalseOptions,
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

func newTestAttemptService() (*AttemptService, *fakeAttemptStore, *fakeResponseStore, *fakeOutcomes) {
	quiz, questions := geographyQuiz()
	attempts := newFakeAttemptStore()
	responses := &fakeResponseStore{}
	outcomes := &fakeOutcomes{}
	svc := NewAttemptService(
		attempts,
		responses,
		&fakeQuizStore{quizzes: map[string]*models.Quiz{quiz.ID: quiz}},
		&fakeQuestionStore{questions: map[string][]models.Question{quiz.ID: questions}},
		outcomes,
		nil,
	)
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return svc, attempts, responses, outcomes
}

func TestAttemptFullFlow(t *testing.T) {
	svc, attempts, _, outcomes := newTestAttemptService()
	ctx := context.Background()

	state, err := svc.StartAttempt(ctx, "user-1", "quiz-1")
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}
	if state.MaxScore != 3 {
		t.Fatalf("max score = %d, want 3", state.MaxScore)
	}
	if state.Question == nil || state.Question.ID != "q1" {
		t.Fatalf("first question = %+v, want q1", state.Question)
	}

	fb, err := svc.AnswerQuestion(ctx, "user-1", state.AttemptID, "q1", "Paris", 5)
	if err != nil {
		t.Fatalf("answer q1: %v", err)
	}
	if !fb.IsCorrect || fb.Next == nil || fb.Next.ID != "q2" {
		t.Fatalf("q1 feedback = %+v", fb)
	}

	fb, err = svc.AnswerQuestion(ctx, "user-1", state.AttemptID, "q2", "False", 3)
	if err != nil {
		t.Fatalf("answer q2: %v", err)
	}
	if fb.IsCorrect {
		t.Fatal("q2 wrong answer graded correct")
	}

	fb, err = svc.AnswerQuestion(ctx, "user-1", state.AttemptID, "q3", "  madrid ", 8)
	if err != nil {
		t.Fatalf("answer q3: %v", err)
	}
	if !fb.IsCorrect {
		t.Fatal("q3 trimmed lowercase answer graded wrong")
	}
	if fb.Next != nil {
		t.Fatalf("next after last question = %+v, want nil", fb.Next)
	}

	result, err := svc.CompleteAttempt(ctx, "user-1", state.AttemptID)
	if err != nil {
		t.Fatalf("CompleteAttempt: %v", err)
	}
	if result.Score != 2 || result.MaxScore != 3 {
		t.Fatalf("result = %d/%d, want 2/3", result.Score, result.MaxScore)
	}
	if !result.Completed || result.EndTime == nil {
		t.Fatal("result not marked completed")
	}

	stored := attempts.attempts[state.AttemptID]
	if !stored.Completed || stored.Score != 2 {
		t.Fatalf("stored attempt = %+v", stored)
	}

	if len(outcomes.calls) != 1 {
		t.Fatalf("outcome calls = %d, want 1", len(outcomes.calls))
	}
	call := outcomes.calls[0]
	if call.score != 2 || call.maxScore != 3 {
		t.Fatalf("outcome = %d/%d, want 2/3", call.score, call.maxScore)
	}
	if len(call.skillIDs) != 2 || call.skillIDs[0] != "geography" || call.skillIDs[1] != "vocabulary" {
		t.Fatalf("outcome skills = %v", call.skillIDs)
	}
}

func TestAttemptRejectsOutOfOrderAndEarlyComplete(t *testing.T) {
	svc, _, _, outcomes := newTestAttemptService()
	ctx := context.Background()

	state, err := svc.StartAttempt(ctx, "user-1", "quiz-1")
	if err != nil {
		t.Fatalf("StartAttempt: %v", err)
	}

	if _, err := svc.AnswerQuestion(ctx, "user-1", state.AttemptID, "q2", "True", 1); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("out-of-order answer err = %v, want validation", err)
	}
	if _, err := svc.CompleteAttempt(ctx, "user-1", state.AttemptID); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("early complete err = %v, want validation", err)
	}
	if len(outcomes.calls) != 0 {
		t.Fatal("early complete reached the skill tracker")
	}

	cur, err := svc.State(ctx, "user-1", state.AttemptID)
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if cur.Question == nil || cur.Question.ID != "q1" {
		t.Fatalf("current question = %+v, want q1 unchanged", cur.Question)
	}
}

func TestAttemptDoubleAnswerAndDoubleComplete(t *testing.T) {
	svc, _, _, _ := newTestAttemptService()
	ctx := context.Background()

	state, _ := svc.StartAttempt(ctx, "user-1", "quiz-1")
	answers := []struct{ q, a string }{{"q1", "Paris"}, {"q2", "True"}, {"q3", "Madrid"}}
	for _, step := range answers {
		if _, err := svc.AnswerQuestion(ctx, "user-1", state.AttemptID, step.q, step.a, 1); err != nil {
			t.Fatalf("answer %s: %v", step.q, err)
		}
	}

	if _, err := svc.AnswerQuestion(ctx, "user-1", state.AttemptID, "q1", "Berlin", 1); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("re-answer err = %v, want validation", err)
	}

	if _, err := svc.CompleteAttempt(ctx, "user-1", state.AttemptID); err != nil {
		t.Fatalf("first complete: %v", err)
	}
	if _, err := svc.CompleteAttempt(ctx, "user-1", state.AttemptID); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("second complete err = %v, want validation", err)
	}
}

func TestAttemptFailedResponseWriteDoesNotAdvance(t *testing.T) {
	svc, _, responses, _ := newTestAttemptService()
	ctx := context.Background()

	state, _ := svc.StartAttempt(ctx, "user-1", "quiz-1")

	responses.failNext = true
	if _, err := svc.AnswerQuestion(ctx, "user-1", state.AttemptID, "q1", "Paris", 1); !errors.Is(err, apperr.ErrPersistence) {
		t.Fatalf("failed write err = %v, want persistence", err)
	}

	cur, err := svc.State(ctx, "user-1", state.AttemptID)
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if cur.Question == nil || cur.Question.ID != "q1" {
		t.Fatalf("current question after failed write = %+v, want q1", cur.Question)
	}

	// The retry lands normally.
	if _, err := svc.AnswerQuestion(ctx, "user-1", state.AttemptID, "q1", "Paris", 1); err != nil {
		t.Fatalf("retry: %v", err)
	}
}

func TestAttemptFailedScoreWriteDoesNotCorruptFinalScore(t *testing.T) {
	svc, attempts, _, outcomes := newTestAttemptService()
	ctx := context.Background()

	state, _ := svc.StartAttempt(ctx, "user-1", "quiz-1")
	if _, err := svc.AnswerQuestion(ctx, "user-1", state.AttemptID, "q1", "Paris", 1); err != nil {
		t.Fatalf("answer q1: %v", err)
	}
	if _, err := svc.AnswerQuestion(ctx, "user-1", state.AttemptID, "q2", "True", 1); err != nil {
		t.Fatalf("answer q2: %v", err)
	}

	// The response lands but the score write is missed.
	attempts.failScoreWrite = true
	if _, err := svc.AnswerQuestion(ctx, "user-1", state.AttemptID, "q3", "Madrid", 1); err != nil {
		t.Fatalf("answer q3: %v", err)
	}
	if attempts.attempts[state.AttemptID].Score != 2 {
		t.Fatalf("stored score = %d, want stale 2 before completion", attempts.attempts[state.AttemptID].Score)
	}

	result, err := svc.CompleteAttempt(ctx, "user-1", state.AttemptID)
	if err != nil {
		t.Fatalf("CompleteAttempt: %v", err)
	}
	if result.Score != 3 {
		t.Fatalf("result score = %d, want 3", result.Score)
	}
	if stored := attempts.attempts[state.AttemptID]; stored.Score != 3 {
		t.Fatalf("stored score = %d, want 3", stored.Score)
	}
	if len(outcomes.calls) != 1 || outcomes.calls[0].score != 3 {
		t.Fatalf("outcome calls = %+v, want one call with score 3", outcomes.calls)
	}
}

func TestAttemptCompleteStoreFailureIsPersistence(t *testing.T) {
	svc, attempts, _, outcomes := newTestAttemptService()
	ctx := context.Background()

	state, _ := svc.StartAttempt(ctx, "user-1", "quiz-1")
	answers := []struct{ q, a string }{{"q1", "Paris"}, {"q2", "True"}, {"q3", "Madrid"}}
	for _, step := range answers {
		if _, err := svc.AnswerQuestion(ctx, "user-1", state.AttemptID, step.q, step.a, 1); err != nil {
			t.Fatalf("answer %s: %v", step.q, err)
		}
	}

	attempts.completeErr = errors.New("connection reset by peer")
	_, err := svc.CompleteAttempt(ctx, "user-1", state.AttemptID)
	if !errors.Is(err, apperr.ErrPersistence) {
		t.Fatalf("store failure err = %v, want persistence", err)
	}
	if errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("store failure misreported as validation: %v", err)
	}
	if attempts.attempts[state.AttemptID].Completed {
		t.Fatal("attempt marked completed despite store failure")
	}
	if len(outcomes.calls) != 0 {
		t.Fatal("failed completion reached the skill tracker")
	}

	// Once the store recovers the same call goes through.
	attempts.completeErr = nil
	if _, err := svc.CompleteAttempt(ctx, "user-1", state.AttemptID); err != nil {
		t.Fatalf("retry after recovery: %v", err)
	}
}

func TestAttemptResultsRoundTrip(t *testing.T) {
	svc, _, _, _ := newTestAttemptService()
	ctx := context.Background()

	state, _ := svc.StartAttempt(ctx, "user-1", "quiz-1")
	answers := []struct {
		q, a    string
		correct bool
	}{
		{"q1", "London", false},
		{"q2", "True", true},
		{"q3", "madrid", true},
	}
	for _, step := range answers {
		if _, err := svc.AnswerQuestion(ctx, "user-1", state.AttemptID, step.q, step.a, 1); err != nil {
			t.Fatalf("answer %s: %v", step.q, err)
		}
	}
	if _, err := svc.CompleteAttempt(ctx, "user-1", state.AttemptID); err != nil {
		t.Fatalf("CompleteAttempt: %v", err)
	}

	// Results rebuilds the run from stored rows only.
	result, err := svc.Results(ctx, "user-1", state.AttemptID)
	if err != nil {
		t.Fatalf("Results: %v", err)
	}
	if result.Title != "Capitals" {
		t.Fatalf("title = %q", result.Title)
	}
	if len(result.Questions) != 3 {
		t.Fatalf("result rows = %d, want 3", len(result.Questions))
	}
	for i, step := range answers {
		row := result.Questions[i]
		if row.QuestionID != step.q {
			t.Fatalf("row %d question = %s, want %s", i, row.QuestionID, step.q)
		}
		if row.UserAnswer != step.a {
			t.Fatalf("row %d answer = %q, want %q", i, row.UserAnswer, step.a)
		}
		if row.IsCorrect != step.correct {
			t.Fatalf("row %d correct = %v, want %v", i, row.IsCorrect, step.correct)
		}
	}
	if result.Score != 2 {
		t.Fatalf("score = %d, want 2", result.Score)
	}
}

func TestAttemptOwnershipAndMissing(t *testing.T) {
	svc, _, _, _ := newTestAttemptService()
	ctx := context.Background()

	if _, err := svc.StartAttempt(ctx, "user-1", "missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("missing quiz err = %v, want not found", err)
	}

	state, _ := svc.StartAttempt(ctx, "user-1", "quiz-1")
	if _, err := svc.State(ctx, "someone-else", state.AttemptID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("foreign attempt err = %v, want not found", err)
	}
	if _, err := svc.Results(ctx, "user-1", "missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("missing attempt err = %v, want not found", err)
	}
}

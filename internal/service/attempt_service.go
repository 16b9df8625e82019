package service

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"adaptlearn-service/internal/apperr"
	"adaptlearn-service/internal/attempt"
	"adaptlearn-service/internal/event"
	"adaptlearn-service/internal/models"
)

// Narrow store interfaces so the attempt flow is testable without
// mongo. The concrete repositories satisfy them.
type AttemptStore interface {
	Create(ctx context.Context, a *models.QuizAttempt) error
	FindByID(ctx context.Context, id string) (*models.QuizAttempt, error)
	UpdateScore(ctx context.Context, id string, score int) error
	MarkCompleted(ctx context.Context, a *models.QuizAttempt) error
	FindByUser(ctx context.Context, userID string, limit int) ([]models.QuizAttempt, error)
}

type ResponseStore interface {
	Create(ctx context.Context, r *models.QuestionResponse) error
	FindByAttempt(ctx context.Context, attemptID string) ([]models.QuestionResponse, error)
}

type QuizStore interface {
	FindByID(ctx context.Context, id string) (*models.Quiz, error)
}

type QuestionStore interface {
	FindByQuizID(ctx context.Context, quizID string) ([]models.Question, error)
}

// OutcomeApplier feeds a completed attempt's score into the skill
// tracker.
type OutcomeApplier interface {
	ApplyQuizOutcome(ctx context.Context, userID string, skillIDs []string, score, maxScore int) error
}

type AttemptService struct {
	Attempts  AttemptStore
	Responses ResponseStore
	Quizzes   QuizStore
	Questions QuestionStore
	Outcomes  OutcomeApplier
	Publisher *event.EventPublisher
	now       func() time.Time
}

func NewAttemptService(
	attempts AttemptStore,
	responses ResponseStore,
	quizzes QuizStore,
	questions QuestionStore,
	outcomes OutcomeApplier,
	publisher *event.EventPublisher,
) *AttemptService {
	return &AttemptService{
		Attempts:  attempts,
		Responses: responses,
		Quizzes:   quizzes,
		Questions: questions,
		Outcomes:  outcomes,
		Publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// QuestionView is a question as shown to the taker: no correct answer,
// no explanation.
type QuestionView struct {
	ID       string              `json:"id"`
	Text     string              `json:"text"`
	Type     models.QuestionType `json:"type"`
	Options  []string            `json:"options,omitempty"`
	Position int                 `json:"position"`
	Index    int                 `json:"index"`
	Total    int                 `json:"total"`
}

// AttemptState is the taker-facing view of an in-flight attempt.
type AttemptState struct {
	AttemptID string        `json:"attempt_id"`
	QuizID    string        `json:"quiz_id"`
	Score     int           `json:"score"`
	MaxScore  int           `json:"max_score"`
	Completed bool          `json:"completed"`
	Question  *QuestionView `json:"question,omitempty"`
}

// AnswerFeedback is returned right after grading an answer.
type AnswerFeedback struct {
	QuestionID    string        `json:"question_id"`
	IsCorrect     bool          `json:"is_correct"`
	Graded        bool          `json:"graded"`
	CorrectAnswer string        `json:"correct_answer,omitempty"`
	Explanation   string        `json:"explanation,omitempty"`
	Next          *QuestionView `json:"next_question,omitempty"`
}

// StartAttempt opens a new run over the quiz's current questions.
func (s *AttemptService) StartAttempt(ctx context.Context, userID, quizID string) (*AttemptState, error) {
	quiz, err := s.Quizzes.FindByID(ctx, quizID)
	if err != nil {
		return nil, apperr.Persistencef("load quiz %s", quizID)
	}
	if quiz == nil {
		return nil, apperr.NotFoundf("quiz %s", quizID)
	}
	questions, err := s.Questions.FindByQuizID(ctx, quizID)
	if err != nil {
		return nil, apperr.Persistencef("load questions for quiz %s", quizID)
	}

	run, err := attempt.Start(quiz, questions, userID, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.Attempts.Create(ctx, run.Attempt); err != nil {
		return nil, apperr.Persistencef("store attempt")
	}

	s.Publisher.Publish("quiz.attempt_started", map[string]interface{}{
		"attempt_id": run.Attempt.ID,
		"quiz_id":    quizID,
		"user_id":    userID,
	})
	return stateOf(run), nil
}

// AnswerQuestion grades and records the answer for the attempt's
// current question. The response row is written before anything else;
// if that write fails the attempt has not advanced.
func (s *AttemptService) AnswerQuestion(ctx context.Context, userID, attemptID, questionID, answer string, timeTaken int) (*AnswerFeedback, error) {
	run, err := s.loadRun(ctx, userID, attemptID)
	if err != nil {
		return nil, err
	}

	response, err := run.Answer(questionID, answer, timeTaken, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.Responses.Create(ctx, response); err != nil {
		return nil, apperr.Persistencef("store response for attempt %s", attemptID)
	}
	if err := s.Attempts.UpdateScore(ctx, attemptID, run.Attempt.Score); err != nil {
		// The score is recomputed from stored responses on the next
		// load, so a missed score write cannot corrupt the attempt.
		log.Printf("score update failed for attempt %s: %v", attemptID, err)
	}

	feedback := &AnswerFeedback{
		QuestionID:    response.QuestionID,
		IsCorrect:     response.IsCorrect,
		Graded:        response.Graded,
		CorrectAnswer: correctAnswerOf(run, response.QuestionID),
		Explanation:   explanationOf(run, response.QuestionID),
	}
	if next := run.Current(); next != nil {
		feedback.Next = viewOf(run, next)
	}
	return feedback, nil
}

// CompleteAttempt closes the run, persists the final state and feeds
// the outcome into the skill tracker.
func (s *AttemptService) CompleteAttempt(ctx context.Context, userID, attemptID string) (*models.AttemptResult, error) {
	run, err := s.loadRun(ctx, userID, attemptID)
	if err != nil {
		return nil, err
	}
	if err := run.Complete(s.now()); err != nil {
		return nil, err
	}
	if err := s.Attempts.MarkCompleted(ctx, run.Attempt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.Validationf("attempt %s is already completed", attemptID)
		}
		return nil, apperr.Persistencef("complete attempt %s", attemptID)
	}

	if skillIDs := run.SkillIDs(); len(skillIDs) > 0 && s.Outcomes != nil {
		if err := s.Outcomes.ApplyQuizOutcome(ctx, userID, skillIDs, run.Attempt.Score, run.Attempt.MaxScore); err != nil {
			// The attempt is completed either way.
			log.Printf("skill update failed for attempt %s: %v", attemptID, err)
		}
	}

	s.Publisher.Publish("quiz.attempt_completed", map[string]interface{}{
		"attempt_id": attemptID,
		"quiz_id":    run.Attempt.QuizID,
		"user_id":    userID,
		"score":      run.Attempt.Score,
		"max_score":  run.Attempt.MaxScore,
	})
	return s.resultOf(ctx, run)
}

// State returns the taker-facing view of an attempt, pointing at the
// next unanswered question.
func (s *AttemptService) State(ctx context.Context, userID, attemptID string) (*AttemptState, error) {
	run, err := s.loadRun(ctx, userID, attemptID)
	if err != nil {
		return nil, err
	}
	return stateOf(run), nil
}

// Results returns the detailed per-question outcome of an attempt.
func (s *AttemptService) Results(ctx context.Context, userID, attemptID string) (*models.AttemptResult, error) {
	run, err := s.loadRun(ctx, userID, attemptID)
	if err != nil {
		return nil, err
	}
	return s.resultOf(ctx, run)
}

// UserAttempts lists a user's attempt history, newest first.
func (s *AttemptService) UserAttempts(ctx context.Context, userID string, limit int) ([]models.AttemptSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	attempts, err := s.Attempts.FindByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	titles := make(map[string]string)
	summaries := make([]models.AttemptSummary, len(attempts))
	for i, a := range attempts {
		title, ok := titles[a.QuizID]
		if !ok {
			if quiz, err := s.Quizzes.FindByID(ctx, a.QuizID); err == nil && quiz != nil {
				title = quiz.Title
			}
			titles[a.QuizID] = title
		}
		summaries[i] = models.AttemptSummary{
			AttemptID:   a.ID,
			QuizID:      a.QuizID,
			Title:       title,
			Score:       a.Score,
			MaxScore:    a.MaxScore,
			Completed:   a.Completed,
			SuccessRate: successRate(a.Score, a.MaxScore),
			StartTime:   a.StartTime,
			EndTime:     a.EndTime,
		}
	}
	return summaries, nil
}

// loadRun rebuilds the run for an attempt the user owns.
func (s *AttemptService) loadRun(ctx context.Context, userID, attemptID string) (*attempt.Run, error) {
	a, err := s.Attempts.FindByID(ctx, attemptID)
	if err != nil {
		return nil, apperr.Persistencef("load attempt %s", attemptID)
	}
	if a == nil || a.UserID != userID {
		return nil, apperr.NotFoundf("attempt %s", attemptID)
	}
	questions, err := s.Questions.FindByQuizID(ctx, a.QuizID)
	if err != nil {
		return nil, apperr.Persistencef("load questions for quiz %s", a.QuizID)
	}
	responses, err := s.Responses.FindByAttempt(ctx, attemptID)
	if err != nil {
		return nil, apperr.Persistencef("load responses for attempt %s", attemptID)
	}
	return attempt.Resume(a, questions, responses)
}

func (s *AttemptService) resultOf(ctx context.Context, run *attempt.Run) (*models.AttemptResult, error) {
	title := ""
	if quiz, err := s.Quizzes.FindByID(ctx, run.Attempt.QuizID); err == nil && quiz != nil {
		title = quiz.Title
	}

	byQuestion := make(map[string]models.QuestionResponse, len(run.Responses))
	for _, resp := range run.Responses {
		byQuestion[resp.QuestionID] = resp
	}

	rows := make([]models.QuestionResult, len(run.Questions))
	for i, q := range run.Questions {
		row := models.QuestionResult{
			QuestionID:    q.ID,
			Text:          q.Text,
			Type:          q.Type,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		}
		if resp, ok := byQuestion[q.ID]; ok {
			row.UserAnswer = resp.UserAnswer
			row.IsCorrect = resp.IsCorrect
			row.Graded = resp.Graded
			row.TimeTaken = resp.TimeTaken
		}
		rows[i] = row
	}

	return &models.AttemptResult{
		AttemptID:   run.Attempt.ID,
		QuizID:      run.Attempt.QuizID,
		Title:       title,
		Score:       run.Attempt.Score,
		MaxScore:    run.Attempt.MaxScore,
		SuccessRate: successRate(run.Attempt.Score, run.Attempt.MaxScore),
		Completed:   run.Attempt.Completed,
		StartTime:   run.Attempt.StartTime,
		EndTime:     run.Attempt.EndTime,
		Questions:   rows,
	}, nil
}

func stateOf(run *attempt.Run) *AttemptState {
	state := &AttemptState{
		AttemptID: run.Attempt.ID,
		QuizID:    run.Attempt.QuizID,
		Score:     run.Attempt.Score,
		MaxScore:  run.Attempt.MaxScore,
		Completed: run.Attempt.Completed,
	}
	if q := run.Current(); q != nil {
		state.Question = viewOf(run, q)
	}
	return state
}

func viewOf(run *attempt.Run, q *models.Question) *QuestionView {
	return &QuestionView{
		ID:       q.ID,
		Text:     q.Text,
		Type:     q.Type,
		Options:  q.Options,
		Position: q.Position,
		Index:    run.Index(),
		Total:    len(run.Questions),
	}
}

func correctAnswerOf(run *attempt.Run, questionID string) string {
	for _, q := range run.Questions {
		if q.ID == questionID {
			return q.CorrectAnswer
		}
	}
	return ""
}

func explanationOf(run *attempt.Run, questionID string) string {
	for _, q := range run.Questions {
		if q.ID == questionID {
			return q.Explanation
		}
	}
	return ""
}

func successRate(score, maxScore int) float64 {
	if maxScore <= 0 {
		return 0
	}
	return float64(score) / float64(maxScore)
}

// Package attempt drives a user through a quiz's questions in order:
// NotStarted -> InProgress(index) -> Completed. The Run is explicit
// state handed in and out of every step; nothing ambient. Abandonment
// is not a state, an abandoned run is simply never completed.
package attempt

import (
	"sort"
	"time"

	"adaptlearn-service/internal/apperr"
	"adaptlearn-service/internal/models"

	"github.com/google/uuid"
)

// Run is one in-flight pass through a quiz. Questions are ordered by
// position; the current index is derived from the number of recorded
// responses, so a failed persistence step never advances the run.
type Run struct {
	Attempt   *models.QuizAttempt
	Questions []models.Question
	Responses []models.QuestionResponse
}

// Start creates a run over a quiz's questions. The quiz must have at
// least one question; max score is fixed to the question count at this
// moment and does not follow later quiz edits.
func Start(quiz *models.Quiz, questions []models.Question, userID string, now time.Time) (*Run, error) {
	if quiz == nil {
		return nil, apperr.NotFoundf("quiz")
	}
	if len(questions) == 0 {
		return nil, apperr.Validationf("quiz %s has no questions", quiz.ID)
	}

	ordered := make([]models.Question, len(questions))
	copy(ordered, questions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})

	return &Run{
		Attempt: &models.QuizAttempt{
			ID:        uuid.NewString(),
			QuizID:    quiz.ID,
			UserID:    userID,
			Score:     0,
			MaxScore:  len(ordered),
			Completed: false,
			StartTime: now,
		},
		Questions: ordered,
	}, nil
}

// Resume rebuilds a run from persisted state. Responses are matched to
// questions; responses for unknown questions are rejected. The score
// is recomputed from the responses, so a stale stored score cannot
// survive a reload.
func Resume(a *models.QuizAttempt, questions []models.Question, responses []models.QuestionResponse) (*Run, error) {
	if a == nil {
		return nil, apperr.NotFoundf("attempt")
	}
	ordered := make([]models.Question, len(questions))
	copy(ordered, questions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})

	run := &Run{Attempt: a, Questions: ordered}
	for _, resp := range responses {
		if run.questionByID(resp.QuestionID) == nil {
			return nil, apperr.Validationf("response for unknown question %s", resp.QuestionID)
		}
		run.Responses = append(run.Responses, resp)
	}
	run.Attempt.Score = run.correctCount()
	return run, nil
}

// Index is the zero-based position of the next unanswered question,
// in [0, question count].
func (r *Run) Index() int {
	return len(r.Responses)
}

// Current returns the question the run is waiting on, or nil when all
// questions are answered.
func (r *Run) Current() *models.Question {
	if r.Index() >= len(r.Questions) {
		return nil
	}
	return &r.Questions[r.Index()]
}

// Answer validates, grades and records the response for the current
// question, then recomputes the attempt score as the count of correct
// responses. Answering an already-answered question, answering past
// the end, or answering a completed attempt are contract violations.
func (r *Run) Answer(questionID, userAnswer string, timeTaken int, now time.Time) (*models.QuestionResponse, error) {
	if r.Attempt.Completed {
		return nil, apperr.Validationf("attempt %s is already completed", r.Attempt.ID)
	}
	current := r.Current()
	if current == nil {
		return nil, apperr.Validationf("all %d questions are already answered", len(r.Questions))
	}
	if current.ID != questionID {
		if r.answered(questionID) {
			return nil, apperr.Validationf("question %s already has a response", questionID)
		}
		if r.questionByID(questionID) == nil {
			return nil, apperr.NotFoundf("question %s in quiz %s", questionID, r.Attempt.QuizID)
		}
		return nil, apperr.Validationf("question %s is not the current question", questionID)
	}
	if err := ValidateAnswer(current, userAnswer); err != nil {
		return nil, err
	}

	isCorrect, graded := Grade(current, userAnswer)
	response := models.QuestionResponse{
		ID:         uuid.NewString(),
		AttemptID:  r.Attempt.ID,
		QuestionID: current.ID,
		UserAnswer: userAnswer,
		IsCorrect:  isCorrect,
		Graded:     graded,
		TimeTaken:  timeTaken,
		AnsweredAt: now,
	}
	r.Responses = append(r.Responses, response)
	r.Attempt.Score = r.correctCount()
	return &response, nil
}

// Complete marks the attempt finished. Every question must be
// answered; completing twice is a contract violation. The caller feeds
// the final score into the proficiency tracker.
func (r *Run) Complete(now time.Time) error {
	if r.Attempt.Completed {
		return apperr.Validationf("attempt %s is already completed", r.Attempt.ID)
	}
	if r.Index() != len(r.Questions) {
		return apperr.Validationf("attempt %s has %d of %d questions answered", r.Attempt.ID, r.Index(), len(r.Questions))
	}
	r.Attempt.Completed = true
	end := now
	r.Attempt.EndTime = &end
	return nil
}

// SkillIDs returns the distinct skills referenced by the run's
// questions, in first-seen order.
func (r *Run) SkillIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, q := range r.Questions {
		if q.SkillID == "" || seen[q.SkillID] {
			continue
		}
		seen[q.SkillID] = true
		ids = append(ids, q.SkillID)
	}
	return ids
}

func (r *Run) correctCount() int {
	count := 0
	for _, resp := range r.Responses {
		if resp.Graded && resp.IsCorrect {
			count++
		}
	}
	return count
}

func (r *Run) answered(questionID string) bool {
	for _, resp := range r.Responses {
		if resp.QuestionID == questionID {
			return true
		}
	}
	return false
}

func (r *Run) questionByID(id string) *models.Question {
	for i := range r.Questions {
		if r.Questions[i].ID == id {
			return &r.Questions[i]
		}
	}
	return nil
}

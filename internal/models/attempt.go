package models

import "time"

// QuizAttempt is one user's run through a quiz. MaxScore is fixed at
// creation from the quiz's question count and does not follow later
// quiz edits. Completed transitions exactly once, false to true, and
// EndTime is set only on completion.
type QuizAttempt struct {
	ID        string     `bson:"_id,omitempty" json:"id"`
	QuizID    string     `bson:"quiz_id" json:"quiz_id"`
	UserID    string     `bson:"user_id" json:"user_id"`
	Score     int        `bson:"score" json:"score"`
	MaxScore  int        `bson:"max_score" json:"max_score"`
	Completed bool       `bson:"completed" json:"completed"`
	StartTime time.Time  `bson:"start_time" json:"start_time"`
	EndTime   *time.Time `bson:"end_time,omitempty" json:"end_time,omitempty"`
}

// QuestionResponse records one answer within an attempt. Exactly one
// per (attempt, question); immutable after creation.
type QuestionResponse struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	AttemptID  string    `bson:"attempt_id" json:"attempt_id"`
	QuestionID string    `bson:"question_id" json:"question_id"`
	UserAnswer string    `bson:"user_answer" json:"user_answer"`
	IsCorrect  bool      `bson:"is_correct" json:"is_correct"`
	Graded     bool      `bson:"graded" json:"graded"`
	TimeTaken  int       `bson:"time_taken" json:"time_taken"`
	AnsweredAt time.Time `bson:"answered_at" json:"answered_at"`
}

// AttemptSummary is the listing shape for a user's attempt history.
type AttemptSummary struct {
	AttemptID   string     `json:"attempt_id"`
	QuizID      string     `json:"quiz_id"`
	Title       string     `json:"title"`
	Score       int        `json:"score"`
	MaxScore    int        `json:"max_score"`
	Completed   bool       `json:"completed"`
	SuccessRate float64    `json:"success_rate"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
}

// QuestionResult is one row of a detailed attempt result, in original
// question order.
type QuestionResult struct {
	QuestionID    string       `json:"question_id"`
	Text          string       `json:"text"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correct_answer"`
	UserAnswer    string       `json:"user_answer"`
	IsCorrect     bool         `json:"is_correct"`
	Graded        bool         `json:"graded"`
	Explanation   string       `json:"explanation"`
	TimeTaken     int          `json:"time_taken"`
}

// AttemptResult is the full result view for a (usually completed)
// attempt.
type AttemptResult struct {
	AttemptID   string           `json:"attempt_id"`
	QuizID      string           `json:"quiz_id"`
	Title       string           `json:"title"`
	Score       int              `json:"score"`
	MaxScore    int              `json:"max_score"`
	SuccessRate float64          `json:"success_rate"`
	Completed   bool             `json:"completed"`
	StartTime   time.Time        `json:"start_time"`
	EndTime     *time.Time       `json:"end_time,omitempty"`
	Questions   []QuestionResult `json:"questions"`
}

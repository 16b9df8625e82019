package models

import "time"

// Interaction records one user touch on a content piece. Feedback
// interactions carry a 1-5 rating which is normalized into Score in
// [0,1] before feeding the proficiency tracker.
type Interaction struct {
	ID              string    `bson:"_id,omitempty" json:"id"`
	UserID          string    `bson:"user_id" json:"user_id"`
	ContentID       string    `bson:"content_id" json:"content_id"`
	InteractionType string    `bson:"interaction_type" json:"interaction_type"`
	FeedbackRating  *float64  `bson:"feedback_rating,omitempty" json:"feedback_rating,omitempty"`
	FeedbackComment string    `bson:"feedback_comment,omitempty" json:"feedback_comment,omitempty"`
	Score           *float64  `bson:"score,omitempty" json:"score,omitempty"`
	TimeSpent       int       `bson:"time_spent" json:"time_spent"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}

// ProgressStats aggregates a user's scored interactions.
type ProgressStats struct {
	TotalInteractions int     `json:"total_interactions"`
	ContentPieces     int     `json:"content_pieces_interacted"`
	AverageScore      float64 `json:"average_score"`
	PositiveFeedback  int     `json:"positive_feedback_count"`
}

// QuizStats aggregates a user's quiz attempts.
type QuizStats struct {
	TotalAttempts       int     `json:"total_attempts"`
	CompletedQuizzes    int     `json:"completed_quizzes"`
	AverageScore        float64 `json:"average_score"`
	TotalCorrectAnswers int     `json:"total_correct_answers"`
}

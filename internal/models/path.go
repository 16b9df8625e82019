package models

import "time"

type LearningPath struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	FocusSkills string    `bson:"focus_skills" json:"focus_skills"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// LearningPathItem orders a content piece within a path.
type LearningPathItem struct {
	PathID    string `bson:"path_id" json:"path_id"`
	ContentID string `bson:"content_id" json:"content_id"`
	Position  int    `bson:"position" json:"position"`
}

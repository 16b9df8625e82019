package models

import "time"

type Quiz struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	UserID      string    `bson:"user_id" json:"user_id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Topic       string    `bson:"topic" json:"topic"`
	Difficulty  string    `bson:"difficulty" json:"difficulty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

package models

import "time"

type ContentPiece struct {
	ID                    string    `bson:"_id,omitempty" json:"id"`
	Title                 string    `bson:"title" json:"title"`
	OriginalText          string    `bson:"original_text" json:"original_text"`
	StructuredDescription string    `bson:"structured_description" json:"structured_description"`
	Source                string    `bson:"source" json:"source"`
	Topic                 string    `bson:"topic" json:"topic"`
	CreatedAt             time.Time `bson:"created_at" json:"created_at"`
}

// ContentSkill links a content piece to a skill with a relevance score
// in [0,1], produced by the external content classifier. Read-only
// input to the feedback update rule.
type ContentSkill struct {
	ContentID string  `bson:"content_id" json:"content_id"`
	SkillID   string  `bson:"skill_id" json:"skill_id"`
	Relevance float64 `bson:"relevance" json:"relevance"`
}

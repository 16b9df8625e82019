package models

import "time"

type Skill struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Category  string    `bson:"category" json:"category"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// SkillProficiency is the per-(user, skill) mastery estimate. It is
// created on first update and mutated only by the proficiency tracker.
type SkillProficiency struct {
	UserID        string    `bson:"user_id" json:"user_id"`
	SkillID       string    `bson:"skill_id" json:"skill_id"`
	Proficiency   float64   `bson:"proficiency" json:"proficiency"`
	PracticeCount int       `bson:"practice_count" json:"practice_count"`
	LastUpdated   time.Time `bson:"last_updated" json:"last_updated"`
}

// RankedSkill joins a proficiency row with its skill for the
// weakest/strongest listings.
type RankedSkill struct {
	SkillID       string  `bson:"skill_id" json:"skill_id"`
	Name          string  `bson:"name" json:"name"`
	Category      string  `bson:"category" json:"category"`
	Proficiency   float64 `bson:"proficiency" json:"proficiency"`
	PracticeCount int     `bson:"practice_count" json:"practice_count"`
}

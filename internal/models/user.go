package models

import "time"

type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Username     string    `bson:"username" json:"username"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Email        string    `bson:"email,omitempty" json:"email,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	LastLogin    time.Time `bson:"last_login" json:"last_login"`
}

// Preferences tunes how adapted content is rendered for the user.
type Preferences struct {
	FontSize  int    `bson:"font_size" json:"font_size"`
	Contrast  string `bson:"contrast" json:"contrast"`
	ChunkSize int    `bson:"chunk_size" json:"chunk_size"`
}

// UserProfile is the declared learning profile content adaptation is
// driven by.
type UserProfile struct {
	UserID         string      `bson:"_id,omitempty" json:"user_id"`
	LearningStyle  string      `bson:"learning_style" json:"learning_style"`
	DisabilityType string      `bson:"disability_type" json:"disability_type"`
	Preferences    Preferences `bson:"preferences" json:"preferences"`
	LastUpdated    time.Time   `bson:"last_updated" json:"last_updated"`
}

// DefaultProfile is the profile assigned to new users and merged over
// partially stored profiles on read.
func DefaultProfile(userID string) *UserProfile {
	return &UserProfile{
		UserID:         userID,
		LearningStyle:  "Visual",
		DisabilityType: "None",
		Preferences: Preferences{
			FontSize:  12,
			Contrast:  "Standard",
			ChunkSize: 200,
		},
	}
}

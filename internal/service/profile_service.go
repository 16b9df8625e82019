package service

import (
	"context"
	"time"

	"adaptlearn-service/internal/models"
	"adaptlearn-service/internal/repository"
)

type ProfileService struct {
	Repo *repository.ProfileRepository
}

func NewProfileService(repo *repository.ProfileRepository) *ProfileService {
	return &ProfileService{Repo: repo}
}

// GetProfile returns the user's learning profile, filling unset fields
// with the defaults. A user with no stored profile gets the full
// default.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	stored, err := s.Repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := models.DefaultProfile(userID)
	if stored == nil {
		return profile, nil
	}
	if stored.LearningStyle != "" {
		profile.LearningStyle = stored.LearningStyle
	}
	if stored.DisabilityType != "" {
		profile.DisabilityType = stored.DisabilityType
	}
	if stored.Preferences.FontSize > 0 {
		profile.Preferences.FontSize = stored.Preferences.FontSize
	}
	if stored.Preferences.Contrast != "" {
		profile.Preferences.Contrast = stored.Preferences.Contrast
	}
	if stored.Preferences.ChunkSize > 0 {
		profile.Preferences.ChunkSize = stored.Preferences.ChunkSize
	}
	profile.LastUpdated = stored.LastUpdated
	return profile, nil
}

type UpdateProfileInput struct {
	LearningStyle  string `json:"learning_style,omitempty"`
	DisabilityType string `json:"disability_type,omitempty"`
	FontSize       int    `json:"font_size,omitempty"`
	Contrast       string `json:"contrast,omitempty"`
	ChunkSize      int    `json:"chunk_size,omitempty"`
}

// UpdateProfile merges the given fields over the stored profile.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*models.UserProfile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.LearningStyle != "" {
		profile.LearningStyle = input.LearningStyle
	}
	if input.DisabilityType != "" {
		profile.DisabilityType = input.DisabilityType
	}
	if input.FontSize > 0 {
		profile.Preferences.FontSize = input.FontSize
	}
	if input.Contrast != "" {
		profile.Preferences.Contrast = input.Contrast
	}
	if input.ChunkSize > 0 {
		profile.Preferences.ChunkSize = input.ChunkSize
	}
	profile.LastUpdated = time.Now().UTC()

	if err := s.Repo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"adaptlearn-service/internal/apperr"
	"adaptlearn-service/internal/event"
	"adaptlearn-service/internal/models"
	"adaptlearn-service/internal/proficiency"
	"adaptlearn-service/internal/repository"
)

type InteractionService struct {
	Repo        *repository.InteractionRepository
	ContentRepo *repository.ContentRepository
	Proficiency *ProficiencyService
	Publisher   *event.EventPublisher
}

func NewInteractionService(
	repo *repository.InteractionRepository,
	contentRepo *repository.ContentRepository,
	prof *ProficiencyService,
	publisher *event.EventPublisher,
) *InteractionService {
	return &InteractionService{
		Repo:        repo,
		ContentRepo: contentRepo,
		Proficiency: prof,
		Publisher:   publisher,
	}
}

type RecordInteractionInput struct {
	ContentID       string   `json:"content_id" binding:"required"`
	InteractionType string   `json:"interaction_type" binding:"required"`
	FeedbackRating  *float64 `json:"feedback_rating,omitempty"`
	FeedbackComment string   `json:"feedback_comment,omitempty"`
	TimeSpent       int      `json:"time_spent"`
}

// RecordInteraction stores the interaction and, for feedback carrying
// a rating, normalizes it to [0,1] and updates the linked skills.
func (s *InteractionService) RecordInteraction(ctx context.Context, userID string, input RecordInteractionInput) (*models.Interaction, error) {
	content, err := s.ContentRepo.FindByID(ctx, input.ContentID)
	if err != nil {
		return nil, apperr.Persistencef("load content %s", input.ContentID)
	}
	if content == nil {
		return nil, apperr.NotFoundf("content %s", input.ContentID)
	}

	interaction := &models.Interaction{
		ID:              uuid.New().String(),
		UserID:          userID,
		ContentID:       input.ContentID,
		InteractionType: input.InteractionType,
		FeedbackRating:  input.FeedbackRating,
		FeedbackComment: input.FeedbackComment,
		TimeSpent:       input.TimeSpent,
		CreatedAt:       time.Now().UTC(),
	}

	if input.InteractionType == "feedback" && input.FeedbackRating != nil {
		rating := *input.FeedbackRating
		if rating < 1 || rating > 5 {
			return nil, apperr.Validationf("feedback rating %v out of range 1-5", rating)
		}
		score := proficiency.Clamp((rating - 1) / 4)
		interaction.Score = &score
	}

	if err := s.Repo.Create(ctx, interaction); err != nil {
		return nil, apperr.Persistencef("store interaction")
	}

	if interaction.Score != nil {
		if err := s.Proficiency.ApplyFeedbackForContent(ctx, userID, input.ContentID, *interaction.Score); err != nil {
			// The interaction itself is stored; skill updates are best effort.
			log.Printf("feedback skill update failed for user %s content %s: %v", userID, input.ContentID, err)
		}
	}

	s.Publisher.Publish("interaction.recorded", map[string]interface{}{
		"user_id":          userID,
		"content_id":       input.ContentID,
		"interaction_type": input.InteractionType,
	})
	return interaction, nil
}

func (s *InteractionService) RecentInteractions(ctx context.Context, userID string, limit int) ([]models.Interaction, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.Repo.FindRecentByUser(ctx, userID, limit)
}

func (s *InteractionService) Progress(ctx context.Context, userID string) (*models.ProgressStats, error) {
	return s.Repo.Stats(ctx, userID)
}

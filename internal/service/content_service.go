package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"adaptlearn-service/internal/apperr"
	"adaptlearn-service/internal/event"
	"adaptlearn-service/internal/models"
	"adaptlearn-service/internal/proficiency"
	"adaptlearn-service/internal/repository"

	"github.com/google/uuid"
)

type ContentService struct {
	Repo      *repository.ContentRepository
	LinkRepo  *repository.ContentSkillRepository
	SkillRepo *repository.SkillRepository
	Publisher *event.EventPublisher
}

func NewContentService(
	repo *repository.ContentRepository,
	linkRepo *repository.ContentSkillRepository,
	skillRepo *repository.SkillRepository,
	publisher *event.EventPublisher,
) *ContentService {
	return &ContentService{
		Repo:      repo,
		LinkRepo:  linkRepo,
		SkillRepo: skillRepo,
		Publisher: publisher,
	}
}

// StoreContent persists a content piece handed in by the UI (pasted,
// generated or extracted upstream).
func (s *ContentService) StoreContent(ctx context.Context, title, text, description, source, topic string) (*models.ContentPiece, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperr.Validationf("content text must not be empty")
	}
	if source == "" {
		source = "pasted"
	}

	piece := &models.ContentPiece{
		ID:                    uuid.NewString(),
		Title:                 title,
		OriginalText:          text,
		StructuredDescription: description,
		Source:                source,
		Topic:                 topic,
		CreatedAt:             time.Now(),
	}
	if err := s.Repo.Create(ctx, piece); err != nil {
		return nil, fmt.Errorf("store content: %w", err)
	}
	return piece, nil
}

func (s *ContentService) GetContent(ctx context.Context, id string) (*models.ContentPiece, error) {
	piece, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if piece == nil {
		return nil, apperr.NotFoundf("content %s", id)
	}
	return piece, nil
}

// MapContentSkills records the external classifier's skill-relevance
// verdict for a content piece. Unknown skill names are created lazily
// with a guessed category; relevance is clamped to [0,1].
func (s *ContentService) MapContentSkills(ctx context.Context, contentID string, skillRelevance map[string]float64) error {
	piece, err := s.Repo.FindByID(ctx, contentID)
	if err != nil {
		return err
	}
	if piece == nil {
		return apperr.NotFoundf("content %s", contentID)
	}

	for name, relevance := range skillRelevance {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		skill, err := s.SkillRepo.EnsureByName(ctx, name, guessCategory(name))
		if err != nil {
			return fmt.Errorf("ensure skill %q: %w", name, err)
		}
		link := &models.ContentSkill{
			ContentID: contentID,
			SkillID:   skill.ID,
			Relevance: proficiency.Clamp(relevance),
		}
		if err := s.LinkRepo.Upsert(ctx, link); err != nil {
			return fmt.Errorf("link skill %q: %w", name, err)
		}
	}

	s.Publisher.Publish("content.skills_mapped", map[string]interface{}{
		"content_id": contentID,
		"skills":     len(skillRelevance),
	})
	return nil
}

// guessCategory buckets a new skill name by keyword. Anything
// unmatched lands in "general".
func guessCategory(name string) string {
	lower := strings.ToLower(name)
	switch {
	case containsAny(lower, "math", "algebra", "calc", "geom"):
		return "math"
	case containsAny(lower, "program", "code", "data", "algo", "loop", "func"):
		return "programming"
	case containsAny(lower, "comprehen", "read", "idea", "seq", "summar"):
		return "comprehension"
	}
	return "general"
}

func containsAny(s string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

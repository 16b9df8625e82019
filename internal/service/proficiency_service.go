package service

import (
	"context"
	"fmt"

	"adaptlearn-service/internal/event"
	"adaptlearn-service/internal/models"
	"adaptlearn-service/internal/proficiency"
	"adaptlearn-service/internal/repository"
)

// ProficiencyService wraps the proficiency tracker with persistence
// and the skill catalog.
type ProficiencyService struct {
	Tracker   *proficiency.Tracker
	Repo      *repository.ProficiencyRepository
	SkillRepo *repository.SkillRepository
	LinkRepo  *repository.ContentSkillRepository
	Publisher *event.EventPublisher
}

func NewProficiencyService(
	tracker *proficiency.Tracker,
	repo *repository.ProficiencyRepository,
	skillRepo *repository.SkillRepository,
	linkRepo *repository.ContentSkillRepository,
	publisher *event.EventPublisher,
) *ProficiencyService {
	return &ProficiencyService{
		Tracker:   tracker,
		Repo:      repo,
		SkillRepo: skillRepo,
		LinkRepo:  linkRepo,
		Publisher: publisher,
	}
}

// ApplyFeedbackForContent updates every skill linked to a content
// piece from a normalized feedback score. Content with no linked
// skills is a no-op.
func (s *ProficiencyService) ApplyFeedbackForContent(ctx context.Context, userID, contentID string, score float64) error {
	linkRows, err := s.LinkRepo.FindByContent(ctx, contentID)
	if err != nil {
		return fmt.Errorf("load content skills: %w", err)
	}
	if len(linkRows) == 0 {
		return nil
	}

	links := make([]proficiency.SkillRelevance, len(linkRows))
	for i, row := range linkRows {
		links[i] = proficiency.SkillRelevance{SkillID: row.SkillID, Relevance: row.Relevance}
	}

	err = s.Tracker.ApplyFeedback(ctx, userID, links, score)
	s.Publisher.Publish("skill.proficiency_updated", map[string]interface{}{
		"user_id":    userID,
		"content_id": contentID,
		"trigger":    "feedback",
		"skills":     len(links),
	})
	return err
}

// ApplyQuizOutcome applies the flat quiz-mastery adjustment for each
// given skill.
func (s *ProficiencyService) ApplyQuizOutcome(ctx context.Context, userID string, skillIDs []string, score, maxScore int) error {
	err := s.Tracker.ApplyQuizOutcome(ctx, userID, skillIDs, score, maxScore)
	s.Publisher.Publish("skill.proficiency_updated", map[string]interface{}{
		"user_id": userID,
		"trigger": "quiz_outcome",
		"skills":  len(skillIDs),
	})
	return err
}

func (s *ProficiencyService) Weakest(ctx context.Context, userID string, k int) ([]models.RankedSkill, error) {
	rows, err := s.Repo.Weakest(ctx, userID, k)
	if err != nil {
		return nil, err
	}
	return s.rank(ctx, rows)
}

func (s *ProficiencyService) Strongest(ctx context.Context, userID string, k int) ([]models.RankedSkill, error) {
	rows, err := s.Repo.Strongest(ctx, userID, k)
	if err != nil {
		return nil, err
	}
	return s.rank(ctx, rows)
}

func (s *ProficiencyService) UserSkills(ctx context.Context, userID string) ([]models.RankedSkill, error) {
	rows, err := s.Repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.rank(ctx, rows)
}

// rank joins proficiency rows with skill names, preserving row order.
func (s *ProficiencyService) rank(ctx context.Context, rows []models.SkillProficiency) ([]models.RankedSkill, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.SkillID
	}
	skills, err := s.SkillRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Skill, len(skills))
	for _, skill := range skills {
		byID[skill.ID] = skill
	}

	ranked := make([]models.RankedSkill, len(rows))
	for i, row := range rows {
		skill := byID[row.SkillID]
		ranked[i] = models.RankedSkill{
			SkillID:       row.SkillID,
			Name:          skill.Name,
			Category:      skill.Category,
			Proficiency:   row.Proficiency,
			PracticeCount: row.PracticeCount,
		}
	}
	return ranked, nil
}

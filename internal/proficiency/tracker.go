// Package proficiency maintains the per-(user, skill) mastery scores.
// Scores live in [0,1] and are clamped on every update. Two update
// rules exist and must stay separate: ApplyFeedback weights each
// skill's change by its content relevance, ApplyQuizOutcome applies
// one flat change to every skill a quiz touches.
package proficiency

import (
	"context"
	"fmt"
	"log"
	"time"

	"adaptlearn-service/internal/apperr"
	"adaptlearn-service/internal/models"
)

// SkillRelevance pairs a skill with how strongly a content piece
// exercises it.
type SkillRelevance struct {
	SkillID   string
	Relevance float64
}

// Store is the persistence contract the tracker needs: read-modify-
// write on a single (user, skill) row with upsert-by-key semantics.
type Store interface {
	Get(ctx context.Context, userID, skillID string) (*models.SkillProficiency, error)
	Upsert(ctx context.Context, row *models.SkillProficiency) error
}

type Tracker struct {
	config *Config
	store  Store
	clock  func() time.Time
}

func NewTracker(config *Config, store Store) *Tracker {
	if config == nil {
		config = DefaultConfig()
	}
	return &Tracker{config: config, store: store, clock: time.Now}
}

// WithClock overrides the timestamp source. Used by tests.
func (t *Tracker) WithClock(clock func() time.Time) *Tracker {
	t.clock = clock
	return t
}

// ApplyFeedback updates every skill linked to a content piece from a
// normalized feedback score in [0,1]. Scores outside the range are
// ignored without error. A failed upsert for one skill is logged and
// the remaining skills are still updated; the accumulated failure is
// reported after the loop.
func (t *Tracker) ApplyFeedback(ctx context.Context, userID string, links []SkillRelevance, score float64) error {
	if score < 0 || score > 1 {
		return nil
	}

	var failed int
	for _, link := range links {
		adjustment := FeedbackAdjustment(score, link.Relevance, t.config.FeedbackRate)
		if err := t.adjust(ctx, userID, link.SkillID, adjustment); err != nil {
			log.Printf("proficiency: feedback update for user=%s skill=%s failed: %v", userID, link.SkillID, err)
			failed++
		}
	}
	if failed > 0 {
		return apperr.Persistencef("feedback update failed for %d of %d skills", failed, len(links))
	}
	return nil
}

// ApplyQuizOutcome applies the flat quiz-mastery adjustment to every
// distinct skill the quiz's questions reference. maxScore must be
// positive; a non-positive maxScore is a no-op.
func (t *Tracker) ApplyQuizOutcome(ctx context.Context, userID string, skillIDs []string, score, maxScore int) error {
	if maxScore <= 0 {
		return nil
	}

	successRate := float64(score) / float64(maxScore)
	adjustment := OutcomeAdjustment(successRate, t.config.QuizSwing)

	var failed int
	for _, skillID := range skillIDs {
		if err := t.adjust(ctx, userID, skillID, adjustment); err != nil {
			log.Printf("proficiency: quiz outcome update for user=%s skill=%s failed: %v", userID, skillID, err)
			failed++
		}
	}
	if failed > 0 {
		return apperr.Persistencef("quiz outcome update failed for %d of %d skills", failed, len(skillIDs))
	}
	return nil
}

// adjust performs one read-modify-write cycle on a proficiency row.
// Missing rows start at proficiency 0.0 with practice count 0.
func (t *Tracker) adjust(ctx context.Context, userID, skillID string, adjustment float64) error {
	row, err := t.store.Get(ctx, userID, skillID)
	if err != nil {
		return fmt.Errorf("load proficiency: %w", err)
	}
	if row == nil {
		row = &models.SkillProficiency{
			UserID:  userID,
			SkillID: skillID,
		}
	}

	row.Proficiency = Clamp(row.Proficiency + adjustment)
	row.PracticeCount++
	row.LastUpdated = t.clock()

	if err := t.store.Upsert(ctx, row); err != nil {
		return fmt.Errorf("upsert proficiency: %w", err)
	}
	return nil
}

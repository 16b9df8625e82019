// Package recommend ranks quizzes and content against a user's
// weakest skills. Weaker skills weigh more, so items that exercise the
// skills the user most needs to practice surface first. Ordering is
// deterministic for reproducible listings.
package recommend

import (
	"sort"

	"adaptlearn-service/internal/models"
)

type scoredItem struct {
	id     string
	weight float64
}

// skillWeights maps each weak skill to its weight: the further the
// proficiency is from mastery, the heavier the skill.
func skillWeights(weak []models.RankedSkill) map[string]float64 {
	weights := make(map[string]float64, len(weak))
	for _, s := range weak {
		weights[s.SkillID] = 1.0 - s.Proficiency
	}
	return weights
}

// RankQuizzes orders candidate quizzes by how strongly their questions
// target the user's weak skills. quizSkills maps quiz id to the
// distinct skills its questions reference; quizzes in exclude (already
// completed) are dropped. Quizzes matching no weak skill are dropped.
func RankQuizzes(
	quizzes []models.Quiz,
	quizSkills map[string][]string,
	weak []models.RankedSkill,
	exclude map[string]bool,
	limit int,
) []models.Quiz {
	weights := skillWeights(weak)

	byID := make(map[string]models.Quiz, len(quizzes))
	var scored []scoredItem
	for _, quiz := range quizzes {
		if exclude[quiz.ID] {
			continue
		}
		weight := 0.0
		for _, skillID := range quizSkills[quiz.ID] {
			weight += weights[skillID]
		}
		if weight == 0 {
			continue
		}
		byID[quiz.ID] = quiz
		scored = append(scored, scoredItem{id: quiz.ID, weight: weight})
	}

	sortScored(scored)

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	result := make([]models.Quiz, len(scored))
	for i, item := range scored {
		result[i] = byID[item.id]
	}
	return result
}

// RankContent orders content pieces by weak-skill relevance. links
// holds the classifier's (content, skill, relevance) rows; content in
// seen (already interacted with) is dropped.
func RankContent(
	pieces []models.ContentPiece,
	links []models.ContentSkill,
	weak []models.RankedSkill,
	seen map[string]bool,
	limit int,
) []models.ContentPiece {
	weights := skillWeights(weak)

	contentWeight := make(map[string]float64)
	for _, link := range links {
		if w, ok := weights[link.SkillID]; ok {
			contentWeight[link.ContentID] += w * link.Relevance
		}
	}

	byID := make(map[string]models.ContentPiece, len(pieces))
	var scored []scoredItem
	for _, piece := range pieces {
		if seen[piece.ID] {
			continue
		}
		weight := contentWeight[piece.ID]
		if weight == 0 {
			continue
		}
		byID[piece.ID] = piece
		scored = append(scored, scoredItem{id: piece.ID, weight: weight})
	}

	sortScored(scored)

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	result := make([]models.ContentPiece, len(scored))
	for i, item := range scored {
		result[i] = byID[item.id]
	}
	return result
}

// sortScored orders by descending weight, breaking ties by id so the
// ranking is stable across calls.
func sortScored(scored []scoredItem) {
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].weight != scored[j].weight {
			return scored[i].weight > scored[j].weight
		}
		return scored[i].id < scored[j].id
	})
}

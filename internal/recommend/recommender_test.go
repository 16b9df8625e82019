package recommend

import (
	"testing"

	"adaptlearn-service/internal/models"
)

func TestRankQuizzes_WeakestSkillsFirst(t *testing.T) {
	quizzes := []models.Quiz{
		{ID: "quiz-a", Title: "Fractions"},
		{ID: "quiz-b", Title: "Loops"},
		{ID: "quiz-c", Title: "History"},
	}
	quizSkills := map[string][]string{
		"quiz-a": {"fractions"},
		"quiz-b": {"loops"},
		"quiz-c": {"history"},
	}
	weak := []models.RankedSkill{
		{SkillID: "fractions", Proficiency: 0.1, PracticeCount: 4},
		{SkillID: "loops", Proficiency: 0.4, PracticeCount: 2},
	}

	ranked := RankQuizzes(quizzes, quizSkills, weak, nil, 5)
	if len(ranked) != 2 {
		t.Fatalf("Expected 2 recommendations, got %d", len(ranked))
	}
	if ranked[0].ID != "quiz-a" {
		t.Errorf("Expected the weakest-skill quiz first, got %s", ranked[0].ID)
	}
	if ranked[1].ID != "quiz-b" {
		t.Errorf("Expected quiz-b second, got %s", ranked[1].ID)
	}
}

func TestRankQuizzes_ExcludesCompleted(t *testing.T) {
	quizzes := []models.Quiz{
		{ID: "quiz-a"},
		{ID: "quiz-b"},
	}
	quizSkills := map[string][]string{
		"quiz-a": {"fractions"},
		"quiz-b": {"fractions"},
	}
	weak := []models.RankedSkill{{SkillID: "fractions", Proficiency: 0.2}}

	ranked := RankQuizzes(quizzes, quizSkills, weak, map[string]bool{"quiz-a": true}, 5)
	if len(ranked) != 1 || ranked[0].ID != "quiz-b" {
		t.Errorf("Expected only quiz-b, got %v", ranked)
	}
}

func TestRankQuizzes_DeterministicTieBreak(t *testing.T) {
	quizzes := []models.Quiz{
		{ID: "quiz-b"},
		{ID: "quiz-a"},
	}
	quizSkills := map[string][]string{
		"quiz-a": {"loops"},
		"quiz-b": {"loops"},
	}
	weak := []models.RankedSkill{{SkillID: "loops", Proficiency: 0.3}}

	for i := 0; i < 10; i++ {
		ranked := RankQuizzes(quizzes, quizSkills, weak, nil, 5)
		if ranked[0].ID != "quiz-a" {
			t.Fatalf("Iteration %d: expected stable tie-break by id, got %s first", i, ranked[0].ID)
		}
	}
}

func TestRankContent_WeighsRelevance(t *testing.T) {
	pieces := []models.ContentPiece{
		{ID: "c1", Title: "Intro to fractions"},
		{ID: "c2", Title: "Fractions deep dive"},
		{ID: "c3", Title: "Unrelated"},
	}
	links := []models.ContentSkill{
		{ContentID: "c1", SkillID: "fractions", Relevance: 0.3},
		{ContentID: "c2", SkillID: "fractions", Relevance: 0.9},
		{ContentID: "c3", SkillID: "history", Relevance: 1.0},
	}
	weak := []models.RankedSkill{{SkillID: "fractions", Proficiency: 0.2}}

	ranked := RankContent(pieces, links, weak, nil, 5)
	if len(ranked) != 2 {
		t.Fatalf("Expected 2 pieces, got %d", len(ranked))
	}
	if ranked[0].ID != "c2" {
		t.Errorf("Expected most relevant piece first, got %s", ranked[0].ID)
	}
}

func TestRankContent_SkipsSeenAndHonorsLimit(t *testing.T) {
	pieces := []models.ContentPiece{
		{ID: "c1"}, {ID: "c2"}, {ID: "c3"},
	}
	links := []models.ContentSkill{
		{ContentID: "c1", SkillID: "loops", Relevance: 1.0},
		{ContentID: "c2", SkillID: "loops", Relevance: 0.8},
		{ContentID: "c3", SkillID: "loops", Relevance: 0.6},
	}
	weak := []models.RankedSkill{{SkillID: "loops", Proficiency: 0.0}}

	ranked := RankContent(pieces, links, weak, map[string]bool{"c1": true}, 1)
	if len(ranked) != 1 {
		t.Fatalf("Expected limit to cap results at 1, got %d", len(ranked))
	}
	if ranked[0].ID != "c2" {
		t.Errorf("Expected c2 (c1 seen), got %s", ranked[0].ID)
	}
}

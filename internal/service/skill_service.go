package service

import (
	"context"
	"log"

	"adaptlearn-service/internal/apperr"
	"adaptlearn-service/internal/models"
	"adaptlearn-service/internal/repository"
)

type SkillService struct {
	Repo *repository.SkillRepository
}

func NewSkillService(repo *repository.SkillRepository) *SkillService {
	return &SkillService{Repo: repo}
}

func (s *SkillService) GetAllSkills(ctx context.Context) ([]models.Skill, error) {
	return s.Repo.FindAll(ctx)
}

func (s *SkillService) GetSkillByID(ctx context.Context, id string) (*models.Skill, error) {
	skill, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if skill == nil {
		return nil, apperr.NotFoundf("skill %s", id)
	}
	return skill, nil
}

func (s *SkillService) GetSkillsByCategory(ctx context.Context, category string) ([]models.Skill, error) {
	return s.Repo.FindByCategory(ctx, category)
}

// seedSkills is the starter catalog inserted on first boot.
var seedSkills = []struct {
	name     string
	category string
}{
	{"Main Idea", "comprehension"},
	{"Sequencing", "comprehension"},
	{"Cause/Effect", "comprehension"},
	{"Compare/Contrast", "comprehension"},
	{"Problem Solving", "logic"},
	{"Vocabulary", "language"},
	{"Sentence Structure", "language"},
	{"Paragraph Structure", "language"},
	{"Arithmetic", "math"},
	{"Fractions", "math"},
	{"Percentages", "math"},
	{"Algebra", "math"},
	{"Geometry", "math"},
	{"Sci Method", "science"},
	{"Photosynthesis", "biology"},
	{"Newton Laws", "physics"},
	{"Arrays/Lists", "programming"},
	{"Loops", "programming"},
	{"Conditionals", "programming"},
	{"Functions", "programming"},
	{"OOP", "programming"},
	{"Data Structures", "programming"},
	{"Algorithms", "programming"},
	{"String Ops", "programming"},
	{"Recursion", "programming"},
}

// SeedDefaultSkills inserts the starter skills. Idempotent: existing
// names are left untouched.
func (s *SkillService) SeedDefaultSkills(ctx context.Context) {
	for _, seed := range seedSkills {
		if _, err := s.Repo.EnsureByName(ctx, seed.name, seed.category); err != nil {
			log.Printf("skill seeding: %s: %v", seed.name, err)
		}
	}
}

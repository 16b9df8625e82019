package service

import (
	"context"

	"adaptlearn-service/internal/models"
	"adaptlearn-service/internal/recommend"
	"adaptlearn-service/internal/repository"
)

// RecommendationService surfaces quizzes and content targeting the
// user's weakest skills.
type RecommendationService struct {
	Proficiency     *ProficiencyService
	QuizRepo        *repository.QuizRepository
	QuestionRepo    *repository.QuestionRepository
	AttemptRepo     *repository.AttemptRepository
	ContentRepo     *repository.ContentRepository
	LinkRepo        *repository.ContentSkillRepository
	InteractionRepo *repository.InteractionRepository
}

func NewRecommendationService(
	prof *ProficiencyService,
	quizRepo *repository.QuizRepository,
	questionRepo *repository.QuestionRepository,
	attemptRepo *repository.AttemptRepository,
	contentRepo *repository.ContentRepository,
	linkRepo *repository.ContentSkillRepository,
	interactionRepo *repository.InteractionRepository,
) *RecommendationService {
	return &RecommendationService{
		Proficiency:     prof,
		QuizRepo:        quizRepo,
		QuestionRepo:    questionRepo,
		AttemptRepo:     attemptRepo,
		ContentRepo:     contentRepo,
		LinkRepo:        linkRepo,
		InteractionRepo: interactionRepo,
	}
}

const weakSkillPool = 5

// RecommendedQuizzes ranks not-yet-completed quizzes against the
// user's weakest practiced skills. A user with no practiced skills
// gets an empty list.
func (s *RecommendationService) RecommendedQuizzes(ctx context.Context, userID string, limit int) ([]models.Quiz, error) {
	if limit <= 0 {
		limit = 5
	}

	weak, err := s.Proficiency.Weakest(ctx, userID, weakSkillPool)
	if err != nil {
		return nil, err
	}
	if len(weak) == 0 {
		return nil, nil
	}

	quizzes, err := s.QuizRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(quizzes) == 0 {
		return nil, nil
	}

	quizIDs := make([]string, len(quizzes))
	for i, q := range quizzes {
		quizIDs[i] = q.ID
	}
	quizSkills, err := s.QuestionRepo.SkillIDsByQuiz(ctx, quizIDs)
	if err != nil {
		return nil, err
	}
	completed, err := s.AttemptRepo.CompletedQuizIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	return recommend.RankQuizzes(quizzes, quizSkills, weak, completed, limit), nil
}

// RecommendedContent ranks unseen content by weak-skill relevance.
func (s *RecommendationService) RecommendedContent(ctx context.Context, userID string, limit int) ([]models.ContentPiece, error) {
	if limit <= 0 {
		limit = 5
	}

	weak, err := s.Proficiency.Weakest(ctx, userID, weakSkillPool)
	if err != nil {
		return nil, err
	}
	if len(weak) == 0 {
		return nil, nil
	}

	skillIDs := make([]string, len(weak))
	for i, skill := range weak {
		skillIDs[i] = skill.SkillID
	}
	links, err := s.LinkRepo.FindBySkills(ctx, skillIDs)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, nil
	}

	pieces, err := s.ContentRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	seen, err := s.InteractionRepo.SeenContentIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	return recommend.RankContent(pieces, links, weak, seen, limit), nil
}

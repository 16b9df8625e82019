package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"adaptlearn-service/internal/apperr"
	"adaptlearn-service/internal/event"
	"adaptlearn-service/internal/models"
	"adaptlearn-service/internal/repository"
)

type QuizService struct {
	Repo         *repository.QuizRepository
	QuestionRepo *repository.QuestionRepository
	AttemptRepo  *repository.AttemptRepository
	ResponseRepo *repository.ResponseRepository
	SkillRepo    *repository.SkillRepository
	Publisher    *event.EventPublisher
}

func NewQuizService(
	repo *repository.QuizRepository,
	questionRepo *repository.QuestionRepository,
	attemptRepo *repository.AttemptRepository,
	responseRepo *repository.ResponseRepository,
	skillRepo *repository.SkillRepository,
	publisher *event.EventPublisher,
) *QuizService {
	return &QuizService{
		Repo:         repo,
		QuestionRepo: questionRepo,
		AttemptRepo:  attemptRepo,
		ResponseRepo: responseRepo,
		SkillRepo:    skillRepo,
		Publisher:    publisher,
	}
}

// QuestionInput is one question as the quiz generator emits it. Type
// labels are loose ("Multiple Choice", "true/false") and SkillName is
// a free-text tag resolved against the skill catalog.
type QuestionInput struct {
	Text           string   `json:"text" binding:"required"`
	Type           string   `json:"type" binding:"required"`
	Options        []string `json:"options,omitempty"`
	CorrectAnswer  string   `json:"correct_answer"`
	Explanation    string   `json:"explanation,omitempty"`
	AdaptationType string   `json:"adaptation_type,omitempty"`
	SkillName      string   `json:"skill_name,omitempty"`
}

type CreateQuizInput struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description,omitempty"`
	Topic       string          `json:"topic,omitempty"`
	Difficulty  string          `json:"difficulty,omitempty"`
	Questions   []QuestionInput `json:"questions" binding:"required"`
}

type QuizWithQuestions struct {
	Quiz      models.Quiz       `json:"quiz"`
	Questions []models.Question `json:"questions"`
}

// CreateQuiz stores a generated quiz and its questions. Question
// positions follow input order; skill tags are resolved to catalog
// skills, creating unknown ones lazily.
func (s *QuizService) CreateQuiz(ctx context.Context, userID string, input CreateQuizInput) (*QuizWithQuestions, error) {
	if len(input.Questions) == 0 {
		return nil, apperr.Validationf("quiz must have at least one question")
	}

	quiz := &models.Quiz{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Topic:       input.Topic,
		Difficulty:  input.Difficulty,
		CreatedAt:   time.Now().UTC(),
	}

	questions := make([]models.Question, 0, len(input.Questions))
	for i, q := range input.Questions {
		qt, ok := models.ParseQuestionType(q.Type)
		if !ok {
			return nil, apperr.Validationf("question %d has unknown type %q", i+1, q.Type)
		}
		options := q.Options
		if qt == models.TrueFalse {
			options = models.TrueFalseOptions
		}
		if qt == models.MultipleChoice && len(options) == 0 {
			return nil, apperr.Validationf("question %d has no options", i+1)
		}

		skillID := ""
		if name := strings.TrimSpace(q.SkillName); name != "" {
			skill, err := s.SkillRepo.EnsureByName(ctx, name, guessCategory(name))
			if err != nil {
				return nil, apperr.Persistencef("resolve skill %q", name)
			}
			skillID = skill.ID
		}

		questions = append(questions, models.Question{
			ID:             uuid.NewString(),
			QuizID:         quiz.ID,
			Text:           q.Text,
			Type:           qt,
			Options:        options,
			CorrectAnswer:  q.CorrectAnswer,
			Explanation:    q.Explanation,
			AdaptationType: q.AdaptationType,
			SkillID:        skillID,
			Position:       i,
		})
	}

	if err := s.Repo.Create(ctx, quiz); err != nil {
		return nil, apperr.Persistencef("store quiz")
	}
	if err := s.QuestionRepo.CreateMany(ctx, questions); err != nil {
		return nil, apperr.Persistencef("store questions")
	}

	s.Publisher.Publish("quiz.created", map[string]interface{}{
		"quiz_id":   quiz.ID,
		"user_id":   userID,
		"questions": len(questions),
	})
	return &QuizWithQuestions{Quiz: *quiz, Questions: questions}, nil
}

func (s *QuizService) GetQuizWithQuestions(ctx context.Context, quizID string) (*QuizWithQuestions, error) {
	quiz, err := s.Repo.FindByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, apperr.NotFoundf("quiz %s", quizID)
	}
	questions, err := s.QuestionRepo.FindByQuizID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	return &QuizWithQuestions{Quiz: *quiz, Questions: questions}, nil
}

func (s *QuizService) UserQuizzes(ctx context.Context, userID string, limit int) ([]models.Quiz, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.Repo.FindByUser(ctx, userID, limit)
}

// Stats combines attempt aggregates with the user's lifetime correct
// answer count.
func (s *QuizService) Stats(ctx context.Context, userID string) (*models.QuizStats, error) {
	stats, err := s.AttemptRepo.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}
	correct, err := s.ResponseRepo.CountCorrectByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats.TotalCorrectAnswers = correct
	return stats, nil
}

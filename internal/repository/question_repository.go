package repository

import (
	"context"

	"adaptlearn-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type QuestionRepository struct {
	Col *mongo.Collection
}

func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{Col: db.Collection("questions")}
}

func (r *QuestionRepository) CreateMany(ctx context.Context, questions []models.Question) error {
	if len(questions) == 0 {
		return nil
	}
	docs := make([]interface{}, len(questions))
	for i := range questions {
		docs[i] = questions[i]
	}
	_, err := r.Col.InsertMany(ctx, docs)
	return err
}

// FindByQuizID returns a quiz's questions in display order.
func (r *QuestionRepository) FindByQuizID(ctx context.Context, quizID string) ([]models.Question, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cur, err := r.Col.Find(ctx, bson.M{"quiz_id": quizID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var questions []models.Question
	for cur.Next(ctx) {
		var q models.Question
		if err := cur.Decode(&q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// SkillIDsByQuiz maps each given quiz to its distinct skill ids.
func (r *QuestionRepository) SkillIDsByQuiz(ctx context.Context, quizIDs []string) (map[string][]string, error) {
	cur, err := r.Col.Find(ctx, bson.M{"quiz_id": bson.M{"$in": quizIDs}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	result := make(map[string][]string)
	seen := make(map[string]map[string]bool)
	for cur.Next(ctx) {
		var q models.Question
		if err := cur.Decode(&q); err != nil {
			return nil, err
		}
		if q.SkillID == "" {
			continue
		}
		if seen[q.QuizID] == nil {
			seen[q.QuizID] = make(map[string]bool)
		}
		if !seen[q.QuizID][q.SkillID] {
			seen[q.QuizID][q.SkillID] = true
			result[q.QuizID] = append(result[q.QuizID], q.SkillID)
		}
	}
	return result, nil
}

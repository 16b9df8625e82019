package repository

import (
	"context"

	"adaptlearn-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AttemptRepository struct {
	Col *mongo.Collection
}

func NewAttemptRepository(db *mongo.Database) *AttemptRepository {
	return &AttemptRepository{Col: db.Collection("quiz_attempts")}
}

func (r *AttemptRepository) Create(ctx context.Context, attempt *models.QuizAttempt) error {
	_, err := r.Col.InsertOne(ctx, attempt)
	return err
}

func (r *AttemptRepository) FindByID(ctx context.Context, id string) (*models.QuizAttempt, error) {
	var attempt models.QuizAttempt
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&attempt)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &attempt, nil
}

// UpdateScore stores the recomputed score for an in-flight attempt.
func (r *AttemptRepository) UpdateScore(ctx context.Context, id string, score int) error {
	_, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"score": score}})
	return err
}

// MarkCompleted flips completed and stamps the end time in one write.
// The filter guards the false-to-true transition: a second call
// matches nothing.
func (r *AttemptRepository) MarkCompleted(ctx context.Context, attempt *models.QuizAttempt) error {
	filter := bson.M{"_id": attempt.ID, "completed": false}
	update := bson.M{"$set": bson.M{
		"completed": true,
		"score":     attempt.Score,
		"end_time":  attempt.EndTime,
	}}
	res, err := r.Col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *AttemptRepository) FindByUser(ctx context.Context, userID string, limit int) ([]models.QuizAttempt, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.Col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var attempts []models.QuizAttempt
	for cur.Next(ctx) {
		var a models.QuizAttempt
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, nil
}

// CompletedQuizIDs returns the quizzes the user has finished at least
// once.
func (r *AttemptRepository) CompletedQuizIDs(ctx context.Context, userID string) (map[string]bool, error) {
	filter := bson.M{"user_id": userID, "completed": true}
	values, err := r.Col.Distinct(ctx, "quiz_id", filter)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]bool, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			ids[s] = true
		}
	}
	return ids, nil
}

// Stats aggregates a user's attempts: totals, completions and the
// average success rate over completed attempts.
func (r *AttemptRepository) Stats(ctx context.Context, userID string) (*models.QuizStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$group", Value: bson.M{
			"_id":      nil,
			"attempts": bson.M{"$sum": 1},
			"completions": bson.M{"$sum": bson.M{
				"$cond": bson.A{"$completed", 1, 0},
			}},
			"avg_score": bson.M{"$avg": bson.M{
				"$cond": bson.A{
					bson.M{"$and": bson.A{
						"$completed",
						bson.M{"$gt": bson.A{"$max_score", 0}},
					}},
					bson.M{"$divide": bson.A{"$score", "$max_score"}},
					nil,
				},
			}},
		}}},
	}

	cur, err := r.Col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	stats := &models.QuizStats{}
	if cur.Next(ctx) {
		var row struct {
			Attempts    int      `bson:"attempts"`
			Completions int      `bson:"completions"`
			AvgScore    *float64 `bson:"avg_score"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		stats.TotalAttempts = row.Attempts
		stats.CompletedQuizzes = row.Completions
		if row.AvgScore != nil {
			stats.AverageScore = *row.AvgScore
		}
	}
	return stats, nil
}

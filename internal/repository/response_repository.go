package repository

import (
	"context"

	"adaptlearn-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ResponseRepository is the append-only store for question responses.
// Rows are never updated or deleted.
type ResponseRepository struct {
	Col *mongo.Collection
}

func NewResponseRepository(db *mongo.Database) *ResponseRepository {
	return &ResponseRepository{Col: db.Collection("quiz_responses")}
}

func (r *ResponseRepository) Create(ctx context.Context, response *models.QuestionResponse) error {
	_, err := r.Col.InsertOne(ctx, response)
	return err
}

// FindByAttempt returns an attempt's responses in the order they were
// answered.
func (r *ResponseRepository) FindByAttempt(ctx context.Context, attemptID string) ([]models.QuestionResponse, error) {
	opts := options.Find().SetSort(bson.D{{Key: "answered_at", Value: 1}})
	cur, err := r.Col.Find(ctx, bson.M{"attempt_id": attemptID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var responses []models.QuestionResponse
	for cur.Next(ctx) {
		var resp models.QuestionResponse
		if err := cur.Decode(&resp); err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// CountCorrectByUser counts all correct responses across a user's
// attempts.
func (r *ResponseRepository) CountCorrectByUser(ctx context.Context, userID string) (int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"is_correct": true}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "quiz_attempts",
			"localField":   "attempt_id",
			"foreignField": "_id",
			"as":           "attempt",
		}}},
		{{Key: "$unwind", Value: "$attempt"}},
		{{Key: "$match", Value: bson.M{"attempt.user_id": userID}}},
		{{Key: "$count", Value: "correct"}},
	}

	cur, err := r.Col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	if cur.Next(ctx) {
		var row struct {
			Correct int `bson:"correct"`
		}
		if err := cur.Decode(&row); err != nil {
			return 0, err
		}
		return row.Correct, nil
	}
	return 0, nil
}

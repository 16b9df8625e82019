package repository

import (
	"context"

	"adaptlearn-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type InteractionRepository struct {
	Col *mongo.Collection
}

func NewInteractionRepository(db *mongo.Database) *InteractionRepository {
	return &InteractionRepository{Col: db.Collection("interactions")}
}

func (r *InteractionRepository) Create(ctx context.Context, interaction *models.Interaction) error {
	_, err := r.Col.InsertOne(ctx, interaction)
	return err
}

func (r *InteractionRepository) FindRecentByUser(ctx context.Context, userID string, limit int) ([]models.Interaction, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.Col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var interactions []models.Interaction
	for cur.Next(ctx) {
		var i models.Interaction
		if err := cur.Decode(&i); err != nil {
			return nil, err
		}
		interactions = append(interactions, i)
	}
	return interactions, nil
}

// SeenContentIDs returns the content pieces the user has already
// interacted with.
func (r *InteractionRepository) SeenContentIDs(ctx context.Context, userID string) (map[string]bool, error) {
	values, err := r.Col.Distinct(ctx, "content_id", bson.M{"user_id": userID})
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

// Stats aggregates a user's scored interactions.
func (r *InteractionRepository) Stats(ctx context.Context, userID string) (*models.ProgressStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID, "score": bson.M{"$ne": nil}}}},
		{{Key: "$group", Value: bson.M{
			"_id":       nil,
			"total":     bson.M{"$sum": 1},
			"contents":  bson.M{"$addToSet": "$content_id"},
			"avg_score": bson.M{"$avg": "$score"},
			"positive": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$gte": bson.A{"$feedback_rating", 4}}, 1, 0},
			}},
		}}},
	}

	cur, err := r.Col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	stats := &models.ProgressStats{}
	if cur.Next(ctx) {
		var row struct {
			Total    int      `bson:"total"`
			Contents []string `bson:"contents"`
			AvgScore *float64 `bson:"avg_score"`
			Positive int      `bson:"positive"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		stats.TotalInteractions = row.Total
		stats.ContentPieces = len(row.Contents)
		if row.AvgScore != nil {
			stats.AverageScore = *row.AvgScore
		}
		stats.PositiveFeedback = row.Positive
	}
	return stats, nil
}

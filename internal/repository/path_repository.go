package repository

import (
	"context"

	"adaptlearn-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PathRepository struct {
	Col      *mongo.Collection
	ItemsCol *mongo.Collection
}

func NewPathRepository(db *mongo.Database) *PathRepository {
	return &PathRepository{
		Col:      db.Collection("learning_paths"),
		ItemsCol: db.Collection("learning_path_items"),
	}
}

func (r *PathRepository) Create(ctx context.Context, path *models.LearningPath) error {
	_, err := r.Col.InsertOne(ctx, path)
	return err
}

func (r *PathRepository) FindByID(ctx context.Context, id string) (*models.LearningPath, error) {
	var path models.LearningPath
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&path)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &path, nil
}

func (r *PathRepository) FindByUser(ctx context.Context, userID string) ([]models.LearningPath, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.Col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var paths []models.LearningPath
	for cur.Next(ctx) {
		var p models.LearningPath
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// UpsertItem places a content piece at a position in a path, replacing
// any previous placement of the same piece.
func (r *PathRepository) UpsertItem(ctx context.Context, item *models.LearningPathItem) error {
	filter := bson.M{"path_id": item.PathID, "content_id": item.ContentID}
	update := bson.M{"$set": bson.M{"position": item.Position}}
	_, err := r.ItemsCol.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// FindItems returns a path's items in position order.
func (r *PathRepository) FindItems(ctx context.Context, pathID string) ([]models.LearningPathItem, error) {
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cur, err := r.ItemsCol.Find(ctx, bson.M{"path_id": pathID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.LearningPathItem
	for cur.Next(ctx) {
		var item models.LearningPathItem
		if err := cur.Decode(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

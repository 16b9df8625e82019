package repository

import (
	"context"

	"adaptlearn-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ContentRepository struct {
	Col *mongo.Collection
}

func NewContentRepository(db *mongo.Database) *ContentRepository {
	return &ContentRepository{Col: db.Collection("content_pieces")}
}

func (r *ContentRepository) Create(ctx context.Context, piece *models.ContentPiece) error {
	_, err := r.Col.InsertOne(ctx, piece)
	return err
}

func (r *ContentRepository) FindByID(ctx context.Context, id string) (*models.ContentPiece, error) {
	var piece models.ContentPiece
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&piece)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &piece, nil
}

func (r *ContentRepository) FindAll(ctx context.Context) ([]models.ContentPiece, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.Col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var pieces []models.ContentPiece
	for cur.Next(ctx) {
		var piece models.ContentPiece
		if err := cur.Decode(&piece); err != nil {
			return nil, err
		}
		pieces = append(pieces, piece)
	}
	return pieces, nil
}

// ContentSkillRepository holds the classifier's (content, skill,
// relevance) mapping.
type ContentSkillRepository struct {
	Col *mongo.Collection
}

func NewContentSkillRepository(db *mongo.Database) *ContentSkillRepository {
	return &ContentSkillRepository{Col: db.Collection("content_skills")}
}

// Upsert replaces the relevance for a (content, skill) pair.
func (r *ContentSkillRepository) Upsert(ctx context.Context, link *models.ContentSkill) error {
	filter := bson.M{"content_id": link.ContentID, "skill_id": link.SkillID}
	update := bson.M{"$set": bson.M{"relevance": link.Relevance}}
	_, err := r.Col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *ContentSkillRepository) FindByContent(ctx context.Context, contentID string) ([]models.ContentSkill, error) {
	cur, err := r.Col.Find(ctx, bson.M{"content_id": contentID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var links []models.ContentSkill
	for cur.Next(ctx) {
		var link models.ContentSkill
		if err := cur.Decode(&link); err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, nil
}

func (r *ContentSkillRepository) FindBySkills(ctx context.Context, skillIDs []string) ([]models.ContentSkill, error) {
	cur, err := r.Col.Find(ctx, bson.M{"skill_id": bson.M{"$in": skillIDs}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var links []models.ContentSkill
	for cur.Next(ctx) {
		var link models.ContentSkill
		if err := cur.Decode(&link); err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, nil
}

package repository

import (
	"context"
	"time"

	"adaptlearn-service/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SkillRepository struct {
	Col *mongo.Collection
}

func NewSkillRepository(db *mongo.Database) *SkillRepository {
	return &SkillRepository{Col: db.Collection("skills")}
}

func (r *SkillRepository) FindByID(ctx context.Context, id string) (*models.Skill, error) {
	var skill models.Skill
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&skill)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &skill, nil
}

func (r *SkillRepository) FindByName(ctx context.Context, name string) (*models.Skill, error) {
	var skill models.Skill
	err := r.Col.FindOne(ctx, bson.M{"name": name}).Decode(&skill)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &skill, nil
}

func (r *SkillRepository) FindByIDs(ctx context.Context, ids []string) ([]models.Skill, error) {
	cur, err := r.Col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var skills []models.Skill
	for cur.Next(ctx) {
		var skill models.Skill
		if err := cur.Decode(&skill); err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}
	return skills, nil
}

func (r *SkillRepository) FindAll(ctx context.Context) ([]models.Skill, error) {
	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}})
	cur, err := r.Col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var skills []models.Skill
	for cur.Next(ctx) {
		var skill models.Skill
		if err := cur.Decode(&skill); err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}
	return skills, nil
}

func (r *SkillRepository) FindByCategory(ctx context.Context, category string) ([]models.Skill, error) {
	cur, err := r.Col.Find(ctx, bson.M{"category": category})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var skills []models.Skill
	for cur.Next(ctx) {
		var skill models.Skill
		if err := cur.Decode(&skill); err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}
	return skills, nil
}

// EnsureByName returns the skill with the given name, creating it with
// the given category on first reference. Skill names are unique.
func (r *SkillRepository) EnsureByName(ctx context.Context, name, category string) (*models.Skill, error) {
	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":        uuid.NewString(),
			"name":       name,
			"category":   category,
			"created_at": time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var skill models.Skill
	err := r.Col.FindOneAndUpdate(ctx, bson.M{"name": name}, update, opts).Decode(&skill)
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

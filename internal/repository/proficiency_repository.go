package repository

import (
	"context"

	"adaptlearn-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProficiencyRepository persists per-(user, skill) proficiency rows
// with upsert-by-key semantics. It satisfies the proficiency tracker's
// Store contract.
type ProficiencyRepository struct {
	Col *mongo.Collection
}

func NewProficiencyRepository(db *mongo.Database) *ProficiencyRepository {
	return &ProficiencyRepository{Col: db.Collection("user_skills")}
}

// Get returns the row for a (user, skill) pair, or nil when the user
// has never practiced the skill.
func (r *ProficiencyRepository) Get(ctx context.Context, userID, skillID string) (*models.SkillProficiency, error) {
	var row models.SkillProficiency
	err := r.Col.FindOne(ctx, bson.M{"user_id": userID, "skill_id": skillID}).Decode(&row)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *ProficiencyRepository) Upsert(ctx context.Context, row *models.SkillProficiency) error {
	filter := bson.M{"user_id": row.UserID, "skill_id": row.SkillID}
	update := bson.M{"$set": bson.M{
		"proficiency":    row.Proficiency,
		"practice_count": row.PracticeCount,
		"last_updated":   row.LastUpdated,
	}}
	_, err := r.Col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *ProficiencyRepository) FindByUser(ctx context.Context, userID string) ([]models.SkillProficiency, error) {
	cur, err := r.Col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodeProficiencies(ctx, cur)
}

// Weakest returns the k lowest-proficiency rows for a user, excluding
// skills never practiced. A skill with practice_count 0 is unknown,
// not weak. Ties break by skill id for reproducible output.
func (r *ProficiencyRepository) Weakest(ctx context.Context, userID string, k int) ([]models.SkillProficiency, error) {
	filter := bson.M{"user_id": userID, "practice_count": bson.M{"$gt": 0}}
	opts := options.Find().
		SetSort(bson.D{{Key: "proficiency", Value: 1}, {Key: "skill_id", Value: 1}}).
		SetLimit(int64(k))

	cur, err := r.Col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodeProficiencies(ctx, cur)
}

// Strongest returns the k highest-proficiency rows for a user, ties
// broken by skill id.
func (r *ProficiencyRepository) Strongest(ctx context.Context, userID string, k int) ([]models.SkillProficiency, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "proficiency", Value: -1}, {Key: "skill_id", Value: 1}}).
		SetLimit(int64(k))

	cur, err := r.Col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	return decodeProficiencies(ctx, cur)
}

func decodeProficiencies(ctx context.Context, cur *mongo.Cursor) ([]models.SkillProficiency, error) {
	var rows []models.SkillProficiency
	for cur.Next(ctx) {
		var row models.SkillProficiency
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

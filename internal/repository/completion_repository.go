package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/FF_Points/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CompletionRepository stores the completion ledger.
type CompletionRepository struct {
	collection *mongo.Collection
}

func NewCompletionRepository(db *mongo.Database) *CompletionRepository {
	return &CompletionRepository{
		collection: db.Collection(CompletionsCollection),
	}
}

// CreateCompletion appends a ledger entry. When the unique index is in place a
// second entry for the same (user, activity) pair returns ErrDuplicate.
func (r *CompletionRepository) CreateCompletion(ctx context.Context, c *models.Completion) (*models.Completion, error) {
	if c.CompletedAt.IsZero() {
		c.CompletedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, c)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			logrus.WithFields(logrus.Fields{
				"userID":     c.UserID.Hex(),
				"activityID": c.ActivityID.Hex(),
			}).Warn("Completion rejected by unique index")
			return nil, ErrDuplicate
		}
		logrus.WithError(err).Error("Failed to insert completion")
		return nil, fmt.Errorf("failed to insert completion: %w", err)
	}
	c.ID = result.InsertedID.(primitive.ObjectID)
	return c, nil
}

// ListByUser returns a user's completions, newest first.
func (r *CompletionRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Completion, error) {
	opts := options.Find().SetSort(bson.D{{Key: "completed_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch completions: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Completion
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode completions: %w", err)
	}
	return out, nil
}

// SumPointsByUser totals points_earned per user.
func (r *CompletionRepository) SumPointsByUser(ctx context.Context) (map[primitive.ObjectID]int, error) {
	return sumByKey(ctx, r.collection, "user_id", "points_earned")
}

// sumByKey groups a collection by key and totals field.
func sumByKey(ctx context.Context, coll *mongo.Collection, key, field string) (map[primitive.ObjectID]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + key},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$" + field}}},
		}}},
	}

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID    primitive.ObjectID `bson:"_id"`
		Total int                `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode %s totals: %w", coll.Name(), err)
	}

	out := make(map[primitive.ObjectID]int, len(rows))
	for _, row := range rows {
		out[row.ID] = row.Total
	}
	return out, nil
}

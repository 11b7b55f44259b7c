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

// PointLogRepository is the append-only audit trail of admin point awards.
type PointLogRepository struct {
	collection *mongo.Collection
}

func NewPointLogRepository(db *mongo.Database) *PointLogRepository {
	return &PointLogRepository{
		collection: db.Collection(PointLogsCollection),
	}
}

// CreateLog inserts a new audit entry
func (r *PointLogRepository) CreateLog(ctx context.Context, entry *models.PointLog) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		logrus.WithError(err).Error("Failed to insert point log")
		return fmt.Errorf("failed to insert point log: %w", err)
	}
	return nil
}

// ListByStudent fetches the most recent entries for a student
func (r *PointLogRepository) ListByStudent(ctx context.Context, studentID primitive.ObjectID, limit int) ([]models.PointLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"student_id": studentID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch point logs: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.PointLog
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode point logs: %w", err)
	}
	return entries, nil
}

// SumPointsByUser totals logged deltas per student.
func (r *PointLogRepository) SumPointsByUser(ctx context.Context) (map[primitive.ObjectID]int, error) {
	return sumByKey(ctx, r.collection, "student_id", "points")
}

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

type ActivityRepository struct {
	collection *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{
		collection: db.Collection(ActivitiesCollection),
	}
}

// CreateActivity inserts a new catalog entry.
func (r *ActivityRepository) CreateActivity(ctx context.Context, activity *models.Activity) (*models.Activity, error) {
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, activity)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert activity")
		return nil, fmt.Errorf("failed to insert activity: %w", err)
	}
	activity.ID = result.InsertedID.(primitive.ObjectID)

	logrus.WithField("activityID", activity.ID.Hex()).Info("Activity inserted successfully")
	return activity, nil
}

func (r *ActivityRepository) GetActivityByID(ctx context.Context, id primitive.ObjectID) (*models.Activity, error) {
	var activity models.Activity
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&activity); err != nil {
		logrus.WithField("activityID", id.Hex()).WithError(err).Warn("Failed to find activity")
		return nil, notFound(err)
	}
	return &activity, nil
}

// ListActivities returns the catalog, newest first.
func (r *ActivityRepository) ListActivities(ctx context.Context) ([]models.Activity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %w", err)
	}
	defer cursor.Close(ctx)

	var activities []models.Activity
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, fmt.Errorf("failed to decode activities: %w", err)
	}
	return activities, nil
}

func (r *ActivityRepository) DeleteActivity(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logrus.WithField("activityID", id.Hex()).WithError(err).Error("Failed to delete activity")
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	logrus.WithField("activityID", id.Hex()).Info("Activity deleted successfully")
	return nil
}

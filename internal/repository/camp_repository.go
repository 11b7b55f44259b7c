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

type CampRepository struct {
	collection *mongo.Collection
}

func NewCampRepository(db *mongo.Database) *CampRepository {
	return &CampRepository{
		collection: db.Collection(CampsCollection),
	}
}

func (r *CampRepository) CreateCamp(ctx context.Context, camp *models.Camp) (*models.Camp, error) {
	if camp.CreatedAt.IsZero() {
		camp.CreatedAt = time.Now()
	}
	if camp.Mentors == nil {
		camp.Mentors = []primitive.ObjectID{}
	}

	result, err := r.collection.InsertOne(ctx, camp)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert camp")
		return nil, fmt.Errorf("failed to insert camp: %w", err)
	}
	camp.ID = result.InsertedID.(primitive.ObjectID)

	logrus.WithField("campID", camp.ID.Hex()).Info("Camp inserted successfully")
	return camp, nil
}

func (r *CampRepository) GetCampByID(ctx context.Context, id primitive.ObjectID) (*models.Camp, error) {
	var camp models.Camp
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&camp); err != nil {
		logrus.WithField("campID", id.Hex()).WithError(err).Warn("Failed to find camp")
		return nil, notFound(err)
	}
	return &camp, nil
}

func (r *CampRepository) ListCamps(ctx context.Context) ([]models.Camp, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch camps: %w", err)
	}
	defer cursor.Close(ctx)

	var camps []models.Camp
	if err := cursor.All(ctx, &camps); err != nil {
		return nil, fmt.Errorf("failed to decode camps: %w", err)
	}
	return camps, nil
}

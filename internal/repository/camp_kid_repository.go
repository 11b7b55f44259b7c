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

// CampKidRepository stores camp rosters and their separate point balances.
type CampKidRepository struct {
	collection *mongo.Collection
}

func NewCampKidRepository(db *mongo.Database) *CampKidRepository {
	return &CampKidRepository{
		collection: db.Collection(CampKidsCollection),
	}
}

func (r *CampKidRepository) CreateKid(ctx context.Context, kid *models.CampKid) (*models.CampKid, error) {
	if kid.CreatedAt.IsZero() {
		kid.CreatedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, kid)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert camp kid")
		return nil, fmt.Errorf("failed to insert camp kid: %w", err)
	}
	kid.ID = result.InsertedID.(primitive.ObjectID)

	logrus.WithFields(logrus.Fields{
		"campID": kid.CampID.Hex(),
		"kidID":  kid.ID.Hex(),
	}).Info("Camp kid inserted successfully")
	return kid, nil
}

func (r *CampKidRepository) GetKidByID(ctx context.Context, id primitive.ObjectID) (*models.CampKid, error) {
	var kid models.CampKid
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&kid); err != nil {
		logrus.WithField("kidID", id.Hex()).WithError(err).Warn("Failed to find camp kid")
		return nil, notFound(err)
	}
	return &kid, nil
}

// ListByCamp returns a camp's roster ordered by points, highest first.
func (r *CampKidRepository) ListByCamp(ctx context.Context, campID primitive.ObjectID) ([]models.CampKid, error) {
	return r.find(ctx, bson.M{"camp_id": campID})
}

// ListByGroup returns the members of one group within a camp.
func (r *CampKidRepository) ListByGroup(ctx context.Context, campID primitive.ObjectID, group int) ([]models.CampKid, error) {
	return r.find(ctx, bson.M{"camp_id": campID, "group_number": group})
}

func (r *CampKidRepository) IncrementPoints(ctx context.Context, id primitive.ObjectID, delta int) (int, error) {
	return incrementPoints(ctx, r.collection, id, delta)
}

func (r *CampKidRepository) find(ctx context.Context, filter bson.M) ([]models.CampKid, error) {
	opts := options.Find().SetSort(bson.D{{Key: "points", Value: -1}, {Key: "nickname", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch camp kids: %w", err)
	}
	defer cursor.Close(ctx)

	var kids []models.CampKid
	if err := cursor.All(ctx, &kids); err != nil {
		return nil, fmt.Errorf("failed to decode camp kids: %w", err)
	}
	return kids, nil
}

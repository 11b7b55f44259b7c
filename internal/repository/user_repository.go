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

// UserRepository handles database operations related to users.
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection(UsersCollection),
	}
}

// CreateUser inserts a new user into the database.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			logrus.WithFields(logrus.Fields{
				"first_name": user.FirstName,
				"last_name":  user.LastName,
			}).Warn("User name pair already exists")
			return nil, ErrDuplicate
		}
		logrus.WithError(err).Error("Failed to insert user into database")
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logrus.Error("Failed to cast inserted ID to ObjectID")
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	user.ID = insertedID

	logrus.WithField("userID", user.ID.Hex()).Info("User inserted successfully")
	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (r *UserRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"userID": id.Hex(),
			"error":  err,
		}).Warn("Failed to find user by ID")
		return nil, notFound(err)
	}
	return &user, nil
}

// FindByName retrieves the user registered under the given name pair.
func (r *UserRepository) FindByName(ctx context.Context, firstName, lastName string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"first_name": firstName, "last_name": lastName}).Decode(&user)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"first_name": firstName,
			"last_name":  lastName,
			"error":      err,
		}).Warn("Failed to find user by name")
		return nil, notFound(err)
	}
	return &user, nil
}

// GetAllUsers returns every user record.
func (r *UserRepository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// ListByRole returns users with the given role, highest points first.
func (r *UserRepository) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "points", Value: -1}, {Key: "first_name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"role": role}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users by role: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// UpdateLastLogin stamps the login time on the profile.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	return r.set(ctx, id, bson.M{"last_login_at": at})
}

// SetRole overwrites the stored role.
func (r *UserRepository) SetRole(ctx context.Context, id primitive.ObjectID, role string) error {
	return r.set(ctx, id, bson.M{"role": role})
}

// SetCampMentor flags the user as mentor of campID.
func (r *UserRepository) SetCampMentor(ctx context.Context, id, campID primitive.ObjectID) error {
	return r.set(ctx, id, bson.M{"camp_mentor": true, "camp_id": campID})
}

// IncrementPoints atomically adds delta to the user's points and returns the
// resulting balance.
func (r *UserRepository) IncrementPoints(ctx context.Context, id primitive.ObjectID, delta int) (int, error) {
	return incrementPoints(ctx, r.collection, id, delta)
}

func (r *UserRepository) set(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"userID": id.Hex(),
			"error":  err,
		}).Error("Failed to update user")
		return fmt.Errorf("failed to update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// incrementPoints is the shared $inc primitive for collections carrying a
// points field.
func incrementPoints(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, delta int) (int, error) {
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"points": 1})

	var out struct {
		Points int `bson:"points"`
	}
	err := coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"points": delta}}, opts).Decode(&out)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"collection": coll.Name(),
			"id":         id.Hex(),
			"delta":      delta,
			"error":      err,
		}).Error("Failed to increment points")
		if err = notFound(err); err == ErrNotFound {
			return 0, err
		}
		return 0, fmt.Errorf("failed to increment points: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"collection": coll.Name(),
		"id":         id.Hex(),
		"delta":      delta,
		"points":     out.Points,
	}).Info("Points incremented")
	return out.Points, nil
}

package services

import (
	"context"
	"time"

	"github.com/Dias221467/FF_Points/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The store interfaces are satisfied by both the Mongo repositories and the
// in-memory ones in repository/memory.

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByName(ctx context.Context, firstName, lastName string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	ListByRole(ctx context.Context, role string) ([]models.User, error)
	UpdateLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error
	SetRole(ctx context.Context, id primitive.ObjectID, role string) error
	SetCampMentor(ctx context.Context, id, campID primitive.ObjectID) error
	IncrementPoints(ctx context.Context, id primitive.ObjectID, delta int) (int, error)
}

type ActivityStore interface {
	CreateActivity(ctx context.Context, a *models.Activity) (*models.Activity, error)
	GetActivityByID(ctx context.Context, id primitive.ObjectID) (*models.Activity, error)
	ListActivities(ctx context.Context) ([]models.Activity, error)
	DeleteActivity(ctx context.Context, id primitive.ObjectID) error
}

type CompletionStore interface {
	CreateCompletion(ctx context.Context, c *models.Completion) (*models.Completion, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Completion, error)
	SumPointsByUser(ctx context.Context) (map[primitive.ObjectID]int, error)
}

type CampStore interface {
	CreateCamp(ctx context.Context, camp *models.Camp) (*models.Camp, error)
	GetCampByID(ctx context.Context, id primitive.ObjectID) (*models.Camp, error)
	ListCamps(ctx context.Context) ([]models.Camp, error)
}

type CampKidStore interface {
	CreateKid(ctx context.Context, kid *models.CampKid) (*models.CampKid, error)
	GetKidByID(ctx context.Context, id primitive.ObjectID) (*models.CampKid, error)
	ListByCamp(ctx context.Context, campID primitive.ObjectID) ([]models.CampKid, error)
	ListByGroup(ctx context.Context, campID primitive.ObjectID, group int) ([]models.CampKid, error)
	IncrementPoints(ctx context.Context, id primitive.ObjectID, delta int) (int, error)
}

type PointLogStore interface {
	CreateLog(ctx context.Context, entry *models.PointLog) error
	ListByStudent(ctx context.Context, studentID primitive.ObjectID, limit int) ([]models.PointLog, error)
	SumPointsByUser(ctx context.Context) (map[primitive.ObjectID]int, error)
}

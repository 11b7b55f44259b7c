package services

import (
	"context"
	"testing"

	"github.com/Dias221467/FF_Points/internal/models"
	"github.com/Dias221467/FF_Points/internal/points"
	"github.com/Dias221467/FF_Points/internal/repository/memory"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fixture wires every service against fresh in-memory stores.
type fixture struct {
	users       *memory.UserRepository
	activities  *memory.ActivityRepository
	completions *memory.CompletionRepository
	camps       *memory.CampRepository
	kids        *memory.CampKidRepository
	logs        *memory.PointLogRepository

	userMutator *points.Mutator
	kidMutator  *points.Mutator

	Users       *UserService
	Activities  *ActivityService
	Completions *CompletionService
	Points      *PointsService
	Camps       *CampService
}

func newFixture(t *testing.T, uniqueCompletions bool) *fixture {
	t.Helper()

	f := &fixture{
		users:       memory.NewUserRepository(),
		activities:  memory.NewActivityRepository(),
		completions: memory.NewCompletionRepository(uniqueCompletions),
		camps:       memory.NewCampRepository(),
		kids:        memory.NewCampKidRepository(),
		logs:        memory.NewPointLogRepository(),
	}
	f.userMutator = points.NewMutator(points.KindUser, f.users, nil, nil)
	f.kidMutator = points.NewMutator(points.KindKid, f.kids, nil, nil)

	f.Users = NewUserService(f.users, "Ada Admin")
	f.Activities = NewActivityService(f.activities)
	f.Completions = NewCompletionService(f.activities, f.completions, f.users, f.userMutator)
	f.Points = NewPointsService(f.users, f.logs, f.userMutator)
	f.Camps = NewCampService(f.camps, f.kids, f.users, f.kidMutator)
	return f
}

func (f *fixture) register(t *testing.T, first, last string) *models.User {
	t.Helper()
	u, err := f.Users.RegisterUser(context.Background(), RegisterInput{
		FirstName: first,
		LastName:  last,
		Nickname:  first,
		Password:  "secret1",
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) admin(t *testing.T) *models.User {
	t.Helper()
	u := f.register(t, "Ada", "Admin")
	require.Equal(t, models.RoleAdmin, u.Role)
	return u
}

func (f *fixture) activity(t *testing.T, admin *models.User, name string, pts int) *models.Activity {
	t.Helper()
	a, err := f.Activities.CreateActivity(context.Background(), admin, ActivityInput{
		Name:        name,
		Description: "do the thing",
		Points:      pts,
	})
	require.NoError(t, err)
	return a
}

func (f *fixture) balance(t *testing.T, id primitive.ObjectID) int {
	t.Helper()
	u, err := f.users.GetUserByID(context.Background(), id)
	require.NoError(t, err)
	return u.Points
}

func session(u *models.User) *models.Session {
	return &models.Session{UserID: u.ID, DisplayName: u.DisplayName(), Role: u.Role}
}

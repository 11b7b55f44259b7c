package repository_test

import (
	"errors"
	"testing"

	"github.com/Dias221467/FF_Points/internal/models"
	"github.com/Dias221467/FF_Points/internal/repository"
	"github.com/Dias221467/FF_Points/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserRepository_NamePairUnique(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	require.NoError(t, repository.EnsureIndexes(ctx, db, true))

	users := repository.NewUserRepository(db)
	_, err := users.CreateUser(ctx, &models.User{FirstName: "Somsri", LastName: "Jaidee", Role: models.RoleStudent})
	require.NoError(t, err)

	_, err = users.CreateUser(ctx, &models.User{FirstName: "Somsri", LastName: "Jaidee", Role: models.RoleStudent})
	assert.True(t, errors.Is(err, repository.ErrDuplicate))

	_, err = users.FindByName(ctx, "No", "One")
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestUserRepository_IncrementPoints(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)

	users := repository.NewUserRepository(db)
	u, err := users.CreateUser(ctx, &models.User{FirstName: "A", LastName: "B", Role: models.RoleStudent})
	require.NoError(t, err)

	p, err := users.IncrementPoints(ctx, u.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, p)

	p, err = users.IncrementPoints(ctx, u.ID, -25)
	require.NoError(t, err)
	assert.Equal(t, -15, p)

	_, err = users.IncrementPoints(ctx, primitive.NewObjectID(), 1)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestCompletionRepository_UniqueIndex(t *testing.T) {
	for _, unique := range []bool{true, false} {
		db := testutil.SetupTestDB(t)
		ctx := testutil.TestContext(t)
		require.NoError(t, repository.EnsureIndexes(ctx, db, unique))

		completions := repository.NewCompletionRepository(db)
		c := models.Completion{UserID: primitive.NewObjectID(), ActivityID: primitive.NewObjectID(), PointsEarned: 5}

		first := c
		_, err := completions.CreateCompletion(ctx, &first)
		require.NoError(t, err)

		second := c
		_, err = completions.CreateCompletion(ctx, &second)
		if unique {
			assert.True(t, errors.Is(err, repository.ErrDuplicate))
		} else {
			assert.NoError(t, err)
		}

		sums, err := completions.SumPointsByUser(ctx)
		require.NoError(t, err)
		if unique {
			assert.Equal(t, 5, sums[c.UserID])
		} else {
			assert.Equal(t, 10, sums[c.UserID])
		}
	}
}

func TestCampKidRepository_ListByGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)

	kids := repository.NewCampKidRepository(db)
	campID := primitive.NewObjectID()
	for i, g := range []int{1, 2, 1} {
		_, err := kids.CreateKid(ctx, &models.CampKid{CampID: campID, Nickname: string(rune('A' + i)), GroupNumber: g})
		require.NoError(t, err)
	}

	group, err := kids.ListByGroup(ctx, campID, 1)
	require.NoError(t, err)
	assert.Len(t, group, 2)
}

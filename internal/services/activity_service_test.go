package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateActivity(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	admin := f.admin(t)
	student := f.register(t, "Somsri", "Jaidee")

	_, err := f.Activities.CreateActivity(ctx, student, ActivityInput{Name: "x", Description: "y", Points: 5})
	assert.True(t, errors.Is(err, ErrForbidden))

	_, err = f.Activities.CreateActivity(ctx, admin, ActivityInput{Name: "x", Description: "y", Points: 0})
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = f.Activities.CreateActivity(ctx, admin, ActivityInput{Name: "x", Description: "y", Points: 5, Date: "tomorrow"})
	assert.True(t, errors.Is(err, ErrValidation))

	a, err := f.Activities.CreateActivity(ctx, admin, ActivityInput{
		Name:        "<b>Hike</b>",
		Description: "Up the hill",
		Points:      20,
		Date:        "2024-07-01",
		Time:        "09:30",
	})
	require.NoError(t, err)
	assert.Equal(t, "Hike", a.Name)
	assert.Equal(t, admin.ID, a.CreatedBy)
}

func TestDeleteActivity(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	admin := f.admin(t)
	a := f.activity(t, admin, "Hike", 20)

	require.NoError(t, f.Activities.DeleteActivity(ctx, admin, a.ID.Hex()))

	err := f.Activities.DeleteActivity(ctx, admin, a.ID.Hex())
	assert.True(t, errors.Is(err, ErrNotFound))

	list, err := f.Activities.ListActivities(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

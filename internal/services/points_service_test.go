package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Dias221467/FF_Points/internal/models"
	"github.com/Dias221467/FF_Points/internal/qrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustUserPoints_AllowsNegativeBalance(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	admin := f.admin(t)
	student := f.register(t, "Somsri", "Jaidee")

	award, err := f.Points.AdjustUserPoints(ctx, admin, student.ID.Hex(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, award.Student.Points)

	award, err = f.Points.AdjustUserPoints(ctx, admin, student.ID.Hex(), -8)
	require.NoError(t, err)
	assert.Equal(t, -3, award.Student.Points)
	assert.Equal(t, -3, f.balance(t, student.ID))

	logs, err := f.Points.RecentLogs(ctx, admin, student.ID.Hex(), 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	for _, l := range logs {
		assert.Equal(t, models.MethodManual, l.Method)
		assert.Equal(t, admin.ID, l.AdminID)
	}
}

func TestAdjustUserPoints_RequiresAdmin(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	student := f.register(t, "Somsri", "Jaidee")

	_, err := f.Points.AdjustUserPoints(ctx, student, student.ID.Hex(), 100)
	assert.True(t, errors.Is(err, ErrForbidden))
	assert.Equal(t, 0, f.balance(t, student.ID))
}

func TestAdjustUserPoints_UnknownUserLeavesCache(t *testing.T) {
	f := newFixture(t, true)
	admin := f.admin(t)

	_, err := f.Points.AdjustUserPoints(context.Background(), admin, "64b000000000000000000000", 5)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, ok := f.userMutator.Cache().Get("64b000000000000000000000")
	assert.False(t, ok)
}

func TestScanAward(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	admin := f.admin(t)
	student := f.register(t, "Somsri", "Jaidee")

	payload, err := qrid.Encode(student.ID.Hex(), "Somsri Jai-dee")
	require.NoError(t, err)

	award, err := f.Points.ScanAward(ctx, admin, payload, 7)
	require.NoError(t, err)
	assert.Equal(t, student.ID, award.Student.ID)
	assert.Equal(t, 7, f.balance(t, student.ID))
	assert.Equal(t, models.MethodQRScan, award.Log.Method)
	assert.Equal(t, 7, award.Log.Points)

	_, err = f.Points.ScanAward(ctx, admin, "64b000000000000000000000-Ghost", 7)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = f.Points.ScanAward(ctx, admin, "", 7)
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = f.Points.ScanAward(ctx, student, payload, 7)
	assert.True(t, errors.Is(err, ErrForbidden))
	assert.Equal(t, 7, f.balance(t, student.ID))
}

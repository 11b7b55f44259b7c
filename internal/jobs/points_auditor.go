package jobs

import (
	"context"
	"fmt"

	"github.com/Dias221467/FF_Points/internal/metrics"
	"github.com/Dias221467/FF_Points/internal/services"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Drift is a user whose stored balance disagrees with the ledgers.
type Drift struct {
	UserID   primitive.ObjectID `json:"user_id"`
	Name     string             `json:"name"`
	Stored   int                `json:"stored"`
	Expected int                `json:"expected"`
}

type PointsAuditor struct {
	Users       services.UserStore
	Completions services.CompletionStore
	Logs        services.PointLogStore
}

// NewPointsAuditor creates a new instance of PointsAuditor
func NewPointsAuditor(users services.UserStore, completions services.CompletionStore, logs services.PointLogStore) *PointsAuditor {
	return &PointsAuditor{Users: users, Completions: completions, Logs: logs}
}

// Run compares every user's points with the sum of their completion rewards
// and point-log awards. It only reports; balances are never corrected.
func (a *PointsAuditor) Run(ctx context.Context) ([]Drift, error) {
	users, err := a.Users.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	earned, err := a.Completions.SumPointsByUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum completions: %w", err)
	}
	awarded, err := a.Logs.SumPointsByUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum point logs: %w", err)
	}

	var drifts []Drift
	for _, u := range users {
		expected := earned[u.ID] + awarded[u.ID]
		if u.Points == expected {
			continue
		}
		d := Drift{UserID: u.ID, Name: u.DisplayName(), Stored: u.Points, Expected: expected}
		drifts = append(drifts, d)
		logrus.WithFields(logrus.Fields{
			"userID":   u.ID.Hex(),
			"stored":   d.Stored,
			"expected": d.Expected,
		}).Warn("Points drift detected")
	}

	metrics.PointsDrift.Set(float64(len(drifts)))
	logrus.WithFields(logrus.Fields{
		"users":   len(users),
		"drifted": len(drifts),
	}).Info("Points audit completed")
	return drifts, nil
}

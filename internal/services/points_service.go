package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/FF_Points/internal/metrics"
	"github.com/Dias221467/FF_Points/internal/models"
	"github.com/Dias221467/FF_Points/internal/points"
	"github.com/Dias221467/FF_Points/internal/qrid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Award is the outcome of an admin point award.
type Award struct {
	Student models.PublicUser `json:"student"`
	Delta   int               `json:"delta"`
	Log     *models.PointLog  `json:"log,omitempty"`
}

// PointsService handles admin adjustments to student balances.
type PointsService struct {
	users   UserStore
	logs    PointLogStore
	mutator *points.Mutator
	now     func() time.Time
}

func NewPointsService(users UserStore, logs PointLogStore, mutator *points.Mutator) *PointsService {
	return &PointsService{users: users, logs: logs, mutator: mutator, now: time.Now}
}

// AdjustUserPoints applies delta to one user's balance. The result may go
// negative.
func (s *PointsService) AdjustUserPoints(ctx context.Context, actor *models.User, userID string, delta int) (*Award, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, validationErr(fmt.Errorf("invalid user ID %q", userID))
	}

	student, err := s.users.GetUserByID(ctx, objID)
	if err != nil {
		return nil, storeErr("load student", err)
	}
	return s.award(ctx, actor, student, delta, models.MethodManual)
}

// ScanAward resolves a scanned QR payload to a user and applies delta.
func (s *PointsService) ScanAward(ctx context.Context, actor *models.User, payload string, delta int) (*Award, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	key, err := qrid.Decode(payload)
	if err != nil {
		metrics.QRScans.WithLabelValues("invalid").Inc()
		return nil, validationErr(err)
	}

	users, err := s.users.GetAllUsers(ctx)
	if err != nil {
		metrics.QRScans.WithLabelValues("error").Inc()
		return nil, storeErr("load users", err)
	}

	student, ok := qrid.Resolve(users, key)
	if !ok {
		metrics.QRScans.WithLabelValues("unknown").Inc()
		logrus.WithFields(logrus.Fields{
			"id":        key.ID,
			"email":     key.Email,
			"studentID": key.StudentID,
		}).Warn("Scanned code matches no user")
		return nil, fmt.Errorf("scanned user: %w", ErrNotFound)
	}

	award, err := s.award(ctx, actor, student, delta, models.MethodQRScan)
	if err != nil {
		metrics.QRScans.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.QRScans.WithLabelValues("ok").Inc()
	return award, nil
}

func (s *PointsService) award(ctx context.Context, actor, student *models.User, delta int, method string) (*Award, error) {
	change, err := s.mutator.Apply(ctx, student.ID, delta)
	if err != nil {
		return nil, storeErr("apply points", err)
	}
	student.Points = change.Points

	entry := &models.PointLog{
		StudentID:   student.ID,
		StudentName: student.DisplayName(),
		Points:      delta,
		Method:      method,
		AdminID:     actor.ID,
		AdminName:   actor.DisplayName(),
		Timestamp:   s.now(),
	}
	if err := s.logs.CreateLog(ctx, entry); err != nil {
		// Balance already moved; the auditor will flag the missing log.
		logrus.WithError(err).WithField("studentID", student.ID.Hex()).Error("Failed to write point log")
		return nil, storeErr("write point log", err)
	}

	logrus.WithFields(logrus.Fields{
		"studentID": student.ID.Hex(),
		"adminID":   actor.ID.Hex(),
		"delta":     delta,
		"balance":   change.Points,
		"method":    method,
	}).Info("Points awarded")
	return &Award{Student: student.Public(), Delta: delta, Log: entry}, nil
}

// RecentLogs returns the latest point log entries for a student. Admin only.
func (s *PointsService) RecentLogs(ctx context.Context, actor *models.User, userID string, limit int) ([]models.PointLog, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, validationErr(fmt.Errorf("invalid user ID %q", userID))
	}
	if limit <= 0 {
		limit = 50
	}
	logs, err := s.logs.ListByStudent(ctx, objID, limit)
	if err != nil {
		return nil, storeErr("list point logs", err)
	}
	return logs, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dias221467/FF_Points/internal/metrics"
	"github.com/Dias221467/FF_Points/internal/models"
	"github.com/Dias221467/FF_Points/internal/points"
	"github.com/Dias221467/FF_Points/internal/repository"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Dashboard is the student landing page: the catalog with per-activity
// completion state and the caller's current balance.
type Dashboard struct {
	Points     int                     `json:"points"`
	Activities []models.ActivityStatus `json:"activities"`
}

// CompletionService gates activity completion and credits the reward.
type CompletionService struct {
	activities  ActivityStore
	completions CompletionStore
	users       UserStore
	mutator     *points.Mutator
	now         func() time.Time
}

func NewCompletionService(activities ActivityStore, completions CompletionStore, users UserStore, mutator *points.Mutator) *CompletionService {
	return &CompletionService{
		activities:  activities,
		completions: completions,
		users:       users,
		mutator:     mutator,
		now:         time.Now,
	}
}

// CompleteActivity records that the session's user finished the activity and
// credits its points. A second completion is ErrAlreadyCompleted.
func (s *CompletionService) CompleteActivity(ctx context.Context, sess *models.Session, activityID string) (*models.Completion, error) {
	if sess == nil {
		return nil, ErrForbidden
	}
	objID, err := primitive.ObjectIDFromHex(activityID)
	if err != nil {
		return nil, validationErr(fmt.Errorf("invalid activity ID %q", activityID))
	}

	activity, err := s.activities.GetActivityByID(ctx, objID)
	if err != nil {
		return nil, storeErr("load activity", err)
	}

	done, err := s.completions.ListByUser(ctx, sess.UserID)
	if err != nil {
		return nil, storeErr("load completions", err)
	}
	for _, c := range done {
		if c.ActivityID == activity.ID {
			metrics.Completions.WithLabelValues("duplicate").Inc()
			return nil, ErrAlreadyCompleted
		}
	}

	return s.Record(ctx, sess.UserID, activity)
}

// Record inserts the completion and credits the user without the
// already-completed check. Two callers that both passed the check land here
// concurrently; only the store's unique index stops the second one.
func (s *CompletionService) Record(ctx context.Context, userID primitive.ObjectID, activity *models.Activity) (*models.Completion, error) {
	completion, err := s.completions.CreateCompletion(ctx, &models.Completion{
		UserID:       userID,
		ActivityID:   activity.ID,
		PointsEarned: activity.Points,
		CompletedAt:  s.now(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			metrics.Completions.WithLabelValues("duplicate").Inc()
			return nil, ErrAlreadyCompleted
		}
		metrics.Completions.WithLabelValues("error").Inc()
		logrus.WithError(err).WithField("userID", userID.Hex()).Error("Failed to record completion")
		return nil, storeErr("record completion", err)
	}

	change, err := s.mutator.Apply(ctx, userID, activity.Points)
	if err != nil {
		// The ledger row exists but the balance was not credited. The
		// points auditor reports the drift.
		metrics.Completions.WithLabelValues("error").Inc()
		logrus.WithError(err).WithFields(logrus.Fields{
			"userID":       userID.Hex(),
			"completionID": completion.ID.Hex(),
		}).Error("Completion recorded but points not credited")
		return nil, storeErr("credit points", err)
	}

	metrics.Completions.WithLabelValues("ok").Inc()
	logrus.WithFields(logrus.Fields{
		"userID":     userID.Hex(),
		"activityID": activity.ID.Hex(),
		"earned":     activity.Points,
		"balance":    change.Points,
	}).Info("Activity completed")
	return completion, nil
}

// History returns the session user's completions with activity names,
// newest first. Deleted activities keep their rows with an empty name.
func (s *CompletionService) History(ctx context.Context, sess *models.Session) ([]models.CompletionEntry, error) {
	if sess == nil {
		return nil, ErrForbidden
	}
	done, err := s.completions.ListByUser(ctx, sess.UserID)
	if err != nil {
		return nil, storeErr("load completions", err)
	}
	activities, err := s.activities.ListActivities(ctx)
	if err != nil {
		return nil, storeErr("list activities", err)
	}

	names := make(map[primitive.ObjectID]string, len(activities))
	for _, a := range activities {
		names[a.ID] = a.Name
	}

	out := make([]models.CompletionEntry, 0, len(done))
	for _, c := range done {
		out = append(out, models.CompletionEntry{Completion: c, ActivityName: names[c.ActivityID]})
	}
	return out, nil
}

// Dashboard builds the student view from the stored profile.
func (s *CompletionService) Dashboard(ctx context.Context, sess *models.Session) (*Dashboard, error) {
	if sess == nil {
		return nil, ErrForbidden
	}
	user, err := s.users.GetUserByID(ctx, sess.UserID)
	if err != nil {
		return nil, storeErr("load profile", err)
	}
	activities, err := s.activities.ListActivities(ctx)
	if err != nil {
		return nil, storeErr("list activities", err)
	}
	done, err := s.completions.ListByUser(ctx, sess.UserID)
	if err != nil {
		return nil, storeErr("load completions", err)
	}

	completed := make(map[primitive.ObjectID]bool, len(done))
	for _, c := range done {
		completed[c.ActivityID] = true
	}

	d := &Dashboard{Points: user.Points, Activities: make([]models.ActivityStatus, 0, len(activities))}
	for _, a := range activities {
		d.Activities = append(d.Activities, models.ActivityStatus{Activity: a, Completed: completed[a.ID]})
	}
	return d, nil
}

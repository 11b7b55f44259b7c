package services

import (
	"context"
	"fmt"

	"github.com/Dias221467/FF_Points/internal/models"
	"github.com/Dias221467/FF_Points/pkg/sanitize"
	"github.com/Dias221467/FF_Points/pkg/validation"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityInput is the admin form for a new activity.
type ActivityInput struct {
	Name        string `json:"name" validate:"notblank,max=120"`
	Description string `json:"description" validate:"notblank,max=2000"`
	Points      int    `json:"points" validate:"gt=0"`
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time        string `json:"time" validate:"omitempty,datetime=15:04"`
}

// ActivityService manages the activity catalog.
type ActivityService struct {
	repo ActivityStore
}

func NewActivityService(repo ActivityStore) *ActivityService {
	return &ActivityService{repo: repo}
}

// CreateActivity adds a catalog entry. Admin only.
func (s *ActivityService) CreateActivity(ctx context.Context, actor *models.User, in ActivityInput) (*models.Activity, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}

	in.Name = sanitize.Text(in.Name)
	in.Description = sanitize.Text(in.Description)
	if err := validation.Struct(in); err != nil {
		return nil, validationErr(err)
	}

	activity, err := s.repo.CreateActivity(ctx, &models.Activity{
		Name:        in.Name,
		Description: in.Description,
		Points:      in.Points,
		Date:        in.Date,
		Time:        in.Time,
		CreatedBy:   actor.ID,
	})
	if err != nil {
		return nil, storeErr("create activity", err)
	}

	logrus.WithFields(logrus.Fields{
		"activityID": activity.ID.Hex(),
		"adminID":    actor.ID.Hex(),
		"points":     activity.Points,
	}).Info("Activity created")
	return activity, nil
}

// DeleteActivity removes a catalog entry. Completions referring to it stay.
func (s *ActivityService) DeleteActivity(ctx context.Context, actor *models.User, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return validationErr(fmt.Errorf("invalid activity ID %q", id))
	}

	if err := s.repo.DeleteActivity(ctx, objID); err != nil {
		return storeErr("delete activity", err)
	}

	logrus.WithFields(logrus.Fields{
		"activityID": id,
		"adminID":    actor.ID.Hex(),
	}).Info("Activity deleted")
	return nil
}

// ListActivities returns the catalog, newest first.
func (s *ActivityService) ListActivities(ctx context.Context) ([]models.Activity, error) {
	activities, err := s.repo.ListActivities(ctx)
	if err != nil {
		return nil, storeErr("list activities", err)
	}
	return activities, nil
}

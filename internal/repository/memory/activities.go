package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Dias221467/FF_Points/internal/models"
	"github.com/Dias221467/FF_Points/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ActivityRepository struct {
	mu         sync.RWMutex
	activities map[primitive.ObjectID]models.Activity
}

func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{activities: make(map[primitive.ObjectID]models.Activity)}
}

func (r *ActivityRepository) CreateActivity(_ context.Context, a *models.Activity) (*models.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	r.activities[a.ID] = *a
	return a, nil
}

func (r *ActivityRepository) GetActivityByID(_ context.Context, id primitive.ObjectID) (*models.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.activities[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r *ActivityRepository) ListActivities(_ context.Context) ([]models.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Activity, 0, len(r.activities))
	for _, a := range r.activities {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ActivityRepository) DeleteActivity(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.activities[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.activities, id)
	return nil
}

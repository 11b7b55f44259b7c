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

// CompletionRepository mirrors the Mongo ledger. With unique set it behaves
// like the (user_id, activity_id) unique index; without it duplicates are
// accepted exactly as an unindexed collection would.
type CompletionRepository struct {
	mu      sync.RWMutex
	unique  bool
	entries []models.Completion
}

func NewCompletionRepository(unique bool) *CompletionRepository {
	return &CompletionRepository{unique: unique}
}

func (r *CompletionRepository) CreateCompletion(_ context.Context, c *models.Completion) (*models.Completion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.unique {
		for _, e := range r.entries {
			if e.UserID == c.UserID && e.ActivityID == c.ActivityID {
				return nil, repository.ErrDuplicate
			}
		}
	}
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if c.CompletedAt.IsZero() {
		c.CompletedAt = time.Now()
	}
	r.entries = append(r.entries, *c)
	return c, nil
}

func (r *CompletionRepository) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.Completion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Completion
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CompletedAt.After(out[j].CompletedAt) })
	return out, nil
}

func (r *CompletionRepository) SumPointsByUser(_ context.Context) (map[primitive.ObjectID]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[primitive.ObjectID]int)
	for _, e := range r.entries {
		out[e.UserID] += e.PointsEarned
	}
	return out, nil
}

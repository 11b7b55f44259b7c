package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Dias221467/FF_Points/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PointLogRepository struct {
	mu      sync.RWMutex
	entries []models.PointLog
}

func NewPointLogRepository() *PointLogRepository {
	return &PointLogRepository{}
}

func (r *PointLogRepository) CreateLog(_ context.Context, entry *models.PointLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *PointLogRepository) ListByStudent(_ context.Context, studentID primitive.ObjectID, limit int) ([]models.PointLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.PointLog
	for _, e := range r.entries {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *PointLogRepository) SumPointsByUser(_ context.Context) (map[primitive.ObjectID]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[primitive.ObjectID]int)
	for _, e := range r.entries {
		out[e.StudentID] += e.Points
	}
	return out, nil
}

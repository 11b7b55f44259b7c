// Package points applies signed deltas to records carrying a points balance.
//
// Every mutation goes through the store's increment primitive. The local
// cache is then set from the balance the store reports back; a failed write
// leaves the cache untouched. Bulk awards are a plain loop of single
// mutations with no grouping, so a failure part way leaves earlier members
// updated.
package points

import (
	"context"
	"fmt"

	"github.com/Dias221467/FF_Points/internal/metrics"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Kinds of records a Mutator can target.
const (
	KindUser = "user"
	KindKid  = "kid"
)

// Store is the increment primitive of a collection with a points field.
type Store interface {
	IncrementPoints(ctx context.Context, id primitive.ObjectID, delta int) (int, error)
}

// Notifier receives confirmed balance changes.
type Notifier interface {
	PointsChanged(kind, id string, points int)
}

// Change is the outcome of one confirmed mutation.
type Change struct {
	ID     primitive.ObjectID `json:"id"`
	Delta  int                `json:"delta"`
	Points int                `json:"points"`
}

// BulkResult reports which members of a bulk award were updated.
type BulkResult struct {
	Updated []Change             `json:"updated"`
	Failed  []primitive.ObjectID `json:"failed"`
	Errors  []error              `json:"-"`
}

// Err returns a summary error when any member failed.
func (r BulkResult) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d updates failed: %w", len(r.Failed), len(r.Failed)+len(r.Updated), r.Errors[0])
}

type Mutator struct {
	kind     string
	store    Store
	cache    *Cache
	notifier Notifier
}

// NewMutator creates a Mutator for one kind of record. notifier may be nil.
func NewMutator(kind string, store Store, cache *Cache, notifier Notifier) *Mutator {
	if cache == nil {
		cache = NewCache()
	}
	return &Mutator{kind: kind, store: store, cache: cache, notifier: notifier}
}

func (m *Mutator) Cache() *Cache { return m.cache }

// Apply adds delta to the record's balance. A zero delta still round-trips
// to the store and negative results are not clamped.
func (m *Mutator) Apply(ctx context.Context, id primitive.ObjectID, delta int) (Change, error) {
	points, err := m.store.IncrementPoints(ctx, id, delta)
	if err != nil {
		metrics.PointMutations.WithLabelValues(m.kind, "error").Inc()
		logrus.WithFields(logrus.Fields{
			"kind":  m.kind,
			"id":    id.Hex(),
			"delta": delta,
		}).WithError(err).Warn("Point mutation failed, cache left unchanged")
		return Change{}, err
	}

	m.cache.set(id.Hex(), points)
	metrics.PointMutations.WithLabelValues(m.kind, "ok").Inc()
	if m.notifier != nil {
		m.notifier.PointsChanged(m.kind, id.Hex(), points)
	}
	return Change{ID: id, Delta: delta, Points: points}, nil
}

// ApplyBulk applies delta to each id in turn. There is no rollback.
func (m *Mutator) ApplyBulk(ctx context.Context, ids []primitive.ObjectID, delta int) BulkResult {
	var res BulkResult
	for _, id := range ids {
		change, err := m.Apply(ctx, id, delta)
		if err != nil {
			res.Failed = append(res.Failed, id)
			res.Errors = append(res.Errors, err)
			continue
		}
		res.Updated = append(res.Updated, change)
	}

	logrus.WithFields(logrus.Fields{
		"kind":    m.kind,
		"delta":   delta,
		"updated": len(res.Updated),
		"failed":  len(res.Failed),
	}).Info("Bulk point award finished")
	return res
}

package points

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errWrite = errors.New("write failed")

type fakeStore struct {
	mu     sync.Mutex
	points map[primitive.ObjectID]int
	fail   map[primitive.ObjectID]bool
	calls  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{points: map[primitive.ObjectID]int{}, fail: map[primitive.ObjectID]bool{}}
}

func (s *fakeStore) IncrementPoints(_ context.Context, id primitive.ObjectID, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.fail[id] {
		return 0, errWrite
	}
	s.points[id] += delta
	return s.points[id], nil
}

type recorder struct {
	events []int
}

func (r *recorder) PointsChanged(_, _ string, points int) { r.events = append(r.events, points) }

func TestApply_Deltas(t *testing.T) {
	for _, delta := range []int{5, 10, 20, -5, 37} {
		store := newFakeStore()
		id := primitive.NewObjectID()
		store.points[id] = 3

		m := NewMutator(KindUser, store, nil, nil)
		m.Cache().Load(map[string]int{id.Hex(): 3})

		change, err := m.Apply(context.Background(), id, delta)
		require.NoError(t, err)
		assert.Equal(t, 3+delta, change.Points)
		assert.Equal(t, 3+delta, store.points[id])

		cached, ok := m.Cache().Get(id.Hex())
		require.True(t, ok)
		assert.Equal(t, 3+delta, cached)
	}
}

func TestApply_NegativeBalanceIsNotClamped(t *testing.T) {
	store := newFakeStore()
	id := primitive.NewObjectID()
	m := NewMutator(KindKid, store, nil, nil)

	change, err := m.Apply(context.Background(), id, -5)
	require.NoError(t, err)
	assert.Equal(t, -5, change.Points)
}

func TestApply_ZeroDeltaStillHitsStore(t *testing.T) {
	store := newFakeStore()
	m := NewMutator(KindUser, store, nil, nil)

	_, err := m.Apply(context.Background(), primitive.NewObjectID(), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, store.calls)
}

func TestApply_FailureLeavesCacheUnchanged(t *testing.T) {
	store := newFakeStore()
	id := primitive.NewObjectID()
	store.fail[id] = true
	rec := &recorder{}

	m := NewMutator(KindUser, store, nil, rec)
	m.Cache().Load(map[string]int{id.Hex(): 40})

	_, err := m.Apply(context.Background(), id, 10)
	require.ErrorIs(t, err, errWrite)

	cached, _ := m.Cache().Get(id.Hex())
	assert.Equal(t, 40, cached)
	assert.Empty(t, rec.events)
}

func TestApply_CacheTakesStoreValue(t *testing.T) {
	store := newFakeStore()
	id := primitive.NewObjectID()
	// another writer already moved the balance past what this process cached
	store.points[id] = 50

	m := NewMutator(KindUser, store, nil, nil)
	m.Cache().Load(map[string]int{id.Hex(): 10})

	_, err := m.Apply(context.Background(), id, 5)
	require.NoError(t, err)

	cached, _ := m.Cache().Get(id.Hex())
	assert.Equal(t, 55, cached)
}

func TestApplyBulk_AllSucceed(t *testing.T) {
	store := newFakeStore()
	ids := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()}
	rec := &recorder{}
	m := NewMutator(KindKid, store, nil, rec)

	res := m.ApplyBulk(context.Background(), ids, 10)
	require.NoError(t, res.Err())
	assert.Len(t, res.Updated, 3)
	for _, id := range ids {
		cached, _ := m.Cache().Get(id.Hex())
		assert.Equal(t, 10, cached)
	}
	assert.Len(t, rec.events, 3)
}

func TestApplyBulk_PartialFailureHasNoRollback(t *testing.T) {
	store := newFakeStore()
	a, b, c := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	store.fail[b] = true

	m := NewMutator(KindKid, store, nil, nil)
	m.Cache().Load(map[string]int{a.Hex(): 0, b.Hex(): 0, c.Hex(): 0})

	res := m.ApplyBulk(context.Background(), []primitive.ObjectID{a, b, c}, 5)
	require.Error(t, res.Err())
	assert.Equal(t, []primitive.ObjectID{b}, res.Failed)
	assert.Len(t, res.Updated, 2)

	snap := m.Cache().Snapshot()
	assert.Equal(t, 5, snap[a.Hex()])
	assert.Equal(t, 0, snap[b.Hex()])
	assert.Equal(t, 5, snap[c.Hex()])
	assert.Equal(t, 5, store.points[a])
	assert.Equal(t, 5, store.points[c])
}

func TestApply_ConcurrentIncrementsAllLand(t *testing.T) {
	store := newFakeStore()
	id := primitive.NewObjectID()
	m := NewMutator(KindUser, store, nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.Apply(context.Background(), id, 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, store.points[id])
}

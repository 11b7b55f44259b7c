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

type CampRepository struct {
	mu    sync.RWMutex
	camps map[primitive.ObjectID]models.Camp
}

func NewCampRepository() *CampRepository {
	return &CampRepository{camps: make(map[primitive.ObjectID]models.Camp)}
}

func (r *CampRepository) CreateCamp(_ context.Context, camp *models.Camp) (*models.Camp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if camp.ID.IsZero() {
		camp.ID = primitive.NewObjectID()
	}
	if camp.CreatedAt.IsZero() {
		camp.CreatedAt = time.Now()
	}
	if camp.Mentors == nil {
		camp.Mentors = []primitive.ObjectID{}
	}
	r.camps[camp.ID] = *camp
	return camp, nil
}

func (r *CampRepository) GetCampByID(_ context.Context, id primitive.ObjectID) (*models.Camp, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.camps[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *CampRepository) ListCamps(_ context.Context) ([]models.Camp, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Camp, 0, len(r.camps))
	for _, c := range r.camps {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

type CampKidRepository struct {
	mu   sync.RWMutex
	kids map[primitive.ObjectID]models.CampKid
}

func NewCampKidRepository() *CampKidRepository {
	return &CampKidRepository{kids: make(map[primitive.ObjectID]models.CampKid)}
}

func (r *CampKidRepository) CreateKid(_ context.Context, kid *models.CampKid) (*models.CampKid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if kid.ID.IsZero() {
		kid.ID = primitive.NewObjectID()
	}
	if kid.CreatedAt.IsZero() {
		kid.CreatedAt = time.Now()
	}
	r.kids[kid.ID] = *kid
	return kid, nil
}

func (r *CampKidRepository) GetKidByID(_ context.Context, id primitive.ObjectID) (*models.CampKid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	k, ok := r.kids[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &k, nil
}

func (r *CampKidRepository) ListByCamp(_ context.Context, campID primitive.ObjectID) ([]models.CampKid, error) {
	return r.filter(func(k models.CampKid) bool { return k.CampID == campID }), nil
}

func (r *CampKidRepository) ListByGroup(_ context.Context, campID primitive.ObjectID, group int) ([]models.CampKid, error) {
	return r.filter(func(k models.CampKid) bool { return k.CampID == campID && k.GroupNumber == group }), nil
}

func (r *CampKidRepository) IncrementPoints(_ context.Context, id primitive.ObjectID, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k, ok := r.kids[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	k.Points += delta
	r.kids[id] = k
	return k.Points, nil
}

func (r *CampKidRepository) filter(keep func(models.CampKid) bool) []models.CampKid {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.CampKid
	for _, k := range r.kids {
		if keep(k) {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].Nickname < out[j].Nickname
	})
	return out
}

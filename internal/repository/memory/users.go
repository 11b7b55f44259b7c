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

type UserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]models.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[primitive.ObjectID]models.User)}
}

// CreateUser enforces the same unique name pair as the Mongo index.
func (r *UserRepository) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.FirstName == user.FirstName && u.LastName == user.LastName {
			return nil, repository.ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.users[user.ID] = *user
	return user, nil
}

func (r *UserRepository) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) FindByName(_ context.Context, firstName, lastName string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.FirstName == firstName && u.LastName == lastName {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetAllUsers(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *UserRepository) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	all, _ := r.GetAllUsers(ctx)

	out := all[:0]
	for _, u := range all {
		if u.Role == role {
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

func (r *UserRepository) UpdateLastLogin(_ context.Context, id primitive.ObjectID, at time.Time) error {
	return r.update(id, func(u *models.User) { u.LastLoginAt = at })
}

func (r *UserRepository) SetRole(_ context.Context, id primitive.ObjectID, role string) error {
	return r.update(id, func(u *models.User) { u.Role = role })
}

func (r *UserRepository) SetCampMentor(_ context.Context, id, campID primitive.ObjectID) error {
	return r.update(id, func(u *models.User) {
		u.CampMentor = true
		u.CampID = &campID
	})
}

func (r *UserRepository) IncrementPoints(_ context.Context, id primitive.ObjectID, delta int) (int, error) {
	var points int
	err := r.update(id, func(u *models.User) {
		u.Points += delta
		points = u.Points
	})
	return points, err
}

func (r *UserRepository) update(id primitive.ObjectID, fn func(*models.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	fn(&u)
	r.users[id] = u
	return nil
}

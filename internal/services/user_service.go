package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Dias221467/FF_Points/internal/models"
	"github.com/Dias221467/FF_Points/internal/repository"
	"github.com/Dias221467/FF_Points/pkg/sanitize"
	"github.com/Dias221467/FF_Points/pkg/validation"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput is the registration form.
type RegisterInput struct {
	FirstName string `json:"first_name" validate:"notblank,max=80"`
	LastName  string `json:"last_name" validate:"notblank,max=80"`
	Nickname  string `json:"nickname" validate:"notblank,max=40"`
	Password  string `json:"password" validate:"min=6,max=72"`
}

// LoginInput is the login form.
type LoginInput struct {
	FirstName string `json:"first_name" validate:"notblank"`
	LastName  string `json:"last_name" validate:"notblank"`
	Password  string `json:"password" validate:"required"`
}

// UserService encapsulates the business logic for user operations.
type UserService struct {
	repo      UserStore
	bootstrap string
	now       func() time.Time
}

// NewUserService creates a new instance of UserService. adminName is the
// "First Last" pair promoted to admin on registration or login; empty
// disables the bootstrap.
func NewUserService(repo UserStore, adminName string) *UserService {
	return &UserService{
		repo:      repo,
		bootstrap: normalizeName(adminName),
		now:       time.Now,
	}
}

// RegisterUser creates a student account. A second account with the same
// name pair is rejected with ErrDuplicate.
func (s *UserService) RegisterUser(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.FirstName, in.LastName = cleanNamePair(in.FirstName, in.LastName)
	in.Nickname = sanitize.Text(in.Nickname)
	if err := validation.Struct(in); err != nil {
		logrus.WithError(err).Warn("Invalid registration")
		return nil, validationErr(err)
	}

	existing, err := s.repo.FindByName(ctx, in.FirstName, in.LastName)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, storeErr("check existing user", err)
	}
	if existing != nil {
		logrus.WithFields(logrus.Fields{
			"first_name": in.FirstName,
			"last_name":  in.LastName,
		}).Warn("Name pair already registered")
		return nil, fmt.Errorf("user %s %s: %w", in.FirstName, in.LastName, ErrDuplicate)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Password hashing failed")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := &models.User{
		Username:       generateUsername(in.FirstName, in.LastName),
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Nickname:       in.Nickname,
		HashedPassword: string(hashed),
		Role:           models.RoleStudent,
		Points:         0,
		CreatedAt:      now,
		LastLoginAt:    now,
	}
	if s.isBootstrapAdmin(user) {
		user.Role = models.RoleAdmin
	}

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, storeErr("register user", err)
	}

	logrus.WithFields(logrus.Fields{
		"userID": created.ID.Hex(),
		"role":   created.Role,
	}).Info("User registered successfully")
	return created, nil
}

// AuthenticateUser checks the name pair and password. An unknown name pair is
// ErrNotFound; a wrong password is ErrInvalidCredentials.
func (s *UserService) AuthenticateUser(ctx context.Context, in LoginInput) (*models.User, error) {
	in.FirstName, in.LastName = cleanNamePair(in.FirstName, in.LastName)
	if err := validation.Struct(in); err != nil {
		return nil, validationErr(err)
	}

	user, err := s.repo.FindByName(ctx, in.FirstName, in.LastName)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"first_name": in.FirstName,
			"last_name":  in.LastName,
		}).Warn("Login for unknown user")
		return nil, storeErr("find user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(in.Password)); err != nil {
		logrus.WithField("userID", user.ID.Hex()).Warn("Invalid credentials")
		return nil, ErrInvalidCredentials
	}

	if s.isBootstrapAdmin(user) && user.Role != models.RoleAdmin {
		if err := s.repo.SetRole(ctx, user.ID, models.RoleAdmin); err != nil {
			return nil, storeErr("promote bootstrap admin", err)
		}
		user.Role = models.RoleAdmin
		logrus.WithField("userID", user.ID.Hex()).Info("Bootstrap account promoted to admin")
	}

	now := s.now()
	if err := s.repo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		logrus.WithError(err).Warn("Failed to stamp last login")
	} else {
		user.LastLoginAt = now
	}

	logrus.WithField("userID", user.ID.Hex()).Info("User authenticated successfully")
	return user, nil
}

// GetUser retrieves a user by their ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, validationErr(fmt.Errorf("invalid user ID %q", id))
	}

	user, err := s.repo.GetUserByID(ctx, objID)
	if err != nil {
		return nil, storeErr("get user", err)
	}
	return user, nil
}

// ListStudents returns the student roster for admins, highest points first.
func (s *UserService) ListStudents(ctx context.Context, actor *models.User) ([]models.PublicUser, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	return s.Leaderboard(ctx)
}

// Leaderboard returns students ranked by points.
func (s *UserService) Leaderboard(ctx context.Context) ([]models.PublicUser, error) {
	users, err := s.repo.ListByRole(ctx, models.RoleStudent)
	if err != nil {
		return nil, storeErr("list students", err)
	}

	out := make([]models.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out, nil
}

func (s *UserService) isBootstrapAdmin(u *models.User) bool {
	return s.bootstrap != "" && normalizeName(u.FirstName+" "+u.LastName) == s.bootstrap
}

// cleanNamePair normalises a name pair. Registration and login must agree.
func cleanNamePair(first, last string) (string, string) {
	return sanitize.Text(first), sanitize.Text(last)
}

func normalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func generateUsername(firstName, lastName string) string {
	first := strings.ToLower(strings.Join(strings.Fields(firstName), ""))
	last := strings.ToLower(strings.Join(strings.Fields(lastName), ""))
	return fmt.Sprintf("%s%s%d", first, last, rand.Intn(1000))
}

func requireAdmin(actor *models.User) error {
	if actor == nil || !actor.IsAdmin() {
		return fmt.Errorf("admin role required: %w", ErrForbidden)
	}
	return nil
}

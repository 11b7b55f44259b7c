package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Dias221467/FF_Points/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUser_Defaults(t *testing.T) {
	f := newFixture(t, true)

	u := f.register(t, "Somsri", "Jaidee")

	assert.Equal(t, models.RoleStudent, u.Role)
	assert.Equal(t, 0, u.Points)
	assert.True(t, strings.HasPrefix(u.Username, "somsrijaidee"))
	assert.NotEqual(t, "secret1", u.HashedPassword)
}

func TestRegisterUser_DuplicateNamePair(t *testing.T) {
	f := newFixture(t, true)
	f.register(t, "Somsri", "Jaidee")

	_, err := f.Users.RegisterUser(context.Background(), RegisterInput{
		FirstName: "Somsri", LastName: "Jaidee", Nickname: "again", Password: "secret2",
	})
	assert.True(t, errors.Is(err, ErrDuplicate))

	all, err := f.users.GetAllUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRegisterUser_Validation(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	cases := []RegisterInput{
		{FirstName: "", LastName: "B", Nickname: "n", Password: "secret1"},
		{FirstName: "A", LastName: " ", Nickname: "n", Password: "secret1"},
		{FirstName: "A", LastName: "B", Nickname: "", Password: "secret1"},
		{FirstName: "A", LastName: "B", Nickname: "n", Password: "12345"},
	}
	for _, in := range cases {
		_, err := f.Users.RegisterUser(ctx, in)
		assert.True(t, errors.Is(err, ErrValidation), "input %+v", in)
	}
}

func TestAuthenticateUser(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	f.register(t, "Somsri", "Jaidee")

	u, err := f.Users.AuthenticateUser(ctx, LoginInput{FirstName: "Somsri", LastName: "Jaidee", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Somsri", u.FirstName)
	assert.False(t, u.LastLoginAt.IsZero())

	_, err = f.Users.AuthenticateUser(ctx, LoginInput{FirstName: "Somsri", LastName: "Jaidee", Password: "wrong!"})
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	_, err = f.Users.AuthenticateUser(ctx, LoginInput{FirstName: "Nobody", LastName: "Here", Password: "secret1"})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestAuthenticateUser_PromotesBootstrapAdmin(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	// Registered before the bootstrap name was configured.
	plain := NewUserService(f.users, "")
	u, err := plain.RegisterUser(ctx, RegisterInput{FirstName: "Ada", LastName: "Admin", Nickname: "ada", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, models.RoleStudent, u.Role)

	u, err = f.Users.AuthenticateUser(ctx, LoginInput{FirstName: "Ada", LastName: "Admin", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)

	stored, err := f.users.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, stored.Role)
}

func TestLeaderboard_SortedStudentsOnly(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	admin := f.admin(t)
	a := f.register(t, "Anna", "A")
	b := f.register(t, "Boris", "B")

	_, err := f.Points.AdjustUserPoints(ctx, admin, b.ID.Hex(), 30)
	require.NoError(t, err)
	_, err = f.Points.AdjustUserPoints(ctx, admin, a.ID.Hex(), 10)
	require.NoError(t, err)

	board, err := f.Users.Leaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, b.ID, board[0].ID)
	assert.Equal(t, 30, board[0].Points)
	assert.Equal(t, a.ID, board[1].ID)

	_, err = f.Users.ListStudents(ctx, a)
	assert.True(t, errors.Is(err, ErrForbidden))
}

func TestAuthenticateUser_SameInputAsRegistration(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	u, err := f.Users.RegisterUser(ctx, RegisterInput{
		FirstName: "Jo<i>h</i>n",
		LastName:  " O&amp;Brien ",
		Nickname:  "jo",
		Password:  "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "John", u.FirstName)
	assert.Equal(t, "O&Brien", u.LastName)

	got, err := f.Users.AuthenticateUser(ctx, LoginInput{
		FirstName: "Jo<i>h</i>n",
		LastName:  " O&amp;Brien ",
		Password:  "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	got, err = f.Users.AuthenticateUser(ctx, LoginInput{FirstName: "John", LastName: "O&Brien", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

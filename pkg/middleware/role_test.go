package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dias221467/FF_Points/internal/models"
	"github.com/Dias221467/FF_Points/internal/repository"
	jwtutil "github.com/Dias221467/FF_Points/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type profiles map[primitive.ObjectID]*models.User

func (p profiles) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if u, ok := p[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

// adminChain wires the same middleware order the router uses for admin views.
func adminChain(secret string, lookup ProfileLookup, fetched *bool) http.Handler {
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*fetched = true
		w.WriteHeader(http.StatusOK)
	})
	return AuthMiddleware(secret)(LoadProfile(lookup)(RequireRole(models.RoleAdmin)(final)))
}

func TestRequireRole_StudentRedirectedBeforeFetch(t *testing.T) {
	student := &models.User{ID: primitive.NewObjectID(), Role: models.RoleStudent}
	// token claims admin, the stored profile says student
	token, err := jwtutil.GenerateToken(student.ID.Hex(), "s", models.RoleAdmin, "k", time.Hour)
	require.NoError(t, err)

	fetched := false
	h := adminChain("k", profiles{student.ID: student}, &fetched)

	req := httptest.NewRequest(http.MethodGet, "/admin/students", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "text/html")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
	assert.False(t, fetched)

	req = httptest.NewRequest(http.MethodGet, "/admin/students", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.False(t, fetched)
}

func TestRequireRole_AdminAllowed(t *testing.T) {
	admin := &models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
	token, err := jwtutil.GenerateToken(admin.ID.Hex(), "a", models.RoleAdmin, "k", time.Hour)
	require.NoError(t, err)

	fetched := false
	h := adminChain("k", profiles{admin.ID: admin}, &fetched)

	req := httptest.NewRequest(http.MethodGet, "/admin/students", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, fetched)
}

func TestAuthMiddleware_MissingAndInvalidToken(t *testing.T) {
	fetched := false
	h := adminChain("k", profiles{}, &fetched)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/students", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/admin/students", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, fetched)
}

func TestLoadProfile_MissingProfile(t *testing.T) {
	token, err := jwtutil.GenerateToken(primitive.NewObjectID().Hex(), "x", models.RoleAdmin, "k", time.Hour)
	require.NoError(t, err)

	fetched := false
	h := adminChain("k", profiles{}, &fetched)

	req := httptest.NewRequest(http.MethodGet, "/admin/students?token="+token, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, fetched)
}

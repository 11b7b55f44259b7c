package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Dias221467/FF_Points/internal/models"
	"github.com/Dias221467/FF_Points/internal/repository"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProfileLookup reads the stored profile of a user.
type ProfileLookup interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// LoadProfile fetches the caller's stored profile on every request. The
// profile, not the token claims, is what authorization decisions use.
func LoadProfile(profiles ProfileLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := GetUserFromContext(r.Context())
			if sess == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			profile, err := profiles.GetUserByID(r.Context(), sess.UserID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					logrus.WithField("userID", sess.UserID.Hex()).Warn("Session refers to a missing profile")
					http.Error(w, "Profile not found", http.StatusUnauthorized)
					return
				}
				logrus.WithError(err).Error("Failed to load profile")
				http.Error(w, "Failed to load profile", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), profileKey, profile)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetProfileFromContext returns the profile placed by LoadProfile, or nil.
func GetProfileFromContext(ctx context.Context) *models.User {
	u, _ := ctx.Value(profileKey).(*models.User)
	return u
}

// WithProfile returns a copy of ctx carrying profile.
func WithProfile(ctx context.Context, profile *models.User) context.Context {
	return context.WithValue(ctx, profileKey, profile)
}

// RequireRole lets the request through only when the stored role matches.
// Page requests are redirected to the student dashboard; API calls get 403.
// Must run after LoadProfile.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profile := GetProfileFromContext(r.Context())
			if profile == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if profile.Role != role {
				logrus.WithFields(logrus.Fields{
					"userID": profile.ID.Hex(),
					"role":   profile.Role,
					"need":   role,
					"path":   r.URL.Path,
				}).Warn("Role gate rejected request")

				if wantsHTML(r) {
					http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
					return
				}
				http.Error(w, "Forbidden: "+role+"s only", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

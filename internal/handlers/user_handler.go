package handlers

import (
	"net/http"

	"github.com/Dias221467/FF_Points/internal/config"
	"github.com/Dias221467/FF_Points/internal/models"
	"github.com/Dias221467/FF_Points/internal/services"
	jwtutil "github.com/Dias221467/FF_Points/pkg/jwt"
	"github.com/Dias221467/FF_Points/pkg/middleware"
	log "github.com/sirupsen/logrus"
)

// UserHandler handles HTTP requests related to user operations.
type UserHandler struct {
	Service *services.UserService
	Config  *config.Config
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(service *services.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		Service: service,
		Config:  cfg,
	}
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// RegisterUserHandler handles user registration.
func (h *UserHandler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if !decodeJSON(w, r, &in) {
		return
	}

	user, err := h.Service.RegisterUser(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := h.issueToken(user)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

// LoginUserHandler handles user login. An unknown name pair is 404 and no
// token is issued.
func (h *UserHandler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if !decodeJSON(w, r, &in) {
		return
	}

	user, err := h.Service.AuthenticateUser(r.Context(), in)
	if err != nil {
		log.WithFields(log.Fields{
			"first_name": in.FirstName,
			"last_name":  in.LastName,
			"error":      err,
		}).Warn("Authentication failed")
		writeError(w, err)
		return
	}

	token, err := h.issueToken(user)
	if err != nil {
		writeError(w, err)
		return
	}

	log.WithField("userID", user.ID.Hex()).Info("User logged in successfully")
	writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

// MeHandler returns the stored profile of the caller.
func (h *UserHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, middleware.GetProfileFromContext(r.Context()))
}

func (h *UserHandler) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	board, err := h.Service.Leaderboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func (h *UserHandler) AdminStudentsHandler(w http.ResponseWriter, r *http.Request) {
	students, err := h.Service.ListStudents(r.Context(), middleware.GetProfileFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, students)
}

func (h *UserHandler) issueToken(user *models.User) (string, error) {
	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.DisplayName(), user.Role, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		log.WithError(err).Error("Failed to generate JWT token")
		return "", err
	}
	return token, nil
}

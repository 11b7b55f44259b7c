package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dias221467/FF_Points/internal/services"
	log "github.com/sirupsen/logrus"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("Failed to encode response")
	}
}

// writeError maps a service error onto a status code. Anything unrecognised
// is a store failure and is reported as 500 without details.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := "Internal server error"

	switch {
	case errors.Is(err, services.ErrValidation):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, services.ErrForbidden):
		status, msg = http.StatusForbidden, "Forbidden"
	case errors.Is(err, services.ErrNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, services.ErrAlreadyCompleted):
		status, msg = http.StatusConflict, "Activity already completed"
	case errors.Is(err, services.ErrDuplicate):
		status, msg = http.StatusConflict, err.Error()
	default:
		log.WithError(err).Error("Request failed")
	}

	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.WithError(err).Warn("Failed to decode request")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		return false
	}
	return true
}

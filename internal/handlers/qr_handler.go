package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Dias221467/FF_Points/internal/models"
	"github.com/Dias221467/FF_Points/internal/qrid"
	"github.com/Dias221467/FF_Points/internal/services"
	"github.com/Dias221467/FF_Points/pkg/middleware"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/skip2/go-qrcode"
)

const (
	defaultQRSize = 256
	maxQRSize     = 1024
)

type QRHandler struct {
	Users *services.UserService
}

func NewQRHandler(users *services.UserService) *QRHandler {
	return &QRHandler{Users: users}
}

type qrResponse struct {
	Payload    string `json:"payload"`
	Structured string `json:"structured"`
}

// PayloadHandler returns the badge payloads for a user. Students may only
// fetch their own.
func (h *QRHandler) PayloadHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := h.badgeOwner(w, r)
	if !ok {
		return
	}

	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	plain, err := qrid.Encode(user.ID.Hex(), name)
	if err != nil {
		writeError(w, err)
		return
	}
	structured, err := qrid.EncodeStructured(user.ID.Hex(), name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, qrResponse{Payload: plain, Structured: structured})
}

// PNGHandler renders the plain badge payload as a QR image.
func (h *QRHandler) PNGHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := h.badgeOwner(w, r)
	if !ok {
		return
	}

	size := defaultQRSize
	if s, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil && s > 0 {
		size = min(s, maxQRSize)
	}

	payload, err := qrid.Encode(user.ID.Hex(), strings.TrimSpace(user.FirstName+" "+user.LastName))
	if err != nil {
		writeError(w, err)
		return
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		log.WithError(err).WithField("userID", user.ID.Hex()).Error("Failed to render QR code")
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	_, _ = w.Write(png)
}

// CameraHelpHandler explains how to recover from a scanner camera fault.
func (h *QRHandler) CameraHelpHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fault, ok := qrid.ParseFault(q.Get("reason"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown camera fault"})
		return
	}

	platform := q.Get("platform")
	if platform != qrid.PlatformIOS && platform != qrid.PlatformGeneric {
		platform = qrid.DetectPlatform(r.UserAgent())
	}
	writeJSON(w, http.StatusOK, qrid.Remediate(fault, platform))
}

func (h *QRHandler) badgeOwner(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	profile := middleware.GetProfileFromContext(r.Context())
	id := mux.Vars(r)["id"]
	if profile == nil || (profile.ID.Hex() != id && !profile.IsAdmin()) {
		writeError(w, services.ErrForbidden)
		return nil, false
	}

	if profile.ID.Hex() == id {
		return profile, true
	}
	user, err := h.Users.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return user, true
}

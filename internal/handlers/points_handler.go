package handlers

import (
	"net/http"
	"strconv"

	"github.com/Dias221467/FF_Points/internal/services"
	"github.com/Dias221467/FF_Points/pkg/middleware"
	"github.com/gorilla/mux"
)

type PointsHandler struct {
	Service *services.PointsService
}

func NewPointsHandler(service *services.PointsService) *PointsHandler {
	return &PointsHandler{Service: service}
}

type deltaRequest struct {
	Delta int `json:"delta"`
}

type scanRequest struct {
	Payload string `json:"payload"`
	Delta   int    `json:"delta"`
}

// AdjustPointsHandler applies a manual delta to a student.
func (h *PointsHandler) AdjustPointsHandler(w http.ResponseWriter, r *http.Request) {
	var req deltaRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	award, err := h.Service.AdjustUserPoints(r.Context(), middleware.GetProfileFromContext(r.Context()), mux.Vars(r)["id"], req.Delta)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, award)
}

// ScanHandler awards points to whoever the scanned code identifies. A 404
// tells the scanner to keep scanning.
func (h *PointsHandler) ScanHandler(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	award, err := h.Service.ScanAward(r.Context(), middleware.GetProfileFromContext(r.Context()), req.Payload, req.Delta)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, award)
}

func (h *PointsHandler) LogsHandler(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	logs, err := h.Service.RecentLogs(r.Context(), middleware.GetProfileFromContext(r.Context()), mux.Vars(r)["id"], limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

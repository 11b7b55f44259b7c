package handlers

import (
	"net/http"

	"github.com/Dias221467/FF_Points/internal/export"
	"github.com/Dias221467/FF_Points/internal/services"
	"github.com/Dias221467/FF_Points/pkg/middleware"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type CampHandler struct {
	Service *services.CampService
}

func NewCampHandler(service *services.CampService) *CampHandler {
	return &CampHandler{Service: service}
}

func (h *CampHandler) CreateCampHandler(w http.ResponseWriter, r *http.Request) {
	var in services.CampInput
	if !decodeJSON(w, r, &in) {
		return
	}
	camp, err := h.Service.CreateCamp(r.Context(), middleware.GetProfileFromContext(r.Context()), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, camp)
}

func (h *CampHandler) ListCampsHandler(w http.ResponseWriter, r *http.Request) {
	camps, err := h.Service.ListCamps(r.Context(), middleware.GetProfileFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, camps)
}

func (h *CampHandler) GetCampHandler(w http.ResponseWriter, r *http.Request) {
	camp, err := h.Service.GetCamp(r.Context(), middleware.GetProfileFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, camp)
}

func (h *CampHandler) MyCampHandler(w http.ResponseWriter, r *http.Request) {
	camp, err := h.Service.MentorCamp(r.Context(), middleware.GetProfileFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, camp)
}

func (h *CampHandler) AddKidHandler(w http.ResponseWriter, r *http.Request) {
	var in services.KidInput
	if !decodeJSON(w, r, &in) {
		return
	}
	kid, err := h.Service.AddKid(r.Context(), middleware.GetProfileFromContext(r.Context()), mux.Vars(r)["id"], in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, kid)
}

func (h *CampHandler) ListKidsHandler(w http.ResponseWriter, r *http.Request) {
	kids, err := h.Service.ListKids(r.Context(), middleware.GetProfileFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, kids)
}

func (h *CampHandler) GroupsHandler(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Service.Groups(r.Context(), middleware.GetProfileFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (h *CampHandler) AdjustKidPointsHandler(w http.ResponseWriter, r *http.Request) {
	var req deltaRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	vars := mux.Vars(r)
	change, err := h.Service.AdjustKidPoints(r.Context(), middleware.GetProfileFromContext(r.Context()), vars["id"], vars["kidID"], req.Delta)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, change)
}

// AwardGroupHandler answers 207 when only part of the group was updated.
func (h *CampHandler) AwardGroupHandler(w http.ResponseWriter, r *http.Request) {
	var req deltaRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	vars := mux.Vars(r)
	group, err := services.ParseGroup(vars["group"])
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := h.Service.AwardGroup(r.Context(), middleware.GetProfileFromContext(r.Context()), vars["id"], group, req.Delta)
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusOK
	if len(res.Failed) > 0 {
		status = http.StatusMultiStatus
	}
	writeJSON(w, status, res)
}

// ExportHandler streams the camp leaderboard as an .xlsx download.
func (h *CampHandler) ExportHandler(w http.ResponseWriter, r *http.Request) {
	profile := middleware.GetProfileFromContext(r.Context())
	campID := mux.Vars(r)["id"]

	camp, err := h.Service.GetCamp(r.Context(), profile, campID)
	if err != nil {
		writeError(w, err)
		return
	}
	kids, err := h.Service.ListKids(r.Context(), profile, campID)
	if err != nil {
		writeError(w, err)
		return
	}

	wb, err := export.NewCampWorkbook(camp, kids)
	if err != nil {
		writeError(w, err)
		return
	}
	defer wb.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+wb.Name+`"`)
	if _, err := wb.WriteTo(w); err != nil {
		log.WithError(err).WithField("campID", campID).Error("Failed to stream camp export")
	}
}

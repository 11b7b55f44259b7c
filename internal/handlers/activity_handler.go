package handlers

import (
	"net/http"

	"github.com/Dias221467/FF_Points/internal/services"
	"github.com/Dias221467/FF_Points/pkg/middleware"
	"github.com/gorilla/mux"
)

type ActivityHandler struct {
	Activities  *services.ActivityService
	Completions *services.CompletionService
}

func NewActivityHandler(activities *services.ActivityService, completions *services.CompletionService) *ActivityHandler {
	return &ActivityHandler{Activities: activities, Completions: completions}
}

func (h *ActivityHandler) ListActivitiesHandler(w http.ResponseWriter, r *http.Request) {
	activities, err := h.Activities.ListActivities(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

func (h *ActivityHandler) CreateActivityHandler(w http.ResponseWriter, r *http.Request) {
	var in services.ActivityInput
	if !decodeJSON(w, r, &in) {
		return
	}

	activity, err := h.Activities.CreateActivity(r.Context(), middleware.GetProfileFromContext(r.Context()), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, activity)
}

func (h *ActivityHandler) DeleteActivityHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Activities.DeleteActivity(r.Context(), middleware.GetProfileFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CompleteActivityHandler claims an activity's reward for the caller.
func (h *ActivityHandler) CompleteActivityHandler(w http.ResponseWriter, r *http.Request) {
	sess := middleware.GetUserFromContext(r.Context())
	completion, err := h.Completions.CompleteActivity(r.Context(), sess, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, completion)
}

func (h *ActivityHandler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	history, err := h.Completions.History(r.Context(), middleware.GetUserFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (h *ActivityHandler) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.Completions.Dashboard(r.Context(), middleware.GetUserFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

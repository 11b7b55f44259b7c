package handlers

import (
	"context"
	"net/http"

	"github.com/Dias221467/FF_Points/internal/config"
	"github.com/Dias221467/FF_Points/internal/metrics"
	"github.com/Dias221467/FF_Points/internal/models"
	"github.com/Dias221467/FF_Points/internal/realtime"
	"github.com/Dias221467/FF_Points/internal/services"
	"github.com/Dias221467/FF_Points/pkg/middleware"
	"github.com/gorilla/mux"
)

// Deps is everything the router needs.
type Deps struct {
	Config      *config.Config
	Profiles    middleware.ProfileLookup
	Users       *services.UserService
	Activities  *services.ActivityService
	Completions *services.CompletionService
	Points      *services.PointsService
	Camps       *services.CampService
	Hub         *realtime.Hub
	// Ping reports store health; nil means always healthy.
	Ping func(ctx context.Context) error
}

func NewRouter(d Deps) *mux.Router {
	userHandler := NewUserHandler(d.Users, d.Config)
	activityHandler := NewActivityHandler(d.Activities, d.Completions)
	pointsHandler := NewPointsHandler(d.Points)
	campHandler := NewCampHandler(d.Camps)
	qrHandler := NewQRHandler(d.Users)

	router := mux.NewRouter()
	router.Use(middleware.RecoverMiddleware, middleware.LoggingMiddleware)

	// Public routes
	router.HandleFunc("/users/register", userHandler.RegisterUserHandler).Methods("POST")
	router.HandleFunc("/users/login", userHandler.LoginUserHandler).Methods("POST")
	router.HandleFunc("/qr/camera-help", qrHandler.CameraHelpHandler).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")
	router.HandleFunc("/healthz", healthHandler(d.Ping)).Methods("GET")

	// Authenticated routes; the stored profile is loaded for every request
	protected := router.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware(d.Config.JWTSecret), middleware.LoadProfile(d.Profiles))

	protected.HandleFunc("/users/me", userHandler.MeHandler).Methods("GET")
	protected.HandleFunc("/users/{id}/qr", qrHandler.PayloadHandler).Methods("GET")
	protected.HandleFunc("/users/{id}/qr.png", qrHandler.PNGHandler).Methods("GET")
	protected.HandleFunc("/leaderboard", userHandler.LeaderboardHandler).Methods("GET")

	protected.HandleFunc("/activities", activityHandler.ListActivitiesHandler).Methods("GET")
	protected.HandleFunc("/activities/{id}/complete", activityHandler.CompleteActivityHandler).Methods("POST")
	protected.HandleFunc("/completions", activityHandler.HistoryHandler).Methods("GET")
	protected.HandleFunc("/dashboard", activityHandler.DashboardHandler).Methods("GET")

	// Camp routes: admin or the camp's mentor, checked by the service
	protected.HandleFunc("/camps/mine", campHandler.MyCampHandler).Methods("GET")
	protected.HandleFunc("/camps/{id}", campHandler.GetCampHandler).Methods("GET")
	protected.HandleFunc("/camps/{id}/kids", campHandler.ListKidsHandler).Methods("GET")
	protected.HandleFunc("/camps/{id}/groups", campHandler.GroupsHandler).Methods("GET")
	protected.HandleFunc("/camps/{id}/kids/{kidID}/points", campHandler.AdjustKidPointsHandler).Methods("POST")
	protected.HandleFunc("/camps/{id}/groups/{group}/points", campHandler.AwardGroupHandler).Methods("POST")
	protected.HandleFunc("/camps/{id}/export", campHandler.ExportHandler).Methods("GET")

	if d.Hub != nil {
		protected.HandleFunc("/ws", d.Hub.ServeWS).Methods("GET")
	}

	// Admin routes
	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	admin.HandleFunc("/activities", activityHandler.CreateActivityHandler).Methods("POST")
	admin.HandleFunc("/activities/{id}", activityHandler.DeleteActivityHandler).Methods("DELETE")
	admin.HandleFunc("/students", userHandler.AdminStudentsHandler).Methods("GET")
	admin.HandleFunc("/users/{id}/points", pointsHandler.AdjustPointsHandler).Methods("POST")
	admin.HandleFunc("/users/{id}/logs", pointsHandler.LogsHandler).Methods("GET")
	admin.HandleFunc("/scan", pointsHandler.ScanHandler).Methods("POST")
	admin.HandleFunc("/camps", campHandler.CreateCampHandler).Methods("POST")
	admin.HandleFunc("/camps", campHandler.ListCampsHandler).Methods("GET")
	admin.HandleFunc("/camps/{id}/kids", campHandler.AddKidHandler).Methods("POST")

	return router
}

func healthHandler(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			if err := ping(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

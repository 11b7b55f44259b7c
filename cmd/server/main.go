package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dias221467/FF_Points/internal/config"
	"github.com/Dias221467/FF_Points/internal/database"
	"github.com/Dias221467/FF_Points/internal/handlers"
	"github.com/Dias221467/FF_Points/internal/jobs"
	"github.com/Dias221467/FF_Points/internal/points"
	"github.com/Dias221467/FF_Points/internal/realtime"
	"github.com/Dias221467/FF_Points/internal/repository"
	"github.com/Dias221467/FF_Points/internal/repository/memory"
	cron "github.com/Dias221467/FF_Points/internal/scheduler"
	"github.com/Dias221467/FF_Points/internal/services"
	"github.com/Dias221467/FF_Points/pkg/logger"
	"github.com/Dias221467/FF_Points/pkg/observability"
	"github.com/rs/cors"
)

var version = "dev"

type stores struct {
	users       services.UserStore
	activities  services.ActivityStore
	completions services.CompletionStore
	camps       services.CampStore
	kids        services.CampKidStore
	logs        services.PointLogStore
	ping        func(ctx context.Context) error
	close       func()
}

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger(cfg.LogLevel)
	logger.Log.Info("Logger initialized")

	flushSentry, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, version)
	if err != nil {
		logger.Log.WithError(err).Warn("Sentry disabled")
	}
	defer flushSentry()

	st, err := openStores(cfg)
	if err != nil {
		logger.Log.Fatalf("Store initialization error: %v", err)
	}
	defer st.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Realtime ---
	hub := realtime.NewHub(nil)
	go hub.Run(ctx)

	// --- Points ---
	userMutator := points.NewMutator(points.KindUser, st.users, nil, hub)
	kidMutator := points.NewMutator(points.KindKid, st.kids, nil, hub)
	warmUserCache(ctx, st.users, userMutator.Cache())

	// --- Services ---
	userService := services.NewUserService(st.users, cfg.AdminBootstrapName)
	activityService := services.NewActivityService(st.activities)
	completionService := services.NewCompletionService(st.activities, st.completions, st.users, userMutator)
	pointsService := services.NewPointsService(st.users, st.logs, userMutator)
	campService := services.NewCampService(st.camps, st.kids, st.users, kidMutator)

	// --- Jobs ---
	auditor := jobs.NewPointsAuditor(st.users, st.completions, st.logs)
	scheduler, err := cron.StartAuditCron(auditor, cfg.ReconcileSchedule)
	if err != nil {
		logger.Log.Fatalf("Invalid RECONCILE_SCHEDULE %q: %v", cfg.ReconcileSchedule, err)
	}
	defer scheduler.Stop()

	router := handlers.NewRouter(handlers.Deps{
		Config:      cfg,
		Profiles:    st.users,
		Users:       userService,
		Activities:  activityService,
		Completions: completionService,
		Points:      pointsService,
		Camps:       campService,
		Hub:         hub,
		Ping:        st.ping,
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.WithField("port", cfg.Port).Info("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Warn("Graceful shutdown failed")
	}
}

func openStores(cfg *config.Config) (*stores, error) {
	if cfg.StoreDriver == config.DriverMemory {
		logger.Log.Warn("Using in-memory store, data is lost on restart")
		return &stores{
			users:       memory.NewUserRepository(),
			activities:  memory.NewActivityRepository(),
			completions: memory.NewCompletionRepository(cfg.UniqueCompletions),
			camps:       memory.NewCampRepository(),
			kids:        memory.NewCampKidRepository(),
			logs:        memory.NewPointLogRepository(),
			close:       func() {},
		}, nil
	}

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := repository.EnsureIndexes(ctx, db, cfg.UniqueCompletions); err != nil {
		database.Disconnect(db)
		return nil, err
	}

	return &stores{
		users:       repository.NewUserRepository(db),
		activities:  repository.NewActivityRepository(db),
		completions: repository.NewCompletionRepository(db),
		camps:       repository.NewCampRepository(db),
		kids:        repository.NewCampKidRepository(db),
		logs:        repository.NewPointLogRepository(db),
		ping: func(ctx context.Context) error {
			return database.Ping(ctx, db.Client())
		},
		close: func() { database.Disconnect(db) },
	}, nil
}

func warmUserCache(ctx context.Context, users services.UserStore, cache *points.Cache) {
	all, err := users.GetAllUsers(ctx)
	if err != nil {
		logger.Log.WithError(err).Warn("Could not warm points cache")
		return
	}
	balances := make(map[string]int, len(all))
	for _, u := range all {
		balances[u.ID.Hex()] = u.Points
	}
	cache.Load(balances)
}

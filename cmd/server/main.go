package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/havenhq/haven/api/internal/config"
	"github.com/havenhq/haven/api/internal/database"
	"github.com/havenhq/haven/api/internal/handler"
	"github.com/havenhq/haven/api/internal/jobs"
	"github.com/havenhq/haven/api/internal/middleware"
	"github.com/havenhq/haven/api/internal/repository"
	"github.com/havenhq/haven/api/internal/service"
	"github.com/havenhq/haven/api/pkg/metrics"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	eventRepo := repository.NewEventRepository(db)
	matchRepo := repository.NewMatchRepository(db)

	// Initialize services
	geo := service.NewGeoService()

	planner := service.NewPlanner(service.PlannerConfig{
		Geo:     geo,
		Weights: cfg.Matching.Weights(),
	})

	affinityService := service.NewAffinityService(service.AffinityServiceConfig{
		Groups:   groupRepo,
		Events:   eventRepo,
		Matches:  matchRepo,
		Geo:      geo,
		Profiles: cfg.Events.Profiles,
		Logger:   logger,
	})

	// The worker rescores event matches when group membership changes.
	// It doubles as the assignment service's affinity trigger.
	affinityWorker := jobs.NewAffinityWorker(jobs.AffinityWorkerConfig{
		Matcher:      affinityService,
		QueueSize:    cfg.Worker.QueueSize,
		RetryMax:     cfg.Worker.RetryMax,
		RetryBackoff: cfg.Worker.RetryBackoff,
		RunTimeout:   cfg.Worker.RunTimeout,
		Logger:       logger,
	})
	affinityWorker.Start()
	defer affinityWorker.Stop()

	assignmentService := service.NewAssignmentService(service.AssignmentServiceConfig{
		Users:    userRepo,
		Groups:   groupRepo,
		Planner:  planner,
		Trigger:  affinityWorker,
		GroupMax: cfg.Matching.GroupMax,
		Logger:   logger,
	})

	// Initialize handlers
	assignmentHandler := handler.NewAssignmentHandler(assignmentService)
	groupHandler := handler.NewGroupHandler(assignmentService, affinityService)
	eventHandler := handler.NewEventHandler(affinityService)
	healthHandler := handler.NewHealthHandler(db)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health and metrics endpoints
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	// Assignment endpoints
	mux.HandleFunc("POST /v1/assignments", assignmentHandler.CreateAssignment)
	mux.HandleFunc("GET /v1/users/{userId}/group", assignmentHandler.GetUserGroup)

	// Group endpoints
	mux.HandleFunc("GET /v1/groups/{groupId}", groupHandler.GetGroup)
	mux.HandleFunc("GET /v1/groups/{groupId}/events", groupHandler.GetGroupEvents)

	// Event endpoints
	mux.HandleFunc("POST /v1/events", eventHandler.CreateEvent)
	mux.HandleFunc("GET /v1/events/{eventId}", eventHandler.GetEvent)
	mux.HandleFunc("GET /v1/events/{eventId}/groups", eventHandler.GetEventGroups)

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Metrics,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}

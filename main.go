// @title						Customer Feedback API
// @version					1.0.0
// @description				Stores customer feedback and admin responses.
// @BasePath					/
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NomadCrew/feedback-portal/config"
	"github.com/NomadCrew/feedback-portal/db"
	"github.com/NomadCrew/feedback-portal/docs"
	"github.com/NomadCrew/feedback-portal/handlers"
	"github.com/NomadCrew/feedback-portal/internal/store/postgres"
	"github.com/NomadCrew/feedback-portal/logger"
	"github.com/NomadCrew/feedback-portal/middleware"
	"github.com/NomadCrew/feedback-portal/router"
	"github.com/NomadCrew/feedback-portal/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Initialize logger
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	docs.SwaggerInfo.Version = cfg.Server.Version

	if cfg.Database.RunMigrations {
		if err := db.RunMigrations(cfg.Database.URL()); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelStartup()

	pool, err := db.NewPool(startupCtx, &cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	redisClient, err := db.NewRedisClient(startupCtx, &cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Services
	feedbackStore := postgres.NewFeedbackStore(pool)
	serviceOpts := []services.FeedbackServiceOption{
		services.WithMetrics(services.NewFeedbackMetrics(registry)),
	}
	if cfg.Email.Enabled {
		serviceOpts = append(serviceOpts, services.WithResponseNotifier(services.NewEmailService(&cfg.Email, registry)))
	}
	feedbackService := services.NewFeedbackService(feedbackStore, serviceOpts...)
	healthService := services.NewHealthService(feedbackStore, redisClient, cfg.Server.Version)

	r := router.SetupRouter(router.Dependencies{
		Config:          cfg,
		FeedbackHandler: handlers.NewFeedbackHandler(feedbackService),
		HealthHandler:   handlers.NewHealthHandler(healthService),
		RateLimiter: middleware.NewSubmissionRateLimiter(
			redisClient,
			cfg.RateLimit.SubmissionsPerWindow,
			time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
		),
		Metrics:  middleware.NewHTTPMetrics(registry),
		Gatherer: registry,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Starting API server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down API server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Server shutdown error", "error", err)
	}
	log.Info("API server stopped")
}

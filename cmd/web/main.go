// Command web serves the feedback submission page and the admin dashboard.
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
	"github.com/NomadCrew/feedback-portal/logger"
	"github.com/NomadCrew/feedback-portal/web"
	"github.com/gin-gonic/gin"
)

func main() {
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	cfg, err := config.LoadFrontendConfig()
	if err != nil {
		log.Fatalf("Failed to load frontend config: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	client := web.NewClient(cfg.APIBaseURL,
		web.WithTimeout(time.Duration(cfg.RequestTimeoutSeconds)*time.Second),
	)
	r, err := web.NewServer(client, cfg).Router()
	if err != nil {
		log.Fatalf("Failed to build frontend router: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("Starting web frontend", "port", cfg.Port, "api_base_url", cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down web frontend...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("Server shutdown error", "error", err)
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"userhub-backend/internal/api"
	"userhub-backend/internal/config"
	"userhub-backend/internal/logger"
	"userhub-backend/internal/monitoring"
	"userhub-backend/internal/services"
	"userhub-backend/internal/store"
	"userhub-backend/internal/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := logger.Init(cfg.LogDir); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	// Open the user store
	st, err := store.Open(cfg.StorePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.StorePath).Msg("Failed to open user store")
	}
	defer st.Close()

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	userService := services.NewUserService(st, hub)
	statsService := services.NewStatsService(st)

	// Set up and run the scheduled store backups
	backupRunner, err := monitoring.NewBackupRunner(st, cfg.BackupDir, cfg.BackupSchedule)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up backup runner")
	}
	go backupRunner.Run()

	// Set up router
	router := api.NewRouter(cfg, hub, userService, statsService)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	backupRunner.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}

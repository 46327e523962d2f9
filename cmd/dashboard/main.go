package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hlzx-cpu/VEX-rankings/internal/config"
	"github.com/hlzx-cpu/VEX-rankings/internal/snapshot"
	"github.com/hlzx-cpu/VEX-rankings/internal/web"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Setup logger
	setupLogger()

	log.Info().Msg("Starting VEX rankings dashboard")

	// Load configuration
	cfg := config.MustLoad()
	log.Info().
		Str("env", cfg.AppEnv).
		Str("addr", cfg.DashboardAddr).
		Str("snapshot", cfg.SnapshotPath).
		Msg("Configuration loaded")

	srv := web.NewServer(cfg, snapshot.NewStore(cfg.SnapshotPath))

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Dashboard server failed")
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("Received shutdown signal, gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Dashboard shutdown failed")
	}

	log.Info().Msg("Dashboard shutdown complete")
}

// setupLogger configures the zerolog logger
func setupLogger() {
	// Pretty console logging in development
	if os.Getenv("APP_ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	// Set log level
	level := zerolog.InfoLevel
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		parsedLevel, err := zerolog.ParseLevel(lvl)
		if err == nil {
			level = parsedLevel
		}
	}
	zerolog.SetGlobalLevel(level)
}

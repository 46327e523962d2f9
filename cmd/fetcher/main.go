package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hlzx-cpu/VEX-rankings/internal/cache"
	"github.com/hlzx-cpu/VEX-rankings/internal/client"
	"github.com/hlzx-cpu/VEX-rankings/internal/config"
	"github.com/hlzx-cpu/VEX-rankings/internal/ingest"
	"github.com/hlzx-cpu/VEX-rankings/internal/metrics"
	"github.com/hlzx-cpu/VEX-rankings/internal/scheduler"
)

func main() {
	loop := flag.Int("loop", 0, "seconds between refresh cycles, 0 runs a single cycle and exits")
	flag.Parse()

	// Setup logger
	setupLogger()

	log.Info().Msg("Starting VEX rankings fetcher")

	// Load configuration
	cfg := config.MustLoad()
	log.Info().
		Str("env", cfg.AppEnv).
		Str("log_level", cfg.LogLevel).
		Int("season_year", cfg.SeasonYear).
		Msg("Configuration loaded")

	if cfg.RobotEventsToken == "" {
		log.Fatal().Msg("ROBOTEVENTS_TOKEN is required, set it in the environment or a .env file")
	}

	// Create context that listens for cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("Received shutdown signal, gracefully shutting down...")
		cancel()
	}()

	// Initialize RobotEvents client
	apiClient := client.NewClient(client.Config{
		BaseURL:         cfg.RobotEventsBaseURL,
		Token:           cfg.RobotEventsToken,
		Timeout:         cfg.HTTPTimeout,
		MaxAttempts:     cfg.MaxAttempts,
		PerPage:         cfg.PerPage,
		RequestInterval: cfg.RequestInterval,
		CacheTTL:        cfg.CacheTTL,
	})
	log.Info().Msg("RobotEvents client initialized")

	// Initialize Redis response cache when configured
	if cfg.CacheEnabled() {
		redisCache, err := cache.NewRedisCache(cache.Config{
			Host:     cfg.RedisHost,
			Port:     strconv.Itoa(cfg.RedisPort),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("Failed to connect to Redis - continuing without cache")
		} else {
			defer redisCache.Close()
			apiClient.SetCache(redisCache)
			log.Info().Msg("Redis cache connected")
		}
	}

	// Start metrics HTTP server
	go startMetricsServer(cfg.MetricsPort)

	// Update system uptime metric
	startTime := time.Now()
	go func() {
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				metrics.SystemUptime.Set(time.Since(startTime).Seconds())
			case <-ctx.Done():
				return
			}
		}
	}()

	// Create the refresh runner and scheduler
	runner := ingest.NewRunner(cfg, apiClient)
	sched := scheduler.NewScheduler(runner)

	if *loop > 0 {
		interval := time.Duration(*loop) * time.Second
		log.Info().Dur("interval", interval).Msg("Starting scheduler...")
		if err := sched.Start(ctx, interval); err != nil {
			log.Fatal().Err(err).Msg("Failed to start scheduler")
		}

		// Keep running until context is cancelled
		<-ctx.Done()

		log.Info().Msg("Shutting down scheduler...")
		sched.Stop()
	} else {
		if err := sched.RunOnce(ctx); err != nil {
			log.Fatal().Err(err).Msg("Refresh cycle failed")
		}
	}

	log.Info().Msg("Fetcher shutdown complete")
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

	log.Info().
		Str("level", level.String()).
		Msg("Logger initialized")
}

// startMetricsServer starts the Prometheus metrics HTTP server
func startMetricsServer(port int) {
	http.Handle("/metrics", promhttp.Handler())

	// Health check endpoint
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	addr := fmt.Sprintf(":%d", port)
	log.Info().Int("port", port).Msg("Starting metrics server")

	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Error().Err(err).Msg("Metrics server failed")
	}
}

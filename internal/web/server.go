package web

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/hlzx-cpu/VEX-rankings/internal/config"
	"github.com/hlzx-cpu/VEX-rankings/internal/metrics"
	"github.com/hlzx-cpu/VEX-rankings/internal/snapshot"
)

const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
)

// Server serves the live dashboard page and the rankings data API
// behind it.
type Server struct {
	store      *snapshot.Store
	pollEvery  time.Duration
	seasonYear int
	httpServer *http.Server
}

// NewServer wires the dashboard routes onto cfg.DashboardAddr. The
// snapshot store is shared with the fetcher, which replaces the file
// atomically, so handlers always read a complete table.
func NewServer(cfg *config.Config, store *snapshot.Store) *Server {
	s := &Server{
		store:      store,
		pollEvery:  cfg.PollInterval,
		seasonYear: cfg.SeasonYear,
	}

	router := mux.NewRouter()
	router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	router.HandleFunc("/api/rankings", s.handleRankings).Methods(http.MethodGet)
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.Use(requestMetrics)

	s.httpServer = &http.Server{
		Addr:              cfg.DashboardAddr,
		Handler:           router,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return s
}

// Handler returns the routed handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves HTTP until the listener fails or Shutdown is called
func (s *Server) Start() error {
	log.Info().Str("addr", s.httpServer.Addr).Msg("Starting dashboard server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("dashboard server failed: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and drains in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down dashboard server")
	return s.httpServer.Shutdown(ctx)
}

// statusRecorder captures the response code for request metrics
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		duration := time.Since(start).Seconds()
		metrics.RecordDashboardRequest(r.URL.Path, strconv.Itoa(rec.status), duration)

		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Float64("duration_seconds", duration).
			Msg("Dashboard request")
	})
}

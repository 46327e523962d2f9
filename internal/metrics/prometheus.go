package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the fetcher and the dashboard

var (
	// API call metrics
	APICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vexrank_api_calls_total",
			Help: "Total number of RobotEvents API calls",
		},
		[]string{"endpoint", "status"},
	)

	APICallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vexrank_api_call_duration_seconds",
			Help:    "Duration of API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	APIRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vexrank_api_retries_total",
			Help: "Total number of API request retries",
		},
	)

	RateLimitHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vexrank_rate_limit_hits_total",
			Help: "Total number of 429 responses from the API",
		},
	)

	// Cache metrics
	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vexrank_cache_hits_total",
			Help: "Total number of response cache hits",
		},
	)

	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vexrank_cache_misses_total",
			Help: "Total number of response cache misses",
		},
	)

	// Refresh cycle metrics
	FetchPhaseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vexrank_fetch_phase_duration_seconds",
			Help:    "Duration of each fetch phase in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"phase"},
	)

	RefreshCyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vexrank_refresh_cycles_total",
			Help: "Total number of refresh cycles",
		},
		[]string{"status"},
	)

	RefreshCycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vexrank_refresh_cycle_duration_seconds",
			Help:    "Duration of complete refresh cycles in seconds",
			Buckets: []float64{10, 30, 60, 120, 300, 600, 1200, 1800},
		},
	)

	// Rating table metrics
	TeamsRanked = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vexrank_teams_ranked",
			Help: "Number of teams in the published table",
		},
	)

	MatchesProcessed = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vexrank_matches_processed",
			Help: "Number of valid matches in the last rating pass",
		},
	)

	InvalidMatchesSkipped = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vexrank_invalid_matches_skipped",
			Help: "Number of invalid match records in the last rating pass",
		},
	)

	// Dashboard metrics
	DashboardRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vexrank_dashboard_requests_total",
			Help: "Total number of dashboard HTTP requests",
		},
		[]string{"path", "status"},
	)

	DashboardRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vexrank_dashboard_request_duration_seconds",
			Help:    "Duration of dashboard HTTP requests in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"path"},
	)

	// Error metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vexrank_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)

	// System metrics
	SystemUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vexrank_system_uptime_seconds",
			Help: "System uptime in seconds",
		},
	)

	LastSuccessfulRefresh = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "vexrank_last_successful_refresh_timestamp",
			Help: "Timestamp of the last successfully published table",
		},
	)
)

// RecordAPICall records an API call metric
func RecordAPICall(endpoint, status string, duration float64) {
	APICallsTotal.WithLabelValues(endpoint, status).Inc()
	APICallDuration.WithLabelValues(endpoint).Observe(duration)
}

// RecordRetry records an API request retry
func RecordRetry() {
	APIRetriesTotal.Inc()
}

// RecordRateLimitHit records a 429 response
func RecordRateLimitHit() {
	RateLimitHitsTotal.Inc()
}

// RecordCacheHit records a response cache hit
func RecordCacheHit() {
	CacheHitsTotal.Inc()
}

// RecordCacheMiss records a response cache miss
func RecordCacheMiss() {
	CacheMissesTotal.Inc()
}

// RecordFetchPhase records the duration of one fetch phase
func RecordFetchPhase(phase string, duration float64) {
	FetchPhaseDuration.WithLabelValues(phase).Observe(duration)
}

// RecordRefreshCycle records a complete refresh cycle
func RecordRefreshCycle(status string, duration float64) {
	RefreshCyclesTotal.WithLabelValues(status).Inc()
	RefreshCycleDuration.Observe(duration)

	if status == "success" {
		LastSuccessfulRefresh.SetToCurrentTime()
	}
}

// UpdateTableStats updates the published table statistics
func UpdateTableStats(teams, matches, invalid int) {
	TeamsRanked.Set(float64(teams))
	MatchesProcessed.Set(float64(matches))
	InvalidMatchesSkipped.Set(float64(invalid))
}

// RecordDashboardRequest records a dashboard HTTP request
func RecordDashboardRequest(path, status string, duration float64) {
	DashboardRequestsTotal.WithLabelValues(path, status).Inc()
	DashboardRequestDuration.WithLabelValues(path).Observe(duration)
}

// RecordError records an error
func RecordError(component, errorType string) {
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}

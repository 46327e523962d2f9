package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hlzx-cpu/VEX-rankings/internal/config"
	"github.com/hlzx-cpu/VEX-rankings/internal/rating"
	"github.com/hlzx-cpu/VEX-rankings/internal/snapshot"
)

func testServer(snapshotPath string) *Server {
	cfg := &config.Config{
		DashboardAddr: ":0",
		PollInterval:  30 * time.Second,
		SeasonYear:    2025,
		SnapshotPath:  snapshotPath,
	}
	return NewServer(cfg, snapshot.NewStore(snapshotPath))
}

func getRankings(t *testing.T, srv *Server) rankingsResponse {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/rankings", nil)
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "rankings endpoint should respond 200")

	var resp rankingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), "response should be valid JSON")
	return resp
}

func TestServer_RankingsServesSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard_data.csv")
	store := snapshot.NewStore(path)
	require.NoError(t, store.Write([]rating.Row{
		{Team: "8838A", Rating: 1612.34, ScheduleStrength: 0.52, DriverSkills: 88, ProgrammingSkills: 102},
		{Team: "9090B", Rating: 1498.5, ScheduleStrength: 0.31, DriverSkills: 0, ProgrammingSkills: 0},
	}))

	resp := getRankings(t, testServer(path))

	assert.False(t, resp.Demo, "published snapshot should not be marked demo")
	assert.Empty(t, resp.Status, "no warning expected when snapshot exists")
	require.Len(t, resp.Rows, 2)
	assert.Equal(t, "8838A", resp.Rows[0].Team)
	assert.Equal(t, 1612.34, resp.Rows[0].Rating)

	_, err := time.Parse(time.RFC3339, resp.UpdatedAt)
	assert.NoError(t, err, "updated_at should carry the snapshot publish time")
}

func TestServer_RankingsFallsBackToDemoRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard_data.csv")

	resp := getRankings(t, testServer(path))

	assert.True(t, resp.Demo, "missing snapshot should serve demo rows")
	assert.Contains(t, resp.Status, "未找到", "status should explain the snapshot is missing")
	require.Len(t, resp.Rows, 10)
	assert.Equal(t, "UCF", resp.Rows[0].Team)
	assert.Equal(t, 1750.0, resp.Rows[0].Rating)
	assert.Equal(t, 0.435, resp.Rows[0].ScheduleStrength)
	assert.Empty(t, resp.UpdatedAt, "demo rows carry no publish time")
}

func TestServer_RankingsDemoOnUnreadableSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard_data.csv")
	require.NoError(t, os.WriteFile(path, []byte("bogus\n"), 0o644))

	resp := getRankings(t, testServer(path))

	assert.True(t, resp.Demo, "unreadable snapshot should serve demo rows")
	assert.Contains(t, resp.Status, "读取数据失败", "status should surface the load failure")
	assert.Len(t, resp.Rows, 10)
}

func TestServer_HealthEndpoint(t *testing.T) {
	srv := testServer(filepath.Join(t.TempDir(), "dashboard_data.csv"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestServer_IndexRendersDashboardPage(t *testing.T) {
	srv := testServer(filepath.Join(t.TempDir(), "dashboard_data.csv"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, "bubble-chart", "page should contain the chart container")
	assert.Contains(t, body, "/api/rankings", "page should poll the data API")
	assert.Contains(t, body, "POLL_MS = 30000", "poll interval should come from config")
	assert.Contains(t, body, "2025-2026", "season years should be rendered")
	assert.Contains(t, body, "队伍对比", "compare panel should be present")
}

func TestServer_MetricsEndpoint(t *testing.T) {
	srv := testServer(filepath.Join(t.TempDir(), "dashboard_data.csv"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "vexrank_", "exporter should expose application metrics")
}

func TestServer_RejectsUnroutedMethods(t *testing.T) {
	srv := testServer(filepath.Join(t.TempDir(), "dashboard_data.csv"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/rankings", nil)
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

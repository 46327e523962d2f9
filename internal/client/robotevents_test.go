package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCache is an in-memory ResponseCache for tests
type stubCache struct {
	body []byte
	sets map[string][]byte
	ttl  time.Duration
}

func (s *stubCache) Get(ctx context.Context, key string) ([]byte, error) {
	return s.body, nil
}

func (s *stubCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if s.sets == nil {
		s.sets = make(map[string][]byte)
	}
	s.sets[key] = value
	s.ttl = ttl
	return nil
}

func testClient(baseURL string) *Client {
	return NewClient(Config{
		BaseURL:         baseURL,
		Token:           "test-token",
		Timeout:         5 * time.Second,
		MaxAttempts:     3,
		PerPage:         2,
		RequestInterval: 0,
	})
}

func TestClient_Teams_PaginatesAllPages(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)

		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"), "should authenticate with bearer token")
		assert.Equal(t, "2", r.URL.Query().Get("per_page"), "should request the configured page size")
		assert.Equal(t, "4", r.URL.Query().Get("program[]"), "should filter by program")

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(w, `{
				"meta": {"current_page": 1, "last_page": 2, "total": 3},
				"data": [
					{"id": 101, "number": "8838A", "team_name": "Alpha"},
					{"id": 102, "number": "9090B", "team_name": "Beta"}
				]
			}`)
		case "2":
			fmt.Fprint(w, `{
				"meta": {"current_page": 2, "last_page": 2, "total": 3},
				"data": [{"id": 103, "number": "1111C", "team_name": "Gamma"}]
			}`)
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	}))
	defer server.Close()

	c := testClient(server.URL)
	teams, err := c.Teams(context.Background(), 4, 190)

	require.NoError(t, err, "paginated fetch should succeed")
	require.Len(t, teams, 3, "should accumulate teams across pages")
	assert.Equal(t, int32(2), requests.Load(), "should request exactly last_page pages")
	assert.Equal(t, "8838A", teams[0].Number)
	assert.Equal(t, "1111C", teams[2].Number)
}

func TestClient_DivisionMatches_ParsesAlliances(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/events/55/divisions/1/matches", r.URL.Path, "should hit the division match list")

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"meta": {"current_page": 1, "last_page": 1, "total": 1},
			"data": [{
				"id": 9001,
				"name": "Qualifier #1",
				"started": "2025-03-01T10:00:00Z",
				"scored": true,
				"alliances": [
					{"color": "red", "score": 25, "teams": [{"team": {"id": 101, "name": "8838A"}}]},
					{"color": "blue", "score": 12, "teams": [{"team": {"id": 102, "name": "9090B"}}]}
				]
			}]
		}`)
	}))
	defer server.Close()

	c := testClient(server.URL)
	matches, err := c.DivisionMatches(context.Background(), 55, 1)

	require.NoError(t, err, "fetch should succeed")
	require.Len(t, matches, 1)
	require.Len(t, matches[0].Alliances, 2)
	assert.Equal(t, "red", matches[0].Alliances[0].Color)
	require.NotNil(t, matches[0].Alliances[0].Score)
	assert.Equal(t, 25, *matches[0].Alliances[0].Score)
	assert.Equal(t, "8838A", matches[0].Alliances[0].Teams[0].Team.Name)
}

func TestClient_NotFoundIsNotRetried(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		http.Error(w, `{"message": "not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	c := testClient(server.URL)
	_, err := c.EventSkills(context.Background(), 404)

	require.Error(t, err, "404 should surface as an error")
	assert.True(t, IsNotFound(err), "error should be recognizable as not-found")
	assert.Equal(t, int32(1), requests.Load(), "client errors should not be retried")
}

func TestClient_RetriesServerError(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"meta": {"last_page": 1}, "data": [{"id": 190, "name": "Push Back"}]}`)
	}))
	defer server.Close()

	c := testClient(server.URL)
	seasons, err := c.Seasons(context.Background(), 4)

	require.NoError(t, err, "transient server error should be retried")
	require.Len(t, seasons, 1)
	assert.Equal(t, "Push Back", seasons[0].Name)
	assert.Equal(t, int32(2), requests.Load(), "should succeed on the second attempt")
}

func TestClient_HonorsRetryAfter(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "slow down", http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"meta": {"last_page": 1}, "data": []}`)
	}))
	defer server.Close()

	c := testClient(server.URL)
	start := time.Now()
	_, err := c.Events(context.Background(), 4, 190)

	require.NoError(t, err, "rate limit should be retried")
	assert.Equal(t, int32(2), requests.Load())
	assert.GreaterOrEqual(t, time.Since(start), time.Second, "should wait out the Retry-After header")
}

func TestClient_ContextCancelsBackoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	c := testClient(server.URL)
	start := time.Now()
	_, err := c.Teams(ctx, 4, 190)

	require.Error(t, err, "cancelled context should abort the backoff")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second, "should not sleep out the full backoff")
}

func TestClient_CacheHitSkipsRequest(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	c := testClient(server.URL)
	c.SetCache(&stubCache{body: []byte(`{"meta": {"last_page": 1}, "data": [{"id": 101, "number": "8838A"}]}`)})

	teams, err := c.Teams(context.Background(), 4, 190)

	require.NoError(t, err, "cached response should be served")
	require.Len(t, teams, 1)
	assert.Equal(t, "8838A", teams[0].Number)
	assert.Equal(t, int32(0), requests.Load(), "cache hit should not reach the API")
}

func TestClient_StoresResponsesInCache(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"meta": {"last_page": 1}, "data": []}`)
	}))
	defer server.Close()

	c := NewClient(Config{
		BaseURL:     server.URL,
		Token:       "test-token",
		MaxAttempts: 1,
		CacheTTL:    10 * time.Minute,
	})
	cache := &stubCache{}
	c.SetCache(cache)

	_, err := c.Events(context.Background(), 4, 190)

	require.NoError(t, err)
	require.Len(t, cache.sets, 1, "successful response should be cached")
	assert.Equal(t, 10*time.Minute, cache.ttl, "should cache with the configured TTL")
}

func TestRetryAfter_FallsBackWhenHeaderMissing(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		attempt int
		want    time.Duration
	}{
		{"header wins", "7", 0, 7 * time.Second},
		{"missing header first attempt", "", 0, 30 * time.Second},
		{"missing header grows per attempt", "", 2, 90 * time.Second},
		{"unparseable header", "soon", 1, 60 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			if tt.header != "" {
				h.Set("Retry-After", tt.header)
			}
			assert.Equal(t, tt.want, retryAfter(h, tt.attempt))
		})
	}
}

func TestTransientBackoff_CapsAtThirtySeconds(t *testing.T) {
	assert.Equal(t, time.Second, transientBackoff(0))
	assert.Equal(t, 4*time.Second, transientBackoff(2))
	assert.Equal(t, 30*time.Second, transientBackoff(5))
	assert.Equal(t, 30*time.Second, transientBackoff(7))
}

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hlzx-cpu/VEX-rankings/internal/metrics"
	"github.com/hlzx-cpu/VEX-rankings/internal/models"
)

const (
	defaultBaseURL     = "https://www.robotevents.com/api/v2"
	defaultMaxAttempts = 8
	defaultPerPage     = 250
)

// NotFoundError is returned for client errors the API will never recover
// from on retry, such as an unknown event or a division with no match list.
type NotFoundError struct {
	URL        string
	StatusCode int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource not available (status %d): %s", e.StatusCode, e.URL)
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ResponseCache caches raw API response bodies keyed by request URL.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Config holds the RobotEvents client settings
type Config struct {
	BaseURL         string
	Token           string
	Timeout         time.Duration
	MaxAttempts     int
	PerPage         int
	RequestInterval time.Duration
	CacheTTL        time.Duration
}

// Client is the RobotEvents API client
type Client struct {
	baseURL         string
	token           string
	httpClient      *http.Client
	maxAttempts     int
	perPage         int
	requestInterval time.Duration
	cacheTTL        time.Duration
	cache           ResponseCache
}

// NewClient creates a new RobotEvents API client
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.PerPage < 1 {
		cfg.PerPage = defaultPerPage
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		baseURL:         cfg.BaseURL,
		token:           cfg.Token,
		maxAttempts:     cfg.MaxAttempts,
		perPage:         cfg.PerPage,
		requestInterval: cfg.RequestInterval,
		cacheTTL:        cfg.CacheTTL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// SetCache attaches a response cache. Call it only with a live cache;
// the client works without one.
func (c *Client) SetCache(rc ResponseCache) {
	c.cache = rc
}

// get performs a GET request against the RobotEvents API. It retries rate
// limits and transient failures, honors Retry-After, and pauses briefly
// after every successful call to stay under the upstream request budget.
func (c *Client) get(ctx context.Context, endpoint, path string, params map[string]string) ([]byte, error) {
	u, err := url.Parse(fmt.Sprintf("%s/%s", c.baseURL, path))
	if err != nil {
		return nil, fmt.Errorf("failed to build request URL: %w", err)
	}
	q := u.Query()
	for key, value := range params {
		q.Set(key, value)
	}
	u.RawQuery = q.Encode()
	fullURL := u.String()

	if c.cache != nil {
		if body, err := c.cache.Get(ctx, fullURL); err == nil && body != nil {
			metrics.RecordCacheHit()
			return body, nil
		}
		metrics.RecordCacheMiss()
	}

	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			metrics.RecordRetry()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "vex-rankings/1.0")

		log.Debug().
			Str("url", fullURL).
			Int("attempt", attempt+1).
			Msg("Making API request")

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("API request failed: %w", err)
			metrics.RecordAPICall(endpoint, "transport_error", time.Since(start).Seconds())
			log.Warn().
				Str("url", fullURL).
				Int("attempt", attempt+1).
				Err(err).
				Msg("API request failed, backing off")
			if err := c.sleep(ctx, transientBackoff(attempt)); err != nil {
				return nil, err
			}
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", err)
			metrics.RecordAPICall(endpoint, "read_error", time.Since(start).Seconds())
			if err := c.sleep(ctx, transientBackoff(attempt)); err != nil {
				return nil, err
			}
			continue
		}

		metrics.RecordAPICall(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())

		switch {
		case resp.StatusCode == http.StatusOK:
			if c.cache != nil {
				if err := c.cache.Set(ctx, fullURL, body, c.cacheTTL); err != nil {
					log.Debug().Err(err).Msg("Failed to cache API response")
				}
			}
			if err := c.sleep(ctx, c.requestInterval); err != nil {
				return nil, err
			}
			return body, nil

		case resp.StatusCode == http.StatusTooManyRequests:
			metrics.RecordRateLimitHit()
			wait := retryAfter(resp.Header, attempt)
			lastErr = fmt.Errorf("API rate limited (status %d)", resp.StatusCode)
			log.Warn().
				Str("url", fullURL).
				Dur("wait", wait).
				Int("attempt", attempt+1).
				Msg("Rate limited by API, backing off")
			if err := c.sleep(ctx, wait); err != nil {
				return nil, err
			}

		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			// Client errors other than rate limits never succeed on retry
			return nil, &NotFoundError{URL: fullURL, StatusCode: resp.StatusCode}

		default:
			lastErr = fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
			log.Warn().
				Str("url", fullURL).
				Int("status", resp.StatusCode).
				Int("attempt", attempt+1).
				Msg("Server error from API, backing off")
			if err := c.sleep(ctx, transientBackoff(attempt)); err != nil {
				return nil, err
			}
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", c.maxAttempts, lastErr)
}

// sleep waits for d or until the context is cancelled
func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// retryAfter picks the wait before retrying a rate-limited request,
// preferring the server's Retry-After header
func retryAfter(h http.Header, attempt int) time.Duration {
	if v := h.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return time.Duration(30*(attempt+1)) * time.Second
}

// transientBackoff grows exponentially and caps at 30 seconds
func transientBackoff(attempt int) time.Duration {
	wait := 1 << uint(attempt)
	if wait > 30 {
		wait = 30
	}
	return time.Duration(wait) * time.Second
}

// envelope is the standard paginated response wrapper
type envelope struct {
	Meta struct {
		CurrentPage int `json:"current_page"`
		LastPage    int `json:"last_page"`
		Total       int `json:"total"`
	} `json:"meta"`
	Data []json.RawMessage `json:"data"`
}

// paginate fetches every page of a collection endpoint
func (c *Client) paginate(ctx context.Context, endpoint, path string, params map[string]string) ([]json.RawMessage, error) {
	merged := make(map[string]string, len(params)+2)
	for key, value := range params {
		merged[key] = value
	}
	merged["per_page"] = strconv.Itoa(c.perPage)

	var items []json.RawMessage
	page := 1
	for {
		merged["page"] = strconv.Itoa(page)
		body, err := c.get(ctx, endpoint, path, merged)
		if err != nil {
			return nil, err
		}

		var env envelope
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s page %d: %w", endpoint, page, err)
		}
		items = append(items, env.Data...)

		if page >= env.Meta.LastPage {
			return items, nil
		}
		page++
	}
}

// Seasons fetches all seasons for a program
func (c *Client) Seasons(ctx context.Context, programID int) ([]models.SeasonInput, error) {
	params := map[string]string{"program[]": strconv.Itoa(programID)}
	items, err := c.paginate(ctx, "seasons", "seasons", params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch seasons: %w", err)
	}

	seasons := make([]models.SeasonInput, 0, len(items))
	for _, item := range items {
		var s models.SeasonInput
		if err := json.Unmarshal(item, &s); err != nil {
			return nil, fmt.Errorf("failed to unmarshal season: %w", err)
		}
		seasons = append(seasons, s)
	}

	return seasons, nil
}

// Teams fetches all teams registered for a season
func (c *Client) Teams(ctx context.Context, programID, seasonID int) ([]models.TeamInput, error) {
	params := map[string]string{
		"program[]": strconv.Itoa(programID),
		"season[]":  strconv.Itoa(seasonID),
	}
	items, err := c.paginate(ctx, "teams", "teams", params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teams: %w", err)
	}

	teams := make([]models.TeamInput, 0, len(items))
	for _, item := range items {
		var t models.TeamInput
		if err := json.Unmarshal(item, &t); err != nil {
			return nil, fmt.Errorf("failed to unmarshal team: %w", err)
		}
		teams = append(teams, t)
	}

	return teams, nil
}

// Events fetches all events in a season
func (c *Client) Events(ctx context.Context, programID, seasonID int) ([]models.EventInput, error) {
	params := map[string]string{
		"program[]": strconv.Itoa(programID),
		"season[]":  strconv.Itoa(seasonID),
	}
	items, err := c.paginate(ctx, "events", "events", params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	events := make([]models.EventInput, 0, len(items))
	for _, item := range items {
		var e models.EventInput
		if err := json.Unmarshal(item, &e); err != nil {
			return nil, fmt.Errorf("failed to unmarshal event: %w", err)
		}
		events = append(events, e)
	}

	return events, nil
}

// DivisionMatches fetches the match list of one event division
func (c *Client) DivisionMatches(ctx context.Context, eventID, divisionID int) ([]models.MatchInput, error) {
	path := fmt.Sprintf("events/%d/divisions/%d/matches", eventID, divisionID)
	items, err := c.paginate(ctx, "matches", path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches for event %d division %d: %w", eventID, divisionID, err)
	}

	matches := make([]models.MatchInput, 0, len(items))
	for _, item := range items {
		var m models.MatchInput
		if err := json.Unmarshal(item, &m); err != nil {
			return nil, fmt.Errorf("failed to unmarshal match: %w", err)
		}
		matches = append(matches, m)
	}

	return matches, nil
}

// EventSkills fetches the skills runs recorded at an event
func (c *Client) EventSkills(ctx context.Context, eventID int) ([]models.SkillsInput, error) {
	path := fmt.Sprintf("events/%d/skills", eventID)
	items, err := c.paginate(ctx, "skills", path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch skills for event %d: %w", eventID, err)
	}

	skills := make([]models.SkillsInput, 0, len(items))
	for _, item := range items {
		var s models.SkillsInput
		if err := json.Unmarshal(item, &s); err != nil {
			return nil, fmt.Errorf("failed to unmarshal skills run: %w", err)
		}
		skills = append(skills, s)
	}

	return skills, nil
}

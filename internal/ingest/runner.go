package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hlzx-cpu/VEX-rankings/internal/chart"
	"github.com/hlzx-cpu/VEX-rankings/internal/client"
	"github.com/hlzx-cpu/VEX-rankings/internal/config"
	"github.com/hlzx-cpu/VEX-rankings/internal/metrics"
	"github.com/hlzx-cpu/VEX-rankings/internal/models"
	"github.com/hlzx-cpu/VEX-rankings/internal/rating"
	"github.com/hlzx-cpu/VEX-rankings/internal/snapshot"
)

// Runner executes one full refresh cycle: pull the season's data from
// RobotEvents, rate every team, and publish the snapshot and the page.
type Runner struct {
	cfg    *config.Config
	client *client.Client
	engine *rating.Engine
	store  *snapshot.Store
	chart  *chart.Generator
}

// NewRunner wires a runner from configuration
func NewRunner(cfg *config.Config, c *client.Client) *Runner {
	return &Runner{
		cfg:    cfg,
		client: c,
		engine: rating.NewEngine(cfg.EngineConfig()),
		store:  snapshot.NewStore(cfg.SnapshotPath),
		chart:  chart.NewGenerator(cfg.RankingsDir, cfg.SeasonYear),
	}
}

// Run performs one refresh cycle. A cycle with no usable match data is
// logged and skipped without treating the run as failed.
func (r *Runner) Run(ctx context.Context) error {
	cycleID := uuid.New().String()
	logger := log.With().Str("cycle_id", cycleID).Logger()
	start := time.Now()

	logger.Info().
		Int("season_year", r.cfg.SeasonYear).
		Int("program_id", r.cfg.ProgramID).
		Msg("Starting refresh cycle")

	table, err := r.refresh(ctx, logger)
	duration := time.Since(start)

	if err != nil {
		if errors.Is(err, rating.ErrNoValidMatches) {
			logger.Error().Dur("duration", duration).Msg("No usable match data, skipping publish")
			metrics.RecordRefreshCycle("skipped", duration.Seconds())
			return nil
		}
		metrics.RecordRefreshCycle("failure", duration.Seconds())
		return err
	}

	metrics.RecordRefreshCycle("success", duration.Seconds())
	metrics.UpdateTableStats(table.Summary.RankedTeams, table.Summary.ValidMatches, table.Summary.InvalidMatches)

	logger.Info().
		Int("teams", table.Summary.RankedTeams).
		Int("valid_matches", table.Summary.ValidMatches).
		Int("invalid_matches", table.Summary.InvalidMatches).
		Int("draws", table.Summary.Draws).
		Int("pair_updates", table.Summary.PairUpdates).
		Int("excluded_teams", table.Summary.ExcludedTeams).
		Bool("rescale_applied", table.Summary.RescaleApplied).
		Dur("duration", duration).
		Msg("Refresh cycle complete")

	return nil
}

func (r *Runner) refresh(ctx context.Context, logger zerolog.Logger) (*rating.Table, error) {
	season, err := r.resolveSeason(ctx, logger)
	if err != nil {
		return nil, err
	}

	phaseStart := time.Now()
	roster, err := r.fetchRoster(ctx, logger, season.ID)
	if err != nil {
		return nil, err
	}
	events, err := r.fetchEvents(ctx, logger, season.ID)
	if err != nil {
		return nil, err
	}
	metrics.RecordFetchPhase("teams_events", time.Since(phaseStart).Seconds())

	// The API quota recovers slowly after the bulk listing calls
	logger.Info().Dur("cooldown", r.cfg.CooldownInterval).Msg("Cooling down before match fetch")
	if err := sleep(ctx, r.cfg.CooldownInterval); err != nil {
		return nil, err
	}

	phaseStart = time.Now()
	matches, err := r.fetchMatches(ctx, logger, events)
	if err != nil {
		return nil, err
	}
	metrics.RecordFetchPhase("matches", time.Since(phaseStart).Seconds())

	logger.Info().Dur("cooldown", r.cfg.CooldownInterval).Msg("Cooling down before skills fetch")
	if err := sleep(ctx, r.cfg.CooldownInterval); err != nil {
		return nil, err
	}

	phaseStart = time.Now()
	skills, err := r.fetchSkills(ctx, logger, events)
	if err != nil {
		return nil, err
	}
	metrics.RecordFetchPhase("skills", time.Since(phaseStart).Seconds())

	table, err := r.engine.Compute(matches, roster, skills)
	if err != nil {
		return nil, err
	}

	if err := r.store.Write(table.Rows); err != nil {
		return nil, fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := r.chart.Write(table.Rows); err != nil {
		return nil, fmt.Errorf("failed to write rankings page: %w", err)
	}
	logger.Info().
		Str("snapshot", r.store.Path()).
		Int("teams", len(table.Rows)).
		Msg("Published rankings table")

	return table, nil
}

// resolveSeason picks the season whose name mentions the configured
// year, falling back to the most recent one the API lists
func (r *Runner) resolveSeason(ctx context.Context, logger zerolog.Logger) (*models.Season, error) {
	inputs, err := r.client.Seasons(ctx, r.cfg.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve season: %w", err)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no seasons returned for program %d", r.cfg.ProgramID)
	}

	seasons := make([]models.Season, 0, len(inputs))
	for _, in := range inputs {
		seasons = append(seasons, *in.ToSeason())
	}

	for i := range seasons {
		if seasons[i].ContainsYear(r.cfg.SeasonYear) {
			logger.Info().
				Int("season_id", seasons[i].ID).
				Str("season", seasons[i].Name).
				Msg("Resolved season")
			return &seasons[i], nil
		}
	}

	last := seasons[len(seasons)-1]
	logger.Warn().
		Int("season_id", last.ID).
		Str("season", last.Name).
		Int("year", r.cfg.SeasonYear).
		Msg("No season matched the configured year, using the latest")
	return &last, nil
}

func (r *Runner) fetchRoster(ctx context.Context, logger zerolog.Logger, seasonID int) ([]string, error) {
	inputs, err := r.client.Teams(ctx, r.cfg.ProgramID, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch teams: %w", err)
	}

	roster := make([]string, 0, len(inputs))
	for _, in := range inputs {
		t := in.ToTeam()
		if t.Number == "" {
			continue
		}
		roster = append(roster, t.Number)
	}

	logger.Info().Int("teams", len(roster)).Msg("Fetched registered teams")
	return roster, nil
}

func (r *Runner) fetchEvents(ctx context.Context, logger zerolog.Logger, seasonID int) ([]models.Event, error) {
	inputs, err := r.client.Events(ctx, r.cfg.ProgramID, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	events := make([]models.Event, 0, len(inputs))
	for _, in := range inputs {
		events = append(events, *in.ToEvent())
	}

	logger.Info().Int("events", len(events)).Msg("Fetched season events")
	return events, nil
}

// fetchMatches walks every division of every event. A division whose
// match list is missing or keeps failing is skipped so one broken event
// cannot sink the whole cycle.
func (r *Runner) fetchMatches(ctx context.Context, logger zerolog.Logger, events []models.Event) ([]models.Match, error) {
	logger.Info().Int("events", len(events)).Msg("Fetching matches")

	var all []models.Match
	eventsWithData := 0
	skippedEvents := 0
	skippedRecords := 0

	for _, ev := range events {
		if len(ev.Divisions) == 0 {
			logger.Debug().Int("event_id", ev.ID).Msg("Event has no division info, skipping")
			skippedEvents++
			continue
		}

		var eventMatches []models.Match
		for _, div := range ev.Divisions {
			inputs, err := r.client.DivisionMatches(ctx, ev.ID, div.ID)
			switch classifyFetch(ctx, err) {
			case fetchAborted:
				return nil, err
			case fetchNotFound:
				continue
			case fetchTransient:
				logger.Warn().Err(err).
					Int("event_id", ev.ID).
					Int("division_id", div.ID).
					Msg("Skipping division after server error")
				metrics.RecordError("ingest", "matches_fetch_failed")
				continue
			}

			for i := range inputs {
				m := inputs[i].ToMatch(ev.ID)
				if m == nil {
					skippedRecords++
					continue
				}
				eventMatches = append(eventMatches, *m)
			}
		}

		if len(eventMatches) > 0 {
			eventsWithData++
			logger.Debug().Int("event_id", ev.ID).Int("matches", len(eventMatches)).Msg("Event matches fetched")
		} else {
			skippedEvents++
		}
		all = append(all, eventMatches...)
	}

	logger.Info().
		Int("events_with_data", eventsWithData).
		Int("events_total", len(events)).
		Int("events_skipped", skippedEvents).
		Int("matches", len(all)).
		Int("skipped_records", skippedRecords).
		Msg("Fetched match lists")
	return all, nil
}

func (r *Runner) fetchSkills(ctx context.Context, logger zerolog.Logger, events []models.Event) ([]models.SkillsRecord, error) {
	logger.Info().Int("events", len(events)).Msg("Fetching skills")

	var records []models.SkillsRecord
	notFoundEvents := 0

	for _, ev := range events {
		inputs, err := r.client.EventSkills(ctx, ev.ID)
		switch classifyFetch(ctx, err) {
		case fetchAborted:
			return nil, err
		case fetchNotFound:
			notFoundEvents++
			continue
		case fetchTransient:
			logger.Warn().Err(err).Int("event_id", ev.ID).Msg("Skipping skills for event after server error")
			metrics.RecordError("ingest", "skills_fetch_failed")
			continue
		}

		for i := range inputs {
			rec := inputs[i].ToSkillsRecord()
			if rec == nil {
				continue
			}
			records = append(records, *rec)
		}
	}

	if notFoundEvents > 0 {
		logger.Info().Int("events", notFoundEvents).Msg("Events without skills data skipped")
	}
	logger.Info().Int("records", len(records)).Msg("Fetched skills runs")
	return records, nil
}

func sleep(ctx context.Context, d time.Duration) error {
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

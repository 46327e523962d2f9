package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Job is the unit of work the scheduler repeats
type Job interface {
	Run(ctx context.Context) error
}

// Scheduler runs refresh cycles on a fixed interval. A cycle that is
// still fetching when the next slot arrives is not run twice.
type Scheduler struct {
	job  Job
	cron *cron.Cron
}

// NewScheduler creates a new scheduler instance
func NewScheduler(job Job) *Scheduler {
	return &Scheduler{
		job:  job,
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

// RunOnce executes a single refresh cycle
func (s *Scheduler) RunOnce(ctx context.Context) error {
	return s.job.Run(ctx)
}

// Start schedules periodic refreshes and kicks off the first cycle
// immediately so a fresh deploy publishes without waiting an interval
func (s *Scheduler) Start(ctx context.Context, interval time.Duration) error {
	log.Info().Dur("interval", interval).Msg("Scheduler starting...")

	spec := fmt.Sprintf("@every %s", interval)
	id, err := s.cron.AddFunc(spec, func() {
		if err := s.job.Run(ctx); err != nil {
			log.Error().Err(err).Msg("Refresh cycle failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule refresh: %w", err)
	}

	s.cron.Start()
	log.Info().Str("schedule", spec).Msg("Periodic refresh scheduled")

	// The first cycle runs through the same wrapped entry the cron
	// fires, so a tick that lands while it is still in flight is
	// skipped instead of starting a second cycle.
	go s.cron.Entry(id).WrappedJob.Run()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	log.Info().Msg("Stopping scheduler...")

	if s.cron != nil {
		s.cron.Stop()
	}

	log.Info().Msg("Scheduler stopped")
}

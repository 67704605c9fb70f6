// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// jobTimeout bounds a single purge run.
const jobTimeout = time.Minute

// TokenPurger deletes tokens that expired longer than retention ago.
type TokenPurger interface {
	PurgeExpired(ctx context.Context, retention time.Duration) (int64, error)
}

// Scheduler runs the token retention purge on a cron schedule.
type Scheduler struct {
	cron      *cron.Cron
	purger    TokenPurger
	retention time.Duration
}

// New creates a scheduler. Jobs are registered by Start.
func New(purger TokenPurger, retention time.Duration) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		purger:    purger,
		retention: retention,
	}
}

// Start registers the purge job under the cron schedule and starts the cron loop.
func (s *Scheduler) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, func() { _, _ = s.RunOnce(context.Background()) }); err != nil {
		return fmt.Errorf("invalid purge schedule %q: %w", schedule, err)
	}
	s.cron.Start()
	log.Info().Str("schedule", schedule).Dur("retention", s.retention).Msg("Starting token purge scheduler")
	return nil
}

// Stop halts the cron loop and waits for a running job until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
		log.Info().Msg("Stopping token purge scheduler")
	case <-ctx.Done():
		log.Warn().Msg("token purge still running at shutdown")
	}
}

// RunOnce performs a single purge.
func (s *Scheduler) RunOnce(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	n, err := s.purger.PurgeExpired(ctx, s.retention)
	if err != nil {
		log.Error().Err(err).Msg("token purge failed")
		return 0, err
	}
	log.Info().Int64("deleted", n).Msg("expired tokens purged")
	return n, nil
}

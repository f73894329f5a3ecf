// Package scheduler wires up the cron loop that periodically triggers a
// discovery run in watch mode.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// RunFunc is one discovery pass.
type RunFunc func(ctx context.Context) error

// Scheduler wraps robfig/cron around a run function.
type Scheduler struct {
	cron   *cron.Cron
	run    RunFunc
	spec   string
	logger zerolog.Logger
}

// New creates a Scheduler that fires every intervalHours hours.
func New(run RunFunc, intervalHours int, logger zerolog.Logger) *Scheduler {
	if intervalHours <= 0 {
		intervalHours = 6
	}
	return &Scheduler{
		cron:   cron.New(),
		run:    run,
		spec:   fmt.Sprintf("@every %dh", intervalHours),
		logger: logger,
	}
}

// Start registers the job and starts the loop. One run fires immediately so
// the store is populated without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.logger.Info().Str("spec", s.spec).Msg("watch loop started")

	go s.runOnce(ctx)
	return nil
}

// Stop shuts the loop down; in-flight runs finish on their own.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info().Msg("watch loop stopped")
}

func (s *Scheduler) runOnce(ctx context.Context) {
	s.logger.Info().Msg("discovery cycle started")
	if err := s.run(ctx); err != nil {
		s.logger.Error().Err(err).Msg("discovery cycle failed")
		return
	}
	s.logger.Info().Msg("discovery cycle complete")
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lshigami/Nihongo/config"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
)

const sweepTimeout = 30 * time.Second

// AutoSubmitScheduler periodically submits attempt sessions whose countdown
// reached zero, with whatever draft answers they hold.
type AutoSubmitScheduler struct {
	cron        *cron.Cron
	schedule    string
	submissions SubmissionService
}

func NewAutoSubmitScheduler(cfg *config.Config, submissions SubmissionService) *AutoSubmitScheduler {
	return &AutoSubmitScheduler{
		cron:        cron.New(cron.WithLocation(time.UTC), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		schedule:    cfg.Quiz.SweepSchedule,
		submissions: submissions,
	}
}

// Sweep runs one pass. It is what the cron job calls.
func (s *AutoSubmitScheduler) Sweep(ctx context.Context) int {
	n, err := s.submissions.SubmitExpired(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Auto-submit sweep failed")
		return 0
	}
	if n > 0 {
		log.Info().Int("submitted", n).Msg("Auto-submitted expired attempts")
	}
	return n
}

func (s *AutoSubmitScheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()
		s.Sweep(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid QUIZ_SWEEP_SCHEDULE %q: %w", s.schedule, err)
	}
	s.cron.Start()
	log.Info().Str("schedule", s.schedule).Msg("Auto-submit scheduler started")
	return nil
}

// Stop waits for a running sweep to finish or ctx to expire.
func (s *AutoSubmitScheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RegisterAutoSubmitScheduler ties the scheduler to the application lifecycle.
func RegisterAutoSubmitScheduler(lc fx.Lifecycle, s *AutoSubmitScheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error { return s.Start() },
		OnStop:  s.Stop,
	})
}

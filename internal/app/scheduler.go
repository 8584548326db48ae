package app

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/errgroup"
	"quiz-engine/internal/domain"
)

// SchedulerConfig tunes the orchestration loop.
type SchedulerConfig struct {
	// WarmupDuration is how long the warm-up phase lasts; zero skips it.
	WarmupDuration time.Duration
	// RoundInterval advances the round periodically; zero never advances.
	RoundInterval time.Duration
	// DiscoverInterval is how often new roster players get a loop.
	DiscoverInterval time.Duration
}

// Scheduler keeps one independent loop per player: dispatch, wait the
// returned delay, repeat. A player never has two dispatches in flight.
type Scheduler struct {
	service *GameService
	cfg     SchedulerConfig
	logger  *log.Logger
	wait    func(ctx context.Context, d time.Duration) bool
}

func NewScheduler(service *GameService, cfg SchedulerConfig, logger *log.Logger) *Scheduler {
	if cfg.DiscoverInterval <= 0 {
		cfg.DiscoverInterval = time.Second
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{service: service, cfg: cfg, logger: logger, wait: sleep}
}

// Run blocks until ctx is done or the round loop hits a fatal error.
func (s *Scheduler) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return s.runPhases(ctx) })
	g.Go(func() error {
		started := make(map[string]bool)
		for {
			for _, p := range s.service.Players() {
				if started[p.ID] {
					continue
				}
				started[p.ID] = true
				playerID := p.ID
				g.Go(func() error { return s.runPlayer(ctx, playerID) })
			}
			if !s.wait(ctx, s.cfg.DiscoverInterval) {
				return nil
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (s *Scheduler) runPlayer(ctx context.Context, playerID string) error {
	for {
		outcome, err := s.service.Dispatch(ctx, playerID)
		delay := outcome.Delay
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			s.logger.Printf("dispatch %s: %v", playerID, err)
			if delay == 0 {
				delay = domain.ResultNoServerResponse.Delay()
			}
		}
		if !s.wait(ctx, delay) {
			return nil
		}
	}
}

func (s *Scheduler) runPhases(ctx context.Context) error {
	if s.service.Phase() == PhaseWarmup {
		if s.cfg.WarmupDuration <= 0 {
			s.service.StartMain()
		} else {
			if !s.wait(ctx, s.cfg.WarmupDuration) {
				return nil
			}
			s.logger.Printf("warm-up over, starting round 1")
			s.service.StartMain()
		}
	}
	if s.cfg.RoundInterval <= 0 {
		<-ctx.Done()
		return nil
	}
	for s.wait(ctx, s.cfg.RoundInterval) {
		if err := s.service.AdvanceRound(); err != nil {
			return err
		}
		s.logger.Printf("advanced to round %d", s.service.Round())
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/zmfmock/server/repository"
)

// Sweeper periodically evicts expired retained result sets. The sweep is
// advisory: read paths treat an expired set as gone on their own, the sweep
// just reclaims memory between accesses.
type Sweeper struct {
	store    repository.ResultSetStore
	interval time.Duration
	logger   *zap.Logger
	cron     *cron.Cron
}

func New(store repository.ResultSetStore, interval time.Duration, logger *zap.Logger) *Sweeper {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sweeper{
		store:    store,
		interval: interval,
		logger:   logger,
	}
}

// Start schedules the sweep. It returns an error only when the schedule spec
// cannot be parsed, which would be a programming mistake.
func (s *Sweeper) Start() error {
	s.cron = cron.New()
	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, s.sweep); err != nil {
		return fmt.Errorf("sweeper: invalid schedule %q: %w", spec, err)
	}
	s.cron.Start()
	s.logger.Info("result set sweeper started", zap.Duration("interval", s.interval))
	return nil
}

// Stop halts scheduling and waits for an in-flight sweep to finish or the
// context to expire.
func (s *Sweeper) Stop(ctx context.Context) error {
	if s.cron == nil {
		return nil
	}
	done := s.cron.Stop().Done()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Sweeper) sweep() {
	removed, err := s.store.DeleteExpired(context.Background(), time.Now())
	if err != nil {
		s.logger.Error("result set sweep failed", zap.Error(err))
		return
	}
	if removed > 0 {
		s.logger.Info("expired result sets evicted", zap.Int("count", removed))
	}
}

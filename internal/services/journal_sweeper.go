package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/campusboard/backend/internal/infrastructure/journal"
)

// SweeperConfig controls journal retention.
type SweeperConfig struct {
	Interval  time.Duration
	Retention time.Duration
}

// JournalSweeper prunes saga journal entries past the retention window on a
// cron schedule.
type JournalSweeper struct {
	store  *journal.Store
	logger *zap.Logger
	cron   *cron.Cron
	cfg    SweeperConfig
}

func NewJournalSweeper(store *journal.Store, logger *zap.Logger, cfg SweeperConfig) *JournalSweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 7 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sweeper := &JournalSweeper{
		store:  store,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = sweeper.cron.AddFunc(schedule, func() {
		if err := sweeper.Sweep(); err != nil {
			sweeper.logger.Error("journal sweep failed", zap.Error(err))
		}
	})

	return sweeper
}

// Start launches the cron scheduler.
func (s *JournalSweeper) Start() {
	if s == nil || s.cron == nil {
		return
	}
	s.cron.Start()
	s.logger.Info("journal sweeper started")
}

// Stop gracefully stops the scheduler.
func (s *JournalSweeper) Stop(ctx context.Context) {
	if s == nil || s.cron == nil {
		return
	}
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	s.logger.Info("journal sweeper stopped")
}

// Sweep removes entries older than the retention window.
func (s *JournalSweeper) Sweep() error {
	if s == nil || s.store == nil {
		return nil
	}
	before, err := s.store.Size()
	if err != nil {
		return err
	}
	if err := s.store.Cleanup(time.Now().Add(-s.cfg.Retention)); err != nil {
		return err
	}
	after, err := s.store.Size()
	if err != nil {
		return err
	}
	if removed := before - after; removed > 0 {
		s.logger.Info("journal entries pruned", zap.Int("removed", removed))
	}
	return nil
}

// Size returns the number of journal entries.
func (s *JournalSweeper) Size() int {
	if s == nil || s.store == nil {
		return 0
	}
	size, err := s.store.Size()
	if err != nil {
		return 0
	}
	return size
}

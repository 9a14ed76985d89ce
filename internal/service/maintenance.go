package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// MaintenanceService runs background repairs on a cron schedule.
type MaintenanceService struct {
	counters CounterResyncer
	schedule string
	logger   *zap.Logger
}

func NewMaintenanceService(counters CounterResyncer, schedule string, logger *zap.Logger) *MaintenanceService {
	return &MaintenanceService{counters: counters, schedule: schedule, logger: logger}
}

// ResyncCounters realigns every achievementsUnlocked counter with the
// unlock ledger.
func (s *MaintenanceService) ResyncCounters(ctx context.Context) (int64, error) {
	fixed, err := s.counters.ResyncAchievementCounters(ctx)
	if err != nil {
		return 0, err
	}

	if fixed > 0 {
		s.logger.Warn("stale achievement counters repaired", zap.Int64("users", fixed))
	} else {
		s.logger.Info("achievement counters in sync")
	}
	return fixed, nil
}

// Start runs one resync immediately and then on the configured schedule
// until ctx is cancelled.
func (s *MaintenanceService) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(s.schedule, func() {
		s.logger.Info("cron triggered: resyncing achievement counters")
		if _, err := s.ResyncCounters(ctx); err != nil {
			s.logger.Error("failed to resync achievement counters", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	if _, err := s.ResyncCounters(ctx); err != nil {
		s.logger.Error("failed to resync achievement counters", zap.Error(err))
	}

	c.Start()
	s.logger.Info("maintenance scheduler started", zap.String("schedule", s.schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("maintenance scheduler stopped")
	return nil
}

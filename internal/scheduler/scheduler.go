// Package scheduler decides monthly winners on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/warwickallen/allen-app-challenge-2026/internal/service"
)

const runTimeout = 5 * time.Minute

type winnerCalculator interface {
	CalculateAll(ctx context.Context, trigger service.Trigger) ([]service.MonthlyWinner, error)
}

// Scheduler runs CalculateAll whenever its cron spec fires. Recalculating a
// month that is already stored only refreshes it, so overlapping manual runs
// are harmless.
type Scheduler struct {
	cron    *cron.Cron
	winners winnerCalculator
	logger  *logrus.Logger
}

// NewScheduler creates a scheduler for a standard five-field cron spec,
// evaluated in UTC.
func NewScheduler(spec string, winners winnerCalculator, logger *logrus.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		winners: winners,
		logger:  logger,
	}
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("invalid winner schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start begins firing in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler.Start")
}

// Stop stops the cron and waits for a running calculation to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler.Stop")
}

// Next returns the time of the next scheduled run.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Schedule.Next(time.Now())
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	winners, err := s.winners.CalculateAll(ctx, service.TriggerSchedule)
	if err != nil {
		s.logger.WithError(err).Error("Scheduler.run.CalculateAll")
		return
	}
	s.logger.WithField("winnerCount", len(winners)).Info("Scheduler.run.Complete")
}

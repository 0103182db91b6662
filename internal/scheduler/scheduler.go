// Package scheduler drives the periodic weekly receiving report.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/service/reporting"
)

// Scheduler manages the cron-driven report job.
type Scheduler struct {
	cron         *cron.Cron
	reportingSvc *reporting.Service
	cfg          config.ReportingConfig
	logger       *zap.Logger
}

// NewScheduler creates a scheduler for the reporting service.
func NewScheduler(cfg config.ReportingConfig, reportingSvc *reporting.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:         cron.New(),
		reportingSvc: reportingSvc,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start registers the weekly report job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.runWeeklyReport); err != nil {
		s.logger.Error("failed to schedule weekly report", zap.Error(err))
		return
	}
	s.cron.Start()
}

// Stop halts the cron loop.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runWeeklyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Report on the week that just closed, not the one that started today.
	ref := time.Now().AddDate(0, 0, -7)
	if _, err := s.reportingSvc.GenerateWeekly(ctx, ref); err != nil {
		s.logger.Error("failed to generate weekly report", zap.Error(err))
	}
}

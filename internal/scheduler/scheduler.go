package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/cristovive/gestao/internal/config"
	"github.com/cristovive/gestao/internal/domain/models"
	"github.com/cristovive/gestao/internal/repository/mongodb"
	"github.com/cristovive/gestao/internal/repository/sheets"
	"github.com/cristovive/gestao/internal/service/dashboard"
	"github.com/cristovive/gestao/pkg/clients/webhook"
)

// Scheduler runs the monthly report job. The exporter and notifier sinks
// are optional; a nil value simply skips that sink.
type Scheduler struct {
	cron     *cron.Cron
	cfg      config.ReportingConfig
	dash     *dashboard.Service
	reports  mongodb.ReportRepository
	exporter sheets.Exporter
	notifier webhook.Notifier
	logger   *zap.Logger
}

// New creates a scheduler in the configured timezone.
func New(cfg config.ReportingConfig, dash *dashboard.Service, reports mongodb.ReportRepository, exporter sheets.Exporter, notifier webhook.Notifier, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		cfg:      cfg,
		dash:     dash,
		reports:  reports,
		exporter: exporter,
		notifier: notifier,
		logger:   logger,
	}, nil
}

// Start registers the monthly report job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.publishMonthlyReport); err != nil {
		s.logger.Error("failed to schedule monthly report", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the cron loop. Running jobs finish on their own.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) publishMonthlyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// The job fires at the start of a month and reports on the month that
	// just closed.
	now := time.Now()
	period := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
	s.logger.Info("generating monthly report", zap.String("period", period.Format("2006-01")))

	overview, err := s.dash.Compute(ctx, period)
	if err != nil {
		s.logger.Error("failed to compute monthly report", zap.Error(err))
		return
	}

	report := models.MonthlyReport{
		Year:          period.Year(),
		Month:         int(period.Month()),
		Income:        overview.Finance.Income,
		Expenses:      overview.Finance.Expenses,
		Balance:       overview.Finance.Balance,
		TotalMembers:  overview.Members.Total,
		ActiveMembers: overview.Members.Active,
		GeneratedAt:   now,
	}

	if err := s.reports.SaveMonthlyReport(ctx, report); err != nil {
		s.logger.Error("failed to save monthly report", zap.Error(err))
		return
	}

	if s.exporter != nil {
		if err := s.exporter.AppendReport(ctx, report); err != nil {
			s.logger.Error("failed to export monthly report to sheet", zap.Error(err))
		}
	}

	if s.notifier != nil {
		text := fmt.Sprintf("Relatório %04d-%02d: receitas R$ %.2f, despesas R$ %.2f, saldo R$ %.2f, membros ativos %d.",
			report.Year, report.Month, report.Income, report.Expenses, report.Balance, report.ActiveMembers)
		if err := s.notifier.Notify(ctx, text); err != nil {
			s.logger.Error("failed to notify monthly report", zap.Error(err))
		} else {
			s.logger.Info("monthly report notification sent")
		}
	}
}

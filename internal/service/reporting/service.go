// Package reporting aggregates receiving activity into weekly summaries for
// the receiving chart and the scheduled report job.
package reporting

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/pkg/numeric"
)

// ReceiptSource supplies the receipts received within a time window.
type ReceiptSource interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]models.Receipt, error)
}

// ReportStore persists the generated weekly reports.
type ReportStore interface {
	Upsert(ctx context.Context, report *models.WeeklyReceivingReport) error
	ListRecent(ctx context.Context, limit int64) ([]models.WeeklyReceivingReport, error)
}

// RowAppender exports one report row to an external sheet. Optional.
type RowAppender interface {
	AppendRow(ctx context.Context, values []interface{}) error
}

// Service computes and stores weekly receiving reports.
type Service struct {
	receipts ReceiptSource
	reports  ReportStore
	exporter RowAppender
	now      func() time.Time
	logger   *zap.Logger
}

// NewService wires a reporting service. exporter may be nil when no
// spreadsheet is configured.
func NewService(receipts ReceiptSource, reports ReportStore, exporter RowAppender, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		receipts: receipts,
		reports:  reports,
		exporter: exporter,
		now:      time.Now,
		logger:   logger,
	}
}

// GenerateWeekly aggregates the ISO week containing ref and upserts the
// resulting report. The sheet export is best effort: a failure is logged and
// does not fail the run.
func (s *Service) GenerateWeekly(ctx context.Context, ref time.Time) (*models.WeeklyReceivingReport, error) {
	weekStart := startOfISOWeek(ref.UTC())
	weekEnd := weekStart.AddDate(0, 0, 7)

	receipts, err := s.receipts.ListBetween(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("load receipts for week: %w", err)
	}

	byUnit := make(map[string]float64)
	lineCount := 0
	for _, r := range receipts {
		for _, it := range r.Items {
			byUnit[it.Unit] = numeric.RoundQty(byUnit[it.Unit] + it.Quantity)
			lineCount++
		}
	}

	year, week := weekStart.ISOWeek()
	report := &models.WeeklyReceivingReport{
		Week:           fmt.Sprintf("%d-W%02d", year, week),
		WeekStart:      weekStart,
		ReceiptCount:   len(receipts),
		LineCount:      lineCount,
		QuantityByUnit: byUnit,
		GeneratedAt:    s.now().UTC(),
	}

	if err := s.reports.Upsert(ctx, report); err != nil {
		return nil, fmt.Errorf("store weekly report: %w", err)
	}

	if s.exporter != nil {
		if err := s.exporter.AppendRow(ctx, reportRow(report)); err != nil {
			s.logger.Warn("sheet export failed", zap.String("week", report.Week), zap.Error(err))
		}
	}

	s.logger.Info("weekly receiving report generated",
		zap.String("week", report.Week),
		zap.Int("receipts", report.ReceiptCount),
		zap.Int("lines", report.LineCount))
	return report, nil
}

// Recent returns up to weeks of the latest stored reports, newest first.
func (s *Service) Recent(ctx context.Context, weeks int) ([]models.WeeklyReceivingReport, error) {
	if weeks <= 0 {
		weeks = 8
	}
	reports, err := s.reports.ListRecent(ctx, int64(weeks))
	if err != nil {
		return nil, fmt.Errorf("list weekly reports: %w", err)
	}
	return reports, nil
}

// reportRow flattens a report for the spreadsheet, units in stable order.
func reportRow(report *models.WeeklyReceivingReport) []interface{} {
	units := make([]string, 0, len(report.QuantityByUnit))
	for u := range report.QuantityByUnit {
		units = append(units, u)
	}
	sort.Strings(units)

	row := []interface{}{
		report.Week,
		report.WeekStart.Format("2006-01-02"),
		report.ReceiptCount,
		report.LineCount,
	}
	for _, u := range units {
		row = append(row, fmt.Sprintf("%s=%v", u, report.QuantityByUnit[u]))
	}
	return row
}

// startOfISOWeek returns Monday 00:00 UTC of the week containing t.
func startOfISOWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	day := t.AddDate(0, 0, -(weekday - 1))
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}

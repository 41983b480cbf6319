package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tasklog/internal/core"
	"tasklog/internal/log"
	"tasklog/internal/sheets"
)

var (
	// ErrEmptySelection means the chosen period holds no records. Callers
	// re-prompt for another period.
	ErrEmptySelection = errors.New("no records for selected period")
	// ErrNoRecords means the store is empty, so there is nothing to report.
	ErrNoRecords = errors.New("no records stored")
	// ErrPeriodOutsideWindow means the period is not one of the last twelve months.
	ErrPeriodOutsideWindow = errors.New("period outside the last twelve months")
)

// Snapshot is one read of the store together with the month window it is
// reported against.
type Snapshot struct {
	Records []core.TaskRecord
	Window  []core.Period
}

// StatsService runs the month statistics pipeline over a record reader.
type StatsService struct {
	reader sheets.RecordReader
	now    func() time.Time
	logger *log.Logger
}

func NewStatsService(reader sheets.RecordReader, now func() time.Time) *StatsService {
	if now == nil {
		now = time.Now
	}
	return &StatsService{
		reader: reader,
		now:    now,
		logger: log.WithComponent(log.ComponentStats),
	}
}

// Snapshot reads every record once and builds the window ending at now.
func (s *StatsService) Snapshot(ctx context.Context) (Snapshot, error) {
	records, err := s.reader.ReadAll(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read records: %w", err)
	}
	return Snapshot{
		Records: records,
		Window:  core.MonthWindow(s.now()),
	}, nil
}

// Compute filters records to the period and aggregates them. It returns
// ErrEmptySelection when nothing falls in the period; a record with an
// unparsable date fails the whole request.
func (s *StatsService) Compute(records []core.TaskRecord, p core.Period) (core.Stats, error) {
	selected, err := core.FilterByPeriod(records, p)
	if err != nil {
		s.logger.Error("Filter failed", log.NewFields().
			WithOperation(log.OpFilter).
			WithPeriod(int(p.Month), p.Year).
			WithError(err).ToSlice()...)
		return core.Stats{}, fmt.Errorf("filter %s: %w", p, err)
	}
	if len(selected) == 0 {
		return core.Stats{Period: p}, fmt.Errorf("%s: %w", p, ErrEmptySelection)
	}

	stats := core.Aggregate(selected)
	stats.Period = p
	s.logger.Debug("Aggregated period",
		log.FieldOperation, log.OpAggregate,
		log.FieldMonth, int(p.Month),
		log.FieldYear, p.Year,
		log.FieldRecords, stats.Records)
	return stats, nil
}

// ForPeriod reads the store and computes statistics for month/year, which
// must lie inside the current window.
func (s *StatsService) ForPeriod(ctx context.Context, month time.Month, year int) (core.Stats, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return core.Stats{}, err
	}
	if len(snap.Records) == 0 {
		return core.Stats{}, ErrNoRecords
	}
	p, ok := core.FindPeriod(snap.Window, month, year)
	if !ok {
		return core.Stats{}, fmt.Errorf("%s %d: %w", month, year, ErrPeriodOutsideWindow)
	}
	return s.Compute(snap.Records, p)
}

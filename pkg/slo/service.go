package slo

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	ledger "github.com/slotrack/server/pkg/ledger/aggregates"
	"github.com/slotrack/server/pkg/slo/aggregates"
)

// The measurer needs the complete windowed population, not a page.
const allEvents = math.MaxInt64

// Ledger is the store of operational events measurements are computed
// from. FetchEvents returns the events recorded at or after since,
// optionally restricted to the given event types, and must be safe for
// concurrent calls. A store failure is an error, never an empty result.
type Ledger interface {
	FetchEvents(ctx context.Context, limit int64, since time.Time, eventTypes ...ledger.EventType) ([]*ledger.Event, error)
}

type Service struct {
	logger               *slog.Logger
	ledger               Ledger
	successRate          *prometheus.GaugeVec
	errorBudgetRemaining *prometheus.GaugeVec
}

func New(logger *slog.Logger, store Ledger, registry *prometheus.Registry) (*Service, error) {
	successRate := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "slo_success_rate",
			Help: "Success rate of the last measurement of each SLO, in percent",
		},
		[]string{"slo"})
	err := registry.Register(successRate)
	if err != nil {
		return nil, err
	}
	errorBudgetRemaining := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "slo_error_budget_remaining",
			Help: "Error budget left for each SLO at the last measurement, in percent",
		},
		[]string{"slo"})
	err = registry.Register(errorBudgetRemaining)
	if err != nil {
		return nil, err
	}
	return &Service{
		logger:               logger,
		ledger:               store,
		successRate:          successRate,
		errorBudgetRemaining: errorBudgetRemaining,
	}, nil
}

func windowStart(window aggregates.Window) time.Time {
	return time.Now().UTC().Add(-time.Duration(window.CalendarDays()) * 24 * time.Hour)
}

// newMeasurement derives the measurement from the raw counters. A window
// with no events is vacuously compliant: the rate is 100%.
func (s *Service) newMeasurement(objective aggregates.SLO, successCount int64, totalCount int64) aggregates.Measurement {
	rate := 100.0
	if totalCount > 0 {
		rate = float64(successCount) / float64(totalCount) * 100
	}
	budget := objective.ErrorBudgetPercent()
	remaining := budget - (100 - rate)
	if remaining < 0 {
		remaining = 0
	}
	if remaining > budget {
		remaining = budget
	}
	s.successRate.With(prometheus.Labels{"slo": objective.Description}).Set(rate)
	s.errorBudgetRemaining.With(prometheus.Labels{"slo": objective.Description}).Set(remaining)
	return aggregates.Measurement{
		SLO:                  objective,
		SuccessRate:          rate,
		SuccessCount:         successCount,
		TotalCount:           totalCount,
		ErrorBudget:          budget,
		ErrorBudgetRemaining: remaining,
	}
}

// MeasureCrashFreeSessions counts app launches and crashes in the
// objective's window. The two streams are counted independently: crashes
// are not correlated to a specific launch, which is the metric's intended
// definition.
func (s *Service) MeasureCrashFreeSessions(ctx context.Context, objective aggregates.SLO) (aggregates.Measurement, error) {
	events, err := s.ledger.FetchEvents(ctx, allEvents, windowStart(objective.Window))
	if err != nil {
		return aggregates.Measurement{}, err
	}
	var totalSessions int64
	var crashes int64
	for i := range events {
		switch events[i].Type {
		case ledger.EventTypeAppLaunch:
			totalSessions++
		case ledger.EventTypeCrash:
			crashes++
		}
	}
	successCount := totalSessions - crashes
	if successCount < 0 {
		successCount = 0
	}
	return s.newMeasurement(objective, successCount, totalSessions), nil
}

// MeasureVerifiedInstallSuccess counts install events carrying a
// verification marker and a success status against all install events in
// the window.
func (s *Service) MeasureVerifiedInstallSuccess(ctx context.Context, objective aggregates.SLO) (aggregates.Measurement, error) {
	events, err := s.ledger.FetchEvents(ctx, allEvents, windowStart(objective.Window), ledger.EventTypeInstall)
	if err != nil {
		return aggregates.Measurement{}, err
	}
	var successCount int64
	for i := range events {
		event := events[i]
		if event.IsVerified() && event.IsSuccess() {
			successCount++
		}
	}
	return s.newMeasurement(objective, successCount, int64(len(events))), nil
}

// MeasureSyncSuccess counts successful sync events against all sync
// events in the window.
func (s *Service) MeasureSyncSuccess(ctx context.Context, objective aggregates.SLO) (aggregates.Measurement, error) {
	events, err := s.ledger.FetchEvents(ctx, allEvents, windowStart(objective.Window), ledger.EventTypeSync)
	if err != nil {
		return aggregates.Measurement{}, err
	}
	var successCount int64
	for i := range events {
		if events[i].IsSuccess() {
			successCount++
		}
	}
	return s.newMeasurement(objective, successCount, int64(len(events))), nil
}

// GenerateReport measures the three catalog objectives and assembles the
// composite snapshot. The measurements query disjoint data and run
// concurrently; the report timestamp is taken once all of them completed.
// Any fetch failure aborts the report, there is no partial result.
func (s *Service) GenerateReport(ctx context.Context) (aggregates.Report, error) {
	var crashFreeSessions aggregates.Measurement
	var verifiedInstallSuccess aggregates.Measurement
	var syncSuccess aggregates.Measurement
	errChan := make(chan error, 3)
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		measurement, err := s.MeasureCrashFreeSessions(ctx, DefaultCrashFreeSessionsSLO())
		if err != nil {
			errChan <- err
			return
		}
		crashFreeSessions = measurement
	}()
	go func() {
		defer wg.Done()
		measurement, err := s.MeasureVerifiedInstallSuccess(ctx, DefaultVerifiedInstallSuccessSLO())
		if err != nil {
			errChan <- err
			return
		}
		verifiedInstallSuccess = measurement
	}()
	go func() {
		defer wg.Done()
		measurement, err := s.MeasureSyncSuccess(ctx, DefaultSyncSuccessSLO())
		if err != nil {
			errChan <- err
			return
		}
		syncSuccess = measurement
	}()
	wg.Wait()
	close(errChan)
	for err := range errChan {
		if err != nil {
			return aggregates.Report{}, err
		}
	}
	return aggregates.Report{
		GeneratedAt:            time.Now().UTC(),
		CrashFreeSessions:      crashFreeSessions,
		VerifiedInstallSuccess: verifiedInstallSuccess,
		SyncSuccess:            syncSuccess,
	}, nil
}

package slo_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	mocks "github.com/slotrack/server/mocks/github.com/slotrack/server/pkg/slo"
	ledger "github.com/slotrack/server/pkg/ledger/aggregates"
	"github.com/slotrack/server/pkg/slo"
	"github.com/slotrack/server/pkg/slo/aggregates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newService(t *testing.T, store *mocks.MockLedger) *slo.Service {
	t.Helper()
	service, err := slo.New(slog.Default(), store, prometheus.NewRegistry())
	assert.NoError(t, err)
	return service
}

func event(eventType ledger.EventType, status ledger.EventStatus) *ledger.Event {
	return &ledger.Event{
		ID:        "event",
		Type:      eventType,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
}

func verifiedEvent(eventType ledger.EventType, status ledger.EventStatus) *ledger.Event {
	result := event(eventType, status)
	verification := "checksum"
	result.Verification = &verification
	return result
}

func repeat(n int, build func() *ledger.Event) []*ledger.Event {
	result := make([]*ledger.Event, 0, n)
	for i := 0; i < n; i++ {
		result = append(result, build())
	}
	return result
}

func TestMeasureCrashFreeSessions(t *testing.T) {
	store := new(mocks.MockLedger)
	service := newService(t, store)

	events := repeat(200, func() *ledger.Event { return event(ledger.EventTypeAppLaunch, ledger.EventStatusSuccess) })
	events = append(events, repeat(3, func() *ledger.Event { return event(ledger.EventTypeCrash, ledger.EventStatusFailure) })...)
	// events of other types in the window are ignored by this measurement
	events = append(events, event(ledger.EventTypeSync, ledger.EventStatusSuccess))

	store.On("FetchEvents", mock.Anything, mock.Anything, mock.MatchedBy(func(since time.Time) bool {
		expected := time.Now().UTC().Add(-30 * 24 * time.Hour)
		return since.Sub(expected).Abs() < time.Minute
	})).Return(events, nil)

	measurement, err := service.MeasureCrashFreeSessions(context.Background(), slo.DefaultCrashFreeSessionsSLO())
	assert.NoError(t, err)
	assert.Equal(t, int64(200), measurement.TotalCount)
	assert.Equal(t, int64(197), measurement.SuccessCount)
	assert.InDelta(t, 98.5, measurement.SuccessRate, 1e-9)
	assert.False(t, measurement.IsCompliant())
	assert.InDelta(t, 0.5, measurement.ErrorBudget, 1e-9)
	assert.InDelta(t, 0, measurement.ErrorBudgetRemaining, 1e-9)
	assert.True(t, measurement.ShouldAlert())
	store.AssertExpectations(t)
}

func TestMeasureCrashFreeSessionsMoreCrashesThanLaunches(t *testing.T) {
	store := new(mocks.MockLedger)
	service := newService(t, store)

	events := repeat(2, func() *ledger.Event { return event(ledger.EventTypeAppLaunch, ledger.EventStatusSuccess) })
	events = append(events, repeat(5, func() *ledger.Event { return event(ledger.EventTypeCrash, ledger.EventStatusFailure) })...)
	store.On("FetchEvents", mock.Anything, mock.Anything, mock.Anything).Return(events, nil)

	measurement, err := service.MeasureCrashFreeSessions(context.Background(), slo.DefaultCrashFreeSessionsSLO())
	assert.NoError(t, err)
	assert.Equal(t, int64(2), measurement.TotalCount)
	assert.Equal(t, int64(0), measurement.SuccessCount)
	assert.InDelta(t, 0, measurement.SuccessRate, 1e-9)
	assert.False(t, measurement.IsCompliant())
	assert.InDelta(t, 0, measurement.ErrorBudgetRemaining, 1e-9)
}

func TestMeasureVerifiedInstallSuccess(t *testing.T) {
	store := new(mocks.MockLedger)
	service := newService(t, store)

	events := repeat(10, func() *ledger.Event { return verifiedEvent(ledger.EventTypeInstall, ledger.EventStatusSuccess) })
	store.On("FetchEvents", mock.Anything, mock.Anything, mock.Anything, ledger.EventTypeInstall).Return(events, nil)

	measurement, err := service.MeasureVerifiedInstallSuccess(context.Background(), slo.DefaultVerifiedInstallSuccessSLO())
	assert.NoError(t, err)
	assert.Equal(t, int64(10), measurement.TotalCount)
	assert.Equal(t, int64(10), measurement.SuccessCount)
	assert.InDelta(t, 100, measurement.SuccessRate, 1e-9)
	assert.True(t, measurement.IsCompliant())
	store.AssertExpectations(t)
}

func TestMeasureVerifiedInstallSuccessUnverifiedDontCount(t *testing.T) {
	store := new(mocks.MockLedger)
	service := newService(t, store)

	events := []*ledger.Event{
		verifiedEvent(ledger.EventTypeInstall, ledger.EventStatusSuccess),
		// successful but unverified
		event(ledger.EventTypeInstall, ledger.EventStatusSuccess),
		// verified but failed
		verifiedEvent(ledger.EventTypeInstall, ledger.EventStatusFailure),
		event(ledger.EventTypeInstall, ledger.EventStatusFailure),
	}
	store.On("FetchEvents", mock.Anything, mock.Anything, mock.Anything, ledger.EventTypeInstall).Return(events, nil)

	measurement, err := service.MeasureVerifiedInstallSuccess(context.Background(), slo.DefaultVerifiedInstallSuccessSLO())
	assert.NoError(t, err)
	assert.Equal(t, int64(4), measurement.TotalCount)
	assert.Equal(t, int64(1), measurement.SuccessCount)
	assert.InDelta(t, 25, measurement.SuccessRate, 1e-9)
	assert.False(t, measurement.IsCompliant())
}

func TestMeasureSyncSuccessNoEvents(t *testing.T) {
	store := new(mocks.MockLedger)
	service := newService(t, store)

	store.On("FetchEvents", mock.Anything, mock.Anything, mock.MatchedBy(func(since time.Time) bool {
		expected := time.Now().UTC().Add(-7 * 24 * time.Hour)
		return since.Sub(expected).Abs() < time.Minute
	}), ledger.EventTypeSync).Return([]*ledger.Event{}, nil)

	// no data is vacuous compliance, not a failure
	measurement, err := service.MeasureSyncSuccess(context.Background(), slo.DefaultSyncSuccessSLO())
	assert.NoError(t, err)
	assert.Equal(t, int64(0), measurement.TotalCount)
	assert.Equal(t, int64(0), measurement.SuccessCount)
	assert.InDelta(t, 100, measurement.SuccessRate, 1e-9)
	assert.True(t, measurement.IsCompliant())
	assert.InDelta(t, measurement.ErrorBudget, measurement.ErrorBudgetRemaining, 1e-9)
	assert.False(t, measurement.ShouldAlert())
}

func TestMeasureSyncSuccess(t *testing.T) {
	store := new(mocks.MockLedger)
	service := newService(t, store)

	events := repeat(97, func() *ledger.Event { return event(ledger.EventTypeSync, ledger.EventStatusSuccess) })
	events = append(events, repeat(3, func() *ledger.Event { return event(ledger.EventTypeSync, ledger.EventStatusFailure) })...)
	store.On("FetchEvents", mock.Anything, mock.Anything, mock.Anything, ledger.EventTypeSync).Return(events, nil)

	measurement, err := service.MeasureSyncSuccess(context.Background(), slo.DefaultSyncSuccessSLO())
	assert.NoError(t, err)
	assert.Equal(t, int64(100), measurement.TotalCount)
	assert.Equal(t, int64(97), measurement.SuccessCount)
	assert.InDelta(t, 97, measurement.SuccessRate, 1e-9)
	assert.False(t, measurement.IsCompliant())
	assert.InDelta(t, 1, measurement.ErrorBudgetRemaining, 1e-9)
	assert.InDelta(t, 1, measurement.ErrorBudgetConsumed(), 1e-9)
}

func TestMeasureFetchError(t *testing.T) {
	store := new(mocks.MockLedger)
	service := newService(t, store)

	fetchErr := errors.New("ledger unreachable")
	store.On("FetchEvents", mock.Anything, mock.Anything, mock.Anything, ledger.EventTypeSync).Return(nil, fetchErr)

	_, err := service.MeasureSyncSuccess(context.Background(), slo.DefaultSyncSuccessSLO())
	assert.ErrorIs(t, err, fetchErr)
}

func TestGenerateReport(t *testing.T) {
	store := new(mocks.MockLedger)
	service := newService(t, store)

	sessionEvents := repeat(100, func() *ledger.Event { return event(ledger.EventTypeAppLaunch, ledger.EventStatusSuccess) })
	store.On("FetchEvents", mock.Anything, mock.Anything, mock.Anything).Return(sessionEvents, nil)
	installEvents := repeat(20, func() *ledger.Event { return verifiedEvent(ledger.EventTypeInstall, ledger.EventStatusSuccess) })
	store.On("FetchEvents", mock.Anything, mock.Anything, mock.Anything, ledger.EventTypeInstall).Return(installEvents, nil)
	syncEvents := repeat(50, func() *ledger.Event { return event(ledger.EventTypeSync, ledger.EventStatusSuccess) })
	store.On("FetchEvents", mock.Anything, mock.Anything, mock.Anything, ledger.EventTypeSync).Return(syncEvents, nil)

	before := time.Now().UTC()
	report, err := service.GenerateReport(context.Background())
	assert.NoError(t, err)
	assert.True(t, report.IsCompliant())
	assert.Len(t, report.NeedsAttention(), 0)
	assert.Equal(t, int64(100), report.CrashFreeSessions.TotalCount)
	assert.Equal(t, int64(20), report.VerifiedInstallSuccess.TotalCount)
	assert.Equal(t, int64(50), report.SyncSuccess.TotalCount)
	assert.False(t, report.GeneratedAt.IsZero())
	assert.False(t, report.GeneratedAt.Before(before))
	assert.False(t, report.GeneratedAt.After(time.Now().UTC()))
	store.AssertExpectations(t)
}

func TestGenerateReportFetchError(t *testing.T) {
	store := new(mocks.MockLedger)
	service := newService(t, store)

	fetchErr := errors.New("ledger unreachable")
	store.On("FetchEvents", mock.Anything, mock.Anything, mock.Anything).Return([]*ledger.Event{}, nil)
	store.On("FetchEvents", mock.Anything, mock.Anything, mock.Anything, ledger.EventTypeInstall).Return([]*ledger.Event{}, nil)
	store.On("FetchEvents", mock.Anything, mock.Anything, mock.Anything, ledger.EventTypeSync).Return(nil, fetchErr)

	// no partial report on a fetch failure
	_, err := service.GenerateReport(context.Background())
	assert.ErrorIs(t, err, fetchErr)
}

func TestNewSLOValidation(t *testing.T) {
	_, err := slo.NewSLO(101, aggregates.Window30d, "invalid target")
	assert.ErrorContains(t, err, "between 0 and 100")
	_, err = slo.NewSLO(-1, aggregates.Window30d, "invalid target")
	assert.ErrorContains(t, err, "between 0 and 100")
	_, err = slo.NewSLO(99, aggregates.Window("6h"), "invalid window")
	assert.ErrorContains(t, err, "invalid SLO window")

	objective, err := slo.NewSLO(99.9, aggregates.Window90d, "api availability")
	assert.NoError(t, err)
	assert.InDelta(t, 0.1, objective.ErrorBudgetPercent(), 1e-9)
	assert.Equal(t, 90, objective.Window.CalendarDays())
}

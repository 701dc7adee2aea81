package aggregates_test

import (
	"testing"
	"time"

	"github.com/slotrack/server/pkg/slo/aggregates"
	"github.com/stretchr/testify/assert"
)

func TestWindowCalendarDays(t *testing.T) {
	assert.Equal(t, 1, aggregates.Window24h.CalendarDays())
	assert.Equal(t, 7, aggregates.Window7d.CalendarDays())
	assert.Equal(t, 30, aggregates.Window30d.CalendarDays())
	assert.Equal(t, 90, aggregates.Window90d.CalendarDays())
	assert.Equal(t, 0, aggregates.Window("1y").CalendarDays())
}

func TestErrorBudgetPercent(t *testing.T) {
	cases := []struct {
		target   float64
		expected float64
	}{
		{target: 99.5, expected: 0.5},
		{target: 95.0, expected: 5.0},
		{target: 98.0, expected: 2.0},
		{target: 100, expected: 0},
		{target: 0, expected: 100},
	}
	for _, c := range cases {
		objective := aggregates.SLO{
			Target: c.target,
			Window: aggregates.Window30d,
		}
		assert.InDelta(t, c.expected, objective.ErrorBudgetPercent(), 1e-9)
	}
}

func TestMeasurementCompliance(t *testing.T) {
	objective := aggregates.SLO{
		Target: 95.0,
		Window: aggregates.Window30d,
	}
	measurement := aggregates.Measurement{
		SLO:         objective,
		SuccessRate: 94.99,
	}
	assert.False(t, measurement.IsCompliant())

	// the boundary is compliant
	measurement.SuccessRate = 95.0
	assert.True(t, measurement.IsCompliant())

	measurement.SuccessRate = 100
	assert.True(t, measurement.IsCompliant())
}

func TestMeasurementShouldAlert(t *testing.T) {
	measurement := aggregates.Measurement{
		SLO: aggregates.SLO{
			Target: 99.5,
			Window: aggregates.Window30d,
		},
		ErrorBudget:          0.5,
		ErrorBudgetRemaining: 0.5,
	}
	assert.False(t, measurement.ShouldAlert())
	assert.InDelta(t, 0.0, measurement.ErrorBudgetConsumed(), 1e-9)

	// exactly 10% of the budget left does not alert
	measurement.ErrorBudgetRemaining = 0.5 * 0.1
	assert.False(t, measurement.ShouldAlert())

	measurement.ErrorBudgetRemaining = 0.04
	assert.True(t, measurement.ShouldAlert())
	assert.InDelta(t, 0.46, measurement.ErrorBudgetConsumed(), 1e-9)

	measurement.ErrorBudgetRemaining = 0
	assert.True(t, measurement.ShouldAlert())
}

func compliantMeasurement(target float64) aggregates.Measurement {
	budget := 100 - target
	return aggregates.Measurement{
		SLO: aggregates.SLO{
			Target: target,
			Window: aggregates.Window30d,
		},
		SuccessRate:          100,
		SuccessCount:         10,
		TotalCount:           10,
		ErrorBudget:          budget,
		ErrorBudgetRemaining: budget,
	}
}

func TestReportCompliance(t *testing.T) {
	report := aggregates.Report{
		GeneratedAt:            time.Now().UTC(),
		CrashFreeSessions:      compliantMeasurement(99.5),
		VerifiedInstallSuccess: compliantMeasurement(95.0),
		SyncSuccess:            compliantMeasurement(98.0),
	}
	assert.True(t, report.IsCompliant())
	assert.Len(t, report.NeedsAttention(), 0)

	failed := compliantMeasurement(98.0)
	failed.SuccessRate = 90
	failed.ErrorBudgetRemaining = 0
	report.SyncSuccess = failed
	assert.False(t, report.IsCompliant())
	attention := report.NeedsAttention()
	assert.Len(t, attention, 1)
	_, ok := attention[aggregates.SyncSuccessLabel]
	assert.True(t, ok)
}

func TestReportNeedsAttentionOnAlertOnly(t *testing.T) {
	// compliant but almost out of budget: flagged without failing compliance
	almostExhausted := compliantMeasurement(95.0)
	almostExhausted.SuccessRate = 95.2
	almostExhausted.ErrorBudgetRemaining = 0.2
	report := aggregates.Report{
		GeneratedAt:            time.Now().UTC(),
		CrashFreeSessions:      compliantMeasurement(99.5),
		VerifiedInstallSuccess: almostExhausted,
		SyncSuccess:            compliantMeasurement(98.0),
	}
	assert.True(t, report.IsCompliant())
	attention := report.NeedsAttention()
	assert.Len(t, attention, 1)
	flagged, ok := attention[aggregates.VerifiedInstallSuccessLabel]
	assert.True(t, ok)
	assert.True(t, flagged.ShouldAlert())
}

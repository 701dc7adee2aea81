package aggregates

import "time"

// Window is a rolling measurement window over which an objective is
// evaluated.
type Window string

const (
	Window24h Window = "24h"
	Window7d  Window = "7d"
	Window30d Window = "30d"
	Window90d Window = "90d"
)

// CalendarDays returns the whole-day span of the window, 0 for unknown
// windows. Objectives built through slo.NewSLO never carry an unknown
// window.
func (w Window) CalendarDays() int {
	switch w {
	case Window24h:
		return 1
	case Window7d:
		return 7
	case Window30d:
		return 30
	case Window90d:
		return 90
	}
	return 0
}

// SLO is a service level objective: a target success rate over a rolling
// window.
type SLO struct {
	Target      float64
	Window      Window
	Description string
}

func (s SLO) ErrorBudgetPercent() float64 {
	return 100 - s.Target
}

// Measurement is the result of evaluating one objective against the ledger.
type Measurement struct {
	SLO                  SLO
	SuccessRate          float64
	SuccessCount         int64
	TotalCount           int64
	ErrorBudget          float64
	ErrorBudgetRemaining float64
}

func (m Measurement) IsCompliant() bool {
	return m.SuccessRate >= m.SLO.Target
}

func (m Measurement) ErrorBudgetConsumed() float64 {
	return m.ErrorBudget - m.ErrorBudgetRemaining
}

// ShouldAlert reports whether less than 10% of the error budget is left.
// Exactly 10% remaining does not alert.
func (m Measurement) ShouldAlert() bool {
	return m.ErrorBudgetRemaining < m.ErrorBudget*0.1
}

const (
	CrashFreeSessionsLabel      = "Crash-Free Sessions"
	VerifiedInstallSuccessLabel = "Verified Install Success"
	SyncSuccessLabel            = "Sync Success"
)

// Report is a snapshot of the three catalog objectives measured together.
type Report struct {
	GeneratedAt            time.Time
	CrashFreeSessions      Measurement
	VerifiedInstallSuccess Measurement
	SyncSuccess            Measurement
}

func (r Report) IsCompliant() bool {
	return r.CrashFreeSessions.IsCompliant() && r.VerifiedInstallSuccess.IsCompliant() && r.SyncSuccess.IsCompliant()
}

// NeedsAttention returns the measurements that are non-compliant or close
// to exhausting their error budget, keyed by their display label.
func (r Report) NeedsAttention() map[string]Measurement {
	result := make(map[string]Measurement)
	for label, measurement := range map[string]Measurement{
		CrashFreeSessionsLabel:      r.CrashFreeSessions,
		VerifiedInstallSuccessLabel: r.VerifiedInstallSuccess,
		SyncSuccessLabel:            r.SyncSuccess,
	} {
		if !measurement.IsCompliant() || measurement.ShouldAlert() {
			result[label] = measurement
		}
	}
	return result
}

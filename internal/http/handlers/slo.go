package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	er "github.com/mcorbin/corbierror"
	"github.com/slotrack/server/pkg/slo"
	"github.com/slotrack/server/pkg/slo/aggregates"
)

type SLO struct {
	Target             float64 `json:"target"`
	Window             string  `json:"window"`
	Description        string  `json:"description"`
	ErrorBudgetPercent float64 `json:"error_budget_percent"`
}

type Measurement struct {
	SLO                  SLO     `json:"slo"`
	SuccessRate          float64 `json:"success_rate"`
	SuccessCount         int64   `json:"success_count"`
	TotalCount           int64   `json:"total_count"`
	ErrorBudget          float64 `json:"error_budget"`
	ErrorBudgetRemaining float64 `json:"error_budget_remaining"`
	ErrorBudgetConsumed  float64 `json:"error_budget_consumed"`
	Compliant            bool    `json:"compliant"`
	ShouldAlert          bool    `json:"should_alert"`
}

type Report struct {
	GeneratedAt            time.Time              `json:"generated_at"`
	CrashFreeSessions      Measurement            `json:"crash_free_sessions"`
	VerifiedInstallSuccess Measurement            `json:"verified_install_success"`
	SyncSuccess            Measurement            `json:"sync_success"`
	Compliant              bool                   `json:"compliant"`
	NeedsAttention         map[string]Measurement `json:"needs_attention,omitempty"`
}

func toMeasurement(measurement aggregates.Measurement) Measurement {
	return Measurement{
		SLO: SLO{
			Target:             measurement.SLO.Target,
			Window:             string(measurement.SLO.Window),
			Description:        measurement.SLO.Description,
			ErrorBudgetPercent: measurement.SLO.ErrorBudgetPercent(),
		},
		SuccessRate:          measurement.SuccessRate,
		SuccessCount:         measurement.SuccessCount,
		TotalCount:           measurement.TotalCount,
		ErrorBudget:          measurement.ErrorBudget,
		ErrorBudgetRemaining: measurement.ErrorBudgetRemaining,
		ErrorBudgetConsumed:  measurement.ErrorBudgetConsumed(),
		Compliant:            measurement.IsCompliant(),
		ShouldAlert:          measurement.ShouldAlert(),
	}
}

func toReport(report aggregates.Report) Report {
	needsAttention := report.NeedsAttention()
	result := Report{
		GeneratedAt:            report.GeneratedAt,
		CrashFreeSessions:      toMeasurement(report.CrashFreeSessions),
		VerifiedInstallSuccess: toMeasurement(report.VerifiedInstallSuccess),
		SyncSuccess:            toMeasurement(report.SyncSuccess),
		Compliant:              report.IsCompliant(),
	}
	if len(needsAttention) != 0 {
		result.NeedsAttention = make(map[string]Measurement, len(needsAttention))
		for label, measurement := range needsAttention {
			result.NeedsAttention[label] = toMeasurement(measurement)
		}
	}
	return result
}

type GetMeasurementInput struct {
	Name   string   `param:"name" validate:"required"`
	Target *float64 `query:"target" validate:"omitempty,gte=0,lte=100"`
	Window string   `query:"window"`
}

func (b *Builder) GetMeasurement(ec echo.Context) error {
	var payload GetMeasurementInput
	if err := ec.Bind(&payload); err != nil {
		return err
	}
	if err := ec.Validate(payload); err != nil {
		return err
	}

	var objective aggregates.SLO
	var measure func(ctx context.Context, objective aggregates.SLO) (aggregates.Measurement, error)
	switch payload.Name {
	case "crash-free-sessions":
		objective = slo.DefaultCrashFreeSessionsSLO()
		measure = b.slo.MeasureCrashFreeSessions
	case "verified-install-success":
		objective = slo.DefaultVerifiedInstallSuccessSLO()
		measure = b.slo.MeasureVerifiedInstallSuccess
	case "sync-success":
		objective = slo.DefaultSyncSuccessSLO()
		measure = b.slo.MeasureSyncSuccess
	default:
		return er.Newf("unknown measurement %s", er.NotFound, true, payload.Name)
	}

	if payload.Target != nil || payload.Window != "" {
		target := objective.Target
		if payload.Target != nil {
			target = *payload.Target
		}
		window := objective.Window
		if payload.Window != "" {
			window = aggregates.Window(payload.Window)
		}
		var err error
		objective, err = slo.NewSLO(target, window, objective.Description)
		if err != nil {
			return err
		}
	}

	measurement, err := measure(ec.Request().Context(), objective)
	if err != nil {
		return err
	}
	result := toMeasurement(measurement)
	return ec.JSON(http.StatusOK, &result)
}

func (b *Builder) GenerateReport(ec echo.Context) error {
	report, err := b.slo.GenerateReport(ec.Request().Context())
	if err != nil {
		return err
	}
	result := toReport(report)
	return ec.JSON(http.StatusOK, &result)
}

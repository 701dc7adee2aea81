package handlers

import (
	"context"

	ledgeraggregates "github.com/slotrack/server/pkg/ledger/aggregates"
	"github.com/slotrack/server/pkg/slo/aggregates"
)

type SLOService interface {
	MeasureCrashFreeSessions(ctx context.Context, objective aggregates.SLO) (aggregates.Measurement, error)
	MeasureVerifiedInstallSuccess(ctx context.Context, objective aggregates.SLO) (aggregates.Measurement, error)
	MeasureSyncSuccess(ctx context.Context, objective aggregates.SLO) (aggregates.Measurement, error)
	GenerateReport(ctx context.Context) (aggregates.Report, error)
}

type LedgerService interface {
	RecordEvent(ctx context.Context, event *ledgeraggregates.Event) error
}

type Builder struct {
	slo    SLOService
	ledger LedgerService
}

func NewBuilder(slo SLOService, ledger LedgerService) *Builder {
	return &Builder{
		slo:    slo,
		ledger: ledger,
	}
}

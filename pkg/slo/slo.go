package slo

import (
	er "github.com/mcorbin/corbierror"
	"github.com/slotrack/server/pkg/slo/aggregates"
)

// NewSLO builds an ad hoc objective. Invalid targets and unknown windows
// are rejected here so measurement-time arithmetic stays total.
func NewSLO(target float64, window aggregates.Window, description string) (aggregates.SLO, error) {
	if target < 0 || target > 100 {
		return aggregates.SLO{}, er.Newf("the SLO target should be between 0 and 100, got %f", er.BadRequest, true, target)
	}
	if window.CalendarDays() == 0 {
		return aggregates.SLO{}, er.Newf("invalid SLO window %s", er.BadRequest, true, string(window))
	}
	return aggregates.SLO{
		Target:      target,
		Window:      window,
		Description: description,
	}, nil
}

func DefaultCrashFreeSessionsSLO() aggregates.SLO {
	return aggregates.SLO{
		Target:      99.5,
		Window:      aggregates.Window30d,
		Description: aggregates.CrashFreeSessionsLabel,
	}
}

func DefaultVerifiedInstallSuccessSLO() aggregates.SLO {
	return aggregates.SLO{
		Target:      95.0,
		Window:      aggregates.Window30d,
		Description: aggregates.VerifiedInstallSuccessLabel,
	}
}

func DefaultSyncSuccessSLO() aggregates.SLO {
	return aggregates.SLO{
		Target:      98.0,
		Window:      aggregates.Window7d,
		Description: aggregates.SyncSuccessLabel,
	}
}

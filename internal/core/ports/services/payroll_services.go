package services

import (
	"context"
	"time"

	"github.com/sepolpinturas/obras_backend/internal/dto"
)

// PayrollSvcFacade runs the weekly payroll aggregation. Safe to invoke
// repeatedly for the same week: re-running only recomputes OPEN payments.
type PayrollSvcFacade interface {
	// GenerateWeek aggregates the week containing weekDate (normalized to its
	// Monday) into one WEEKLY payment per worker and one EXTRA payment per
	// (worker, weekend/holiday date).
	GenerateWeek(ctx context.Context, weekDate time.Time, actorID string) (*dto.PayrollRunResult, error)
}

package repositories

import (
	"context"
	"time"

	"github.com/sepolpinturas/obras_backend/internal/core/domain"
)

// WorkEntryRepositoryFacade persists the work ledger ("apontamentos").
type WorkEntryRepositoryFacade interface {
	// SaveWorkEntry inserts a new entry. The unique constraint on
	// (worker, job, date) surfaces as apperrors.ErrDuplicate.
	SaveWorkEntry(ctx context.Context, entry domain.WorkEntry) error

	FindWorkEntryByID(ctx context.Context, workEntryID string) (*domain.WorkEntry, error)

	UpdateWorkEntry(ctx context.Context, entry domain.WorkEntry) error

	// DeleteWorkEntry removes the entry and, in the same transaction, any
	// payment line referencing it that belongs to an OPEN payment. The caller
	// re-runs the payroll generator afterward to recompute totals.
	DeleteWorkEntry(ctx context.Context, workEntryID string) error

	// IsLocked reports whether any payment line referencing the entry belongs
	// to a PAID payment. Every mutating operation consults this predicate.
	IsLocked(ctx context.Context, workEntryID string) (bool, error)

	// ListWorkEntriesInRange returns entries whose date falls in
	// [from, to] (inclusive) restricted to the given day types.
	ListWorkEntriesInRange(ctx context.Context, from, to time.Time, dayTypes []domain.DayType) ([]domain.WorkEntry, error)

	ListWorkEntriesByJob(ctx context.Context, jobID string, limit int, nextToken *string) ([]domain.WorkEntry, *string, error)
}

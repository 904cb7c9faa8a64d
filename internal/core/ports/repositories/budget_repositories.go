package repositories

import (
	"context"
	"time"

	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetRepositoryFacade persists budgets, phases and line items.
//
// Implementations must translate the store's partial unique index on
// (job_id) WHERE status = APPROVED into apperrors.ErrApprovedExists, and
// execute every multi-row mutation in a single transaction.
type BudgetRepositoryFacade interface {
	BudgetRepository
	PhaseRepository
	LineItemRepository
}

type BudgetRepository interface {
	SaveBudget(ctx context.Context, budget domain.Budget) error
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)
	ListBudgetsByJob(ctx context.Context, jobID string) ([]domain.Budget, error)
	FindApprovedBudgetByJob(ctx context.Context, jobID string) (*domain.Budget, error)

	// UpdateBudgetStatus transitions the budget status, stamping the approval
	// date when provided. The store-level constraint is the real guard against
	// two concurrent approvals.
	UpdateBudgetStatus(ctx context.Context, budgetID string, status domain.BudgetStatus, approvedDate *time.Time, updatedBy string, updatedAt time.Time) error

	// UpdateBudgetTotals persists a recalculation result (per-phase totals plus
	// budget gross/discount/final) atomically.
	UpdateBudgetTotals(ctx context.Context, budgetID string, discount decimal.Decimal, phaseTotals map[string]decimal.Decimal, gross decimal.Decimal, final decimal.Decimal, updatedBy string, updatedAt time.Time) error
}

type PhaseRepository interface {
	SavePhase(ctx context.Context, phase domain.Phase) error
	FindPhaseByID(ctx context.Context, phaseID string) (*domain.Phase, error)
	ListPhasesByBudget(ctx context.Context, budgetID string) ([]domain.Phase, error)
	UpdatePhaseStatus(ctx context.Context, phaseID string, status domain.PhaseStatus, updatedBy string, updatedAt time.Time) error

	// DeletePhase removes a phase and its line items. Fails with
	// apperrors.ErrConflict while a receivable references the phase.
	DeletePhase(ctx context.Context, phaseID string) error
}

type LineItemRepository interface {
	// UpsertLineItem inserts the line or, when the (phase, service) pair
	// already exists, updates its quantity and unit price in place.
	UpsertLineItem(ctx context.Context, item domain.LineItem) error
	ListLineItemsByPhase(ctx context.Context, phaseID string) ([]domain.LineItem, error)
	ListLineItemsByBudget(ctx context.Context, budgetID string) ([]domain.LineItem, error)
	DeleteLineItem(ctx context.Context, lineItemID string) error
}

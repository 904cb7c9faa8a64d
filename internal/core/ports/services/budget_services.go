package services

import (
	"context"

	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	"github.com/sepolpinturas/obras_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// BudgetSvcFacade owns the budget state machine, phase and line item totals,
// discount application and recalculation.
type BudgetSvcFacade interface {
	CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, creatorID string) (*domain.Budget, error)
	GetBudget(ctx context.Context, budgetID string) (*domain.Budget, error)

	// GetBudgetSnapshot returns the budget with phases and line items loaded,
	// the read-only projection consumed by document rendering.
	GetBudgetSnapshot(ctx context.Context, budgetID string) (*domain.Budget, error)

	ListBudgetsByJob(ctx context.Context, jobID string) ([]domain.Budget, error)

	SetDiscount(ctx context.Context, budgetID string, discount decimal.Decimal, actorID string) (*domain.Budget, error)
	Recalculate(ctx context.Context, budgetID string, actorID string) (*domain.Budget, error)

	Emit(ctx context.Context, budgetID string, actorID string) (*domain.Budget, error)
	Approve(ctx context.Context, budgetID string, actorID string) (*domain.Budget, error)
	Reject(ctx context.Context, budgetID string, actorID string) (*domain.Budget, error)
	Cancel(ctx context.Context, budgetID string, actorID string) (*domain.Budget, error)
	Reopen(ctx context.Context, budgetID string, actorID string) (*domain.Budget, error)

	AddPhase(ctx context.Context, budgetID string, req dto.CreatePhaseRequest, actorID string) (*domain.Phase, error)
	UpdatePhaseStatus(ctx context.Context, phaseID string, status domain.PhaseStatus, actorID string) error
	DeletePhase(ctx context.Context, phaseID string, actorID string) error

	UpsertLineItem(ctx context.Context, phaseID string, req dto.UpsertLineItemRequest, actorID string) (*domain.LineItem, error)
	RemoveLineItem(ctx context.Context, phaseID string, lineItemID string, actorID string) error
}

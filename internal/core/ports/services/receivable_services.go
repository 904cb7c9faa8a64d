package services

import (
	"context"

	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	"github.com/sepolpinturas/obras_backend/internal/dto"
)

// ReceivableSvcFacade tracks per-phase amounts owed by the client. Independent
// lifecycle from payroll; no cross-entity locking.
type ReceivableSvcFacade interface {
	UpsertReceivable(ctx context.Context, phaseID string, req dto.UpsertReceivableRequest, actorID string) (*domain.Receivable, error)
	GetReceivableByPhase(ctx context.Context, phaseID string) (*domain.Receivable, error)
	ListReceivablesByBudget(ctx context.Context, budgetID string) ([]domain.Receivable, error)
	MarkReceivablePaid(ctx context.Context, receivableID string, actorID string) (*domain.Receivable, error)
	CancelReceivable(ctx context.Context, receivableID string, actorID string) (*domain.Receivable, error)
}

package repositories

import (
	"context"
	"time"

	"github.com/sepolpinturas/obras_backend/internal/core/domain"
)

// ReceivableRepositoryFacade persists client receivables, one per phase.
type ReceivableRepositoryFacade interface {
	// UpsertReceivable inserts or, when the phase already has one, updates the
	// receivable in place (unique constraint on phase_id).
	UpsertReceivable(ctx context.Context, receivable domain.Receivable) error

	FindReceivableByID(ctx context.Context, receivableID string) (*domain.Receivable, error)
	FindReceivableByPhase(ctx context.Context, phaseID string) (*domain.Receivable, error)
	ListReceivablesByBudget(ctx context.Context, budgetID string) ([]domain.Receivable, error)
	UpdateReceivableStatus(ctx context.Context, receivableID string, status domain.ReceivableStatus, paidAt *time.Time, updatedBy string, updatedAt time.Time) error
}

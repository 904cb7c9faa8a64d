package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sepolpinturas/obras_backend/internal/apperrors"
	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	portsrepo "github.com/sepolpinturas/obras_backend/internal/core/ports/repositories"
	portssvc "github.com/sepolpinturas/obras_backend/internal/core/ports/services"
	"github.com/sepolpinturas/obras_backend/internal/dto"
	"github.com/sepolpinturas/obras_backend/internal/middleware"
)

// ReceivableService tracks what the client owes per phase. One receivable per
// phase; its lifecycle is independent of worker payroll.
type ReceivableService struct {
	receivableRepo portsrepo.ReceivableRepositoryFacade
	budgetRepo     portsrepo.BudgetRepositoryFacade
}

func NewReceivableService(receivableRepo portsrepo.ReceivableRepositoryFacade, budgetRepo portsrepo.BudgetRepositoryFacade) *ReceivableService {
	return &ReceivableService{receivableRepo: receivableRepo, budgetRepo: budgetRepo}
}

var _ portssvc.ReceivableSvcFacade = (*ReceivableService)(nil)

// UpsertReceivable creates the phase's receivable or, while it is still OPEN,
// updates its value and due date in place. PAID and CANCELLED receivables are
// not touched.
func (s *ReceivableService) UpsertReceivable(ctx context.Context, phaseID string, req dto.UpsertReceivableRequest, actorID string) (*domain.Receivable, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	dueDate, err := time.Parse(dto.DateLayout, req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid due date %q", apperrors.ErrValidation, req.DueDate)
	}
	if req.BaseValue.IsNegative() || req.Surcharge.IsNegative() {
		return nil, fmt.Errorf("%w: values must not be negative", apperrors.ErrValidation)
	}

	if _, err := s.budgetRepo.FindPhaseByID(ctx, phaseID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: phase %s", apperrors.ErrNotFound, phaseID)
		}
		return nil, err
	}

	existing, err := s.receivableRepo.FindReceivableByPhase(ctx, phaseID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.Status != domain.ReceivableOpen {
		return nil, fmt.Errorf("%w: receivable for phase %s is %s", apperrors.ErrInvalidState, phaseID, existing.Status)
	}

	receivable := domain.Receivable{
		ReceivableID: uuid.NewString(),
		PhaseID:      phaseID,
		Status:       domain.ReceivableOpen,
		BaseValue:    req.BaseValue,
		Surcharge:    req.Surcharge,
		DueDate:      dueDate,
		AuditFields:  newAudit(actorID, time.Now()),
	}

	if err := s.receivableRepo.UpsertReceivable(ctx, receivable); err != nil {
		logger.Error("Failed to upsert receivable", slog.String("error", err.Error()), slog.String("phase_id", phaseID))
		return nil, err
	}

	saved, err := s.receivableRepo.FindReceivableByPhase(ctx, phaseID)
	if err != nil {
		return nil, err
	}

	logger.Info("Receivable upserted", slog.String("receivable_id", saved.ReceivableID), slog.String("phase_id", phaseID))
	return saved, nil
}

func (s *ReceivableService) GetReceivableByPhase(ctx context.Context, phaseID string) (*domain.Receivable, error) {
	return s.receivableRepo.FindReceivableByPhase(ctx, phaseID)
}

func (s *ReceivableService) ListReceivablesByBudget(ctx context.Context, budgetID string) ([]domain.Receivable, error) {
	if _, err := s.budgetRepo.FindBudgetByID(ctx, budgetID); err != nil {
		return nil, err
	}
	return s.receivableRepo.ListReceivablesByBudget(ctx, budgetID)
}

func (s *ReceivableService) MarkReceivablePaid(ctx context.Context, receivableID string, actorID string) (*domain.Receivable, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	receivable, err := s.receivableRepo.FindReceivableByID(ctx, receivableID)
	if err != nil {
		return nil, err
	}
	if receivable.Status != domain.ReceivableOpen {
		return nil, fmt.Errorf("%w: receivable %s is %s", apperrors.ErrInvalidState, receivableID, receivable.Status)
	}

	now := time.Now()
	paidAt := now
	if err := s.receivableRepo.UpdateReceivableStatus(ctx, receivableID, domain.ReceivablePaid, &paidAt, actorID, now); err != nil {
		logger.Error("Failed to mark receivable paid", slog.String("error", err.Error()), slog.String("receivable_id", receivableID))
		return nil, err
	}

	receivable.Status = domain.ReceivablePaid
	receivable.PaidAt = &paidAt
	receivable.LastUpdatedAt = now
	receivable.LastUpdatedBy = actorID
	logger.Info("Receivable marked paid", slog.String("receivable_id", receivableID))
	return receivable, nil
}

// CancelReceivable cancels a receivable from any status. Cancelling a PAID
// receivable is allowed so a booked entry can be voided; PaidAt is cleared.
func (s *ReceivableService) CancelReceivable(ctx context.Context, receivableID string, actorID string) (*domain.Receivable, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	receivable, err := s.receivableRepo.FindReceivableByID(ctx, receivableID)
	if err != nil {
		return nil, err
	}
	if receivable.Status == domain.ReceivableCancelled {
		return receivable, nil
	}

	now := time.Now()
	if err := s.receivableRepo.UpdateReceivableStatus(ctx, receivableID, domain.ReceivableCancelled, nil, actorID, now); err != nil {
		logger.Error("Failed to cancel receivable", slog.String("error", err.Error()), slog.String("receivable_id", receivableID))
		return nil, err
	}

	receivable.Status = domain.ReceivableCancelled
	receivable.PaidAt = nil
	receivable.LastUpdatedAt = now
	receivable.LastUpdatedBy = actorID
	logger.Info("Receivable cancelled", slog.String("receivable_id", receivableID))
	return receivable, nil
}

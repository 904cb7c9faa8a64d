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
	"github.com/shopspring/decimal"
)

// BudgetService owns the budget lifecycle: DRAFT → EMITTED → APPROVED /
// REJECTED / CANCELLED, with EMITTED → DRAFT as the reopen path. Terminal
// budgets refuse every status or financial edit.
type BudgetService struct {
	budgetRepo  portsrepo.BudgetRepositoryFacade
	catalogRepo portsrepo.CatalogRepositoryFacade
}

func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade, catalogRepo portsrepo.CatalogRepositoryFacade) *BudgetService {
	return &BudgetService{budgetRepo: budgetRepo, catalogRepo: catalogRepo}
}

var _ portssvc.BudgetSvcFacade = (*BudgetService)(nil)

func (s *BudgetService) CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, creatorID string) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.catalogRepo.FindJobByID(ctx, req.JobID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: job %s", apperrors.ErrNotFound, req.JobID)
		}
		return nil, err
	}

	now := time.Now()
	budget := domain.Budget{
		BudgetID:    uuid.NewString(),
		JobID:       req.JobID,
		Title:       req.Title,
		Status:      domain.BudgetDraft,
		GrossTotal:  decimal.Zero,
		Discount:    decimal.Zero,
		FinalTotal:  decimal.Zero,
		AuditFields: newAudit(creatorID, now),
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		logger.Error("Failed to save budget", slog.String("error", err.Error()), slog.String("job_id", req.JobID))
		return nil, err
	}

	logger.Info("Budget created", slog.String("budget_id", budget.BudgetID), slog.String("job_id", budget.JobID))
	return &budget, nil
}

func (s *BudgetService) GetBudget(ctx context.Context, budgetID string) (*domain.Budget, error) {
	return s.budgetRepo.FindBudgetByID(ctx, budgetID)
}

// GetBudgetSnapshot loads the budget with its phases and their line items,
// the projection the document export renders.
func (s *BudgetService) GetBudgetSnapshot(ctx context.Context, budgetID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	phases, err := s.budgetRepo.ListPhasesByBudget(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	items, err := s.budgetRepo.ListLineItemsByBudget(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	itemsByPhase := make(map[string][]domain.LineItem, len(phases))
	for _, item := range items {
		itemsByPhase[item.PhaseID] = append(itemsByPhase[item.PhaseID], item)
	}
	for i := range phases {
		phases[i].Items = itemsByPhase[phases[i].PhaseID]
	}
	budget.Phases = phases
	return budget, nil
}

func (s *BudgetService) ListBudgetsByJob(ctx context.Context, jobID string) ([]domain.Budget, error) {
	return s.budgetRepo.ListBudgetsByJob(ctx, jobID)
}

// SetDiscount applies a new discount and recomputes the final total.
// Refused on terminal budgets and for negative discounts.
func (s *BudgetService) SetDiscount(ctx context.Context, budgetID string, discount decimal.Decimal, actorID string) (*domain.Budget, error) {
	if discount.IsNegative() {
		return nil, fmt.Errorf("%w: discount must not be negative", apperrors.ErrValidation)
	}

	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if budget.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: budget %s is %s", apperrors.ErrInvalidState, budgetID, budget.Status)
	}

	budget.Discount = discount
	return s.recalculate(ctx, budget, actorID)
}

// Recalculate recomputes every phase total from its line items, the gross
// total from the phases and the final total from the discount.
func (s *BudgetService) Recalculate(ctx context.Context, budgetID string, actorID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if budget.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: budget %s is %s", apperrors.ErrInvalidState, budgetID, budget.Status)
	}
	return s.recalculate(ctx, budget, actorID)
}

func (s *BudgetService) recalculate(ctx context.Context, budget *domain.Budget, actorID string) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	phases, err := s.budgetRepo.ListPhasesByBudget(ctx, budget.BudgetID)
	if err != nil {
		return nil, err
	}
	items, err := s.budgetRepo.ListLineItemsByBudget(ctx, budget.BudgetID)
	if err != nil {
		return nil, err
	}

	phaseTotals := make(map[string]decimal.Decimal, len(phases))
	for _, p := range phases {
		phaseTotals[p.PhaseID] = decimal.Zero
	}
	for _, item := range items {
		phaseTotals[item.PhaseID] = phaseTotals[item.PhaseID].Add(item.ComputeAmount())
	}

	gross := decimal.Zero
	for _, total := range phaseTotals {
		gross = gross.Add(total)
	}

	final := gross.Sub(budget.Discount)
	if final.IsNegative() {
		final = decimal.Zero
	}

	now := time.Now()
	if err := s.budgetRepo.UpdateBudgetTotals(ctx, budget.BudgetID, budget.Discount, phaseTotals, gross, final, actorID, now); err != nil {
		logger.Error("Failed to persist recalculated totals", slog.String("error", err.Error()), slog.String("budget_id", budget.BudgetID))
		return nil, err
	}

	budget.GrossTotal = gross
	budget.FinalTotal = final
	budget.LastUpdatedAt = now
	budget.LastUpdatedBy = actorID
	for i := range phases {
		phases[i].Total = phaseTotals[phases[i].PhaseID]
	}
	budget.Phases = phases

	logger.Info("Budget recalculated",
		slog.String("budget_id", budget.BudgetID),
		slog.String("gross_total", gross.String()),
		slog.String("final_total", final.String()),
	)
	return budget, nil
}

// Emit recomputes totals and then moves the budget to EMITTED, so the
// totals a client reads on an emitted budget never trail its line items.
// Re-emitting an already emitted budget just refreshes the totals.
func (s *BudgetService) Emit(ctx context.Context, budgetID string, actorID string) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if budget.Status != domain.BudgetEmitted && !budget.Status.CanTransitionTo(domain.BudgetEmitted) {
		return nil, fmt.Errorf("%w: cannot move budget from %s to %s", apperrors.ErrInvalidState, budget.Status, domain.BudgetEmitted)
	}

	budget, err = s.recalculate(ctx, budget, actorID)
	if err != nil {
		return nil, err
	}
	if budget.Status == domain.BudgetEmitted {
		return budget, nil
	}

	now := time.Now()
	if err := s.budgetRepo.UpdateBudgetStatus(ctx, budgetID, domain.BudgetEmitted, nil, actorID, now); err != nil {
		logger.Error("Failed to emit budget", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		return nil, err
	}

	budget.Status = domain.BudgetEmitted
	budget.LastUpdatedAt = now
	budget.LastUpdatedBy = actorID
	logger.Info("Budget emitted", slog.String("budget_id", budgetID), slog.String("final_total", budget.FinalTotal.String()))
	return budget, nil
}

// Approve moves an emitted budget to APPROVED and stamps the approval date.
// At most one budget per job may be approved; the check here is advisory,
// the store's partial unique index is the real guard.
func (s *BudgetService) Approve(ctx context.Context, budgetID string, actorID string) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if !budget.Status.CanTransitionTo(domain.BudgetApproved) {
		return nil, fmt.Errorf("%w: cannot approve budget in status %s", apperrors.ErrInvalidState, budget.Status)
	}

	existing, err := s.budgetRepo.FindApprovedBudgetByJob(ctx, budget.JobID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.BudgetID != budgetID {
		return nil, fmt.Errorf("%w: job %s already has approved budget %s", apperrors.ErrApprovedExists, budget.JobID, existing.BudgetID)
	}

	now := time.Now()
	approvedDate := now
	if err := s.budgetRepo.UpdateBudgetStatus(ctx, budgetID, domain.BudgetApproved, &approvedDate, actorID, now); err != nil {
		logger.Error("Failed to approve budget", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		return nil, err
	}

	budget.Status = domain.BudgetApproved
	budget.ApprovedDate = &approvedDate
	budget.LastUpdatedAt = now
	budget.LastUpdatedBy = actorID
	logger.Info("Budget approved", slog.String("budget_id", budgetID), slog.String("job_id", budget.JobID))
	return budget, nil
}

func (s *BudgetService) Reject(ctx context.Context, budgetID string, actorID string) (*domain.Budget, error) {
	return s.transition(ctx, budgetID, domain.BudgetRejected, actorID)
}

func (s *BudgetService) Cancel(ctx context.Context, budgetID string, actorID string) (*domain.Budget, error) {
	return s.transition(ctx, budgetID, domain.BudgetCancelled, actorID)
}

// Reopen moves an emitted budget back to DRAFT for further editing.
func (s *BudgetService) Reopen(ctx context.Context, budgetID string, actorID string) (*domain.Budget, error) {
	return s.transition(ctx, budgetID, domain.BudgetDraft, actorID)
}

func (s *BudgetService) transition(ctx context.Context, budgetID string, target domain.BudgetStatus, actorID string) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if budget.Status == target {
		return budget, nil
	}
	if !budget.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: cannot move budget from %s to %s", apperrors.ErrInvalidState, budget.Status, target)
	}

	now := time.Now()
	if err := s.budgetRepo.UpdateBudgetStatus(ctx, budgetID, target, nil, actorID, now); err != nil {
		logger.Error("Failed to update budget status", slog.String("error", err.Error()), slog.String("budget_id", budgetID), slog.String("target", string(target)))
		return nil, err
	}

	budget.Status = target
	budget.LastUpdatedAt = now
	budget.LastUpdatedBy = actorID
	logger.Info("Budget status changed", slog.String("budget_id", budgetID), slog.String("status", string(target)))
	return budget, nil
}

// AddPhase appends a phase to a non-terminal budget. The (budget, sequence)
// pair is unique; the store reports a clash as ErrDuplicate.
func (s *BudgetService) AddPhase(ctx context.Context, budgetID string, req dto.CreatePhaseRequest, actorID string) (*domain.Phase, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if budget.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: budget %s is %s", apperrors.ErrInvalidState, budgetID, budget.Status)
	}

	phase := domain.Phase{
		PhaseID:     uuid.NewString(),
		BudgetID:    budgetID,
		Name:        req.Name,
		Sequence:    req.Sequence,
		Status:      domain.PhaseWaiting,
		Total:       decimal.Zero,
		AuditFields: newAudit(actorID, time.Now()),
	}

	if err := s.budgetRepo.SavePhase(ctx, phase); err != nil {
		logger.Error("Failed to save phase", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		return nil, err
	}

	logger.Info("Phase added", slog.String("phase_id", phase.PhaseID), slog.String("budget_id", budgetID))
	return &phase, nil
}

// UpdatePhaseStatus moves a phase through its execution lifecycle. The phase
// lifecycle is independent of the budget status machine, but phases of
// terminal non-approved budgets stay frozen.
func (s *BudgetService) UpdatePhaseStatus(ctx context.Context, phaseID string, status domain.PhaseStatus, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	phase, err := s.budgetRepo.FindPhaseByID(ctx, phaseID)
	if err != nil {
		return err
	}

	budget, err := s.budgetRepo.FindBudgetByID(ctx, phase.BudgetID)
	if err != nil {
		return err
	}
	if budget.Status.IsTerminal() && budget.Status != domain.BudgetApproved {
		return fmt.Errorf("%w: budget %s is %s", apperrors.ErrInvalidState, budget.BudgetID, budget.Status)
	}

	if err := s.budgetRepo.UpdatePhaseStatus(ctx, phaseID, status, actorID, time.Now()); err != nil {
		logger.Error("Failed to update phase status", slog.String("error", err.Error()), slog.String("phase_id", phaseID))
		return err
	}

	logger.Info("Phase status changed", slog.String("phase_id", phaseID), slog.String("status", string(status)))
	return nil
}

// DeletePhase removes a phase and its line items, then recalculates the
// budget. Refused while a receivable references the phase.
func (s *BudgetService) DeletePhase(ctx context.Context, phaseID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	phase, err := s.budgetRepo.FindPhaseByID(ctx, phaseID)
	if err != nil {
		return err
	}

	budget, err := s.budgetRepo.FindBudgetByID(ctx, phase.BudgetID)
	if err != nil {
		return err
	}
	if budget.Status.IsTerminal() {
		return fmt.Errorf("%w: budget %s is %s", apperrors.ErrInvalidState, budget.BudgetID, budget.Status)
	}

	if err := s.budgetRepo.DeletePhase(ctx, phaseID); err != nil {
		logger.Error("Failed to delete phase", slog.String("error", err.Error()), slog.String("phase_id", phaseID))
		return err
	}

	if _, err := s.recalculate(ctx, budget, actorID); err != nil {
		return err
	}

	logger.Info("Phase deleted", slog.String("phase_id", phaseID), slog.String("budget_id", budget.BudgetID))
	return nil
}

// UpsertLineItem creates or updates the (phase, service) line, snapshotting
// the unit price, then recalculates the budget.
func (s *BudgetService) UpsertLineItem(ctx context.Context, phaseID string, req dto.UpsertLineItemRequest, actorID string) (*domain.LineItem, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}
	if req.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit price must not be negative", apperrors.ErrValidation)
	}

	phase, err := s.budgetRepo.FindPhaseByID(ctx, phaseID)
	if err != nil {
		return nil, err
	}

	budget, err := s.budgetRepo.FindBudgetByID(ctx, phase.BudgetID)
	if err != nil {
		return nil, err
	}
	if budget.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: budget %s is %s", apperrors.ErrInvalidState, budget.BudgetID, budget.Status)
	}

	if _, err := s.catalogRepo.FindServiceByID(ctx, req.ServiceID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: service %s", apperrors.ErrNotFound, req.ServiceID)
		}
		return nil, err
	}

	item := domain.LineItem{
		LineItemID:  uuid.NewString(),
		PhaseID:     phaseID,
		ServiceID:   req.ServiceID,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		AuditFields: newAudit(actorID, time.Now()),
	}
	item.Amount = item.ComputeAmount()

	if err := s.budgetRepo.UpsertLineItem(ctx, item); err != nil {
		logger.Error("Failed to upsert line item", slog.String("error", err.Error()), slog.String("phase_id", phaseID))
		return nil, err
	}

	if _, err := s.recalculate(ctx, budget, actorID); err != nil {
		return nil, err
	}

	logger.Info("Line item upserted", slog.String("phase_id", phaseID), slog.String("service_id", req.ServiceID))
	return &item, nil
}

// RemoveLineItem deletes a line from a phase and recalculates the budget.
func (s *BudgetService) RemoveLineItem(ctx context.Context, phaseID string, lineItemID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	phase, err := s.budgetRepo.FindPhaseByID(ctx, phaseID)
	if err != nil {
		return err
	}

	budget, err := s.budgetRepo.FindBudgetByID(ctx, phase.BudgetID)
	if err != nil {
		return err
	}
	if budget.Status.IsTerminal() {
		return fmt.Errorf("%w: budget %s is %s", apperrors.ErrInvalidState, budget.BudgetID, budget.Status)
	}

	if err := s.budgetRepo.DeleteLineItem(ctx, lineItemID); err != nil {
		logger.Error("Failed to delete line item", slog.String("error", err.Error()), slog.String("line_item_id", lineItemID))
		return err
	}

	if _, err := s.recalculate(ctx, budget, actorID); err != nil {
		return err
	}

	logger.Info("Line item removed", slog.String("line_item_id", lineItemID), slog.String("phase_id", phaseID))
	return nil
}

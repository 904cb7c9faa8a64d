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

// WorkLedgerService records daily labor. Every mutation first checks the lock
// predicate: an entry referenced by a paid payment is immutable until the
// payment is reversed.
type WorkLedgerService struct {
	workRepo    portsrepo.WorkEntryRepositoryFacade
	catalogRepo portsrepo.CatalogRepositoryFacade
	calendar    portssvc.Calendar
	surcharges  domain.SurchargePolicy
}

func NewWorkLedgerService(workRepo portsrepo.WorkEntryRepositoryFacade, catalogRepo portsrepo.CatalogRepositoryFacade, calendar portssvc.Calendar, surcharges domain.SurchargePolicy) *WorkLedgerService {
	return &WorkLedgerService{
		workRepo:    workRepo,
		catalogRepo: catalogRepo,
		calendar:    calendar,
		surcharges:  surcharges,
	}
}

var _ portssvc.WorkLedgerSvcFacade = (*WorkLedgerService)(nil)

// RecordWork creates one work entry for (worker, job, date). When the request
// omits the day type the calendar classifies the date. The surcharge
// percentage and final amount are derived here, never taken from the client.
func (s *WorkLedgerService) RecordWork(ctx context.Context, req dto.RecordWorkRequest, actorID string) (*domain.WorkEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entryDate, err := time.Parse(dto.DateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, req.Date)
	}
	if req.BaseAmount.IsNegative() {
		return nil, fmt.Errorf("%w: base amount must not be negative", apperrors.ErrValidation)
	}
	if req.Discount.IsNegative() {
		return nil, fmt.Errorf("%w: discount must not be negative", apperrors.ErrValidation)
	}

	worker, err := s.catalogRepo.FindWorkerByID(ctx, req.WorkerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: worker %s", apperrors.ErrNotFound, req.WorkerID)
		}
		return nil, err
	}
	if !worker.IsActive {
		return nil, fmt.Errorf("%w: worker %s is inactive", apperrors.ErrValidation, req.WorkerID)
	}

	job, err := s.catalogRepo.FindJobByID(ctx, req.JobID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: job %s", apperrors.ErrNotFound, req.JobID)
		}
		return nil, err
	}
	if job.Status == domain.JobArchived {
		return nil, fmt.Errorf("%w: job %s is archived", apperrors.ErrInvalidState, req.JobID)
	}

	dayType := s.calendar.Classify(entryDate)
	if req.DayType != nil {
		dayType = *req.DayType
	}

	surchargePct := s.surcharges.SurchargeFor(dayType)
	entry := domain.WorkEntry{
		WorkEntryID:  uuid.NewString(),
		JobID:        req.JobID,
		WorkerID:     req.WorkerID,
		PhaseID:      req.PhaseID,
		BudgetID:     req.BudgetID,
		EntryDate:    entryDate,
		DayType:      dayType,
		BaseAmount:   req.BaseAmount,
		SurchargePct: surchargePct,
		Discount:     req.Discount,
		FinalAmount:  domain.ComputeFinalAmount(req.BaseAmount, surchargePct, req.Discount),
		AuditFields:  newAudit(actorID, time.Now()),
	}

	if err := s.workRepo.SaveWorkEntry(ctx, entry); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save work entry", slog.String("error", err.Error()), slog.String("worker_id", req.WorkerID), slog.String("job_id", req.JobID))
		}
		return nil, err
	}

	logger.Info("Work entry recorded",
		slog.String("work_entry_id", entry.WorkEntryID),
		slog.String("worker_id", entry.WorkerID),
		slog.String("day_type", string(entry.DayType)),
		slog.String("final_amount", entry.FinalAmount.String()),
	)
	return &entry, nil
}

// UpdateWork edits an unlocked entry. Changing the day type re-resolves the
// surcharge; the final amount is always recomputed.
func (s *WorkLedgerService) UpdateWork(ctx context.Context, workEntryID string, req dto.UpdateWorkRequest, actorID string) (*domain.WorkEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.workRepo.FindWorkEntryByID(ctx, workEntryID)
	if err != nil {
		return nil, err
	}

	locked, err := s.workRepo.IsLocked(ctx, workEntryID)
	if err != nil {
		return nil, err
	}
	if locked {
		return nil, fmt.Errorf("%w: work entry %s belongs to a paid payment", apperrors.ErrLocked, workEntryID)
	}

	if req.DayType != nil {
		entry.DayType = *req.DayType
		entry.SurchargePct = s.surcharges.SurchargeFor(entry.DayType)
	}
	if req.BaseAmount != nil {
		if req.BaseAmount.IsNegative() {
			return nil, fmt.Errorf("%w: base amount must not be negative", apperrors.ErrValidation)
		}
		entry.BaseAmount = *req.BaseAmount
	}
	if req.Discount != nil {
		if req.Discount.IsNegative() {
			return nil, fmt.Errorf("%w: discount must not be negative", apperrors.ErrValidation)
		}
		entry.Discount = *req.Discount
	}
	if req.PhaseID != nil {
		entry.PhaseID = req.PhaseID
	}

	entry.FinalAmount = domain.ComputeFinalAmount(entry.BaseAmount, entry.SurchargePct, entry.Discount)
	entry.LastUpdatedAt = time.Now()
	entry.LastUpdatedBy = actorID

	if err := s.workRepo.UpdateWorkEntry(ctx, *entry); err != nil {
		logger.Error("Failed to update work entry", slog.String("error", err.Error()), slog.String("work_entry_id", workEntryID))
		return nil, err
	}

	logger.Info("Work entry updated", slog.String("work_entry_id", workEntryID), slog.String("final_amount", entry.FinalAmount.String()))
	return entry, nil
}

// DeleteWork removes an unlocked entry. Lines referencing it in OPEN payments
// are pruned in the same transaction; the next payroll run (or the total
// refresh it performs) restores consistency of those payment totals.
func (s *WorkLedgerService) DeleteWork(ctx context.Context, workEntryID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.workRepo.FindWorkEntryByID(ctx, workEntryID); err != nil {
		return err
	}

	locked, err := s.workRepo.IsLocked(ctx, workEntryID)
	if err != nil {
		return err
	}
	if locked {
		return fmt.Errorf("%w: work entry %s belongs to a paid payment", apperrors.ErrLocked, workEntryID)
	}

	if err := s.workRepo.DeleteWorkEntry(ctx, workEntryID); err != nil {
		logger.Error("Failed to delete work entry", slog.String("error", err.Error()), slog.String("work_entry_id", workEntryID))
		return err
	}

	logger.Info("Work entry deleted", slog.String("work_entry_id", workEntryID), slog.String("actor", actorID))
	return nil
}

// GetWorkEntry returns the entry along with its lock state.
func (s *WorkLedgerService) GetWorkEntry(ctx context.Context, workEntryID string) (*domain.WorkEntry, bool, error) {
	entry, err := s.workRepo.FindWorkEntryByID(ctx, workEntryID)
	if err != nil {
		return nil, false, err
	}
	locked, err := s.workRepo.IsLocked(ctx, workEntryID)
	if err != nil {
		return nil, false, err
	}
	return entry, locked, nil
}

func (s *WorkLedgerService) ListWorkEntriesByJob(ctx context.Context, jobID string, limit int, nextToken *string) ([]domain.WorkEntry, *string, error) {
	return s.workRepo.ListWorkEntriesByJob(ctx, jobID, normalizeLimit(limit), nextToken)
}

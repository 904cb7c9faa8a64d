package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	portsrepo "github.com/sepolpinturas/obras_backend/internal/core/ports/repositories"
	portssvc "github.com/sepolpinturas/obras_backend/internal/core/ports/services"
	"github.com/sepolpinturas/obras_backend/internal/dto"
	"github.com/sepolpinturas/obras_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// PayrollService aggregates the work ledger into payments once per week.
//
// The week is anchored on Monday. Weekday labor (NORMAL and HOLIDAY entries
// in Monday through Friday) rolls into one WEEKLY payment per worker covering
// the whole span. Weekend labor (SATURDAY and SUNDAY entries anywhere in the
// week) becomes one EXTRA payment per worker per day.
//
// The generator upserts against the payment natural key and never touches
// PAID payments, so it can run any number of times for the same week.
type PayrollService struct {
	paymentRepo portsrepo.PaymentRepositoryFacade
	workRepo    portsrepo.WorkEntryRepositoryFacade
	calendar    portssvc.Calendar
}

func NewPayrollService(paymentRepo portsrepo.PaymentRepositoryFacade, workRepo portsrepo.WorkEntryRepositoryFacade, calendar portssvc.Calendar) *PayrollService {
	return &PayrollService{paymentRepo: paymentRepo, workRepo: workRepo, calendar: calendar}
}

var _ portssvc.PayrollSvcFacade = (*PayrollService)(nil)

func (s *PayrollService) GenerateWeek(ctx context.Context, weekDate time.Time, actorID string) (*dto.PayrollRunResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	weekStart := s.calendar.WeekStart(weekDate)
	weekdayEnd := weekStart.AddDate(0, 0, 4)
	weekEnd := weekStart.AddDate(0, 0, 6)
	now := time.Now()

	result := &dto.PayrollRunResult{WeekStart: weekStart.Format(dto.DateLayout)}

	weekdayEntries, err := s.workRepo.ListWorkEntriesInRange(ctx, weekStart, weekdayEnd, []domain.DayType{domain.DayNormal, domain.DayHoliday})
	if err != nil {
		logger.Error("Failed to list weekday entries", slog.String("error", err.Error()))
		return nil, err
	}

	byWorker := make(map[string][]domain.WorkEntry)
	for _, e := range weekdayEntries {
		byWorker[e.WorkerID] = append(byWorker[e.WorkerID], e)
	}
	for _, workerID := range sortedKeys(byWorker) {
		changed, skippedID, err := s.upsertPayment(ctx, workerID, domain.PaymentWeekly, weekStart, weekdayEnd, byWorker[workerID], actorID, now)
		if err != nil {
			return nil, err
		}
		if changed {
			result.WeeklyUpserted++
		} else {
			result.SkippedPaid++
			result.SkippedPaymentIDs = append(result.SkippedPaymentIDs, skippedID)
		}
	}

	weekendEntries, err := s.workRepo.ListWorkEntriesInRange(ctx, weekStart, weekEnd, []domain.DayType{domain.DaySaturday, domain.DaySunday})
	if err != nil {
		logger.Error("Failed to list weekend entries", slog.String("error", err.Error()))
		return nil, err
	}

	type extraKey struct {
		workerID string
		date     string
	}
	byWorkerDay := make(map[extraKey][]domain.WorkEntry)
	var extraKeys []extraKey
	for _, e := range weekendEntries {
		k := extraKey{workerID: e.WorkerID, date: e.EntryDate.Format(dto.DateLayout)}
		if _, seen := byWorkerDay[k]; !seen {
			extraKeys = append(extraKeys, k)
		}
		byWorkerDay[k] = append(byWorkerDay[k], e)
	}
	sort.Slice(extraKeys, func(i, j int) bool {
		if extraKeys[i].workerID != extraKeys[j].workerID {
			return extraKeys[i].workerID < extraKeys[j].workerID
		}
		return extraKeys[i].date < extraKeys[j].date
	})
	for _, k := range extraKeys {
		entries := byWorkerDay[k]
		day := entries[0].EntryDate
		changed, skippedID, err := s.upsertPayment(ctx, k.workerID, domain.PaymentExtra, day, day, entries, actorID, now)
		if err != nil {
			return nil, err
		}
		if changed {
			result.ExtraUpserted++
		} else {
			result.SkippedPaid++
			result.SkippedPaymentIDs = append(result.SkippedPaymentIDs, skippedID)
		}
	}

	// Entries deleted since the last run may have left pruned lines behind.
	if err := s.paymentRepo.RefreshOpenPaymentTotals(ctx, weekStart, weekEnd, actorID, now); err != nil {
		logger.Error("Failed to refresh open payment totals", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Payroll week generated",
		slog.String("week_start", result.WeekStart),
		slog.Int("weekly_upserted", result.WeeklyUpserted),
		slog.Int("extra_upserted", result.ExtraUpserted),
		slog.Int("skipped_paid", result.SkippedPaid),
	)
	return result, nil
}

// upsertPayment writes one payment for the key. When the stored payment is
// already PAID the upsert leaves it frozen; the ID of the frozen payment is
// returned so the run result can name what was skipped.
func (s *PayrollService) upsertPayment(ctx context.Context, workerID string, kind domain.PaymentKind, periodStart, periodEnd time.Time, entries []domain.WorkEntry, actorID string, now time.Time) (bool, string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	total := decimal.Zero
	lines := make([]domain.PaymentLine, 0, len(entries))
	for _, e := range entries {
		total = total.Add(e.FinalAmount)
		lines = append(lines, domain.PaymentLine{
			PaymentLineID: uuid.NewString(),
			WorkEntryID:   e.WorkEntryID,
			Amount:        e.FinalAmount,
			AuditFields:   newAudit(actorID, now),
		})
	}

	payment := domain.Payment{
		PaymentID:   uuid.NewString(),
		WorkerID:    workerID,
		Kind:        kind,
		Status:      domain.PaymentOpen,
		Total:       total,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		AuditFields: newAudit(actorID, now),
	}

	changed, err := s.paymentRepo.UpsertPaymentWithLines(ctx, payment, lines)
	if err != nil {
		logger.Error("Failed to upsert payment",
			slog.String("error", err.Error()),
			slog.String("worker_id", workerID),
			slog.String("kind", string(kind)),
			slog.String("period_start", periodStart.Format(dto.DateLayout)),
		)
		return false, "", err
	}
	if !changed {
		frozen, err := s.paymentRepo.FindPaymentByKey(ctx, workerID, kind, periodStart, periodEnd)
		if err != nil {
			logger.Error("Failed to load skipped payment",
				slog.String("error", err.Error()),
				slog.String("worker_id", workerID),
				slog.String("kind", string(kind)),
			)
			return false, "", err
		}
		return false, frozen.PaymentID, nil
	}
	return true, "", nil
}

func sortedKeys(m map[string][]domain.WorkEntry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

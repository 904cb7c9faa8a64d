package repositories

import (
	"context"
	"time"

	"github.com/sepolpinturas/obras_backend/internal/core/domain"
)

// PaymentRepositoryFacade persists payments, their lines and the audit trail.
type PaymentRepositoryFacade interface {
	// UpsertPaymentWithLines inserts or updates the payment identified by
	// (worker, kind, period start, period end) and replaces its lines with the
	// given set, all in one transaction. The update half only touches OPEN
	// payments, so a concurrently paid payment is left untouched; the method
	// reports whether anything changed.
	UpsertPaymentWithLines(ctx context.Context, payment domain.Payment, lines []domain.PaymentLine) (changed bool, err error)

	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
	FindPaymentByKey(ctx context.Context, workerID string, kind domain.PaymentKind, periodStart, periodEnd time.Time) (*domain.Payment, error)
	FindLinesByPaymentID(ctx context.Context, paymentID string) ([]domain.PaymentLine, error)
	ListPaymentsByWorker(ctx context.Context, workerID string, limit int, nextToken *string) ([]domain.Payment, *string, error)
	ListPaymentsInPeriod(ctx context.Context, periodStart, periodEnd time.Time) ([]domain.Payment, error)

	// MarkPaid transitions OPEN → PAID and writes the audit record atomically.
	// An already paid payment yields apperrors.ErrAlreadyPaid.
	MarkPaid(ctx context.Context, paymentID string, actor string, paidAt time.Time) error

	// ReversePayment transitions PAID → OPEN, clears the paid stamp and writes
	// the audit record with the mandatory reason. An open payment yields
	// apperrors.ErrNotPaid.
	ReversePayment(ctx context.Context, paymentID string, actor string, reason string, reversedAt time.Time) error

	ListAuditByPaymentID(ctx context.Context, paymentID string) ([]domain.PaymentAudit, error)

	// RefreshOpenPaymentTotals recomputes the total of every OPEN payment whose
	// period overlaps [periodStart, periodEnd] from its surviving lines. Keeps
	// totals consistent after work entry deletions pruned lines.
	RefreshOpenPaymentTotals(ctx context.Context, periodStart, periodEnd time.Time, updatedBy string, updatedAt time.Time) error
}

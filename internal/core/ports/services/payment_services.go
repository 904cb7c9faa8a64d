package services

import (
	"context"
	"time"

	"github.com/sepolpinturas/obras_backend/internal/core/domain"
)

// PaymentSvcFacade drives the payment state machine: OPEN → PAID via
// MarkPaid, PAID → OPEN only via Reverse, with an audit record per transition.
type PaymentSvcFacade interface {
	GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error)
	ListPaymentsByWorker(ctx context.Context, workerID string, limit int, nextToken *string) ([]domain.Payment, *string, error)
	ListPaymentsInPeriod(ctx context.Context, periodStart, periodEnd time.Time) ([]domain.Payment, error)

	// MarkPaid pays the payment; the paid stamp locks every referenced work entry.
	MarkPaid(ctx context.Context, paymentID string, actorID string, paidDate time.Time) (*domain.Payment, error)

	// Reverse ("estorno") reopens a paid payment. The reason is mandatory.
	Reverse(ctx context.Context, paymentID string, actorID string, reason string) (*domain.Payment, error)

	ListAudit(ctx context.Context, paymentID string) ([]domain.PaymentAudit, error)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sepolpinturas/obras_backend/internal/apperrors"
	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	portsrepo "github.com/sepolpinturas/obras_backend/internal/core/ports/repositories"
	portssvc "github.com/sepolpinturas/obras_backend/internal/core/ports/services"
	"github.com/sepolpinturas/obras_backend/internal/middleware"
)

// PaymentService drives the payment state machine. Paying locks every work
// entry the payment references; reversal is the only way back and always
// leaves an audit record with a reason.
type PaymentService struct {
	paymentRepo portsrepo.PaymentRepositoryFacade
}

func NewPaymentService(paymentRepo portsrepo.PaymentRepositoryFacade) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo}
}

var _ portssvc.PaymentSvcFacade = (*PaymentService)(nil)

// GetPayment returns one payment; the repository find already attaches lines.
func (s *PaymentService) GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return s.paymentRepo.FindPaymentByID(ctx, paymentID)
}

func (s *PaymentService) ListPaymentsByWorker(ctx context.Context, workerID string, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	return s.paymentRepo.ListPaymentsByWorker(ctx, workerID, normalizeLimit(limit), nextToken)
}

func (s *PaymentService) ListPaymentsInPeriod(ctx context.Context, periodStart, periodEnd time.Time) ([]domain.Payment, error) {
	if periodEnd.Before(periodStart) {
		return nil, fmt.Errorf("%w: period end before period start", apperrors.ErrValidation)
	}
	return s.paymentRepo.ListPaymentsInPeriod(ctx, periodStart, periodEnd)
}

func (s *PaymentService) MarkPaid(ctx context.Context, paymentID string, actorID string, paidDate time.Time) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.paymentRepo.MarkPaid(ctx, paymentID, actorID, paidDate); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrAlreadyPaid) {
			logger.Error("Failed to mark payment paid", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		}
		return nil, err
	}

	logger.Info("Payment marked paid", slog.String("payment_id", paymentID), slog.String("actor", actorID))
	return s.GetPayment(ctx, paymentID)
}

func (s *PaymentService) Reverse(ctx context.Context, paymentID string, actorID string, reason string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: reversal reason is required", apperrors.ErrValidation)
	}

	if err := s.paymentRepo.ReversePayment(ctx, paymentID, actorID, reason, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrNotPaid) {
			logger.Error("Failed to reverse payment", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		}
		return nil, err
	}

	logger.Info("Payment reversed", slog.String("payment_id", paymentID), slog.String("actor", actorID), slog.String("reason", reason))
	return s.GetPayment(ctx, paymentID)
}

func (s *PaymentService) ListAudit(ctx context.Context, paymentID string) ([]domain.PaymentAudit, error) {
	if _, err := s.paymentRepo.FindPaymentByID(ctx, paymentID); err != nil {
		return nil, err
	}
	return s.paymentRepo.ListAuditByPaymentID(ctx, paymentID)
}

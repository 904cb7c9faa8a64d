package dto

import (
	"time"

	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GeneratePayrollRequest triggers the weekly payroll run. Any date inside the
// target week is accepted; the generator normalizes it to Monday.
type GeneratePayrollRequest struct {
	WeekDate string `json:"weekDate" binding:"required,dateonly"`
}

// PayrollRunResult summarizes one generator invocation. Re-running is safe:
// OPEN payments are recomputed in place and PAID payments are skipped.
type PayrollRunResult struct {
	WeekStart         string   `json:"weekStart"`
	WeeklyUpserted    int      `json:"weeklyUpserted"`
	ExtraUpserted     int      `json:"extraUpserted"`
	SkippedPaid       int      `json:"skippedPaid"`
	SkippedPaymentIDs []string `json:"skippedPaymentIds,omitempty"`
}

// MarkPaidRequest carries the pay action parameters. The actor comes from the
// request context, not the body.
type MarkPaidRequest struct {
	PaidDate string `json:"paidDate" binding:"required,dateonly"`
}

// ReversePaymentRequest carries the mandatory reversal reason.
type ReversePaymentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// PaymentLineResponse defines the data returned for a payment line.
type PaymentLineResponse struct {
	PaymentLineID string          `json:"paymentLineID"`
	WorkEntryID   string          `json:"workEntryID"`
	Amount        decimal.Decimal `json:"amount"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID   string                `json:"paymentID"`
	WorkerID    string                `json:"workerID"`
	Kind        domain.PaymentKind    `json:"kind"`
	Status      domain.PaymentStatus  `json:"status"`
	Total       decimal.Decimal       `json:"total"`
	PeriodStart string                `json:"periodStart"`
	PeriodEnd   string                `json:"periodEnd"`
	PaidAt      *time.Time            `json:"paidAt,omitempty"`
	PaidBy      *string               `json:"paidBy,omitempty"`
	Lines       []PaymentLineResponse `json:"lines,omitempty"`
}

// ListPaymentsResponse is a paginated list of payments.
type ListPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// PaymentAuditResponse defines one audit trail record.
type PaymentAuditResponse struct {
	AuditID   string    `json:"auditID"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToPaymentResponse converts a domain.Payment to its DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	resp := PaymentResponse{
		PaymentID:   p.PaymentID,
		WorkerID:    p.WorkerID,
		Kind:        p.Kind,
		Status:      p.Status,
		Total:       p.Total,
		PeriodStart: p.PeriodStart.Format(DateLayout),
		PeriodEnd:   p.PeriodEnd.Format(DateLayout),
		PaidAt:      p.PaidAt,
		PaidBy:      p.PaidBy,
	}
	if len(p.Lines) > 0 {
		resp.Lines = make([]PaymentLineResponse, len(p.Lines))
		for i, l := range p.Lines {
			resp.Lines[i] = PaymentLineResponse{
				PaymentLineID: l.PaymentLineID,
				WorkEntryID:   l.WorkEntryID,
				Amount:        l.Amount,
			}
		}
	}
	return resp
}

// ToPaymentAuditResponses converts audit records to DTOs.
func ToPaymentAuditResponses(audits []domain.PaymentAudit) []PaymentAuditResponse {
	responses := make([]PaymentAuditResponse, len(audits))
	for i, a := range audits {
		responses[i] = PaymentAuditResponse{
			AuditID:   a.AuditID,
			Action:    string(a.Action),
			Actor:     a.Actor,
			Reason:    a.Reason,
			CreatedAt: a.CreatedAt,
		}
	}
	return responses
}

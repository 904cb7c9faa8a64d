package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentKind distinguishes the regular weekly payroll from single-day
// weekend/holiday extras.
type PaymentKind string

const (
	PaymentWeekly PaymentKind = "WEEKLY"
	PaymentExtra  PaymentKind = "EXTRA"
)

// PaymentStatus indicates the state of a payment.
type PaymentStatus string

const (
	PaymentOpen PaymentStatus = "OPEN"
	PaymentPaid PaymentStatus = "PAID"
)

// Payment ("pagamento") aggregates work entries owed to one worker for a
// reference period. One payment may exist per (worker, kind, period start,
// period end); the payroll generator upserts against that key.
type Payment struct {
	PaymentID   string          `json:"paymentID"`
	WorkerID    string          `json:"workerID"`
	Kind        PaymentKind     `json:"kind"`
	Status      PaymentStatus   `json:"status"`
	Total       decimal.Decimal `json:"total"`
	PeriodStart time.Time       `json:"periodStart"`
	PeriodEnd   time.Time       `json:"periodEnd"`
	PaidAt      *time.Time      `json:"paidAt,omitempty"`
	PaidBy      *string         `json:"paidBy,omitempty"`
	Lines       []PaymentLine   `json:"lines,omitempty"`
	AuditFields
}

// PaymentLine ties one work entry into a payment. A work entry appears in at
// most one payment at a time.
type PaymentLine struct {
	PaymentLineID string          `json:"paymentLineID"`
	PaymentID     string          `json:"paymentID"`
	WorkEntryID   string          `json:"workEntryID"`
	Amount        decimal.Decimal `json:"amount"` // work entry final amount at aggregation time
	AuditFields
}

// PaymentAuditAction names an audited payment transition.
type PaymentAuditAction string

const (
	PaymentActionPaid     PaymentAuditAction = "PAID"
	PaymentActionReversed PaymentAuditAction = "REVERSED"
)

// PaymentAudit records pay and reversal ("estorno") actions on a payment.
// Reversals always carry a reason.
type PaymentAudit struct {
	AuditID   string             `json:"auditID"`
	PaymentID string             `json:"paymentID"`
	Action    PaymentAuditAction `json:"action"`
	Actor     string             `json:"actor"`
	Reason    string             `json:"reason,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}

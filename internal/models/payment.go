package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the payments table row; (worker_id, kind, period_start,
// period_end) is unique — the payroll generator's idempotent upsert key.
type Payment struct {
	PaymentID   string          `json:"paymentID"`
	WorkerID    string          `json:"workerID"`
	Kind        string          `json:"kind"`
	Status      string          `json:"status"`
	Total       decimal.Decimal `json:"total"`
	PeriodStart time.Time       `json:"periodStart"`
	PeriodEnd   time.Time       `json:"periodEnd"`
	PaidAt      *time.Time      `json:"paidAt"`
	PaidBy      *string         `json:"paidBy"`
	AuditFields
}

// PaymentLine is the payment_lines table row; work_entry_id is unique so one
// entry sits in at most one payment at a time.
type PaymentLine struct {
	PaymentLineID string          `json:"paymentLineID"`
	PaymentID     string          `json:"paymentID"`
	WorkEntryID   string          `json:"workEntryID"`
	Amount        decimal.Decimal `json:"amount"`
	AuditFields
}

// PaymentAudit is the payment_audit table row, append only.
type PaymentAudit struct {
	AuditID   string    `json:"auditID"`
	PaymentID string    `json:"paymentID"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

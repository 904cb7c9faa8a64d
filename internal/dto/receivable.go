package dto

import (
	"time"

	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertReceivableRequest creates or updates the receivable for a phase.
type UpsertReceivableRequest struct {
	BaseValue decimal.Decimal `json:"baseValue" binding:"required"`
	Surcharge decimal.Decimal `json:"surcharge"`
	DueDate   string          `json:"dueDate" binding:"required,dateonly"`
}

// ReceivableResponse defines the data returned for a receivable. Status is
// the effective status: OPEN past due reads as OVERDUE.
type ReceivableResponse struct {
	ReceivableID string                  `json:"receivableID"`
	PhaseID      string                  `json:"phaseID"`
	Status       domain.ReceivableStatus `json:"status"`
	BaseValue    decimal.Decimal         `json:"baseValue"`
	Surcharge    decimal.Decimal         `json:"surcharge"`
	DueDate      string                  `json:"dueDate"`
	PaidAt       *time.Time              `json:"paidAt,omitempty"`
}

// ToReceivableResponse converts a domain.Receivable to its DTO, deriving the
// effective status as of today.
func ToReceivableResponse(r *domain.Receivable, today time.Time) ReceivableResponse {
	return ReceivableResponse{
		ReceivableID: r.ReceivableID,
		PhaseID:      r.PhaseID,
		Status:       r.EffectiveStatus(today),
		BaseValue:    r.BaseValue,
		Surcharge:    r.Surcharge,
		DueDate:      r.DueDate.Format(DateLayout),
		PaidAt:       r.PaidAt,
	}
}

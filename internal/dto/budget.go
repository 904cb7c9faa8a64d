package dto

import (
	"time"

	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for date-only fields (entry dates, due dates,
// week starts).
const DateLayout = "2006-01-02"

// CreateBudgetRequest defines the data needed to create a new budget in DRAFT.
type CreateBudgetRequest struct {
	JobID string `json:"jobID" binding:"required"`
	Title string `json:"title" binding:"required"`
}

// SetDiscountRequest carries a new discount amount for a budget.
type SetDiscountRequest struct {
	Discount decimal.Decimal `json:"discount" binding:"required"`
}

// CreatePhaseRequest defines the data needed to add a phase to a budget.
type CreatePhaseRequest struct {
	Name     string `json:"name" binding:"required"`
	Sequence int    `json:"sequence" binding:"required,min=1"`
}

// UpdatePhaseStatusRequest moves a phase through its execution lifecycle.
type UpdatePhaseStatusRequest struct {
	Status domain.PhaseStatus `json:"status" binding:"required,oneof=WAITING STARTED PAUSED DONE CANCELLED"`
}

// UpsertLineItemRequest creates or updates the (phase, service) line item.
type UpsertLineItemRequest struct {
	ServiceID string          `json:"serviceID" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unitPrice" binding:"required"`
}

// LineItemResponse defines the data returned for a line item.
type LineItemResponse struct {
	LineItemID string          `json:"lineItemID"`
	PhaseID    string          `json:"phaseID"`
	ServiceID  string          `json:"serviceID"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Amount     decimal.Decimal `json:"amount"`
}

// PhaseResponse defines the data returned for a phase.
type PhaseResponse struct {
	PhaseID  string             `json:"phaseID"`
	BudgetID string             `json:"budgetID"`
	Name     string             `json:"name"`
	Sequence int                `json:"sequence"`
	Status   domain.PhaseStatus `json:"status"`
	Total    decimal.Decimal    `json:"total"`
	Items    []LineItemResponse `json:"items,omitempty"`
}

// BudgetResponse defines the data returned for a budget. Phases are included
// when the snapshot projection was requested.
type BudgetResponse struct {
	BudgetID     string              `json:"budgetID"`
	JobID        string              `json:"jobID"`
	Title        string              `json:"title"`
	Status       domain.BudgetStatus `json:"status"`
	GrossTotal   decimal.Decimal     `json:"grossTotal"`
	Discount     decimal.Decimal     `json:"discount"`
	FinalTotal   decimal.Decimal     `json:"finalTotal"`
	ApprovedDate *time.Time          `json:"approvedDate,omitempty"`
	Phases       []PhaseResponse     `json:"phases,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	CreatedBy    string              `json:"createdBy"`
}

// ToLineItemResponse converts a domain.LineItem to its DTO.
func ToLineItemResponse(li *domain.LineItem) LineItemResponse {
	return LineItemResponse{
		LineItemID: li.LineItemID,
		PhaseID:    li.PhaseID,
		ServiceID:  li.ServiceID,
		Quantity:   li.Quantity,
		UnitPrice:  li.UnitPrice,
		Amount:     li.Amount,
	}
}

// ToPhaseResponse converts a domain.Phase to its DTO.
func ToPhaseResponse(p *domain.Phase) PhaseResponse {
	resp := PhaseResponse{
		PhaseID:  p.PhaseID,
		BudgetID: p.BudgetID,
		Name:     p.Name,
		Sequence: p.Sequence,
		Status:   p.Status,
		Total:    p.Total,
	}
	if len(p.Items) > 0 {
		resp.Items = make([]LineItemResponse, len(p.Items))
		for i := range p.Items {
			resp.Items[i] = ToLineItemResponse(&p.Items[i])
		}
	}
	return resp
}

// ToBudgetResponse converts a domain.Budget to its DTO.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	resp := BudgetResponse{
		BudgetID:     b.BudgetID,
		JobID:        b.JobID,
		Title:        b.Title,
		Status:       b.Status,
		GrossTotal:   b.GrossTotal,
		Discount:     b.Discount,
		FinalTotal:   b.FinalTotal,
		ApprovedDate: b.ApprovedDate,
		CreatedAt:    b.CreatedAt,
		CreatedBy:    b.CreatedBy,
	}
	if len(b.Phases) > 0 {
		resp.Phases = make([]PhaseResponse, len(b.Phases))
		for i := range b.Phases {
			resp.Phases[i] = ToPhaseResponse(&b.Phases[i])
		}
	}
	return resp
}

package dto

import (
	"time"

	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordWorkRequest defines the data needed to record one day of labor.
// DayType is optional; when omitted the calendar classifies the date.
type RecordWorkRequest struct {
	JobID      string          `json:"jobID" binding:"required"`
	WorkerID   string          `json:"workerID" binding:"required"`
	Date       string          `json:"date" binding:"required,dateonly"`
	DayType    *domain.DayType `json:"dayType" binding:"omitempty,oneof=NORMAL HOLIDAY SATURDAY SUNDAY"`
	BaseAmount decimal.Decimal `json:"baseAmount" binding:"required"`
	Discount   decimal.Decimal `json:"discount"`
	PhaseID    *string         `json:"phaseID"`
	BudgetID   *string         `json:"budgetID"`
}

// UpdateWorkRequest defines the fields that may change on an unlocked entry.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateWorkRequest struct {
	DayType    *domain.DayType  `json:"dayType" binding:"omitempty,oneof=NORMAL HOLIDAY SATURDAY SUNDAY"`
	BaseAmount *decimal.Decimal `json:"baseAmount"`
	Discount   *decimal.Decimal `json:"discount"`
	PhaseID    *string          `json:"phaseID"`
}

// WorkEntryResponse defines the data returned for a work entry.
type WorkEntryResponse struct {
	WorkEntryID  string          `json:"workEntryID"`
	JobID        string          `json:"jobID"`
	WorkerID     string          `json:"workerID"`
	PhaseID      *string         `json:"phaseID,omitempty"`
	BudgetID     *string         `json:"budgetID,omitempty"`
	Date         string          `json:"date"`
	DayType      domain.DayType  `json:"dayType"`
	BaseAmount   decimal.Decimal `json:"baseAmount"`
	SurchargePct decimal.Decimal `json:"surchargePct"`
	Discount     decimal.Decimal `json:"discount"`
	FinalAmount  decimal.Decimal `json:"finalAmount"`
	Locked       bool            `json:"locked"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ListWorkEntriesResponse is a paginated list of work entries.
type ListWorkEntriesResponse struct {
	Entries   []WorkEntryResponse `json:"entries"`
	NextToken *string             `json:"nextToken,omitempty"`
}

// ToWorkEntryResponse converts a domain.WorkEntry to its DTO.
func ToWorkEntryResponse(e *domain.WorkEntry, locked bool) WorkEntryResponse {
	return WorkEntryResponse{
		WorkEntryID:  e.WorkEntryID,
		JobID:        e.JobID,
		WorkerID:     e.WorkerID,
		PhaseID:      e.PhaseID,
		BudgetID:     e.BudgetID,
		Date:         e.EntryDate.Format(DateLayout),
		DayType:      e.DayType,
		BaseAmount:   e.BaseAmount,
		SurchargePct: e.SurchargePct,
		Discount:     e.Discount,
		FinalAmount:  e.FinalAmount,
		Locked:       locked,
		CreatedAt:    e.CreatedAt,
	}
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkEntry is the work_entries table row; (worker_id, job_id, entry_date)
// is unique.
type WorkEntry struct {
	WorkEntryID  string          `json:"workEntryID"`
	JobID        string          `json:"jobID"`
	WorkerID     string          `json:"workerID"`
	PhaseID      *string         `json:"phaseID"`
	BudgetID     *string         `json:"budgetID"`
	EntryDate    time.Time       `json:"entryDate"`
	DayType      string          `json:"dayType"`
	BaseAmount   decimal.Decimal `json:"baseAmount"`
	SurchargePct decimal.Decimal `json:"surchargePct"`
	Discount     decimal.Decimal `json:"discount"`
	FinalAmount  decimal.Decimal `json:"finalAmount"`
	AuditFields
}

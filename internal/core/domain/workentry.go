package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DayType classifies the calendar day a work entry was performed on.
type DayType string

const (
	DayNormal   DayType = "NORMAL"
	DayHoliday  DayType = "HOLIDAY"
	DaySaturday DayType = "SATURDAY"
	DaySunday   DayType = "SUNDAY"
)

// SurchargePolicy maps a day type to a surcharge percentage (e.g. 100 for +100%).
// Percentages come from configuration, not code.
type SurchargePolicy map[DayType]decimal.Decimal

// SurchargeFor returns the configured percentage for the day type, zero when absent.
func (p SurchargePolicy) SurchargeFor(dt DayType) decimal.Decimal {
	if pct, ok := p[dt]; ok {
		return pct
	}
	return decimal.Zero
}

// WorkEntry ("apontamento") is one worker's recorded labor for one job on one
// day. Exactly one entry may exist per (worker, job, date); the store enforces
// this with a unique constraint.
type WorkEntry struct {
	WorkEntryID  string          `json:"workEntryID"`
	JobID        string          `json:"jobID"`
	WorkerID     string          `json:"workerID"`
	PhaseID      *string         `json:"phaseID,omitempty"`
	BudgetID     *string         `json:"budgetID,omitempty"`
	EntryDate    time.Time       `json:"entryDate"`
	DayType      DayType         `json:"dayType"`
	BaseAmount   decimal.Decimal `json:"baseAmount"`
	SurchargePct decimal.Decimal `json:"surchargePct"`
	Discount     decimal.Decimal `json:"discount"`
	FinalAmount  decimal.Decimal `json:"finalAmount"` // base×(1+surcharge) − discount, floor 0
	AuditFields
}

// ComputeFinalAmount applies the surcharge percentage and discount:
// base × (1 + pct/100) − discount, floored at zero.
func ComputeFinalAmount(base, surchargePct, discount decimal.Decimal) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	final := base.Mul(hundred.Add(surchargePct)).Div(hundred).Sub(discount)
	if final.IsNegative() {
		return decimal.Zero
	}
	return final
}

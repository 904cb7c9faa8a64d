package domain

import "github.com/shopspring/decimal"

// Client is a customer that contracts painting jobs.
type Client struct {
	ClientID string `json:"clientID"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	IsActive bool   `json:"isActive"`
	AuditFields
}

// Worker is a painting professional whose labor is recorded in the work ledger.
type Worker struct {
	WorkerID  string          `json:"workerID"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	DailyRate decimal.Decimal `json:"dailyRate"` // default base amount for a work entry
	IsActive  bool            `json:"isActive"`
	AuditFields
}

// JobStatus indicates the state of a contracted job ("obra").
type JobStatus string

const (
	JobOpen     JobStatus = "OPEN"
	JobFinished JobStatus = "FINISHED"
	JobArchived JobStatus = "ARCHIVED"
)

// Job is a contracted painting project for a client.
type Job struct {
	JobID    string    `json:"jobID"`
	ClientID string    `json:"clientID"`
	Name     string    `json:"name"`
	Address  string    `json:"address"`
	Status   JobStatus `json:"status"`
	AuditFields
}

// Service is a catalog entry for a priced unit of painting work
// (e.g. wall latex paint per square meter).
type Service struct {
	ServiceID string          `json:"serviceID"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"` // m2, unit, day...
	UnitPrice decimal.Decimal `json:"unitPrice"`
	IsActive  bool            `json:"isActive"`
	AuditFields
}

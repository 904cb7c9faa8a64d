package models

import "github.com/shopspring/decimal"

// Client is the clients table row.
type Client struct {
	ClientID string `json:"clientID"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	IsActive bool   `json:"isActive"`
	AuditFields
}

// Worker is the workers table row.
type Worker struct {
	WorkerID  string          `json:"workerID"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	DailyRate decimal.Decimal `json:"dailyRate"`
	IsActive  bool            `json:"isActive"`
	AuditFields
}

// Job is the jobs table row.
type Job struct {
	JobID    string `json:"jobID"`
	ClientID string `json:"clientID"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Status   string `json:"status"`
	AuditFields
}

// Service is the services table row.
type Service struct {
	ServiceID string          `json:"serviceID"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	IsActive  bool            `json:"isActive"`
	AuditFields
}

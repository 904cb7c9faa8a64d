package dto

import (
	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateClientRequest defines the data needed to register a client.
type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

// UpdateClientRequest defines the mutable client fields.
type UpdateClientRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"isActive"`
}

// ClientResponse mirrors domain.Client.
type ClientResponse struct {
	ClientID string `json:"clientID"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	IsActive bool   `json:"isActive"`
}

// CreateWorkerRequest defines the data needed to register a worker.
type CreateWorkerRequest struct {
	Name      string          `json:"name" binding:"required"`
	Phone     string          `json:"phone"`
	DailyRate decimal.Decimal `json:"dailyRate" binding:"required"`
}

// UpdateWorkerRequest defines the mutable worker fields.
type UpdateWorkerRequest struct {
	Name      *string          `json:"name"`
	Phone     *string          `json:"phone"`
	DailyRate *decimal.Decimal `json:"dailyRate"`
	IsActive  *bool            `json:"isActive"`
}

// WorkerResponse mirrors domain.Worker.
type WorkerResponse struct {
	WorkerID  string          `json:"workerID"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	DailyRate decimal.Decimal `json:"dailyRate"`
	IsActive  bool            `json:"isActive"`
}

// CreateJobRequest defines the data needed to open a job ("obra").
type CreateJobRequest struct {
	ClientID string `json:"clientID" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Address  string `json:"address"`
}

// UpdateJobRequest defines the mutable job fields.
type UpdateJobRequest struct {
	Name    *string           `json:"name"`
	Address *string           `json:"address"`
	Status  *domain.JobStatus `json:"status" binding:"omitempty,oneof=OPEN FINISHED ARCHIVED"`
}

// JobResponse mirrors domain.Job.
type JobResponse struct {
	JobID    string           `json:"jobID"`
	ClientID string           `json:"clientID"`
	Name     string           `json:"name"`
	Address  string           `json:"address"`
	Status   domain.JobStatus `json:"status"`
}

// CreateServiceRequest defines the data needed to add a catalog service.
type CreateServiceRequest struct {
	Name      string          `json:"name" binding:"required"`
	Unit      string          `json:"unit" binding:"required"`
	UnitPrice decimal.Decimal `json:"unitPrice" binding:"required"`
}

// UpdateServiceRequest defines the mutable service fields.
type UpdateServiceRequest struct {
	Name      *string          `json:"name"`
	Unit      *string          `json:"unit"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
	IsActive  *bool            `json:"isActive"`
}

// ServiceResponse mirrors domain.Service.
type ServiceResponse struct {
	ServiceID string          `json:"serviceID"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	IsActive  bool            `json:"isActive"`
}

func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{ClientID: c.ClientID, Name: c.Name, Phone: c.Phone, IsActive: c.IsActive}
}

func ToWorkerResponse(w *domain.Worker) WorkerResponse {
	return WorkerResponse{WorkerID: w.WorkerID, Name: w.Name, Phone: w.Phone, DailyRate: w.DailyRate, IsActive: w.IsActive}
}

func ToJobResponse(j *domain.Job) JobResponse {
	return JobResponse{JobID: j.JobID, ClientID: j.ClientID, Name: j.Name, Address: j.Address, Status: j.Status}
}

func ToServiceResponse(s *domain.Service) ServiceResponse {
	return ServiceResponse{ServiceID: s.ServiceID, Name: s.Name, Unit: s.Unit, UnitPrice: s.UnitPrice, IsActive: s.IsActive}
}

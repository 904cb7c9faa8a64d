package services

import (
	"context"

	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	"github.com/sepolpinturas/obras_backend/internal/dto"
)

// CatalogSvcFacade manages the reference data: clients, workers, jobs and the
// service catalog.
type CatalogSvcFacade interface {
	CreateClient(ctx context.Context, req dto.CreateClientRequest, actorID string) (*domain.Client, error)
	GetClient(ctx context.Context, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, limit int, nextToken *string) ([]domain.Client, *string, error)
	UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, actorID string) (*domain.Client, error)

	CreateWorker(ctx context.Context, req dto.CreateWorkerRequest, actorID string) (*domain.Worker, error)
	GetWorker(ctx context.Context, workerID string) (*domain.Worker, error)
	ListWorkers(ctx context.Context, limit int, nextToken *string) ([]domain.Worker, *string, error)
	UpdateWorker(ctx context.Context, workerID string, req dto.UpdateWorkerRequest, actorID string) (*domain.Worker, error)

	CreateJob(ctx context.Context, req dto.CreateJobRequest, actorID string) (*domain.Job, error)
	GetJob(ctx context.Context, jobID string) (*domain.Job, error)
	ListJobs(ctx context.Context, limit int, nextToken *string) ([]domain.Job, *string, error)
	UpdateJob(ctx context.Context, jobID string, req dto.UpdateJobRequest, actorID string) (*domain.Job, error)

	CreateService(ctx context.Context, req dto.CreateServiceRequest, actorID string) (*domain.Service, error)
	GetService(ctx context.Context, serviceID string) (*domain.Service, error)
	ListServices(ctx context.Context, limit int, nextToken *string) ([]domain.Service, *string, error)
	UpdateService(ctx context.Context, serviceID string, req dto.UpdateServiceRequest, actorID string) (*domain.Service, error)
}

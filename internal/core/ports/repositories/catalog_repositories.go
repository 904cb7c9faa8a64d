package repositories

import (
	"context"

	"github.com/sepolpinturas/obras_backend/internal/core/domain"
)

// CatalogRepositoryFacade persists the reference data: clients, workers,
// jobs and the service catalog. Plain key-value CRUD.
type CatalogRepositoryFacade interface {
	ClientRepository
	WorkerRepository
	JobRepository
	ServiceRepository
}

type ClientRepository interface {
	SaveClient(ctx context.Context, client domain.Client) error
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	ListClients(ctx context.Context, limit int, nextToken *string) ([]domain.Client, *string, error)
	UpdateClient(ctx context.Context, client domain.Client) error
}

type WorkerRepository interface {
	SaveWorker(ctx context.Context, worker domain.Worker) error
	FindWorkerByID(ctx context.Context, workerID string) (*domain.Worker, error)
	ListWorkers(ctx context.Context, limit int, nextToken *string) ([]domain.Worker, *string, error)
	UpdateWorker(ctx context.Context, worker domain.Worker) error
}

type JobRepository interface {
	SaveJob(ctx context.Context, job domain.Job) error
	FindJobByID(ctx context.Context, jobID string) (*domain.Job, error)
	ListJobs(ctx context.Context, limit int, nextToken *string) ([]domain.Job, *string, error)
	UpdateJob(ctx context.Context, job domain.Job) error
}

type ServiceRepository interface {
	SaveService(ctx context.Context, service domain.Service) error
	FindServiceByID(ctx context.Context, serviceID string) (*domain.Service, error)
	ListServices(ctx context.Context, limit int, nextToken *string) ([]domain.Service, *string, error)
	UpdateService(ctx context.Context, service domain.Service) error
}

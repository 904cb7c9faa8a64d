package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sepolpinturas/obras_backend/internal/apperrors"
	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	portsrepo "github.com/sepolpinturas/obras_backend/internal/core/ports/repositories"
	portssvc "github.com/sepolpinturas/obras_backend/internal/core/ports/services"
	"github.com/sepolpinturas/obras_backend/internal/dto"
	"github.com/sepolpinturas/obras_backend/internal/middleware"
)

// CatalogService manages the reference data behind everything else: clients,
// workers, jobs and the service catalog.
type CatalogService struct {
	repo portsrepo.CatalogRepositoryFacade
}

func NewCatalogService(repo portsrepo.CatalogRepositoryFacade) *CatalogService {
	return &CatalogService{repo: repo}
}

var _ portssvc.CatalogSvcFacade = (*CatalogService)(nil)

func newAudit(actorID string, now time.Time) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actorID,
		LastUpdatedAt: now,
		LastUpdatedBy: actorID,
	}
}

func (s *CatalogService) CreateClient(ctx context.Context, req dto.CreateClientRequest, actorID string) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	client := domain.Client{
		ClientID:    uuid.NewString(),
		Name:        req.Name,
		Phone:       req.Phone,
		IsActive:    true,
		AuditFields: newAudit(actorID, time.Now()),
	}
	if err := s.repo.SaveClient(ctx, client); err != nil {
		logger.Error("Failed to save client", slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("Client created", slog.String("client_id", client.ClientID))
	return &client, nil
}

func (s *CatalogService) GetClient(ctx context.Context, clientID string) (*domain.Client, error) {
	return s.repo.FindClientByID(ctx, clientID)
}

func (s *CatalogService) ListClients(ctx context.Context, limit int, nextToken *string) ([]domain.Client, *string, error) {
	return s.repo.ListClients(ctx, normalizeLimit(limit), nextToken)
}

func (s *CatalogService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, actorID string) (*domain.Client, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	client, err := s.repo.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.IsActive != nil {
		client.IsActive = *req.IsActive
	}
	client.LastUpdatedAt = time.Now()
	client.LastUpdatedBy = actorID

	if err := s.repo.UpdateClient(ctx, *client); err != nil {
		logger.Error("Failed to update client", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return nil, err
	}
	return client, nil
}

func (s *CatalogService) CreateWorker(ctx context.Context, req dto.CreateWorkerRequest, actorID string) (*domain.Worker, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if req.DailyRate.IsNegative() {
		return nil, fmt.Errorf("%w: daily rate must not be negative", apperrors.ErrValidation)
	}
	worker := domain.Worker{
		WorkerID:    uuid.NewString(),
		Name:        req.Name,
		Phone:       req.Phone,
		DailyRate:   req.DailyRate,
		IsActive:    true,
		AuditFields: newAudit(actorID, time.Now()),
	}
	if err := s.repo.SaveWorker(ctx, worker); err != nil {
		logger.Error("Failed to save worker", slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("Worker created", slog.String("worker_id", worker.WorkerID))
	return &worker, nil
}

func (s *CatalogService) GetWorker(ctx context.Context, workerID string) (*domain.Worker, error) {
	return s.repo.FindWorkerByID(ctx, workerID)
}

func (s *CatalogService) ListWorkers(ctx context.Context, limit int, nextToken *string) ([]domain.Worker, *string, error) {
	return s.repo.ListWorkers(ctx, normalizeLimit(limit), nextToken)
}

func (s *CatalogService) UpdateWorker(ctx context.Context, workerID string, req dto.UpdateWorkerRequest, actorID string) (*domain.Worker, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	worker, err := s.repo.FindWorkerByID(ctx, workerID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		worker.Name = *req.Name
	}
	if req.Phone != nil {
		worker.Phone = *req.Phone
	}
	if req.DailyRate != nil {
		if req.DailyRate.IsNegative() {
			return nil, apperrors.ErrValidation
		}
		worker.DailyRate = *req.DailyRate
	}
	if req.IsActive != nil {
		worker.IsActive = *req.IsActive
	}
	worker.LastUpdatedAt = time.Now()
	worker.LastUpdatedBy = actorID

	if err := s.repo.UpdateWorker(ctx, *worker); err != nil {
		logger.Error("Failed to update worker", slog.String("error", err.Error()), slog.String("worker_id", workerID))
		return nil, err
	}
	return worker, nil
}

func (s *CatalogService) CreateJob(ctx context.Context, req dto.CreateJobRequest, actorID string) (*domain.Job, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if _, err := s.repo.FindClientByID(ctx, req.ClientID); err != nil {
		return nil, err
	}
	job := domain.Job{
		JobID:       uuid.NewString(),
		ClientID:    req.ClientID,
		Name:        req.Name,
		Address:     req.Address,
		Status:      domain.JobOpen,
		AuditFields: newAudit(actorID, time.Now()),
	}
	if err := s.repo.SaveJob(ctx, job); err != nil {
		logger.Error("Failed to save job", slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("Job created", slog.String("job_id", job.JobID), slog.String("client_id", job.ClientID))
	return &job, nil
}

func (s *CatalogService) GetJob(ctx context.Context, jobID string) (*domain.Job, error) {
	return s.repo.FindJobByID(ctx, jobID)
}

func (s *CatalogService) ListJobs(ctx context.Context, limit int, nextToken *string) ([]domain.Job, *string, error) {
	return s.repo.ListJobs(ctx, normalizeLimit(limit), nextToken)
}

func (s *CatalogService) UpdateJob(ctx context.Context, jobID string, req dto.UpdateJobRequest, actorID string) (*domain.Job, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	job, err := s.repo.FindJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		job.Name = *req.Name
	}
	if req.Address != nil {
		job.Address = *req.Address
	}
	if req.Status != nil {
		job.Status = *req.Status
	}
	job.LastUpdatedAt = time.Now()
	job.LastUpdatedBy = actorID

	if err := s.repo.UpdateJob(ctx, *job); err != nil {
		logger.Error("Failed to update job", slog.String("error", err.Error()), slog.String("job_id", jobID))
		return nil, err
	}
	return job, nil
}

func (s *CatalogService) CreateService(ctx context.Context, req dto.CreateServiceRequest, actorID string) (*domain.Service, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if req.UnitPrice.IsNegative() {
		return nil, apperrors.ErrValidation
	}
	service := domain.Service{
		ServiceID:   uuid.NewString(),
		Name:        req.Name,
		Unit:        req.Unit,
		UnitPrice:   req.UnitPrice,
		IsActive:    true,
		AuditFields: newAudit(actorID, time.Now()),
	}
	if err := s.repo.SaveService(ctx, service); err != nil {
		logger.Error("Failed to save service", slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("Catalog service created", slog.String("service_id", service.ServiceID))
	return &service, nil
}

func (s *CatalogService) GetService(ctx context.Context, serviceID string) (*domain.Service, error) {
	return s.repo.FindServiceByID(ctx, serviceID)
}

func (s *CatalogService) ListServices(ctx context.Context, limit int, nextToken *string) ([]domain.Service, *string, error) {
	return s.repo.ListServices(ctx, normalizeLimit(limit), nextToken)
}

func (s *CatalogService) UpdateService(ctx context.Context, serviceID string, req dto.UpdateServiceRequest, actorID string) (*domain.Service, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	service, err := s.repo.FindServiceByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Unit != nil {
		service.Unit = *req.Unit
	}
	if req.UnitPrice != nil {
		if req.UnitPrice.IsNegative() {
			return nil, apperrors.ErrValidation
		}
		service.UnitPrice = *req.UnitPrice
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}
	service.LastUpdatedAt = time.Now()
	service.LastUpdatedBy = actorID

	if err := s.repo.UpdateService(ctx, *service); err != nil {
		logger.Error("Failed to update service", slog.String("error", err.Error()), slog.String("service_id", serviceID))
		return nil, err
	}
	return service, nil
}

const defaultPageSize = 50

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 200 {
		return defaultPageSize
	}
	return limit
}

package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sepolpinturas/obras_backend/internal/apperrors"
	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	portsrepo "github.com/sepolpinturas/obras_backend/internal/core/ports/repositories"
	"github.com/sepolpinturas/obras_backend/internal/models"
	"github.com/sepolpinturas/obras_backend/internal/utils/mapping"
	"github.com/sepolpinturas/obras_backend/internal/utils/pagination"
)

type PgxCatalogRepository struct {
	BaseRepository
}

// newPgxCatalogRepository creates a new repository for the reference data.
func newPgxCatalogRepository(pool *pgxpool.Pool) portsrepo.CatalogRepositoryFacade {
	return &PgxCatalogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CatalogRepositoryFacade = (*PgxCatalogRepository)(nil)

// decodeNameToken parses a (name, id) pagination token.
func decodeNameToken(nextToken *string) (string, string, bool, error) {
	if nextToken == nil || *nextToken == "" {
		return "", "", false, nil
	}
	fields, err := pagination.DecodeMultiFieldToken(*nextToken)
	if err != nil || len(fields) != 2 {
		return "", "", false, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
	}
	return fields[0], fields[1], true, nil
}

// --- Clients ---

func toModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID: d.ClientID, Name: d.Name, Phone: d.Phone, IsActive: d.IsActive,
		AuditFields: mapping.ToModelAuditFields(d.AuditFields),
	}
}

func toDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID: m.ClientID, Name: m.Name, Phone: m.Phone, IsActive: m.IsActive,
		AuditFields: mapping.ToDomainAuditFields(m.AuditFields),
	}
}

func (r *PgxCatalogRepository) SaveClient(ctx context.Context, client domain.Client) error {
	m := toModelClient(client)
	query := `
		INSERT INTO clients (client_id, name, phone, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query, m.ClientID, m.Name, m.Phone, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: client with ID %s already exists", apperrors.ErrDuplicate, m.ClientID)
		}
		return fmt.Errorf("failed to save client %s: %w", m.ClientID, err)
	}
	return nil
}

func (r *PgxCatalogRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `SELECT client_id, name, phone, is_active, created_at, created_by, last_updated_at, last_updated_by FROM clients WHERE client_id = $1;`
	var m models.Client
	err := r.Pool.QueryRow(ctx, query, clientID).Scan(&m.ClientID, &m.Name, &m.Phone, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client %s: %w", clientID, err)
	}
	c := toDomainClient(m)
	return &c, nil
}

func (r *PgxCatalogRepository) ListClients(ctx context.Context, limit int, nextToken *string) ([]domain.Client, *string, error) {
	name, id, hasToken, err := decodeNameToken(nextToken)
	if err != nil {
		return nil, nil, err
	}
	query := `SELECT client_id, name, phone, is_active, created_at, created_by, last_updated_at, last_updated_by FROM clients`
	args := []any{}
	if hasToken {
		query += ` WHERE (name, client_id) > ($1, $2)`
		args = append(args, name, id)
	}
	query += fmt.Sprintf(` ORDER BY name, client_id LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var m models.Client
		if err := rows.Scan(&m.ClientID, &m.Name, &m.Phone, &m.IsActive,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		clients = append(clients, toDomainClient(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var token *string
	if len(clients) > limit {
		clients = clients[:limit]
		last := clients[len(clients)-1]
		t := pagination.EncodeMultiFieldToken(last.Name, last.ClientID)
		token = &t
	}
	return clients, token, nil
}

func (r *PgxCatalogRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	m := toModelClient(client)
	query := `
		UPDATE clients
		SET name = $2, phone = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE client_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.ClientID, m.Name, m.Phone, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update client %s: %w", m.ClientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// --- Workers ---

func toModelWorker(d domain.Worker) models.Worker {
	return models.Worker{
		WorkerID: d.WorkerID, Name: d.Name, Phone: d.Phone, DailyRate: d.DailyRate, IsActive: d.IsActive,
		AuditFields: mapping.ToModelAuditFields(d.AuditFields),
	}
}

func toDomainWorker(m models.Worker) domain.Worker {
	return domain.Worker{
		WorkerID: m.WorkerID, Name: m.Name, Phone: m.Phone, DailyRate: m.DailyRate, IsActive: m.IsActive,
		AuditFields: mapping.ToDomainAuditFields(m.AuditFields),
	}
}

func (r *PgxCatalogRepository) SaveWorker(ctx context.Context, worker domain.Worker) error {
	m := toModelWorker(worker)
	query := `
		INSERT INTO workers (worker_id, name, phone, daily_rate, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query, m.WorkerID, m.Name, m.Phone, m.DailyRate, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: worker with ID %s already exists", apperrors.ErrDuplicate, m.WorkerID)
		}
		return fmt.Errorf("failed to save worker %s: %w", m.WorkerID, err)
	}
	return nil
}

func (r *PgxCatalogRepository) FindWorkerByID(ctx context.Context, workerID string) (*domain.Worker, error) {
	query := `SELECT worker_id, name, phone, daily_rate, is_active, created_at, created_by, last_updated_at, last_updated_by FROM workers WHERE worker_id = $1;`
	var m models.Worker
	err := r.Pool.QueryRow(ctx, query, workerID).Scan(&m.WorkerID, &m.Name, &m.Phone, &m.DailyRate, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find worker %s: %w", workerID, err)
	}
	w := toDomainWorker(m)
	return &w, nil
}

func (r *PgxCatalogRepository) ListWorkers(ctx context.Context, limit int, nextToken *string) ([]domain.Worker, *string, error) {
	name, id, hasToken, err := decodeNameToken(nextToken)
	if err != nil {
		return nil, nil, err
	}
	query := `SELECT worker_id, name, phone, daily_rate, is_active, created_at, created_by, last_updated_at, last_updated_by FROM workers`
	args := []any{}
	if hasToken {
		query += ` WHERE (name, worker_id) > ($1, $2)`
		args = append(args, name, id)
	}
	query += fmt.Sprintf(` ORDER BY name, worker_id LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list workers: %w", err)
	}
	defer rows.Close()

	var workers []domain.Worker
	for rows.Next() {
		var m models.Worker
		if err := rows.Scan(&m.WorkerID, &m.Name, &m.Phone, &m.DailyRate, &m.IsActive,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, nil, fmt.Errorf("failed to scan worker row: %w", err)
		}
		workers = append(workers, toDomainWorker(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var token *string
	if len(workers) > limit {
		workers = workers[:limit]
		last := workers[len(workers)-1]
		t := pagination.EncodeMultiFieldToken(last.Name, last.WorkerID)
		token = &t
	}
	return workers, token, nil
}

func (r *PgxCatalogRepository) UpdateWorker(ctx context.Context, worker domain.Worker) error {
	m := toModelWorker(worker)
	query := `
		UPDATE workers
		SET name = $2, phone = $3, daily_rate = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE worker_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.WorkerID, m.Name, m.Phone, m.DailyRate, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update worker %s: %w", m.WorkerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// --- Jobs ---

func toModelJob(d domain.Job) models.Job {
	return models.Job{
		JobID: d.JobID, ClientID: d.ClientID, Name: d.Name, Address: d.Address, Status: string(d.Status),
		AuditFields: mapping.ToModelAuditFields(d.AuditFields),
	}
}

func toDomainJob(m models.Job) domain.Job {
	return domain.Job{
		JobID: m.JobID, ClientID: m.ClientID, Name: m.Name, Address: m.Address, Status: domain.JobStatus(m.Status),
		AuditFields: mapping.ToDomainAuditFields(m.AuditFields),
	}
}

func (r *PgxCatalogRepository) SaveJob(ctx context.Context, job domain.Job) error {
	m := toModelJob(job)
	query := `
		INSERT INTO jobs (job_id, client_id, name, address, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query, m.JobID, m.ClientID, m.Name, m.Address, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: job with ID %s already exists", apperrors.ErrDuplicate, m.JobID)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: client %s", apperrors.ErrNotFound, m.ClientID)
		}
		return fmt.Errorf("failed to save job %s: %w", m.JobID, err)
	}
	return nil
}

func (r *PgxCatalogRepository) FindJobByID(ctx context.Context, jobID string) (*domain.Job, error) {
	query := `SELECT job_id, client_id, name, address, status, created_at, created_by, last_updated_at, last_updated_by FROM jobs WHERE job_id = $1;`
	var m models.Job
	err := r.Pool.QueryRow(ctx, query, jobID).Scan(&m.JobID, &m.ClientID, &m.Name, &m.Address, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find job %s: %w", jobID, err)
	}
	j := toDomainJob(m)
	return &j, nil
}

func (r *PgxCatalogRepository) ListJobs(ctx context.Context, limit int, nextToken *string) ([]domain.Job, *string, error) {
	name, id, hasToken, err := decodeNameToken(nextToken)
	if err != nil {
		return nil, nil, err
	}
	query := `SELECT job_id, client_id, name, address, status, created_at, created_by, last_updated_at, last_updated_by FROM jobs`
	args := []any{}
	if hasToken {
		query += ` WHERE (name, job_id) > ($1, $2)`
		args = append(args, name, id)
	}
	query += fmt.Sprintf(` ORDER BY name, job_id LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var m models.Job
		if err := rows.Scan(&m.JobID, &m.ClientID, &m.Name, &m.Address, &m.Status,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		jobs = append(jobs, toDomainJob(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var token *string
	if len(jobs) > limit {
		jobs = jobs[:limit]
		last := jobs[len(jobs)-1]
		t := pagination.EncodeMultiFieldToken(last.Name, last.JobID)
		token = &t
	}
	return jobs, token, nil
}

func (r *PgxCatalogRepository) UpdateJob(ctx context.Context, job domain.Job) error {
	m := toModelJob(job)
	query := `
		UPDATE jobs
		SET name = $2, address = $3, status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE job_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.JobID, m.Name, m.Address, m.Status, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update job %s: %w", m.JobID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// --- Services ---

func toModelService(d domain.Service) models.Service {
	return models.Service{
		ServiceID: d.ServiceID, Name: d.Name, Unit: d.Unit, UnitPrice: d.UnitPrice, IsActive: d.IsActive,
		AuditFields: mapping.ToModelAuditFields(d.AuditFields),
	}
}

func toDomainService(m models.Service) domain.Service {
	return domain.Service{
		ServiceID: m.ServiceID, Name: m.Name, Unit: m.Unit, UnitPrice: m.UnitPrice, IsActive: m.IsActive,
		AuditFields: mapping.ToDomainAuditFields(m.AuditFields),
	}
}

func (r *PgxCatalogRepository) SaveService(ctx context.Context, service domain.Service) error {
	m := toModelService(service)
	query := `
		INSERT INTO services (service_id, name, unit, unit_price, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query, m.ServiceID, m.Name, m.Unit, m.UnitPrice, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: service with ID %s already exists", apperrors.ErrDuplicate, m.ServiceID)
		}
		return fmt.Errorf("failed to save service %s: %w", m.ServiceID, err)
	}
	return nil
}

func (r *PgxCatalogRepository) FindServiceByID(ctx context.Context, serviceID string) (*domain.Service, error) {
	query := `SELECT service_id, name, unit, unit_price, is_active, created_at, created_by, last_updated_at, last_updated_by FROM services WHERE service_id = $1;`
	var m models.Service
	err := r.Pool.QueryRow(ctx, query, serviceID).Scan(&m.ServiceID, &m.Name, &m.Unit, &m.UnitPrice, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find service %s: %w", serviceID, err)
	}
	s := toDomainService(m)
	return &s, nil
}

func (r *PgxCatalogRepository) ListServices(ctx context.Context, limit int, nextToken *string) ([]domain.Service, *string, error) {
	name, id, hasToken, err := decodeNameToken(nextToken)
	if err != nil {
		return nil, nil, err
	}
	query := `SELECT service_id, name, unit, unit_price, is_active, created_at, created_by, last_updated_at, last_updated_by FROM services`
	args := []any{}
	if hasToken {
		query += ` WHERE (name, service_id) > ($1, $2)`
		args = append(args, name, id)
	}
	query += fmt.Sprintf(` ORDER BY name, service_id LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	var services []domain.Service
	for rows.Next() {
		var m models.Service
		if err := rows.Scan(&m.ServiceID, &m.Name, &m.Unit, &m.UnitPrice, &m.IsActive,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, nil, fmt.Errorf("failed to scan service row: %w", err)
		}
		services = append(services, toDomainService(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var token *string
	if len(services) > limit {
		services = services[:limit]
		last := services[len(services)-1]
		t := pagination.EncodeMultiFieldToken(last.Name, last.ServiceID)
		token = &t
	}
	return services, token, nil
}

func (r *PgxCatalogRepository) UpdateService(ctx context.Context, service domain.Service) error {
	m := toModelService(service)
	query := `
		UPDATE services
		SET name = $2, unit = $3, unit_price = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE service_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.ServiceID, m.Name, m.Unit, m.UnitPrice, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update service %s: %w", m.ServiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

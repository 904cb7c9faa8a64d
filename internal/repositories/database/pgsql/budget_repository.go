package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sepolpinturas/obras_backend/internal/apperrors"
	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	portsrepo "github.com/sepolpinturas/obras_backend/internal/core/ports/repositories"
	"github.com/sepolpinturas/obras_backend/internal/models"
	"github.com/sepolpinturas/obras_backend/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type PgxBudgetRepository struct {
	BaseRepository
}

// newPgxBudgetRepository creates a new repository for budget, phase and line item data.
func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

const budgetColumns = `budget_id, job_id, title, status, gross_total, discount, final_total, approved_date, created_at, created_by, last_updated_at, last_updated_by`

func scanBudget(row pgx.Row) (*models.Budget, error) {
	var m models.Budget
	err := row.Scan(
		&m.BudgetID,
		&m.JobID,
		&m.Title,
		&m.Status,
		&m.GrossTotal,
		&m.Discount,
		&m.FinalTotal,
		&m.ApprovedDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveBudget inserts a new budget.
func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	query := `
		INSERT INTO budgets (budget_id, job_id, title, status, gross_total, discount, final_total, approved_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.BudgetID, m.JobID, m.Title, m.Status,
		m.GrossTotal, m.Discount, m.FinalTotal, m.ApprovedDate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: budget with ID %s already exists", apperrors.ErrDuplicate, m.BudgetID)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: job %s", apperrors.ErrNotFound, m.JobID)
		}
		return fmt.Errorf("failed to save budget %s: %w", m.BudgetID, err)
	}
	return nil
}

// FindBudgetByID retrieves a budget by its ID, without phases.
func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE budget_id = $1;`
	m, err := scanBudget(r.Pool.QueryRow(ctx, query, budgetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget %s: %w", budgetID, err)
	}
	b := mapping.ToDomainBudget(*m)
	return &b, nil
}

// ListBudgetsByJob retrieves all budgets for a job, newest first.
func (r *PgxBudgetRepository) ListBudgetsByJob(ctx context.Context, jobID string) ([]domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE job_id = $1 ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets for job %s: %w", jobID, err)
	}
	defer rows.Close()

	var budgets []domain.Budget
	for rows.Next() {
		m, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget row: %w", err)
		}
		budgets = append(budgets, mapping.ToDomainBudget(*m))
	}
	return budgets, rows.Err()
}

// FindApprovedBudgetByJob returns the single approved budget for the job, if any.
func (r *PgxBudgetRepository) FindApprovedBudgetByJob(ctx context.Context, jobID string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE job_id = $1 AND status = $2;`
	m, err := scanBudget(r.Pool.QueryRow(ctx, query, jobID, models.BudgetApproved))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find approved budget for job %s: %w", jobID, err)
	}
	b := mapping.ToDomainBudget(*m)
	return &b, nil
}

// UpdateBudgetStatus transitions the budget status. The partial unique index
// budgets_one_approved_per_job is the real guard against double approval.
func (r *PgxBudgetRepository) UpdateBudgetStatus(ctx context.Context, budgetID string, status domain.BudgetStatus, approvedDate *time.Time, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE budgets
		SET status = $2, approved_date = $3, last_updated_at = $4, last_updated_by = $5
		WHERE budget_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, budgetID, string(status), approvedDate, updatedAt, updatedBy)
	if err != nil {
		if isUniqueViolation(err, "budgets_one_approved_per_job") {
			return fmt.Errorf("%w: job already has an approved budget", apperrors.ErrApprovedExists)
		}
		return fmt.Errorf("failed to update status of budget %s: %w", budgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateBudgetTotals persists a recalculation result atomically: every phase
// total plus the budget's gross, discount and final totals in one transaction.
func (r *PgxBudgetRepository) UpdateBudgetTotals(ctx context.Context, budgetID string, discount decimal.Decimal, phaseTotals map[string]decimal.Decimal, gross decimal.Decimal, final decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	phaseQuery := `
		UPDATE phases
		SET total = $2, last_updated_at = $3, last_updated_by = $4
		WHERE phase_id = $1;
	`
	batch := &pgx.Batch{}
	for phaseID, total := range phaseTotals {
		batch.Queue(phaseQuery, phaseID, total, updatedAt, updatedBy)
	}
	br := tx.SendBatch(ctx, batch)
	for range phaseTotals {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to update phase total: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to flush phase total batch: %w", err)
	}

	budgetQuery := `
		UPDATE budgets
		SET gross_total = $2, discount = $3, final_total = $4, last_updated_at = $5, last_updated_by = $6
		WHERE budget_id = $1;
	`
	tag, err := tx.Exec(ctx, budgetQuery, budgetID, gross, discount, final, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update totals of budget %s: %w", budgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

const phaseColumns = `phase_id, budget_id, name, sequence, status, total, created_at, created_by, last_updated_at, last_updated_by`

func scanPhase(row pgx.Row) (*models.Phase, error) {
	var m models.Phase
	err := row.Scan(
		&m.PhaseID, &m.BudgetID, &m.Name, &m.Sequence, &m.Status, &m.Total,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SavePhase inserts a new phase. (budget_id, sequence) is unique.
func (r *PgxBudgetRepository) SavePhase(ctx context.Context, phase domain.Phase) error {
	m := mapping.ToModelPhase(phase)
	query := `
		INSERT INTO phases (phase_id, budget_id, name, sequence, status, total, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PhaseID, m.BudgetID, m.Name, m.Sequence, m.Status, m.Total,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "phases_budget_sequence_key") {
			return fmt.Errorf("%w: budget %s already has a phase with sequence %d", apperrors.ErrDuplicate, m.BudgetID, m.Sequence)
		}
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: phase with ID %s already exists", apperrors.ErrDuplicate, m.PhaseID)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: budget %s", apperrors.ErrNotFound, m.BudgetID)
		}
		return fmt.Errorf("failed to save phase %s: %w", m.PhaseID, err)
	}
	return nil
}

// FindPhaseByID retrieves a phase by its ID.
func (r *PgxBudgetRepository) FindPhaseByID(ctx context.Context, phaseID string) (*domain.Phase, error) {
	query := `SELECT ` + phaseColumns + ` FROM phases WHERE phase_id = $1;`
	m, err := scanPhase(r.Pool.QueryRow(ctx, query, phaseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find phase %s: %w", phaseID, err)
	}
	p := mapping.ToDomainPhase(*m)
	return &p, nil
}

// ListPhasesByBudget retrieves the phases of a budget in sequence order.
func (r *PgxBudgetRepository) ListPhasesByBudget(ctx context.Context, budgetID string) ([]domain.Phase, error) {
	query := `SELECT ` + phaseColumns + ` FROM phases WHERE budget_id = $1 ORDER BY sequence;`
	rows, err := r.Pool.Query(ctx, query, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list phases for budget %s: %w", budgetID, err)
	}
	defer rows.Close()

	var phases []domain.Phase
	for rows.Next() {
		m, err := scanPhase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan phase row: %w", err)
		}
		phases = append(phases, mapping.ToDomainPhase(*m))
	}
	return phases, rows.Err()
}

// UpdatePhaseStatus moves a phase through its execution lifecycle.
func (r *PgxBudgetRepository) UpdatePhaseStatus(ctx context.Context, phaseID string, status domain.PhaseStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE phases
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE phase_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, phaseID, string(status), updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update status of phase %s: %w", phaseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeletePhase removes a phase and its line items in one transaction. The FK
// from receivables is ON DELETE RESTRICT, so a referenced phase cannot go.
func (r *PgxBudgetRepository) DeletePhase(ctx context.Context, phaseID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM line_items WHERE phase_id = $1;`, phaseID); err != nil {
		return fmt.Errorf("failed to delete line items of phase %s: %w", phaseID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM phases WHERE phase_id = $1;`, phaseID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: phase %s is referenced by a receivable", apperrors.ErrConflict, phaseID)
		}
		return fmt.Errorf("failed to delete phase %s: %w", phaseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

const lineItemColumns = `line_item_id, phase_id, service_id, quantity, unit_price, amount, created_at, created_by, last_updated_at, last_updated_by`

func scanLineItem(row pgx.Row) (*models.LineItem, error) {
	var m models.LineItem
	err := row.Scan(
		&m.LineItemID, &m.PhaseID, &m.ServiceID, &m.Quantity, &m.UnitPrice, &m.Amount,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// UpsertLineItem inserts the line item or, when the (phase, service) pair
// already exists, updates quantity, unit price and amount in place.
func (r *PgxBudgetRepository) UpsertLineItem(ctx context.Context, item domain.LineItem) error {
	m := mapping.ToModelLineItem(item)
	query := `
		INSERT INTO line_items (line_item_id, phase_id, service_id, quantity, unit_price, amount, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (phase_id, service_id) DO UPDATE SET
			quantity = EXCLUDED.quantity,
			unit_price = EXCLUDED.unit_price,
			amount = EXCLUDED.amount,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.LineItemID, m.PhaseID, m.ServiceID, m.Quantity, m.UnitPrice, m.Amount,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: phase %s or service %s", apperrors.ErrNotFound, m.PhaseID, m.ServiceID)
		}
		return fmt.Errorf("failed to upsert line item for phase %s service %s: %w", m.PhaseID, m.ServiceID, err)
	}
	return nil
}

// ListLineItemsByPhase retrieves the line items of one phase.
func (r *PgxBudgetRepository) ListLineItemsByPhase(ctx context.Context, phaseID string) ([]domain.LineItem, error) {
	query := `SELECT ` + lineItemColumns + ` FROM line_items WHERE phase_id = $1 ORDER BY created_at;`
	return r.queryLineItems(ctx, query, phaseID)
}

// ListLineItemsByBudget retrieves every line item under a budget, joined
// through phases, in phase sequence order.
func (r *PgxBudgetRepository) ListLineItemsByBudget(ctx context.Context, budgetID string) ([]domain.LineItem, error) {
	query := `
		SELECT li.line_item_id, li.phase_id, li.service_id, li.quantity, li.unit_price, li.amount, li.created_at, li.created_by, li.last_updated_at, li.last_updated_by
		FROM line_items li
		JOIN phases p ON p.phase_id = li.phase_id
		WHERE p.budget_id = $1
		ORDER BY p.sequence, li.created_at;
	`
	return r.queryLineItems(ctx, query, budgetID)
}

func (r *PgxBudgetRepository) queryLineItems(ctx context.Context, query string, arg any) ([]domain.LineItem, error) {
	rows, err := r.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list line items: %w", err)
	}
	defer rows.Close()

	var items []domain.LineItem
	for rows.Next() {
		m, err := scanLineItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line item row: %w", err)
		}
		items = append(items, mapping.ToDomainLineItem(*m))
	}
	return items, rows.Err()
}

// DeleteLineItem removes one line item.
func (r *PgxBudgetRepository) DeleteLineItem(ctx context.Context, lineItemID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM line_items WHERE line_item_id = $1;`, lineItemID)
	if err != nil {
		return fmt.Errorf("failed to delete line item %s: %w", lineItemID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

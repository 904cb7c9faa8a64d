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
)

type PgxReceivableRepository struct {
	BaseRepository
}

// newPgxReceivableRepository creates a new repository for client receivables.
func newPgxReceivableRepository(pool *pgxpool.Pool) portsrepo.ReceivableRepositoryFacade {
	return &PgxReceivableRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReceivableRepositoryFacade = (*PgxReceivableRepository)(nil)

const receivableColumns = `receivable_id, phase_id, status, base_value, surcharge, due_date, paid_at, created_at, created_by, last_updated_at, last_updated_by`

func scanReceivable(row pgx.Row) (*models.Receivable, error) {
	var m models.Receivable
	err := row.Scan(
		&m.ReceivableID, &m.PhaseID, &m.Status, &m.BaseValue, &m.Surcharge,
		&m.DueDate, &m.PaidAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// UpsertReceivable inserts or, when the phase already has one, updates the
// receivable in place. Value edits never resurrect a PAID or CANCELLED row.
func (r *PgxReceivableRepository) UpsertReceivable(ctx context.Context, receivable domain.Receivable) error {
	m := mapping.ToModelReceivable(receivable)
	query := `
		INSERT INTO receivables (receivable_id, phase_id, status, base_value, surcharge, due_date, paid_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (phase_id) DO UPDATE SET
			base_value = EXCLUDED.base_value,
			surcharge = EXCLUDED.surcharge,
			due_date = EXCLUDED.due_date,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		WHERE receivables.status = 'OPEN';
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ReceivableID, m.PhaseID, m.Status, m.BaseValue, m.Surcharge, m.DueDate, m.PaidAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: phase %s", apperrors.ErrNotFound, m.PhaseID)
		}
		return fmt.Errorf("failed to upsert receivable for phase %s: %w", m.PhaseID, err)
	}
	return nil
}

// FindReceivableByID retrieves one receivable.
func (r *PgxReceivableRepository) FindReceivableByID(ctx context.Context, receivableID string) (*domain.Receivable, error) {
	query := `SELECT ` + receivableColumns + ` FROM receivables WHERE receivable_id = $1;`
	m, err := scanReceivable(r.Pool.QueryRow(ctx, query, receivableID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find receivable %s: %w", receivableID, err)
	}
	d := mapping.ToDomainReceivable(*m)
	return &d, nil
}

// FindReceivableByPhase retrieves the receivable of one phase.
func (r *PgxReceivableRepository) FindReceivableByPhase(ctx context.Context, phaseID string) (*domain.Receivable, error) {
	query := `SELECT ` + receivableColumns + ` FROM receivables WHERE phase_id = $1;`
	m, err := scanReceivable(r.Pool.QueryRow(ctx, query, phaseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find receivable for phase %s: %w", phaseID, err)
	}
	d := mapping.ToDomainReceivable(*m)
	return &d, nil
}

// ListReceivablesByBudget retrieves the receivables of every phase under a
// budget, in phase sequence order.
func (r *PgxReceivableRepository) ListReceivablesByBudget(ctx context.Context, budgetID string) ([]domain.Receivable, error) {
	query := `
		SELECT rc.receivable_id, rc.phase_id, rc.status, rc.base_value, rc.surcharge, rc.due_date, rc.paid_at, rc.created_at, rc.created_by, rc.last_updated_at, rc.last_updated_by
		FROM receivables rc
		JOIN phases p ON p.phase_id = rc.phase_id
		WHERE p.budget_id = $1
		ORDER BY p.sequence;
	`
	rows, err := r.Pool.Query(ctx, query, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to list receivables for budget %s: %w", budgetID, err)
	}
	defer rows.Close()

	var receivables []domain.Receivable
	for rows.Next() {
		m, err := scanReceivable(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan receivable row: %w", err)
		}
		receivables = append(receivables, mapping.ToDomainReceivable(*m))
	}
	return receivables, rows.Err()
}

// UpdateReceivableStatus transitions the receivable status, stamping paid_at
// when provided.
func (r *PgxReceivableRepository) UpdateReceivableStatus(ctx context.Context, receivableID string, status domain.ReceivableStatus, paidAt *time.Time, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE receivables
		SET status = $2, paid_at = $3, last_updated_at = $4, last_updated_by = $5
		WHERE receivable_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, receivableID, string(status), paidAt, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update status of receivable %s: %w", receivableID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

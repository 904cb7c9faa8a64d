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
	"github.com/sepolpinturas/obras_backend/internal/utils/pagination"
)

type PgxWorkEntryRepository struct {
	BaseRepository
}

// newPgxWorkEntryRepository creates a new repository for the work ledger.
func newPgxWorkEntryRepository(pool *pgxpool.Pool) portsrepo.WorkEntryRepositoryFacade {
	return &PgxWorkEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WorkEntryRepositoryFacade = (*PgxWorkEntryRepository)(nil)

const workEntryColumns = `work_entry_id, job_id, worker_id, phase_id, budget_id, entry_date, day_type, base_amount, surcharge_pct, discount, final_amount, created_at, created_by, last_updated_at, last_updated_by`

func scanWorkEntry(row pgx.Row) (*models.WorkEntry, error) {
	var m models.WorkEntry
	err := row.Scan(
		&m.WorkEntryID, &m.JobID, &m.WorkerID, &m.PhaseID, &m.BudgetID,
		&m.EntryDate, &m.DayType, &m.BaseAmount, &m.SurchargePct, &m.Discount, &m.FinalAmount,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveWorkEntry inserts a new entry. The unique constraint on
// (worker_id, job_id, entry_date) rejects a second entry for the same day.
func (r *PgxWorkEntryRepository) SaveWorkEntry(ctx context.Context, entry domain.WorkEntry) error {
	m := mapping.ToModelWorkEntry(entry)
	query := `
		INSERT INTO work_entries (work_entry_id, job_id, worker_id, phase_id, budget_id, entry_date, day_type, base_amount, surcharge_pct, discount, final_amount, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.WorkEntryID, m.JobID, m.WorkerID, m.PhaseID, m.BudgetID,
		m.EntryDate, m.DayType, m.BaseAmount, m.SurchargePct, m.Discount, m.FinalAmount,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err, "work_entries_worker_job_date_key") {
			return fmt.Errorf("%w: work entry already exists for worker %s on job %s at %s",
				apperrors.ErrDuplicate, m.WorkerID, m.JobID, m.EntryDate.Format("2006-01-02"))
		}
		if isUniqueViolation(err, "") {
			return fmt.Errorf("%w: work entry with ID %s already exists", apperrors.ErrDuplicate, m.WorkEntryID)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: job, worker or phase referenced by work entry", apperrors.ErrNotFound)
		}
		return fmt.Errorf("failed to save work entry %s: %w", m.WorkEntryID, err)
	}
	return nil
}

// FindWorkEntryByID retrieves one entry.
func (r *PgxWorkEntryRepository) FindWorkEntryByID(ctx context.Context, workEntryID string) (*domain.WorkEntry, error) {
	query := `SELECT ` + workEntryColumns + ` FROM work_entries WHERE work_entry_id = $1;`
	m, err := scanWorkEntry(r.Pool.QueryRow(ctx, query, workEntryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find work entry %s: %w", workEntryID, err)
	}
	e := mapping.ToDomainWorkEntry(*m)
	return &e, nil
}

// UpdateWorkEntry rewrites the mutable columns of an entry. Callers check the
// lock predicate first; the date/worker/job identity never changes.
func (r *PgxWorkEntryRepository) UpdateWorkEntry(ctx context.Context, entry domain.WorkEntry) error {
	m := mapping.ToModelWorkEntry(entry)
	query := `
		UPDATE work_entries
		SET phase_id = $2, day_type = $3, base_amount = $4, surcharge_pct = $5, discount = $6, final_amount = $7, last_updated_at = $8, last_updated_by = $9
		WHERE work_entry_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.WorkEntryID, m.PhaseID, m.DayType, m.BaseAmount, m.SurchargePct, m.Discount, m.FinalAmount,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update work entry %s: %w", m.WorkEntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteWorkEntry removes the entry together with any payment line that
// references it from an OPEN payment, in one transaction. A line under a PAID
// payment makes the delete fail on the FK, surfaced as ErrLocked.
func (r *PgxWorkEntryRepository) DeleteWorkEntry(ctx context.Context, workEntryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	pruneQuery := `
		DELETE FROM payment_lines pl
		USING payments p
		WHERE pl.payment_id = p.payment_id
		  AND pl.work_entry_id = $1
		  AND p.status = 'OPEN';
	`
	if _, err := tx.Exec(ctx, pruneQuery, workEntryID); err != nil {
		return fmt.Errorf("failed to prune open payment lines for work entry %s: %w", workEntryID, err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM work_entries WHERE work_entry_id = $1;`, workEntryID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: work entry %s", apperrors.ErrLocked, workEntryID)
		}
		return fmt.Errorf("failed to delete work entry %s: %w", workEntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// IsLocked reports whether the entry is referenced by a line of a PAID payment.
func (r *PgxWorkEntryRepository) IsLocked(ctx context.Context, workEntryID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM payment_lines pl
			JOIN payments p ON p.payment_id = pl.payment_id
			WHERE pl.work_entry_id = $1 AND p.status = 'PAID'
		);
	`
	var locked bool
	if err := r.Pool.QueryRow(ctx, query, workEntryID).Scan(&locked); err != nil {
		return false, fmt.Errorf("failed to check lock of work entry %s: %w", workEntryID, err)
	}
	return locked, nil
}

// ListWorkEntriesInRange returns entries dated in [from, to] with one of the
// given day types, ordered by worker then date.
func (r *PgxWorkEntryRepository) ListWorkEntriesInRange(ctx context.Context, from, to time.Time, dayTypes []domain.DayType) ([]domain.WorkEntry, error) {
	types := make([]string, len(dayTypes))
	for i, dt := range dayTypes {
		types[i] = string(dt)
	}
	query := `
		SELECT ` + workEntryColumns + `
		FROM work_entries
		WHERE entry_date >= $1 AND entry_date <= $2 AND day_type = ANY($3)
		ORDER BY worker_id, entry_date;
	`
	rows, err := r.Pool.Query(ctx, query, from, to, types)
	if err != nil {
		return nil, fmt.Errorf("failed to list work entries in range: %w", err)
	}
	defer rows.Close()

	var entries []domain.WorkEntry
	for rows.Next() {
		m, err := scanWorkEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work entry row: %w", err)
		}
		entries = append(entries, mapping.ToDomainWorkEntry(*m))
	}
	return entries, rows.Err()
}

// ListWorkEntriesByJob returns entries for a job, newest date first, with
// token pagination on (entry_date, work_entry_id).
func (r *PgxWorkEntryRepository) ListWorkEntriesByJob(ctx context.Context, jobID string, limit int, nextToken *string) ([]domain.WorkEntry, *string, error) {
	args := []any{jobID}
	query := `SELECT ` + workEntryColumns + ` FROM work_entries WHERE job_id = $1`

	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 2 {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		tokenDate, err := time.Parse(time.RFC3339Nano, fields[0])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		query += ` AND (entry_date, work_entry_id) < ($2, $3)`
		args = append(args, tokenDate, fields[1])
	}

	query += fmt.Sprintf(` ORDER BY entry_date DESC, work_entry_id DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list work entries for job %s: %w", jobID, err)
	}
	defer rows.Close()

	var entries []domain.WorkEntry
	for rows.Next() {
		m, err := scanWorkEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan work entry row: %w", err)
		}
		entries = append(entries, mapping.ToDomainWorkEntry(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.EncodeMultiFieldToken(last.EntryDate.Format(time.RFC3339Nano), last.WorkEntryID)
		token = &t
	}
	return entries, token, nil
}

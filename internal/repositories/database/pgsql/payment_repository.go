package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sepolpinturas/obras_backend/internal/apperrors"
	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	portsrepo "github.com/sepolpinturas/obras_backend/internal/core/ports/repositories"
	"github.com/sepolpinturas/obras_backend/internal/models"
	"github.com/sepolpinturas/obras_backend/internal/utils/mapping"
	"github.com/sepolpinturas/obras_backend/internal/utils/pagination"
)

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payments, lines and audit.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

const paymentColumns = `payment_id, worker_id, kind, status, total, period_start, period_end, paid_at, paid_by, created_at, created_by, last_updated_at, last_updated_by`

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var m models.Payment
	err := row.Scan(
		&m.PaymentID, &m.WorkerID, &m.Kind, &m.Status, &m.Total,
		&m.PeriodStart, &m.PeriodEnd, &m.PaidAt, &m.PaidBy,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// UpsertPaymentWithLines inserts or updates the payment keyed by
// (worker, kind, period_start, period_end) and replaces its lines, in one
// transaction. The conflict update only touches OPEN payments: a payment paid
// by a concurrent request is left frozen and the method reports no change.
// Lines whose work entry is already frozen inside another payment are skipped
// (work_entry_id is unique across payment_lines), and the stored total is
// recomputed from the lines that actually survive.
func (r *PgxPaymentRepository) UpsertPaymentWithLines(ctx context.Context, payment domain.Payment, lines []domain.PaymentLine) (bool, error) {
	m := mapping.ToModelPayment(payment)

	tx, err := r.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer r.Rollback(ctx, tx)

	upsertQuery := `
		INSERT INTO payments (payment_id, worker_id, kind, status, total, period_start, period_end, paid_at, paid_by, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, 'OPEN', $4, $5, $6, NULL, NULL, $7, $8, $9, $10)
		ON CONFLICT (worker_id, kind, period_start, period_end) DO UPDATE SET
			total = EXCLUDED.total,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		WHERE payments.status = 'OPEN'
		RETURNING payment_id;
	`
	var paymentID string
	err = tx.QueryRow(ctx, upsertQuery,
		m.PaymentID, m.WorkerID, m.Kind, m.Total, m.PeriodStart, m.PeriodEnd,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	).Scan(&paymentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Conflict row exists but is PAID; leave it frozen.
			return false, r.Commit(ctx, tx)
		}
		return false, fmt.Errorf("failed to upsert payment for worker %s: %w", m.WorkerID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM payment_lines WHERE payment_id = $1;`, paymentID); err != nil {
		return false, fmt.Errorf("failed to clear lines of payment %s: %w", paymentID, err)
	}

	lineQuery := `
		INSERT INTO payment_lines (payment_line_id, payment_id, work_entry_id, amount, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (work_entry_id) DO NOTHING;
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		ml := mapping.ToModelPaymentLine(line)
		if ml.PaymentLineID == "" {
			ml.PaymentLineID = uuid.NewString()
		}
		batch.Queue(lineQuery, ml.PaymentLineID, paymentID, ml.WorkEntryID, ml.Amount,
			ml.CreatedAt, ml.CreatedBy, ml.LastUpdatedAt, ml.LastUpdatedBy)
	}
	br := tx.SendBatch(ctx, batch)
	for range lines {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return false, fmt.Errorf("failed to insert line of payment %s: %w", paymentID, err)
		}
	}
	if err := br.Close(); err != nil {
		return false, fmt.Errorf("failed to flush payment line batch: %w", err)
	}

	totalQuery := `
		UPDATE payments
		SET total = COALESCE((SELECT SUM(amount) FROM payment_lines WHERE payment_id = $1), 0)
		WHERE payment_id = $1;
	`
	if _, err := tx.Exec(ctx, totalQuery, paymentID); err != nil {
		return false, fmt.Errorf("failed to recompute total of payment %s: %w", paymentID, err)
	}

	return true, r.Commit(ctx, tx)
}

// FindPaymentByID retrieves one payment with its lines.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`
	m, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment %s: %w", paymentID, err)
	}
	p := mapping.ToDomainPayment(*m)
	lines, err := r.FindLinesByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	p.Lines = lines
	return &p, nil
}

// FindPaymentByKey retrieves the payment for the generator's upsert key.
func (r *PgxPaymentRepository) FindPaymentByKey(ctx context.Context, workerID string, kind domain.PaymentKind, periodStart, periodEnd time.Time) (*domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE worker_id = $1 AND kind = $2 AND period_start = $3 AND period_end = $4;
	`
	m, err := scanPayment(r.Pool.QueryRow(ctx, query, workerID, string(kind), periodStart, periodEnd))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment by key for worker %s: %w", workerID, err)
	}
	p := mapping.ToDomainPayment(*m)
	return &p, nil
}

// FindLinesByPaymentID retrieves the lines of one payment.
func (r *PgxPaymentRepository) FindLinesByPaymentID(ctx context.Context, paymentID string) ([]domain.PaymentLine, error) {
	query := `
		SELECT payment_line_id, payment_id, work_entry_id, amount, created_at, created_by, last_updated_at, last_updated_by
		FROM payment_lines
		WHERE payment_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lines of payment %s: %w", paymentID, err)
	}
	defer rows.Close()

	var lines []domain.PaymentLine
	for rows.Next() {
		var m models.PaymentLine
		if err := rows.Scan(&m.PaymentLineID, &m.PaymentID, &m.WorkEntryID, &m.Amount,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan payment line row: %w", err)
		}
		lines = append(lines, mapping.ToDomainPaymentLine(m))
	}
	return lines, rows.Err()
}

// ListPaymentsByWorker returns payments for one worker, newest period first,
// with token pagination on (period_start, payment_id).
func (r *PgxPaymentRepository) ListPaymentsByWorker(ctx context.Context, workerID string, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	args := []any{workerID}
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE worker_id = $1`

	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 2 {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		tokenStart, err := time.Parse(time.RFC3339Nano, fields[0])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		query += ` AND (period_start, payment_id) < ($2, $3)`
		args = append(args, tokenStart, fields[1])
	}

	query += fmt.Sprintf(` ORDER BY period_start DESC, payment_id DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list payments for worker %s: %w", workerID, err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, mapping.ToDomainPayment(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var token *string
	if len(payments) > limit {
		payments = payments[:limit]
		last := payments[len(payments)-1]
		t := pagination.EncodeMultiFieldToken(last.PeriodStart.Format(time.RFC3339Nano), last.PaymentID)
		token = &t
	}
	return payments, token, nil
}

// ListPaymentsInPeriod returns payments whose period falls inside
// [periodStart, periodEnd], for the weekly payroll report.
func (r *PgxPaymentRepository) ListPaymentsInPeriod(ctx context.Context, periodStart, periodEnd time.Time) ([]domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE period_start >= $1 AND period_end <= $2
		ORDER BY worker_id, kind, period_start;
	`
	rows, err := r.Pool.Query(ctx, query, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments in period: %w", err)
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, mapping.ToDomainPayment(*m))
	}
	return payments, rows.Err()
}

// MarkPaid transitions OPEN → PAID and writes the audit record in one
// transaction. The WHERE status = 'OPEN' guard makes concurrent pay actions
// race safely: the loser observes AlreadyPaid.
func (r *PgxPaymentRepository) MarkPaid(ctx context.Context, paymentID string, actor string, paidAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE payments
		SET status = 'PAID', paid_at = $2, paid_by = $3, last_updated_at = $4, last_updated_by = $3
		WHERE payment_id = $1 AND status = 'OPEN';
	`
	tag, err := tx.Exec(ctx, query, paymentID, paidAt, actor, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to mark payment %s paid: %w", paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMissedTransition(ctx, tx, paymentID, "OPEN")
	}

	if err := r.insertAudit(ctx, tx, paymentID, models.PaymentAudit{
		Action: string(domain.PaymentActionPaid), Actor: actor, Reason: "",
	}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ReversePayment transitions PAID → OPEN, clears the paid stamp and writes
// the audit record with the mandatory reason.
func (r *PgxPaymentRepository) ReversePayment(ctx context.Context, paymentID string, actor string, reason string, reversedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE payments
		SET status = 'OPEN', paid_at = NULL, paid_by = NULL, last_updated_at = $2, last_updated_by = $3
		WHERE payment_id = $1 AND status = 'PAID';
	`
	tag, err := tx.Exec(ctx, query, paymentID, reversedAt, actor)
	if err != nil {
		return fmt.Errorf("failed to reverse payment %s: %w", paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMissedTransition(ctx, tx, paymentID, "PAID")
	}

	if err := r.insertAudit(ctx, tx, paymentID, models.PaymentAudit{
		Action: string(domain.PaymentActionReversed), Actor: actor, Reason: reason,
	}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// classifyMissedTransition distinguishes a missing payment from one in the
// wrong status when a guarded UPDATE matched no row.
func (r *PgxPaymentRepository) classifyMissedTransition(ctx context.Context, tx pgx.Tx, paymentID string, expected string) error {
	var status string
	err := tx.QueryRow(ctx, `SELECT status FROM payments WHERE payment_id = $1;`, paymentID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to read status of payment %s: %w", paymentID, err)
	}
	if expected == "OPEN" {
		return fmt.Errorf("%w: payment %s", apperrors.ErrAlreadyPaid, paymentID)
	}
	return fmt.Errorf("%w: payment %s", apperrors.ErrNotPaid, paymentID)
}

func (r *PgxPaymentRepository) insertAudit(ctx context.Context, tx pgx.Tx, paymentID string, audit models.PaymentAudit) error {
	query := `
		INSERT INTO payment_audit (audit_id, payment_id, action, actor, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := tx.Exec(ctx, query, uuid.NewString(), paymentID, audit.Action, audit.Actor, audit.Reason, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write audit record for payment %s: %w", paymentID, err)
	}
	return nil
}

// ListAuditByPaymentID returns the audit trail of one payment, oldest first.
func (r *PgxPaymentRepository) ListAuditByPaymentID(ctx context.Context, paymentID string) ([]domain.PaymentAudit, error) {
	query := `
		SELECT audit_id, payment_id, action, actor, reason, created_at
		FROM payment_audit
		WHERE payment_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit of payment %s: %w", paymentID, err)
	}
	defer rows.Close()

	var audits []domain.PaymentAudit
	for rows.Next() {
		var m models.PaymentAudit
		if err := rows.Scan(&m.AuditID, &m.PaymentID, &m.Action, &m.Actor, &m.Reason, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit row: %w", err)
		}
		audits = append(audits, mapping.ToDomainPaymentAudit(m))
	}
	return audits, rows.Err()
}

// RefreshOpenPaymentTotals realigns every OPEN payment in the window with the
// sum of its surviving lines. Deleted work entries prune lines first, so this
// recovers consistent totals without touching PAID payments.
func (r *PgxPaymentRepository) RefreshOpenPaymentTotals(ctx context.Context, periodStart, periodEnd time.Time, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE payments p
		SET total = COALESCE((SELECT SUM(pl.amount) FROM payment_lines pl WHERE pl.payment_id = p.payment_id), 0),
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE p.status = 'OPEN' AND p.period_start >= $1 AND p.period_end <= $2;
	`
	if _, err := r.Pool.Exec(ctx, query, periodStart, periodEnd, updatedAt, updatedBy); err != nil {
		return fmt.Errorf("failed to refresh open payment totals: %w", err)
	}
	return nil
}

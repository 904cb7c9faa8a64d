package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/sepolpinturas/obras_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgsql repositories over a shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		CatalogRepo:    newPgxCatalogRepository(pool),
		BudgetRepo:     newPgxBudgetRepository(pool),
		WorkEntryRepo:  newPgxWorkEntryRepository(pool),
		PaymentRepo:    newPgxPaymentRepository(pool),
		ReceivableRepo: newPgxReceivableRepository(pool),
	}
}

package services

import (
	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	portsrepo "github.com/sepolpinturas/obras_backend/internal/core/ports/repositories"
	portssvc "github.com/sepolpinturas/obras_backend/internal/core/ports/services"
)

// NewServiceContainer wires every application service over the repository
// provider. The calendar and surcharge policy come from configuration.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, calendar portssvc.Calendar, surcharges domain.SurchargePolicy) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Catalog:    NewCatalogService(repos.CatalogRepo),
		Budget:     NewBudgetService(repos.BudgetRepo, repos.CatalogRepo),
		WorkLedger: NewWorkLedgerService(repos.WorkEntryRepo, repos.CatalogRepo, calendar, surcharges),
		Payroll:    NewPayrollService(repos.PaymentRepo, repos.WorkEntryRepo, calendar),
		Payment:    NewPaymentService(repos.PaymentRepo),
		Receivable: NewReceivableService(repos.ReceivableRepo, repos.BudgetRepo),
		Calendar:   calendar,
	}
}

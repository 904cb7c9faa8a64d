package services_test

import (
	"context"
	"time"

	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// Shared mocks for the repository facades. The service test suites in this
// package all build on these.

// --- CatalogRepositoryFacade ---

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) SaveClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockCatalogRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockCatalogRepository) ListClients(ctx context.Context, limit int, nextToken *string) ([]domain.Client, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Client), args.Get(1).(*string), args.Error(2)
}

func (m *MockCatalogRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockCatalogRepository) SaveWorker(ctx context.Context, worker domain.Worker) error {
	args := m.Called(ctx, worker)
	return args.Error(0)
}

func (m *MockCatalogRepository) FindWorkerByID(ctx context.Context, workerID string) (*domain.Worker, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Worker), args.Error(1)
}

func (m *MockCatalogRepository) ListWorkers(ctx context.Context, limit int, nextToken *string) ([]domain.Worker, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Worker), args.Get(1).(*string), args.Error(2)
}

func (m *MockCatalogRepository) UpdateWorker(ctx context.Context, worker domain.Worker) error {
	args := m.Called(ctx, worker)
	return args.Error(0)
}

func (m *MockCatalogRepository) SaveJob(ctx context.Context, job domain.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockCatalogRepository) FindJobByID(ctx context.Context, jobID string) (*domain.Job, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockCatalogRepository) ListJobs(ctx context.Context, limit int, nextToken *string) ([]domain.Job, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Job), args.Get(1).(*string), args.Error(2)
}

func (m *MockCatalogRepository) UpdateJob(ctx context.Context, job domain.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockCatalogRepository) SaveService(ctx context.Context, service domain.Service) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

func (m *MockCatalogRepository) FindServiceByID(ctx context.Context, serviceID string) (*domain.Service, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func (m *MockCatalogRepository) ListServices(ctx context.Context, limit int, nextToken *string) ([]domain.Service, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Service), args.Get(1).(*string), args.Error(2)
}

func (m *MockCatalogRepository) UpdateService(ctx context.Context, service domain.Service) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

// --- BudgetRepositoryFacade ---

type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) ListBudgetsByJob(ctx context.Context, jobID string) ([]domain.Budget, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) FindApprovedBudgetByJob(ctx context.Context, jobID string) (*domain.Budget, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) UpdateBudgetStatus(ctx context.Context, budgetID string, status domain.BudgetStatus, approvedDate *time.Time, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, budgetID, status, approvedDate, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockBudgetRepository) UpdateBudgetTotals(ctx context.Context, budgetID string, discount decimal.Decimal, phaseTotals map[string]decimal.Decimal, gross decimal.Decimal, final decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, budgetID, discount, phaseTotals, gross, final, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockBudgetRepository) SavePhase(ctx context.Context, phase domain.Phase) error {
	args := m.Called(ctx, phase)
	return args.Error(0)
}

func (m *MockBudgetRepository) FindPhaseByID(ctx context.Context, phaseID string) (*domain.Phase, error) {
	args := m.Called(ctx, phaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Phase), args.Error(1)
}

func (m *MockBudgetRepository) ListPhasesByBudget(ctx context.Context, budgetID string) ([]domain.Phase, error) {
	args := m.Called(ctx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Phase), args.Error(1)
}

func (m *MockBudgetRepository) UpdatePhaseStatus(ctx context.Context, phaseID string, status domain.PhaseStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, phaseID, status, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockBudgetRepository) DeletePhase(ctx context.Context, phaseID string) error {
	args := m.Called(ctx, phaseID)
	return args.Error(0)
}

func (m *MockBudgetRepository) UpsertLineItem(ctx context.Context, item domain.LineItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockBudgetRepository) ListLineItemsByPhase(ctx context.Context, phaseID string) ([]domain.LineItem, error) {
	args := m.Called(ctx, phaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LineItem), args.Error(1)
}

func (m *MockBudgetRepository) ListLineItemsByBudget(ctx context.Context, budgetID string) ([]domain.LineItem, error) {
	args := m.Called(ctx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LineItem), args.Error(1)
}

func (m *MockBudgetRepository) DeleteLineItem(ctx context.Context, lineItemID string) error {
	args := m.Called(ctx, lineItemID)
	return args.Error(0)
}

// --- WorkEntryRepositoryFacade ---

type MockWorkEntryRepository struct {
	mock.Mock
}

func (m *MockWorkEntryRepository) SaveWorkEntry(ctx context.Context, entry domain.WorkEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockWorkEntryRepository) FindWorkEntryByID(ctx context.Context, workEntryID string) (*domain.WorkEntry, error) {
	args := m.Called(ctx, workEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkEntry), args.Error(1)
}

func (m *MockWorkEntryRepository) UpdateWorkEntry(ctx context.Context, entry domain.WorkEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockWorkEntryRepository) DeleteWorkEntry(ctx context.Context, workEntryID string) error {
	args := m.Called(ctx, workEntryID)
	return args.Error(0)
}

func (m *MockWorkEntryRepository) IsLocked(ctx context.Context, workEntryID string) (bool, error) {
	args := m.Called(ctx, workEntryID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWorkEntryRepository) ListWorkEntriesInRange(ctx context.Context, from, to time.Time, dayTypes []domain.DayType) ([]domain.WorkEntry, error) {
	args := m.Called(ctx, from, to, dayTypes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WorkEntry), args.Error(1)
}

func (m *MockWorkEntryRepository) ListWorkEntriesByJob(ctx context.Context, jobID string, limit int, nextToken *string) ([]domain.WorkEntry, *string, error) {
	args := m.Called(ctx, jobID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.WorkEntry), args.Get(1).(*string), args.Error(2)
}

// --- PaymentRepositoryFacade ---

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) UpsertPaymentWithLines(ctx context.Context, payment domain.Payment, lines []domain.PaymentLine) (bool, error) {
	args := m.Called(ctx, payment, lines)
	return args.Bool(0), args.Error(1)
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindPaymentByKey(ctx context.Context, workerID string, kind domain.PaymentKind, periodStart, periodEnd time.Time) (*domain.Payment, error) {
	args := m.Called(ctx, workerID, kind, periodStart, periodEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindLinesByPaymentID(ctx context.Context, paymentID string) ([]domain.PaymentLine, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentLine), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByWorker(ctx context.Context, workerID string, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	args := m.Called(ctx, workerID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Payment), args.Get(1).(*string), args.Error(2)
}

func (m *MockPaymentRepository) ListPaymentsInPeriod(ctx context.Context, periodStart, periodEnd time.Time) ([]domain.Payment, error) {
	args := m.Called(ctx, periodStart, periodEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) MarkPaid(ctx context.Context, paymentID string, actor string, paidAt time.Time) error {
	args := m.Called(ctx, paymentID, actor, paidAt)
	return args.Error(0)
}

func (m *MockPaymentRepository) ReversePayment(ctx context.Context, paymentID string, actor string, reason string, reversedAt time.Time) error {
	args := m.Called(ctx, paymentID, actor, reason, reversedAt)
	return args.Error(0)
}

func (m *MockPaymentRepository) ListAuditByPaymentID(ctx context.Context, paymentID string) ([]domain.PaymentAudit, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentAudit), args.Error(1)
}

func (m *MockPaymentRepository) RefreshOpenPaymentTotals(ctx context.Context, periodStart, periodEnd time.Time, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, periodStart, periodEnd, updatedBy, updatedAt)
	return args.Error(0)
}

// --- ReceivableRepositoryFacade ---

type MockReceivableRepository struct {
	mock.Mock
}

func (m *MockReceivableRepository) UpsertReceivable(ctx context.Context, receivable domain.Receivable) error {
	args := m.Called(ctx, receivable)
	return args.Error(0)
}

func (m *MockReceivableRepository) FindReceivableByID(ctx context.Context, receivableID string) (*domain.Receivable, error) {
	args := m.Called(ctx, receivableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) FindReceivableByPhase(ctx context.Context, phaseID string) (*domain.Receivable, error) {
	args := m.Called(ctx, phaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) ListReceivablesByBudget(ctx context.Context, budgetID string) ([]domain.Receivable, error) {
	args := m.Called(ctx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) UpdateReceivableStatus(ctx context.Context, receivableID string, status domain.ReceivableStatus, paidAt *time.Time, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, receivableID, status, paidAt, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Calendar ---

// stubCalendar is a deterministic Calendar for tests: fixed today, Monday
// week start, fixed classification per date string.
type stubCalendar struct {
	today    time.Time
	byDate   map[string]domain.DayType
	fallback domain.DayType
}

func (c *stubCalendar) Today() time.Time {
	return c.today
}

func (c *stubCalendar) WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	t = t.AddDate(0, 0, -offset)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (c *stubCalendar) Classify(t time.Time) domain.DayType {
	if dt, ok := c.byDate[t.Format("2006-01-02")]; ok {
		return dt
	}
	if c.fallback != "" {
		return c.fallback
	}
	return domain.DayNormal
}

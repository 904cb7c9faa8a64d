package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	"github.com/sepolpinturas/obras_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PayrollServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo *MockPaymentRepository
	mockWorkRepo    *MockWorkEntryRepository
	service         *services.PayrollService

	monday     time.Time
	weekdayEnd time.Time
	weekEnd    time.Time
}

func (suite *PayrollServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockWorkRepo = new(MockWorkEntryRepository)
	suite.service = services.NewPayrollService(suite.mockPaymentRepo, suite.mockWorkRepo, &stubCalendar{})

	suite.monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	suite.weekdayEnd = suite.monday.AddDate(0, 0, 4)
	suite.weekEnd = suite.monday.AddDate(0, 0, 6)
}

func weekdayTypes() []domain.DayType {
	return []domain.DayType{domain.DayNormal, domain.DayHoliday}
}

func weekendTypes() []domain.DayType {
	return []domain.DayType{domain.DaySaturday, domain.DaySunday}
}

func entryFor(workerID string, date time.Time, dayType domain.DayType, amount int64) domain.WorkEntry {
	return domain.WorkEntry{
		WorkEntryID: uuid.NewString(),
		WorkerID:    workerID,
		JobID:       uuid.NewString(),
		EntryDate:   date,
		DayType:     dayType,
		BaseAmount:  decimal.NewFromInt(amount),
		FinalAmount: decimal.NewFromInt(amount),
	}
}

func (suite *PayrollServiceTestSuite) TestGenerateWeek_OneWeeklyPaymentPerWorker() {
	ctx := context.Background()
	actorID := uuid.NewString()
	workerA := "worker-a"
	workerB := "worker-b"

	weekday := []domain.WorkEntry{
		entryFor(workerA, suite.monday, domain.DayNormal, 100),
		entryFor(workerA, suite.monday.AddDate(0, 0, 1), domain.DayNormal, 150),
		entryFor(workerB, suite.monday.AddDate(0, 0, 2), domain.DayHoliday, 200),
	}

	suite.mockWorkRepo.On("ListWorkEntriesInRange", ctx, suite.monday, suite.weekdayEnd, weekdayTypes()).Return(weekday, nil).Once()
	suite.mockWorkRepo.On("ListWorkEntriesInRange", ctx, suite.monday, suite.weekEnd, weekendTypes()).Return([]domain.WorkEntry{}, nil).Once()

	suite.mockPaymentRepo.On("UpsertPaymentWithLines", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.WorkerID == workerA && p.Kind == domain.PaymentWeekly &&
			p.PeriodStart.Equal(suite.monday) && p.PeriodEnd.Equal(suite.weekdayEnd) &&
			p.Total.Equal(decimal.NewFromInt(250))
	}), mock.MatchedBy(func(lines []domain.PaymentLine) bool { return len(lines) == 2 })).Return(true, nil).Once()
	suite.mockPaymentRepo.On("UpsertPaymentWithLines", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.WorkerID == workerB && p.Kind == domain.PaymentWeekly && p.Total.Equal(decimal.NewFromInt(200))
	}), mock.MatchedBy(func(lines []domain.PaymentLine) bool { return len(lines) == 1 })).Return(true, nil).Once()

	suite.mockPaymentRepo.On("RefreshOpenPaymentTotals", ctx, suite.monday, suite.weekEnd, actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := suite.service.GenerateWeek(ctx, suite.monday, actorID)

	suite.Require().NoError(err)
	suite.Equal("2026-03-02", result.WeekStart)
	suite.Equal(2, result.WeeklyUpserted)
	suite.Equal(0, result.ExtraUpserted)
	suite.Equal(0, result.SkippedPaid)

	suite.mockPaymentRepo.AssertExpectations(suite.T())
	suite.mockWorkRepo.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestGenerateWeek_MidweekDateAnchorsToMonday() {
	ctx := context.Background()
	actorID := uuid.NewString()
	wednesday := suite.monday.AddDate(0, 0, 2)

	suite.mockWorkRepo.On("ListWorkEntriesInRange", ctx, suite.monday, suite.weekdayEnd, weekdayTypes()).Return([]domain.WorkEntry{}, nil).Once()
	suite.mockWorkRepo.On("ListWorkEntriesInRange", ctx, suite.monday, suite.weekEnd, weekendTypes()).Return([]domain.WorkEntry{}, nil).Once()
	suite.mockPaymentRepo.On("RefreshOpenPaymentTotals", ctx, suite.monday, suite.weekEnd, actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := suite.service.GenerateWeek(ctx, wednesday, actorID)

	suite.Require().NoError(err)
	suite.Equal("2026-03-02", result.WeekStart)

	suite.mockWorkRepo.AssertExpectations(suite.T())
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestGenerateWeek_ExtraPaymentPerWorkerPerDay() {
	ctx := context.Background()
	actorID := uuid.NewString()
	workerA := "worker-a"
	saturday := suite.monday.AddDate(0, 0, 5)
	sunday := suite.monday.AddDate(0, 0, 6)

	weekend := []domain.WorkEntry{
		entryFor(workerA, saturday, domain.DaySaturday, 120),
		entryFor(workerA, sunday, domain.DaySunday, 240),
	}

	suite.mockWorkRepo.On("ListWorkEntriesInRange", ctx, suite.monday, suite.weekdayEnd, weekdayTypes()).Return([]domain.WorkEntry{}, nil).Once()
	suite.mockWorkRepo.On("ListWorkEntriesInRange", ctx, suite.monday, suite.weekEnd, weekendTypes()).Return(weekend, nil).Once()

	suite.mockPaymentRepo.On("UpsertPaymentWithLines", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.Kind == domain.PaymentExtra && p.PeriodStart.Equal(saturday) && p.PeriodEnd.Equal(saturday) &&
			p.Total.Equal(decimal.NewFromInt(120))
	}), mock.Anything).Return(true, nil).Once()
	suite.mockPaymentRepo.On("UpsertPaymentWithLines", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.Kind == domain.PaymentExtra && p.PeriodStart.Equal(sunday) && p.PeriodEnd.Equal(sunday) &&
			p.Total.Equal(decimal.NewFromInt(240))
	}), mock.Anything).Return(true, nil).Once()

	suite.mockPaymentRepo.On("RefreshOpenPaymentTotals", ctx, suite.monday, suite.weekEnd, actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := suite.service.GenerateWeek(ctx, suite.monday, actorID)

	suite.Require().NoError(err)
	suite.Equal(0, result.WeeklyUpserted)
	suite.Equal(2, result.ExtraUpserted)

	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PayrollServiceTestSuite) TestGenerateWeek_PaidPaymentsAreSkipped() {
	ctx := context.Background()
	actorID := uuid.NewString()
	workerA := "worker-a"

	weekday := []domain.WorkEntry{
		entryFor(workerA, suite.monday, domain.DayNormal, 100),
	}

	suite.mockWorkRepo.On("ListWorkEntriesInRange", ctx, suite.monday, suite.weekdayEnd, weekdayTypes()).Return(weekday, nil).Once()
	suite.mockWorkRepo.On("ListWorkEntriesInRange", ctx, suite.monday, suite.weekEnd, weekendTypes()).Return([]domain.WorkEntry{}, nil).Once()

	// The upsert reports no change when the stored payment is already PAID.
	frozenID := uuid.NewString()
	suite.mockPaymentRepo.On("UpsertPaymentWithLines", ctx, mock.AnythingOfType("domain.Payment"), mock.Anything).Return(false, nil).Once()
	suite.mockPaymentRepo.On("FindPaymentByKey", ctx, workerA, domain.PaymentWeekly, suite.monday, suite.weekdayEnd).
		Return(&domain.Payment{PaymentID: frozenID, WorkerID: workerA, Kind: domain.PaymentWeekly, Status: domain.PaymentPaid}, nil).Once()
	suite.mockPaymentRepo.On("RefreshOpenPaymentTotals", ctx, suite.monday, suite.weekEnd, actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	result, err := suite.service.GenerateWeek(ctx, suite.monday, actorID)

	suite.Require().NoError(err)
	suite.Equal(0, result.WeeklyUpserted)
	suite.Equal(1, result.SkippedPaid)
	suite.Equal([]string{frozenID}, result.SkippedPaymentIDs)

	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func TestPayrollService(t *testing.T) {
	suite.Run(t, new(PayrollServiceTestSuite))
}

package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sepolpinturas/obras_backend/internal/apperrors"
	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	"github.com/sepolpinturas/obras_backend/internal/core/services"
	"github.com/sepolpinturas/obras_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type WorkLedgerServiceTestSuite struct {
	suite.Suite
	mockWorkRepo    *MockWorkEntryRepository
	mockCatalogRepo *MockCatalogRepository
	calendar        *stubCalendar
	service         *services.WorkLedgerService
}

func (suite *WorkLedgerServiceTestSuite) SetupTest() {
	suite.mockWorkRepo = new(MockWorkEntryRepository)
	suite.mockCatalogRepo = new(MockCatalogRepository)
	suite.calendar = &stubCalendar{byDate: map[string]domain.DayType{}}
	policy := domain.SurchargePolicy{
		domain.DaySaturday: decimal.NewFromInt(50),
		domain.DaySunday:   decimal.NewFromInt(100),
		domain.DayHoliday:  decimal.NewFromInt(100),
	}
	suite.service = services.NewWorkLedgerService(suite.mockWorkRepo, suite.mockCatalogRepo, suite.calendar, policy)
}

func (suite *WorkLedgerServiceTestSuite) expectActiveWorkerAndOpenJob(ctx context.Context, workerID, jobID string) {
	suite.mockCatalogRepo.On("FindWorkerByID", ctx, workerID).Return(&domain.Worker{WorkerID: workerID, IsActive: true}, nil).Once()
	suite.mockCatalogRepo.On("FindJobByID", ctx, jobID).Return(&domain.Job{JobID: jobID, Status: domain.JobOpen}, nil).Once()
}

func (suite *WorkLedgerServiceTestSuite) TestRecordWork_CalendarClassifiesSunday() {
	ctx := context.Background()
	actorID := uuid.NewString()
	workerID := uuid.NewString()
	jobID := uuid.NewString()
	suite.calendar.byDate["2026-03-08"] = domain.DaySunday

	req := dto.RecordWorkRequest{
		JobID:      jobID,
		WorkerID:   workerID,
		Date:       "2026-03-08",
		BaseAmount: decimal.NewFromInt(200),
		Discount:   decimal.NewFromInt(50),
	}

	suite.expectActiveWorkerAndOpenJob(ctx, workerID, jobID)
	suite.mockWorkRepo.On("SaveWorkEntry", ctx, mock.MatchedBy(func(e domain.WorkEntry) bool {
		return e.DayType == domain.DaySunday &&
			e.SurchargePct.Equal(decimal.NewFromInt(100)) &&
			e.FinalAmount.Equal(decimal.NewFromInt(350))
	})).Return(nil).Once()

	entry, err := suite.service.RecordWork(ctx, req, actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Equal(domain.DaySunday, entry.DayType)
	suite.True(entry.FinalAmount.Equal(decimal.NewFromInt(350)))
	suite.Equal(actorID, entry.CreatedBy)

	suite.mockWorkRepo.AssertExpectations(suite.T())
	suite.mockCatalogRepo.AssertExpectations(suite.T())
}

func (suite *WorkLedgerServiceTestSuite) TestRecordWork_ExplicitDayTypeWins() {
	ctx := context.Background()
	workerID := uuid.NewString()
	jobID := uuid.NewString()
	suite.calendar.byDate["2026-03-09"] = domain.DayHoliday

	normal := domain.DayNormal
	req := dto.RecordWorkRequest{
		JobID:      jobID,
		WorkerID:   workerID,
		Date:       "2026-03-09",
		DayType:    &normal,
		BaseAmount: decimal.NewFromInt(180),
	}

	suite.expectActiveWorkerAndOpenJob(ctx, workerID, jobID)
	suite.mockWorkRepo.On("SaveWorkEntry", ctx, mock.MatchedBy(func(e domain.WorkEntry) bool {
		return e.DayType == domain.DayNormal && e.SurchargePct.IsZero() && e.FinalAmount.Equal(decimal.NewFromInt(180))
	})).Return(nil).Once()

	entry, err := suite.service.RecordWork(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.DayNormal, entry.DayType)

	suite.mockWorkRepo.AssertExpectations(suite.T())
}

func (suite *WorkLedgerServiceTestSuite) TestRecordWork_InvalidDate() {
	ctx := context.Background()
	req := dto.RecordWorkRequest{
		JobID:      uuid.NewString(),
		WorkerID:   uuid.NewString(),
		Date:       "08/03/2026",
		BaseAmount: decimal.NewFromInt(100),
	}

	entry, err := suite.service.RecordWork(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockWorkRepo.AssertNotCalled(suite.T(), "SaveWorkEntry", mock.Anything, mock.Anything)
}

func (suite *WorkLedgerServiceTestSuite) TestRecordWork_InactiveWorker() {
	ctx := context.Background()
	workerID := uuid.NewString()
	req := dto.RecordWorkRequest{
		JobID:      uuid.NewString(),
		WorkerID:   workerID,
		Date:       "2026-03-10",
		BaseAmount: decimal.NewFromInt(100),
	}

	suite.mockCatalogRepo.On("FindWorkerByID", ctx, workerID).Return(&domain.Worker{WorkerID: workerID, IsActive: false}, nil).Once()

	entry, err := suite.service.RecordWork(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *WorkLedgerServiceTestSuite) TestRecordWork_ArchivedJob() {
	ctx := context.Background()
	workerID := uuid.NewString()
	jobID := uuid.NewString()
	req := dto.RecordWorkRequest{
		JobID:      jobID,
		WorkerID:   workerID,
		Date:       "2026-03-10",
		BaseAmount: decimal.NewFromInt(100),
	}

	suite.mockCatalogRepo.On("FindWorkerByID", ctx, workerID).Return(&domain.Worker{WorkerID: workerID, IsActive: true}, nil).Once()
	suite.mockCatalogRepo.On("FindJobByID", ctx, jobID).Return(&domain.Job{JobID: jobID, Status: domain.JobArchived}, nil).Once()

	entry, err := suite.service.RecordWork(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockWorkRepo.AssertNotCalled(suite.T(), "SaveWorkEntry", mock.Anything, mock.Anything)
}

func (suite *WorkLedgerServiceTestSuite) TestRecordWork_DuplicateDay() {
	ctx := context.Background()
	workerID := uuid.NewString()
	jobID := uuid.NewString()
	req := dto.RecordWorkRequest{
		JobID:      jobID,
		WorkerID:   workerID,
		Date:       "2026-03-10",
		BaseAmount: decimal.NewFromInt(100),
	}

	suite.expectActiveWorkerAndOpenJob(ctx, workerID, jobID)
	suite.mockWorkRepo.On("SaveWorkEntry", ctx, mock.AnythingOfType("domain.WorkEntry")).Return(apperrors.ErrDuplicate).Once()

	entry, err := suite.service.RecordWork(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *WorkLedgerServiceTestSuite) TestUpdateWork_Locked() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockWorkRepo.On("FindWorkEntryByID", ctx, entryID).Return(&domain.WorkEntry{WorkEntryID: entryID}, nil).Once()
	suite.mockWorkRepo.On("IsLocked", ctx, entryID).Return(true, nil).Once()

	entry, err := suite.service.UpdateWork(ctx, entryID, dto.UpdateWorkRequest{}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrLocked)
	suite.mockWorkRepo.AssertNotCalled(suite.T(), "UpdateWorkEntry", mock.Anything, mock.Anything)
}

func (suite *WorkLedgerServiceTestSuite) TestUpdateWork_DayTypeChangeRecomputes() {
	ctx := context.Background()
	actorID := uuid.NewString()
	entryID := uuid.NewString()
	existing := &domain.WorkEntry{
		WorkEntryID:  entryID,
		DayType:      domain.DayNormal,
		BaseAmount:   decimal.NewFromInt(200),
		SurchargePct: decimal.Zero,
		Discount:     decimal.NewFromInt(20),
		FinalAmount:  decimal.NewFromInt(180),
	}

	sunday := domain.DaySunday
	req := dto.UpdateWorkRequest{DayType: &sunday}

	suite.mockWorkRepo.On("FindWorkEntryByID", ctx, entryID).Return(existing, nil).Once()
	suite.mockWorkRepo.On("IsLocked", ctx, entryID).Return(false, nil).Once()
	suite.mockWorkRepo.On("UpdateWorkEntry", ctx, mock.MatchedBy(func(e domain.WorkEntry) bool {
		return e.DayType == domain.DaySunday &&
			e.SurchargePct.Equal(decimal.NewFromInt(100)) &&
			e.FinalAmount.Equal(decimal.NewFromInt(380))
	})).Return(nil).Once()

	entry, err := suite.service.UpdateWork(ctx, entryID, req, actorID)

	suite.Require().NoError(err)
	suite.True(entry.FinalAmount.Equal(decimal.NewFromInt(380)))
	suite.Equal(actorID, entry.LastUpdatedBy)

	suite.mockWorkRepo.AssertExpectations(suite.T())
}

func (suite *WorkLedgerServiceTestSuite) TestDeleteWork_Locked() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockWorkRepo.On("FindWorkEntryByID", ctx, entryID).Return(&domain.WorkEntry{WorkEntryID: entryID}, nil).Once()
	suite.mockWorkRepo.On("IsLocked", ctx, entryID).Return(true, nil).Once()

	err := suite.service.DeleteWork(ctx, entryID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrLocked)
	suite.mockWorkRepo.AssertNotCalled(suite.T(), "DeleteWorkEntry", mock.Anything, mock.Anything)
}

func (suite *WorkLedgerServiceTestSuite) TestDeleteWork_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockWorkRepo.On("FindWorkEntryByID", ctx, entryID).Return(&domain.WorkEntry{WorkEntryID: entryID}, nil).Once()
	suite.mockWorkRepo.On("IsLocked", ctx, entryID).Return(false, nil).Once()
	suite.mockWorkRepo.On("DeleteWorkEntry", ctx, entryID).Return(nil).Once()

	err := suite.service.DeleteWork(ctx, entryID, uuid.NewString())

	suite.Require().NoError(err)
	suite.mockWorkRepo.AssertExpectations(suite.T())
}

func (suite *WorkLedgerServiceTestSuite) TestGetWorkEntry_ReturnsLockState() {
	ctx := context.Background()
	entryID := uuid.NewString()

	suite.mockWorkRepo.On("FindWorkEntryByID", ctx, entryID).Return(&domain.WorkEntry{WorkEntryID: entryID}, nil).Once()
	suite.mockWorkRepo.On("IsLocked", ctx, entryID).Return(true, nil).Once()

	entry, locked, err := suite.service.GetWorkEntry(ctx, entryID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.True(locked)
}

func TestWorkLedgerService(t *testing.T) {
	suite.Run(t, new(WorkLedgerServiceTestSuite))
}

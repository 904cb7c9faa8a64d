package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sepolpinturas/obras_backend/internal/apperrors"
	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	"github.com/sepolpinturas/obras_backend/internal/core/services"
	"github.com/sepolpinturas/obras_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReceivableServiceTestSuite struct {
	suite.Suite
	mockReceivableRepo *MockReceivableRepository
	mockBudgetRepo     *MockBudgetRepository
	service            *services.ReceivableService
}

func (suite *ReceivableServiceTestSuite) SetupTest() {
	suite.mockReceivableRepo = new(MockReceivableRepository)
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.service = services.NewReceivableService(suite.mockReceivableRepo, suite.mockBudgetRepo)
}

func (suite *ReceivableServiceTestSuite) TestUpsertReceivable_CreatesForPhase() {
	ctx := context.Background()
	actorID := uuid.NewString()
	phaseID := uuid.NewString()
	req := dto.UpsertReceivableRequest{
		BaseValue: decimal.NewFromInt(1500),
		Surcharge: decimal.NewFromInt(150),
		DueDate:   "2026-04-10",
	}

	saved := &domain.Receivable{
		ReceivableID: uuid.NewString(),
		PhaseID:      phaseID,
		Status:       domain.ReceivableOpen,
		BaseValue:    req.BaseValue,
		Surcharge:    req.Surcharge,
		DueDate:      time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
	}

	suite.mockBudgetRepo.On("FindPhaseByID", ctx, phaseID).Return(&domain.Phase{PhaseID: phaseID}, nil).Once()
	suite.mockReceivableRepo.On("FindReceivableByPhase", ctx, phaseID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockReceivableRepo.On("UpsertReceivable", ctx, mock.MatchedBy(func(r domain.Receivable) bool {
		return r.PhaseID == phaseID && r.Status == domain.ReceivableOpen && r.BaseValue.Equal(decimal.NewFromInt(1500))
	})).Return(nil).Once()
	suite.mockReceivableRepo.On("FindReceivableByPhase", ctx, phaseID).Return(saved, nil).Once()

	receivable, err := suite.service.UpsertReceivable(ctx, phaseID, req, actorID)

	suite.Require().NoError(err)
	suite.Equal(saved, receivable)

	suite.mockReceivableRepo.AssertExpectations(suite.T())
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestUpsertReceivable_InvalidDueDate() {
	ctx := context.Background()
	req := dto.UpsertReceivableRequest{BaseValue: decimal.NewFromInt(100), DueDate: "10/04/2026"}

	receivable, err := suite.service.UpsertReceivable(ctx, uuid.NewString(), req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(receivable)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReceivableServiceTestSuite) TestUpsertReceivable_NegativeValue() {
	ctx := context.Background()
	req := dto.UpsertReceivableRequest{BaseValue: decimal.NewFromInt(-10), DueDate: "2026-04-10"}

	receivable, err := suite.service.UpsertReceivable(ctx, uuid.NewString(), req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(receivable)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReceivableRepo.AssertNotCalled(suite.T(), "UpsertReceivable", mock.Anything, mock.Anything)
}

func (suite *ReceivableServiceTestSuite) TestUpsertReceivable_ExistingNotOpen() {
	ctx := context.Background()
	phaseID := uuid.NewString()
	req := dto.UpsertReceivableRequest{BaseValue: decimal.NewFromInt(100), DueDate: "2026-04-10"}

	suite.mockBudgetRepo.On("FindPhaseByID", ctx, phaseID).Return(&domain.Phase{PhaseID: phaseID}, nil).Once()
	suite.mockReceivableRepo.On("FindReceivableByPhase", ctx, phaseID).Return(&domain.Receivable{
		ReceivableID: uuid.NewString(),
		PhaseID:      phaseID,
		Status:       domain.ReceivablePaid,
	}, nil).Once()

	receivable, err := suite.service.UpsertReceivable(ctx, phaseID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(receivable)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockReceivableRepo.AssertNotCalled(suite.T(), "UpsertReceivable", mock.Anything, mock.Anything)
}

func (suite *ReceivableServiceTestSuite) TestUpsertReceivable_PhaseNotFound() {
	ctx := context.Background()
	phaseID := uuid.NewString()
	req := dto.UpsertReceivableRequest{BaseValue: decimal.NewFromInt(100), DueDate: "2026-04-10"}

	suite.mockBudgetRepo.On("FindPhaseByID", ctx, phaseID).Return(nil, apperrors.ErrNotFound).Once()

	receivable, err := suite.service.UpsertReceivable(ctx, phaseID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(receivable)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReceivableServiceTestSuite) TestMarkReceivablePaid_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()
	receivableID := uuid.NewString()

	suite.mockReceivableRepo.On("FindReceivableByID", ctx, receivableID).Return(&domain.Receivable{
		ReceivableID: receivableID,
		Status:       domain.ReceivableOpen,
	}, nil).Once()
	suite.mockReceivableRepo.On("UpdateReceivableStatus", ctx, receivableID, domain.ReceivablePaid, mock.AnythingOfType("*time.Time"), actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	receivable, err := suite.service.MarkReceivablePaid(ctx, receivableID, actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.ReceivablePaid, receivable.Status)
	suite.Require().NotNil(receivable.PaidAt)
	suite.WithinDuration(time.Now(), *receivable.PaidAt, time.Second)

	suite.mockReceivableRepo.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestMarkReceivablePaid_NotOpen() {
	ctx := context.Background()
	receivableID := uuid.NewString()

	suite.mockReceivableRepo.On("FindReceivableByID", ctx, receivableID).Return(&domain.Receivable{
		ReceivableID: receivableID,
		Status:       domain.ReceivableCancelled,
	}, nil).Once()

	receivable, err := suite.service.MarkReceivablePaid(ctx, receivableID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(receivable)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockReceivableRepo.AssertNotCalled(suite.T(), "UpdateReceivableStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReceivableServiceTestSuite) TestCancelReceivable_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()
	receivableID := uuid.NewString()

	suite.mockReceivableRepo.On("FindReceivableByID", ctx, receivableID).Return(&domain.Receivable{
		ReceivableID: receivableID,
		Status:       domain.ReceivableOpen,
	}, nil).Once()
	suite.mockReceivableRepo.On("UpdateReceivableStatus", ctx, receivableID, domain.ReceivableCancelled, (*time.Time)(nil), actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	receivable, err := suite.service.CancelReceivable(ctx, receivableID, actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.ReceivableCancelled, receivable.Status)
	suite.Nil(receivable.PaidAt)

	suite.mockReceivableRepo.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestCancelReceivable_PaidIsCancellable() {
	ctx := context.Background()
	actorID := uuid.NewString()
	receivableID := uuid.NewString()
	paidAt := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	suite.mockReceivableRepo.On("FindReceivableByID", ctx, receivableID).Return(&domain.Receivable{
		ReceivableID: receivableID,
		Status:       domain.ReceivablePaid,
		PaidAt:       &paidAt,
	}, nil).Once()
	suite.mockReceivableRepo.On("UpdateReceivableStatus", ctx, receivableID, domain.ReceivableCancelled, (*time.Time)(nil), actorID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	receivable, err := suite.service.CancelReceivable(ctx, receivableID, actorID)

	suite.Require().NoError(err)
	suite.Equal(domain.ReceivableCancelled, receivable.Status)
	suite.Nil(receivable.PaidAt)

	suite.mockReceivableRepo.AssertExpectations(suite.T())
}

func (suite *ReceivableServiceTestSuite) TestCancelReceivable_AlreadyCancelledIsNoOp() {
	ctx := context.Background()
	receivableID := uuid.NewString()
	existing := &domain.Receivable{ReceivableID: receivableID, Status: domain.ReceivableCancelled}

	suite.mockReceivableRepo.On("FindReceivableByID", ctx, receivableID).Return(existing, nil).Once()

	receivable, err := suite.service.CancelReceivable(ctx, receivableID, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(existing, receivable)
	suite.mockReceivableRepo.AssertNotCalled(suite.T(), "UpdateReceivableStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReceivableServiceTestSuite) TestListReceivablesByBudget_BudgetNotFound() {
	ctx := context.Background()
	budgetID := uuid.NewString()

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budgetID).Return(nil, apperrors.ErrNotFound).Once()

	receivables, err := suite.service.ListReceivablesByBudget(ctx, budgetID)

	suite.Require().Error(err)
	suite.Nil(receivables)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestReceivableService(t *testing.T) {
	suite.Run(t, new(ReceivableServiceTestSuite))
}

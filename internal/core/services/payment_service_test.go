package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sepolpinturas/obras_backend/internal/apperrors"
	"github.com/sepolpinturas/obras_backend/internal/core/domain"
	"github.com/sepolpinturas/obras_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	mockRepo *MockPaymentRepository
	service  *services.PaymentService
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockPaymentRepository)
	suite.service = services.NewPaymentService(suite.mockRepo)
}

func (suite *PaymentServiceTestSuite) TestGetPayment_LoadsLines() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	stored := &domain.Payment{
		PaymentID: paymentID,
		Status:    domain.PaymentOpen,
		Total:     decimal.NewFromInt(300),
		Lines: []domain.PaymentLine{
			{PaymentLineID: uuid.NewString(), PaymentID: paymentID, Amount: decimal.NewFromInt(100)},
			{PaymentLineID: uuid.NewString(), PaymentID: paymentID, Amount: decimal.NewFromInt(200)},
		},
	}

	suite.mockRepo.On("FindPaymentByID", ctx, paymentID).Return(stored, nil).Once()

	payment, err := suite.service.GetPayment(ctx, paymentID)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.Len(payment.Lines, 2)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindLinesByPaymentID", mock.Anything, mock.Anything)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestMarkPaid_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()
	paymentID := uuid.NewString()
	paidDate := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("MarkPaid", ctx, paymentID, actorID, paidDate).Return(nil).Once()
	suite.mockRepo.On("FindPaymentByID", ctx, paymentID).Return(&domain.Payment{PaymentID: paymentID, Status: domain.PaymentPaid}, nil).Once()

	payment, err := suite.service.MarkPaid(ctx, paymentID, actorID, paidDate)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPaid, payment.Status)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestMarkPaid_AlreadyPaid() {
	ctx := context.Background()
	paymentID := uuid.NewString()

	suite.mockRepo.On("MarkPaid", ctx, paymentID, mock.Anything, mock.AnythingOfType("time.Time")).Return(apperrors.ErrAlreadyPaid).Once()

	payment, err := suite.service.MarkPaid(ctx, paymentID, uuid.NewString(), time.Now())

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrAlreadyPaid)
}

func (suite *PaymentServiceTestSuite) TestReverse_ReasonRequired() {
	ctx := context.Background()

	payment, err := suite.service.Reverse(ctx, uuid.NewString(), uuid.NewString(), "   ")

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ReversePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestReverse_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()
	paymentID := uuid.NewString()
	reason := "valor errado no apontamento"

	suite.mockRepo.On("ReversePayment", ctx, paymentID, actorID, reason, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockRepo.On("FindPaymentByID", ctx, paymentID).Return(&domain.Payment{PaymentID: paymentID, Status: domain.PaymentOpen}, nil).Once()

	payment, err := suite.service.Reverse(ctx, paymentID, actorID, reason)

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentOpen, payment.Status)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestReverse_NotPaid() {
	ctx := context.Background()
	paymentID := uuid.NewString()

	suite.mockRepo.On("ReversePayment", ctx, paymentID, mock.Anything, mock.Anything, mock.AnythingOfType("time.Time")).Return(apperrors.ErrNotPaid).Once()

	payment, err := suite.service.Reverse(ctx, paymentID, uuid.NewString(), "motivo qualquer")

	suite.Require().Error(err)
	suite.Nil(payment)
	suite.ErrorIs(err, apperrors.ErrNotPaid)
}

func (suite *PaymentServiceTestSuite) TestListPaymentsInPeriod_EndBeforeStart() {
	ctx := context.Background()
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	payments, err := suite.service.ListPaymentsInPeriod(ctx, start, start.AddDate(0, 0, -1))

	suite.Require().Error(err)
	suite.Nil(payments)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListPaymentsInPeriod", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestListAudit_PaymentNotFound() {
	ctx := context.Background()
	paymentID := uuid.NewString()

	suite.mockRepo.On("FindPaymentByID", ctx, paymentID).Return(nil, apperrors.ErrNotFound).Once()

	audit, err := suite.service.ListAudit(ctx, paymentID)

	suite.Require().Error(err)
	suite.Nil(audit)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListAuditByPaymentID", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestListAudit_Success() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	records := []domain.PaymentAudit{
		{AuditID: uuid.NewString(), PaymentID: paymentID, Action: domain.PaymentActionPaid},
		{AuditID: uuid.NewString(), PaymentID: paymentID, Action: domain.PaymentActionReversed, Reason: "duplicado"},
	}

	suite.mockRepo.On("FindPaymentByID", ctx, paymentID).Return(&domain.Payment{PaymentID: paymentID}, nil).Once()
	suite.mockRepo.On("ListAuditByPaymentID", ctx, paymentID).Return(records, nil).Once()

	audit, err := suite.service.ListAudit(ctx, paymentID)

	suite.Require().NoError(err)
	suite.Len(audit, 2)

	suite.mockRepo.AssertExpectations(suite.T())
}

func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}

package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/afriramp/afri_ramp_app/internal/apperrors"
	"github.com/afriramp/afri_ramp_app/internal/core/domain"
	"github.com/afriramp/afri_ramp_app/internal/core/ports"
	portssvc "github.com/afriramp/afri_ramp_app/internal/core/ports/services"
	"github.com/afriramp/afri_ramp_app/internal/core/services"
	"github.com/afriramp/afri_ramp_app/internal/dto"
	"github.com/afriramp/afri_ramp_app/pkg/money"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockWalletRepo   *MockWalletRepository
	mockConvRepo     *MockConversionRepository
	mockRateSvc      *MockExchangeRateSvc
	mockFeeSvc       *MockFeeSvc
	mockTrustlineSvc *MockTrustlineSvc
	service          portssvc.TransactionSvcFacade
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockWalletRepo = new(MockWalletRepository)
	suite.mockConvRepo = new(MockConversionRepository)
	suite.mockRateSvc = new(MockExchangeRateSvc)
	suite.mockFeeSvc = new(MockFeeSvc)
	suite.mockTrustlineSvc = new(MockTrustlineSvc)
	suite.service = services.NewTransactionService(
		suite.mockTxnRepo,
		suite.mockWalletRepo,
		suite.mockConvRepo,
		suite.mockRateSvc,
		suite.mockFeeSvc,
		suite.mockTrustlineSvc,
	)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_OnrampSuccess() {
	ctx := context.Background()
	wallet := "GABC123"
	req := dto.CreateTransactionRequest{
		WalletAddress: wallet,
		Type:          "onramp",
		FromCurrency:  "kes",
		ToCurrency:    "afri",
		FromAmount:    money.MustFromString("5000"),
	}

	fee := &domain.FeeBreakdown{
		RuleID:        uuid.NewString(),
		PercentageFee: money.MustFromString("75"),
		FlatFee:       money.Zero(),
		TotalFee:      money.MustFromString("75"),
	}
	conv := &domain.AfriConversion{
		FromCurrency: "KES",
		ToCurrency:   "AFRI",
		FromAmount:   money.MustFromString("4925"),
		ToAmount:     money.MustFromString("36.3465"),
	}

	suite.mockWalletRepo.On("EnsureWallet", ctx, wallet).Return(nil).Once()
	suite.mockFeeSvc.On("ResolveFee", ctx, domain.Onramp, "KES", (*string)(nil),
		money.MustFromString("5000"), mock.AnythingOfType("time.Time")).Return(fee, nil).Once()
	// The net of fees is quoted; the audit row and the transaction travel
	// to the store together.
	suite.mockRateSvc.On("Quote", ctx, "KES", "AFRI", money.MustFromString("4925")).
		Return(conv, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Status == domain.TxPending &&
			t.FeeAmount.Equal(money.MustFromString("75")) &&
			t.AfriAmount.Equal(money.MustFromString("36.3465"))
	}), mock.MatchedBy(func(c *domain.AfriConversion) bool {
		return c != nil && c.TransactionID != nil
	}), (*domain.BillPaymentDetail)(nil)).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(domain.TxPending, txn.Status)
	suite.True(txn.ToAmount.Equal(money.MustFromString("36.3465")))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_FailedSaveLeavesNoAuditRow() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		WalletAddress: "GABC123",
		Type:          "onramp",
		FromCurrency:  "KES",
		ToCurrency:    "AFRI",
		FromAmount:    money.MustFromString("5000"),
	}
	fee := &domain.FeeBreakdown{TotalFee: money.MustFromString("75")}
	conv := &domain.AfriConversion{
		FromCurrency: "KES",
		ToCurrency:   "AFRI",
		FromAmount:   money.MustFromString("4925"),
		ToAmount:     money.MustFromString("36.3465"),
	}

	suite.mockWalletRepo.On("EnsureWallet", ctx, "GABC123").Return(nil).Once()
	suite.mockFeeSvc.On("ResolveFee", ctx, domain.Onramp, "KES", (*string)(nil),
		money.MustFromString("5000"), mock.AnythingOfType("time.Time")).Return(fee, nil).Once()
	suite.mockRateSvc.On("Quote", ctx, "KES", "AFRI", money.MustFromString("4925")).
		Return(conv, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("connection reset")).Once()

	txn, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	// The audit write rides inside SaveTransaction's DB transaction; a
	// failed save must not leave a conversion keyed to the doomed ID.
	suite.mockConvRepo.AssertNotCalled(suite.T(), "SaveConversion", mock.Anything, mock.Anything)
	suite.mockRateSvc.AssertNotCalled(suite.T(), "Convert")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_FeeExceedsAmount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		WalletAddress: "GABC123",
		Type:          "onramp",
		FromCurrency:  "KES",
		ToCurrency:    "AFRI",
		FromAmount:    money.MustFromString("1"),
	}
	fee := &domain.FeeBreakdown{TotalFee: money.MustFromString("5")}

	suite.mockWalletRepo.On("EnsureWallet", ctx, "GABC123").Return(nil).Once()
	suite.mockFeeSvc.On("ResolveFee", ctx, domain.Onramp, "KES", (*string)(nil),
		money.MustFromString("1"), mock.AnythingOfType("time.Time")).Return(fee, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.mockRateSvc.AssertNotCalled(suite.T(), "Quote")
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_BillPaymentRequiresBiller() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		WalletAddress: "GABC123",
		Type:          "bill_payment",
		FromCurrency:  "AFRI",
		ToCurrency:    "KES",
		FromAmount:    money.MustFromString("10"),
	}

	txn, err := suite.service.CreateTransaction(ctx, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.mockWalletRepo.AssertNotCalled(suite.T(), "EnsureWallet")
}

func (suite *TransactionServiceTestSuite) TestMarkProcessing_GuardedTransition() {
	ctx := context.Background()
	id := uuid.NewString()
	provider := "paystack"
	reference := "ref_123"
	updated := &domain.Transaction{ID: id, Status: domain.TxProcessing}

	suite.mockTxnRepo.On("TransitionStatus", ctx, id,
		[]domain.TransactionStatus{domain.TxPending}, domain.TxProcessing,
		mock.AnythingOfType("ports.TransactionUpdate")).Return(updated, nil).Once()

	txn, err := suite.service.MarkProcessing(ctx, id, dto.ProcessingDetails{
		PaymentProvider:  &provider,
		PaymentReference: &reference,
	})

	suite.Require().NoError(err)
	suite.Equal(domain.TxProcessing, txn.Status)
}

func (suite *TransactionServiceTestSuite) TestComplete_RequiresTrustlineForAfriDelivery() {
	ctx := context.Background()
	id := uuid.NewString()
	stored := &domain.Transaction{
		ID:            id,
		WalletAddress: "GNOTRUST",
		ToCurrency:    "AFRI",
		Status:        domain.TxProcessing,
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, id).Return(stored, nil).Once()
	suite.mockTrustlineSvc.On("HasConfirmedTrustline", ctx, "GNOTRUST").Return(false, nil).Once()

	txn, err := suite.service.Complete(ctx, id, dto.SettlementDetails{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrTrustlineRequired)
	suite.Nil(txn)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "TransitionStatus")
}

func (suite *TransactionServiceTestSuite) TestComplete_OfframpSkipsTrustlineCheck() {
	ctx := context.Background()
	id := uuid.NewString()
	stored := &domain.Transaction{
		ID:            id,
		WalletAddress: "GABC123",
		ToCurrency:    "KES",
		Status:        domain.TxProcessing,
	}
	completed := &domain.Transaction{ID: id, Status: domain.TxCompleted}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, id).Return(stored, nil).Once()
	suite.mockTxnRepo.On("TransitionStatus", ctx, id,
		[]domain.TransactionStatus{domain.TxProcessing}, domain.TxCompleted,
		mock.AnythingOfType("ports.TransactionUpdate")).Return(completed, nil).Once()

	txn, err := suite.service.Complete(ctx, id, dto.SettlementDetails{})

	suite.Require().NoError(err)
	suite.Equal(domain.TxCompleted, txn.Status)
	suite.mockTrustlineSvc.AssertNotCalled(suite.T(), "HasConfirmedTrustline")
}

func (suite *TransactionServiceTestSuite) TestComplete_TerminalStateRejected() {
	ctx := context.Background()
	id := uuid.NewString()
	stored := &domain.Transaction{
		ID:         id,
		ToCurrency: "KES",
		Status:     domain.TxFailed,
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, id).Return(stored, nil).Once()
	suite.mockTxnRepo.On("TransitionStatus", ctx, id,
		[]domain.TransactionStatus{domain.TxProcessing}, domain.TxCompleted,
		mock.AnythingOfType("ports.TransactionUpdate")).
		Return(nil, apperrors.ErrInvalidTransition).Once()

	txn, err := suite.service.Complete(ctx, id, dto.SettlementDetails{})

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.True(services.IsInvalidTransition(err))
}

func (suite *TransactionServiceTestSuite) TestFail_FromPendingOrProcessing() {
	ctx := context.Background()
	id := uuid.NewString()
	failed := &domain.Transaction{ID: id, Status: domain.TxFailed}

	suite.mockTxnRepo.On("TransitionStatus", ctx, id,
		[]domain.TransactionStatus{domain.TxPending, domain.TxProcessing}, domain.TxFailed,
		mock.MatchedBy(func(u ports.TransactionUpdate) bool {
			return u.ErrorMessage != nil && *u.ErrorMessage == "card declined"
		})).Return(failed, nil).Once()

	txn, err := suite.service.Fail(ctx, id, "card declined")

	suite.Require().NoError(err)
	suite.Equal(domain.TxFailed, txn.Status)
}

func (suite *TransactionServiceTestSuite) TestListConversions_ReturnsAuditRows() {
	ctx := context.Background()
	id := uuid.NewString()
	txn := &domain.Transaction{ID: id, Status: domain.TxPending}
	rows := []domain.AfriConversion{
		{ID: uuid.NewString(), TransactionID: &id, FromCurrency: "KES", ToCurrency: "AFRI"},
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, id).Return(txn, nil).Once()
	suite.mockConvRepo.On("FindConversionsByTransaction", ctx, id).Return(rows, nil).Once()

	convs, err := suite.service.ListConversions(ctx, id)

	suite.Require().NoError(err)
	suite.Len(convs, 1)
	suite.Equal(id, *convs[0].TransactionID)
}

func (suite *TransactionServiceTestSuite) TestListConversions_UnknownTransaction() {
	ctx := context.Background()
	id := uuid.NewString()

	suite.mockTxnRepo.On("FindTransactionByID", ctx, id).
		Return(nil, apperrors.NewNotFoundError("transaction not found")).Once()

	convs, err := suite.service.ListConversions(ctx, id)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(convs)
	suite.mockConvRepo.AssertNotCalled(suite.T(), "FindConversionsByTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestGetBillPayment_RejectsOtherTypes() {
	ctx := context.Background()
	id := uuid.NewString()
	txn := &domain.Transaction{ID: id, Type: domain.Onramp, Status: domain.TxPending}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, id).Return(txn, nil).Once()

	detail, err := suite.service.GetBillPayment(ctx, id)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(detail)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "FindBillPaymentByTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestGetBillPayment_ReturnsDetailRow() {
	ctx := context.Background()
	id := uuid.NewString()
	txn := &domain.Transaction{ID: id, Type: domain.BillPayment, Status: domain.TxPending}
	detail := &domain.BillPaymentDetail{
		ID:            uuid.NewString(),
		TransactionID: id,
		BillerCode:    "KPLC",
		CustomerRef:   "12345678",
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, id).Return(txn, nil).Once()
	suite.mockTxnRepo.On("FindBillPaymentByTransaction", ctx, id).Return(detail, nil).Once()

	got, err := suite.service.GetBillPayment(ctx, id)

	suite.Require().NoError(err)
	suite.Equal("KPLC", got.BillerCode)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}

package services_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/afriramp/afri_ramp_app/internal/apperrors"
	"github.com/afriramp/afri_ramp_app/internal/core/domain"
	portssvc "github.com/afriramp/afri_ramp_app/internal/core/ports/services"
	"github.com/afriramp/afri_ramp_app/internal/core/services"
	"github.com/afriramp/afri_ramp_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testSecret = "whsec_test"

func signPayload(payload []byte) string {
	mac := hmac.New(sha512.New, []byte(testSecret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

type WebhookServiceTestSuite struct {
	suite.Suite
	mockWebhookRepo *MockWebhookRepository
	mockTxnSvc      *MockTransactionSvc
	service         portssvc.WebhookSvcFacade
}

func (suite *WebhookServiceTestSuite) SetupTest() {
	suite.mockWebhookRepo = new(MockWebhookRepository)
	suite.mockTxnSvc = new(MockTransactionSvc)
	verifier := services.NewHMACVerifier(map[string]string{"paystack": testSecret})
	suite.service = services.NewWebhookService(
		suite.mockWebhookRepo,
		suite.mockTxnSvc,
		verifier,
		nil,
		nil,
		5,
	)
}

func (suite *WebhookServiceTestSuite) storedEvent(eventType string, txnID *string) *domain.WebhookEvent {
	payload := []byte(`{"event":"` + eventType + `"}`)
	return &domain.WebhookEvent{
		ID:            uuid.NewString(),
		EventID:       "evt_" + uuid.NewString()[:8],
		Provider:      "paystack",
		EventType:     eventType,
		Payload:       payload,
		Signature:     signPayload(payload),
		Status:        domain.WebhookPending,
		TransactionID: txnID,
		CreatedAt:     time.Now().UTC(),
	}
}

func (suite *WebhookServiceTestSuite) TestIngest_Success() {
	ctx := context.Background()
	ev := domain.PaymentEvent{
		Provider:  "Paystack",
		EventID:   "evt_1",
		EventType: "charge.success",
		Payload:   []byte(`{}`),
		Signature: "sig",
	}

	suite.mockWebhookRepo.On("InsertEvent", ctx, mock.MatchedBy(func(e domain.WebhookEvent) bool {
		return e.Provider == "paystack" && e.EventID == "evt_1" && e.Status == domain.WebhookPending
	})).Return(nil).Once()

	stored, err := suite.service.Ingest(ctx, ev)

	suite.Require().NoError(err)
	suite.Require().NotNil(stored)
	suite.Equal("paystack", stored.Provider)
}

func (suite *WebhookServiceTestSuite) TestIngest_RedeliveryReturnsStoredEvent() {
	ctx := context.Background()
	existing := suite.storedEvent("charge.success", nil)
	existing.Status = domain.WebhookCompleted

	suite.mockWebhookRepo.On("InsertEvent", ctx, mock.AnythingOfType("domain.WebhookEvent")).
		Return(apperrors.ErrDuplicate).Once()
	suite.mockWebhookRepo.On("FindEventByProviderEventID", ctx, "paystack", existing.EventID).
		Return(existing, nil).Once()

	stored, err := suite.service.Ingest(ctx, domain.PaymentEvent{
		Provider:  "paystack",
		EventID:   existing.EventID,
		EventType: "charge.success",
		Payload:   []byte(`{}`),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Require().NotNil(stored)
	suite.Equal(existing.ID, stored.ID)
	// The stored row is untouched; processing never reruns.
	suite.Equal(domain.WebhookCompleted, stored.Status)
}

func (suite *WebhookServiceTestSuite) TestProcess_SuccessEventCompletesTransaction() {
	ctx := context.Background()
	txnID := uuid.NewString()
	event := suite.storedEvent("charge.success", &txnID)
	completed := &domain.Transaction{ID: txnID, Status: domain.TxCompleted}

	suite.mockWebhookRepo.On("FindEventByID", ctx, event.ID).Return(event, nil).Once()
	suite.mockWebhookRepo.On("MarkEventProcessing", ctx, event.ID).Return(nil).Once()
	suite.mockTxnSvc.On("Complete", ctx, txnID, dto.SettlementDetails{}).Return(completed, nil).Once()
	suite.mockWebhookRepo.On("MarkEventCompleted", ctx, event.ID, &txnID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := suite.service.Process(ctx, event.ID)

	suite.Require().NoError(err)
	suite.mockWebhookRepo.AssertExpectations(suite.T())
}

func (suite *WebhookServiceTestSuite) TestProcess_FailureEventFailsTransaction() {
	ctx := context.Background()
	txnID := uuid.NewString()
	event := suite.storedEvent("charge.failed", &txnID)
	failed := &domain.Transaction{ID: txnID, Status: domain.TxFailed}

	suite.mockWebhookRepo.On("FindEventByID", ctx, event.ID).Return(event, nil).Once()
	suite.mockWebhookRepo.On("MarkEventProcessing", ctx, event.ID).Return(nil).Once()
	suite.mockTxnSvc.On("Fail", ctx, txnID, mock.AnythingOfType("string")).Return(failed, nil).Once()
	suite.mockWebhookRepo.On("MarkEventCompleted", ctx, event.ID, &txnID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := suite.service.Process(ctx, event.ID)

	suite.Require().NoError(err)
}

func (suite *WebhookServiceTestSuite) TestProcess_LateEventAbsorbedAsNoOp() {
	ctx := context.Background()
	txnID := uuid.NewString()
	event := suite.storedEvent("charge.success", &txnID)

	suite.mockWebhookRepo.On("FindEventByID", ctx, event.ID).Return(event, nil).Once()
	suite.mockWebhookRepo.On("MarkEventProcessing", ctx, event.ID).Return(nil).Once()
	// The ledger already moved on; the guarded transition rejects.
	suite.mockTxnSvc.On("Complete", ctx, txnID, dto.SettlementDetails{}).
		Return(nil, apperrors.ErrInvalidTransition).Once()
	suite.mockWebhookRepo.On("MarkEventCompleted", ctx, event.ID, &txnID, mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	err := suite.service.Process(ctx, event.ID)

	suite.Require().NoError(err)
	suite.mockWebhookRepo.AssertNotCalled(suite.T(), "MarkEventFailed")
}

func (suite *WebhookServiceTestSuite) TestProcess_UnknownTransactionFailsEventOnly() {
	ctx := context.Background()
	txnID := uuid.NewString()
	event := suite.storedEvent("charge.success", &txnID)

	suite.mockWebhookRepo.On("FindEventByID", ctx, event.ID).Return(event, nil).Once()
	suite.mockWebhookRepo.On("MarkEventProcessing", ctx, event.ID).Return(nil).Once()
	suite.mockTxnSvc.On("Complete", ctx, txnID, dto.SettlementDetails{}).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockWebhookRepo.On("MarkEventFailed", ctx, event.ID, mock.AnythingOfType("string")).
		Return(1, nil).Once()

	err := suite.service.Process(ctx, event.ID)

	suite.Require().Error(err)
	suite.mockWebhookRepo.AssertNotCalled(suite.T(), "MarkEventCompleted")
}

func (suite *WebhookServiceTestSuite) TestProcess_BadSignatureNeverTouchesLedger() {
	ctx := context.Background()
	txnID := uuid.NewString()
	event := suite.storedEvent("charge.success", &txnID)
	event.Signature = "deadbeef"

	suite.mockWebhookRepo.On("FindEventByID", ctx, event.ID).Return(event, nil).Once()
	suite.mockWebhookRepo.On("MarkEventFailed", ctx, event.ID, mock.AnythingOfType("string")).
		Return(1, nil).Once()

	err := suite.service.Process(ctx, event.ID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrVerificationFailed)
	suite.mockTxnSvc.AssertNotCalled(suite.T(), "Complete")
	suite.mockWebhookRepo.AssertNotCalled(suite.T(), "MarkEventProcessing")
}

func (suite *WebhookServiceTestSuite) TestProcess_CompletedEventIsNoOp() {
	ctx := context.Background()
	event := suite.storedEvent("charge.success", nil)
	event.Status = domain.WebhookCompleted

	suite.mockWebhookRepo.On("FindEventByID", ctx, event.ID).Return(event, nil).Once()

	err := suite.service.Process(ctx, event.ID)

	suite.Require().NoError(err)
	suite.mockWebhookRepo.AssertNotCalled(suite.T(), "MarkEventProcessing")
}

func (suite *WebhookServiceTestSuite) TestProcess_RetryCapRefusesWork() {
	ctx := context.Background()
	event := suite.storedEvent("charge.success", nil)
	event.RetryCount = 5

	suite.mockWebhookRepo.On("FindEventByID", ctx, event.ID).Return(event, nil).Once()

	err := suite.service.Process(ctx, event.ID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRetryExhausted)
	suite.mockWebhookRepo.AssertNotCalled(suite.T(), "MarkEventFailed")
}

func (suite *WebhookServiceTestSuite) TestSweepRetryable_KeepsGoingPastFailures() {
	ctx := context.Background()
	good := suite.storedEvent("charge.success", nil)
	bad := suite.storedEvent("charge.success", nil)
	bad.Signature = "deadbeef"

	suite.mockWebhookRepo.On("FindRetryableEvents", ctx, 5, 10).
		Return([]domain.WebhookEvent{*bad, *good}, nil).Once()

	suite.mockWebhookRepo.On("FindEventByID", ctx, bad.ID).Return(bad, nil).Once()
	suite.mockWebhookRepo.On("MarkEventFailed", ctx, bad.ID, mock.AnythingOfType("string")).Return(2, nil).Once()

	suite.mockWebhookRepo.On("FindEventByID", ctx, good.ID).Return(good, nil).Once()
	suite.mockWebhookRepo.On("MarkEventProcessing", ctx, good.ID).Return(nil).Once()
	suite.mockWebhookRepo.On("MarkEventCompleted", ctx, good.ID, (*string)(nil), mock.AnythingOfType("time.Time")).
		Return(nil).Once()

	n, err := suite.service.SweepRetryable(ctx, 10)

	suite.Require().NoError(err)
	suite.Equal(2, n)
	suite.mockWebhookRepo.AssertExpectations(suite.T())
}

func (suite *WebhookServiceTestSuite) TestDispatchPending_RecordsOutcomes() {
	ctx := context.Background()

	var received int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received++
		suite.Equal(http.MethodPost, r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	event := suite.storedEvent("charge.success", nil)
	delivery := domain.WebhookDelivery{
		ID:      uuid.NewString(),
		EventID: event.ID,
		URL:     server.URL,
		Status:  domain.DeliveryPending,
	}

	suite.mockWebhookRepo.On("FindRetryableDeliveries", ctx, 5, 10).
		Return([]domain.WebhookDelivery{delivery}, nil).Once()
	suite.mockWebhookRepo.On("FindEventByID", ctx, event.ID).Return(event, nil).Once()
	suite.mockWebhookRepo.On("RecordDeliveryAttempt", ctx, delivery.ID, domain.DeliveryDelivered,
		mock.AnythingOfType("*int"), mock.AnythingOfType("*string")).Return(nil).Once()

	n, err := suite.service.DispatchPending(ctx, 10)

	suite.Require().NoError(err)
	suite.Equal(1, n)
	suite.Equal(1, received)
	suite.mockWebhookRepo.AssertExpectations(suite.T())
}

func TestWebhookServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WebhookServiceTestSuite))
}

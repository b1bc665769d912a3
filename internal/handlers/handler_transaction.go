package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/afriramp/afri_ramp_app/internal/apperrors"
	portssvc "github.com/afriramp/afri_ramp_app/internal/core/ports/services"
	"github.com/afriramp/afri_ramp_app/internal/dto"
	"github.com/afriramp/afri_ramp_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to the transaction ledger.
type transactionHandler struct {
	txnService portssvc.TransactionSvcFacade
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{txnService: ts}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, txnService portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(txnService)

	txns := rg.Group("/transactions")
	{
		txns.POST("", h.createTransaction)
		txns.GET("/:id", h.getTransaction)
		txns.POST("/:id/process", h.markProcessing)
		txns.POST("/:id/complete", h.complete)
		txns.POST("/:id/fail", h.fail)
		txns.GET("/:id/conversions", h.listConversions)
		txns.GET("/:id/bill-payment", h.getBillPayment)
	}
	rg.GET("/wallets/:address/transactions", h.listByWallet)
}

func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.txnService.CreateTransaction(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrRateUnavailable), errors.Is(err, apperrors.ErrNoFeeRuleMatched):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		}
		return
	}

	logger.Info("Transaction created",
		slog.String("transaction_id", txn.ID),
		slog.String("type", string(txn.Type)),
		slog.String("wallet", txn.WalletAddress),
	)
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(*txn))
}

func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id := c.Param("id")

	txn, err := h.txnService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else {
			logger.Error("Failed to get transaction", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve transaction"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(*txn))
}

func (h *transactionHandler) listByWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	address := c.Param("address")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	txns, err := h.txnService.ListTransactionsByWallet(c.Request.Context(), address, limit, offset)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list transactions"})
		return
	}

	resp := make([]dto.TransactionResponse, 0, len(txns))
	for _, t := range txns {
		resp = append(resp, dto.ToTransactionResponse(t))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *transactionHandler) markProcessing(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id := c.Param("id")
	var req dto.ProcessingDetails
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.txnService.MarkProcessing(c.Request.Context(), id, req)
	if err != nil {
		h.respondTransitionError(c, logger, err, "mark transaction processing")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(*txn))
}

func (h *transactionHandler) complete(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id := c.Param("id")
	var req dto.SettlementDetails
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.txnService.Complete(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrTrustlineRequired) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.respondTransitionError(c, logger, err, "complete transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(*txn))
}

type failTransactionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (h *transactionHandler) fail(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id := c.Param("id")
	var req failTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.txnService.Fail(c.Request.Context(), id, req.Reason)
	if err != nil {
		h.respondTransitionError(c, logger, err, "fail transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(*txn))
}

func (h *transactionHandler) listConversions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id := c.Param("id")

	convs, err := h.txnService.ListConversions(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else {
			logger.Error("Failed to list conversions", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve conversions"})
		}
		return
	}

	resp := make([]dto.ConversionResponse, 0, len(convs))
	for _, conv := range convs {
		resp = append(resp, dto.ToConversionResponse(conv))
	}
	c.JSON(http.StatusOK, gin.H{"conversions": resp})
}

func (h *transactionHandler) getBillPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id := c.Param("id")

	detail, err := h.txnService.GetBillPayment(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Bill payment not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to get bill payment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve bill payment"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToBillPaymentDetailResponse(*detail))
}

func (h *transactionHandler) respondTransitionError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
	case errors.Is(err, apperrors.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

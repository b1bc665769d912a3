package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/afriramp/afri_ramp_app/internal/apperrors"
	"github.com/afriramp/afri_ramp_app/internal/core/domain"
	portssvc "github.com/afriramp/afri_ramp_app/internal/core/ports/services"
	"github.com/afriramp/afri_ramp_app/internal/dto"
	"github.com/afriramp/afri_ramp_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// feeHandler handles HTTP requests related to fee rules.
type feeHandler struct {
	feeService portssvc.FeeSvcFacade
}

func newFeeHandler(fs portssvc.FeeSvcFacade) *feeHandler {
	return &feeHandler{feeService: fs}
}

// registerFeeRoutes registers routes related to fee rules.
func registerFeeRoutes(rg *gin.RouterGroup, feeService portssvc.FeeSvcFacade) {
	h := newFeeHandler(feeService)

	fees := rg.Group("/fees")
	{
		fees.POST("", h.createFeeStructure)
		fees.POST("/quote", h.resolveFee)
	}
}

func (h *feeHandler) createFeeStructure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFeeStructureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateFeeStructure", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	fee, err := h.feeService.CreateFeeStructure(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create fee structure", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create fee structure"})
		}
		return
	}

	logger.Info("Fee structure created", slog.String("fee_id", fee.ID), slog.String("type", string(fee.TransactionType)))
	c.JSON(http.StatusCreated, fee)
}

func (h *feeHandler) resolveFee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ResolveFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ResolveFee", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	breakdown, err := h.feeService.ResolveFee(c.Request.Context(),
		domain.TransactionType(req.TransactionType), req.Currency, req.CountryCode, req.Amount, time.Now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNoFeeRuleMatched):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to resolve fee", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve fee"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFeeBreakdownResponse(*breakdown))
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/afriramp/afri_ramp_app/internal/apperrors"
	"github.com/afriramp/afri_ramp_app/internal/core/domain"
	portssvc "github.com/afriramp/afri_ramp_app/internal/core/ports/services"
	"github.com/afriramp/afri_ramp_app/internal/dto"
	"github.com/afriramp/afri_ramp_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// trustlineHandler handles HTTP requests related to trustline operations.
type trustlineHandler struct {
	trustlineService portssvc.TrustlineSvcFacade
}

func newTrustlineHandler(ts portssvc.TrustlineSvcFacade) *trustlineHandler {
	return &trustlineHandler{trustlineService: ts}
}

// registerTrustlineRoutes registers routes related to trustlines.
func registerTrustlineRoutes(rg *gin.RouterGroup, trustlineService portssvc.TrustlineSvcFacade) {
	h := newTrustlineHandler(trustlineService)

	trustlines := rg.Group("/trustlines")
	{
		trustlines.POST("", h.begin)
		trustlines.POST("/:id/resolve", h.resolve)
		trustlines.POST("/:id/retry", h.recordRetry)
	}
	rg.GET("/wallets/:address/trustline", h.status)
	rg.PUT("/wallets/:address/balance", h.refreshBalance)
}

func (h *trustlineHandler) begin(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BeginTrustlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for BeginTrustline", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	op, err := h.trustlineService.Begin(c.Request.Context(), req.WalletAddress)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAlreadyPending):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to begin trustline operation", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to begin trustline operation"})
		}
		return
	}

	logger.Info("Trustline operation started", slog.String("operation_id", op.ID), slog.String("wallet", op.WalletAddress))
	c.JSON(http.StatusCreated, dto.ToTrustlineOperationResponse(*op))
}

func (h *trustlineHandler) resolve(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id := c.Param("id")
	var req dto.ResolveTrustlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	op, err := h.trustlineService.Resolve(c.Request.Context(), id,
		domain.TrustlineStatus(req.Outcome), req.ChainTxHash, req.ErrorMessage)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Trustline operation not found"})
		case errors.Is(err, apperrors.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to resolve trustline operation", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve trustline operation"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTrustlineOperationResponse(*op))
}

func (h *trustlineHandler) recordRetry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id := c.Param("id")

	op, err := h.trustlineService.RecordRetry(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrRetryExhausted):
			// The operation has been resolved failed; report the terminal row.
			resp := gin.H{"error": err.Error()}
			if op != nil {
				resp["operation"] = dto.ToTrustlineOperationResponse(*op)
			}
			c.JSON(http.StatusConflict, resp)
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Pending trustline operation not found"})
		default:
			logger.Error("Failed to record trustline retry", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record trustline retry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTrustlineOperationResponse(*op))
}

func (h *trustlineHandler) status(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	address := c.Param("address")

	hasTrustline, latest, err := h.trustlineService.Status(c.Request.Context(), address)
	if err != nil {
		logger.Error("Failed to get trustline status", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get trustline status"})
		return
	}

	resp := dto.TrustlineStatusResponse{
		WalletAddress:    address,
		HasAfriTrustline: hasTrustline,
	}
	if latest != nil {
		op := dto.ToTrustlineOperationResponse(*latest)
		resp.LatestOperation = &op
	}
	c.JSON(http.StatusOK, resp)
}

func (h *trustlineHandler) refreshBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	address := c.Param("address")

	var req dto.RefreshBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RefreshBalance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	wallet, err := h.trustlineService.RefreshBalance(c.Request.Context(), address, req.Balance)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to refresh wallet balance", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh wallet balance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletResponse(*wallet))
}

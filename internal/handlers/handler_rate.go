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

// rateHandler handles HTTP requests related to exchange rates.
type rateHandler struct {
	rateService portssvc.ExchangeRateSvcFacade
}

func newRateHandler(rs portssvc.ExchangeRateSvcFacade) *rateHandler {
	return &rateHandler{rateService: rs}
}

// registerRateRoutes registers routes related to exchange rates.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.ExchangeRateSvcFacade) {
	h := newRateHandler(rateService)

	rates := rg.Group("/rates")
	{
		rates.POST("", h.setRate)
		rates.GET("/:from/:to", h.getCurrentRate)
		rates.GET("/:from/:to/history", h.listHistory)
	}
}

func (h *rateHandler) setRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	rate, err := h.rateService.SetRate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error setting rate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to set rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set rate"})
		}
		return
	}

	logger.Info("Rate published", slog.String("pair", rate.Pair()), slog.String("rate", rate.Rate.String()))
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(*rate))
}

func (h *rateHandler) getCurrentRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	from := c.Param("from")
	to := c.Param("to")

	rate, err := h.rateService.GetCurrentRate(c.Request.Context(), from, to)
	if err != nil {
		if errors.Is(err, apperrors.ErrRateUnavailable) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to get current rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(*rate))
}

func (h *rateHandler) listHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	from := c.Param("from")
	to := c.Param("to")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	rates, err := h.rateService.ListHistoricalRates(c.Request.Context(), from, to, limit)
	if err != nil {
		logger.Error("Failed to list historical rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rates"})
		return
	}

	resp := make([]dto.ExchangeRateResponse, 0, len(rates))
	for _, r := range rates {
		resp = append(resp, dto.ToExchangeRateResponse(r))
	}
	c.JSON(http.StatusOK, resp)
}

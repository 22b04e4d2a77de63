package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cantinazo/api/internal/api/handler/v1/request"
	"github.com/cantinazo/api/internal/api/handler/v1/response"
	"github.com/cantinazo/api/internal/domain"
	"github.com/cantinazo/api/internal/service"
)

type ExchangeRateService interface {
	Append(ctx context.Context, rate domain.ExchangeRate) (domain.ExchangeRate, error)
	Current(ctx context.Context) (domain.ExchangeRate, error)
	List(ctx context.Context) ([]domain.ExchangeRate, error)
}

type ExchangeRateHandler struct {
	svc ExchangeRateService
}

func NewExchangeRateHandler(svc ExchangeRateService) *ExchangeRateHandler {
	return &ExchangeRateHandler{
		svc: svc,
	}
}

// HandleGetCurrentRate godoc
// @Summary      Get the current exchange rate
// @Tags         exchange-rates
// @Produce      json
// @Success      200      {object}   domain.ExchangeRate
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /exchange-rates/current [get]
func (h *ExchangeRateHandler) HandleGetCurrentRate(ctx *gin.Context) {
	rate, err := h.svc.Current(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoCurrentRate) {
			response.RenderErr(ctx, response.ErrNotFound("exchange rate", "position", "current"))

			return
		}

		err = fmt.Errorf("v1.HandleGetCurrentRate -> h.svc.Current -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, rate)
}

// HandleListRates godoc
// @Summary      List the exchange-rate ledger, newest first
// @Tags         exchange-rates
// @Produce      json
// @Success      200      {object}   []domain.ExchangeRate
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /exchange-rates [get]
func (h *ExchangeRateHandler) HandleListRates(ctx *gin.Context) {
	rates, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListRates -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, rates)
}

// HandleAppendRate godoc
// @Summary      Append a new exchange rate to the ledger
// @Tags         exchange-rates
// @Produce      json
// @Param        request   body      request.AppendExchangeRateRequest true "request body"
// @Success      201      {object}   domain.ExchangeRate
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /exchange-rates [post]
func (h *ExchangeRateHandler) HandleAppendRate(ctx *gin.Context) {
	req := request.AppendExchangeRateRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	rate, err := h.svc.Append(ctx.Request.Context(), domain.ExchangeRate{
		Rate: req.Rate,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleAppendRate -> h.svc.Append -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, rate)
}

package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cantinazo/api/internal/api/handler/v1/request"
	"github.com/cantinazo/api/internal/api/handler/v1/response"
	"github.com/cantinazo/api/internal/api/middleware"
	"github.com/cantinazo/api/internal/domain"
	"github.com/cantinazo/api/internal/service"
)

type OrderService interface {
	GetOrCreateOpen(ctx context.Context, representativeID uint64, eventID uint) (domain.Order, error)
	GetOrder(ctx context.Context, orderID uint) (domain.Order, error)
	AddLine(ctx context.Context, orderID, studentID, productID uint) (domain.OrderLine, error)
	RemoveLine(ctx context.Context, lineID uint) error
	Close(ctx context.Context, orderID uint, paymentMethod domain.PaymentMethod, referenceNumber string, exchangeRateID *uint) (domain.Order, error)
	UpdateStatus(ctx context.Context, orderID uint, status domain.OrderStatus, isStaff bool) (domain.Order, error)
	ListClosed(ctx context.Context, eventID *uint, representativeID *uint64) ([]domain.Order, error)
	DeleteOrder(ctx context.Context, orderID uint, isStaff bool) error
}

type OrderHandler struct {
	svc OrderService
}

func NewOrderHandler(svc OrderService) *OrderHandler {
	return &OrderHandler{
		svc: svc,
	}
}

// HandleGetOpenOrder godoc
// @Summary      Get or create the open order of a representative for an event
// @Tags         orders
// @Produce      json
// @Param        representative_id   query   integer true "representative ID"
// @Param        event_id            query   integer true "event ID"
// @Success      200      {object}   domain.Order
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /orders/open [get]
func (h *OrderHandler) HandleGetOpenOrder(ctx *gin.Context) {
	rawRepID := ctx.Query("representative_id")
	repID, err := strconv.ParseUint(rawRepID, 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("representative ID %v is invalid", rawRepID)))

		return
	}

	rawEventID := ctx.Query("event_id")
	eventID, err := strconv.ParseUint(rawEventID, 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("event ID %v is invalid", rawEventID)))

		return
	}

	order, err := h.svc.GetOrCreateOpen(ctx.Request.Context(), repID, uint(eventID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRepresentativeNotFound):
			response.RenderErr(ctx, response.ErrNotFound("representative", "ID", rawRepID))
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", rawEventID))
		default:
			err = fmt.Errorf("v1.HandleGetOpenOrder -> h.svc.GetOrCreateOpen -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, order)
}

// HandleGetOrder godoc
// @Summary      Get an order with its lines
// @Tags         orders
// @Produce      json
// @Param        orderID   path   integer true "order ID"
// @Success      200      {object}   domain.Order
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /orders/{orderID} [get]
func (h *OrderHandler) HandleGetOrder(ctx *gin.Context) {
	rawID := ctx.Param("orderID")
	id, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("order ID %v is invalid", rawID)))

		return
	}

	order, err := h.svc.GetOrder(ctx.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("order", "ID", rawID))

			return
		}

		err = fmt.Errorf("v1.HandleGetOrder -> h.svc.GetOrder -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, order)
}

// HandleAddLine godoc
// @Summary      Add a line to an open order
// @Tags         orders
// @Produce      json
// @Param        orderID   path   integer true "order ID"
// @Param        request   body      request.AddLineRequest true "request body"
// @Success      201      {object}   domain.OrderLine
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /orders/{orderID}/lines [post]
func (h *OrderHandler) HandleAddLine(ctx *gin.Context) {
	rawID := ctx.Param("orderID")
	id, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("order ID %v is invalid", rawID)))

		return
	}

	req := request.AddLineRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	line, err := h.svc.AddLine(ctx.Request.Context(), uint(id), req.StudentID, req.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			response.RenderErr(ctx, response.ErrNotFound("order", "ID", rawID))
		case errors.Is(err, service.ErrStudentNotFound):
			response.RenderErr(ctx, response.ErrNotFound("student", "ID", strconv.Itoa(int(req.StudentID))))
		case errors.Is(err, service.ErrProductNotFound):
			response.RenderErr(ctx, response.ErrNotFound("product", "ID", strconv.Itoa(int(req.ProductID))))
		case errors.Is(err, service.ErrOrderClosed), errors.Is(err, service.ErrOutOfStock):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleAddLine -> h.svc.AddLine -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, line)
}

// HandleRemoveLine godoc
// @Summary      Remove a line from an open order
// @Tags         orders
// @Produce      json
// @Param        lineID   path   integer true "line ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /orders/lines/{lineID} [delete]
func (h *OrderHandler) HandleRemoveLine(ctx *gin.Context) {
	rawID := ctx.Param("lineID")
	id, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("line ID %v is invalid", rawID)))

		return
	}

	if err = h.svc.RemoveLine(ctx.Request.Context(), uint(id)); err != nil {
		switch {
		case errors.Is(err, service.ErrOrderLineNotFound):
			response.RenderErr(ctx, response.ErrNotFound("order line", "ID", rawID))
		case errors.Is(err, service.ErrOrderClosed):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleRemoveLine -> h.svc.RemoveLine -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleCloseOrder godoc
// @Summary      Close an open order and notify the canteen staff
// @Tags         orders
// @Produce      json
// @Param        orderID   path   integer true "order ID"
// @Param        request   body      request.CloseOrderRequest true "request body"
// @Success      200      {object}   domain.Order
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /orders/{orderID}/close [post]
func (h *OrderHandler) HandleCloseOrder(ctx *gin.Context) {
	rawID := ctx.Param("orderID")
	id, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("order ID %v is invalid", rawID)))

		return
	}

	req := request.CloseOrderRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	order, err := h.svc.Close(ctx.Request.Context(), uint(id), domain.PaymentMethod(req.PaymentMethod), req.ReferenceNumber, req.ExchangeRateID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			response.RenderErr(ctx, response.ErrNotFound("order", "ID", rawID))
		case errors.Is(err, service.ErrInvalidPaymentMethod), errors.Is(err, service.ErrExchangeRateNotFound):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrOrderClosed), errors.Is(err, service.ErrEmptyOrder):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleCloseOrder -> h.svc.Close -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, order)
}

// HandleUpdateStatus godoc
// @Summary      Mark a closed order checked, rejected, or merely closed
// @Tags         orders
// @Produce      json
// @Param        orderID   path   integer true "order ID"
// @Param        request   body      request.UpdateStatusRequest true "request body"
// @Success      200      {object}   domain.Order
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /orders/{orderID}/status [post]
func (h *OrderHandler) HandleUpdateStatus(ctx *gin.Context) {
	rawID := ctx.Param("orderID")
	id, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("order ID %v is invalid", rawID)))

		return
	}

	req := request.UpdateStatusRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	order, err := h.svc.UpdateStatus(ctx.Request.Context(), uint(id), domain.OrderStatus(req.Status), ctx.GetBool(middleware.ContextKeyIsStaff))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotStaff):
			response.RenderErr(ctx, response.ErrPermissionDenied())
		case errors.Is(err, service.ErrInvalidStatus):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrOrderNotFound):
			response.RenderErr(ctx, response.ErrNotFound("order", "ID", rawID))
		case errors.Is(err, service.ErrOrderNotClosed):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateStatus -> h.svc.UpdateStatus -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, order)
}

// HandleListClosedOrders godoc
// @Summary      List closed orders for review
// @Tags         orders
// @Produce      json
// @Param        event_id            query   integer false "scope to an event"
// @Param        representative_id   query   integer false "scope to a representative"
// @Success      200      {object}   []domain.Order
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /orders/closed [get]
func (h *OrderHandler) HandleListClosedOrders(ctx *gin.Context) {
	eventID, err := parseOptionalUintQuery(ctx, "event_id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var repID *uint64
	if raw := ctx.Query("representative_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("representative ID %v is invalid", raw)))

			return
		}
		repID = &parsed
	}

	orders, err := h.svc.ListClosed(ctx.Request.Context(), eventID, repID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListClosedOrders -> h.svc.ListClosed -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, orders)
}

// HandleDeleteOrder godoc
// @Summary      Delete an order and restore its stock
// @Tags         orders
// @Produce      json
// @Param        orderID   path   integer true "order ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /orders/{orderID} [delete]
func (h *OrderHandler) HandleDeleteOrder(ctx *gin.Context) {
	rawID := ctx.Param("orderID")
	id, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("order ID %v is invalid", rawID)))

		return
	}

	if err = h.svc.DeleteOrder(ctx.Request.Context(), uint(id), ctx.GetBool(middleware.ContextKeyIsStaff)); err != nil {
		switch {
		case errors.Is(err, service.ErrNotStaff):
			response.RenderErr(ctx, response.ErrPermissionDenied())
		case errors.Is(err, service.ErrOrderNotFound):
			response.RenderErr(ctx, response.ErrNotFound("order", "ID", rawID))
		default:
			err = fmt.Errorf("v1.HandleDeleteOrder -> h.svc.DeleteOrder -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.Status(http.StatusNoContent)
}

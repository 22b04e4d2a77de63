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
	"github.com/cantinazo/api/internal/domain"
	"github.com/cantinazo/api/internal/service"
)

type CatalogService interface {
	ListAvailable(ctx context.Context, eventID *uint) ([]domain.Product, error)
	ListAll(ctx context.Context, eventID *uint) ([]domain.Product, error)
	GetProduct(ctx context.Context, id uint) (domain.Product, error)
	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
	GetEvent(ctx context.Context, id uint) (domain.Event, error)
}

type CatalogHandler struct {
	svc CatalogService
}

func NewCatalogHandler(svc CatalogService) *CatalogHandler {
	return &CatalogHandler{
		svc: svc,
	}
}

// HandleListProducts godoc
// @Summary      List products available for ordering
// @Tags         catalog
// @Produce      json
// @Param        event_id   query   integer false "scope to an event"
// @Success      200      {object}   []domain.Product
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /products [get]
func (h *CatalogHandler) HandleListProducts(ctx *gin.Context) {
	eventID, err := parseOptionalUintQuery(ctx, "event_id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	products, err := h.svc.ListAvailable(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListProducts -> h.svc.ListAvailable -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, products)
}

// HandleListAllProducts godoc
// @Summary      List every product including hidden ones
// @Tags         catalog
// @Produce      json
// @Param        event_id   query   integer false "scope to an event"
// @Success      200      {object}   []domain.Product
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /products/all [get]
func (h *CatalogHandler) HandleListAllProducts(ctx *gin.Context) {
	eventID, err := parseOptionalUintQuery(ctx, "event_id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	products, err := h.svc.ListAll(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListAllProducts -> h.svc.ListAll -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, products)
}

// HandleCreateProduct godoc
// @Summary      Create a product
// @Tags         catalog
// @Produce      json
// @Param        request   body      request.CreateProductRequest true "request body"
// @Success      201      {object}   domain.Product
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /products [post]
func (h *CatalogHandler) HandleCreateProduct(ctx *gin.Context) {
	req := request.CreateProductRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	product, err := h.svc.CreateProduct(ctx.Request.Context(), domain.Product{
		Name:    req.Name,
		Price:   req.Price,
		Stock:   req.Stock,
		Hidden:  req.Hidden,
		EventID: req.EventID,
	})
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrBadRequest(err))

			return
		}

		err = fmt.Errorf("v1.HandleCreateProduct -> h.svc.CreateProduct -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, product)
}

// HandleUpdateProduct godoc
// @Summary      Update a product
// @Tags         catalog
// @Produce      json
// @Param        productID   path   integer true "product ID"
// @Param        request   body      request.UpdateProductRequest true "request body"
// @Success      200      {object}   domain.Product
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /products/{productID} [put]
func (h *CatalogHandler) HandleUpdateProduct(ctx *gin.Context) {
	rawID := ctx.Param("productID")
	id, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("product ID %v is invalid", rawID)))

		return
	}

	req := request.UpdateProductRequest{}
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	product, err := h.svc.GetProduct(ctx.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("product", "ID", rawID))

			return
		}

		err = fmt.Errorf("v1.HandleUpdateProduct -> h.svc.GetProduct -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Hidden != nil {
		product.Hidden = *req.Hidden
	}
	if req.EventID != nil {
		product.EventID = req.EventID
	}

	updated, err := h.svc.UpdateProduct(ctx.Request.Context(), product)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			response.RenderErr(ctx, response.ErrNotFound("product", "ID", rawID))
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			err = fmt.Errorf("v1.HandleUpdateProduct -> h.svc.UpdateProduct -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleListEvents godoc
// @Summary      List events, active first
// @Tags         catalog
// @Produce      json
// @Success      200      {object}   []domain.Event
// @Failure      500      {object}   response.Err
// @Router       /events [get]
func (h *CatalogHandler) HandleListEvents(ctx *gin.Context) {
	events, err := h.svc.ListEvents(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListEvents -> h.svc.ListEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleCreateEvent godoc
// @Summary      Create an event
// @Tags         catalog
// @Produce      json
// @Param        request   body      request.CreateEventRequest true "request body"
// @Success      201      {object}   domain.Event
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /events [post]
func (h *CatalogHandler) HandleCreateEvent(ctx *gin.Context) {
	req := request.CreateEventRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	event, err := h.svc.CreateEvent(ctx.Request.Context(), domain.Event{
		Name:   req.Name,
		Date:   req.Date,
		Active: req.Active,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, event)
}

func parseOptionalUintQuery(ctx *gin.Context, name string) (*uint, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, nil
	}

	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("query parameter %v is invalid", name)
	}

	value := uint(parsed)

	return &value, nil
}

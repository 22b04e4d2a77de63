package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cantinazo/api/internal/api/handler/v1/response"
	"github.com/cantinazo/api/internal/domain"
	"github.com/cantinazo/api/internal/report"
)

type ReportService interface {
	ClosedOrderRows(ctx context.Context, eventID *uint, grade *string) ([]domain.ClosedOrderRow, error)
	ProductSalesRows(ctx context.Context, eventID *uint) ([]domain.ProductSalesRow, error)
}

type ReportHandler struct {
	svc ReportService
}

func NewReportHandler(svc ReportService) *ReportHandler {
	return &ReportHandler{
		svc: svc,
	}
}

// HandleExportOrders godoc
// @Summary      Download the closed-order report as a spreadsheet
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        event_id   query   integer false "scope to an event"
// @Param        grade      query   string  false "scope to a grade"
// @Success      200      {file}     file
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /reports/orders.xlsx [get]
func (h *ReportHandler) HandleExportOrders(ctx *gin.Context) {
	eventID, err := parseOptionalUintQuery(ctx, "event_id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var grade *string
	if raw := ctx.Query("grade"); raw != "" {
		grade = &raw
	}

	rows, err := h.svc.ClosedOrderRows(ctx.Request.Context(), eventID, grade)
	if err != nil {
		err = fmt.Errorf("v1.HandleExportOrders -> h.svc.ClosedOrderRows -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	writeXLSXHeaders(ctx, "ordenes.xlsx")
	if err = report.WriteClosedOrders(ctx.Writer, rows); err != nil {
		err = fmt.Errorf("v1.HandleExportOrders -> report.WriteClosedOrders -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

// HandleExportProducts godoc
// @Summary      Download the product-sales report as a spreadsheet
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        event_id   query   integer false "scope to an event"
// @Success      200      {file}     file
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /reports/products.xlsx [get]
func (h *ReportHandler) HandleExportProducts(ctx *gin.Context) {
	eventID, err := parseOptionalUintQuery(ctx, "event_id")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	rows, err := h.svc.ProductSalesRows(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleExportProducts -> h.svc.ProductSalesRows -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	writeXLSXHeaders(ctx, "productos.xlsx")
	if err = report.WriteProductSales(ctx.Writer, rows); err != nil {
		err = fmt.Errorf("v1.HandleExportProducts -> report.WriteProductSales -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

func writeXLSXHeaders(ctx *gin.Context, filename string) {
	ctx.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Status(http.StatusOK)
}

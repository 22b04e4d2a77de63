package repository

import (
	"context"
	"fmt"

	"github.com/cantinazo/api/internal/domain"
	"github.com/cantinazo/api/internal/repository/dao"
)

type ReportDAO interface {
	ClosedOrderRows(ctx context.Context, eventID *uint, grade *string) ([]dao.ClosedOrderRow, error)
	ProductSalesRows(ctx context.Context, eventID *uint) ([]dao.ProductSalesRow, error)
}

type ReportRepository struct {
	dao ReportDAO
}

func NewReportRepository(dao ReportDAO) *ReportRepository {
	return &ReportRepository{
		dao: dao,
	}
}

func (r *ReportRepository) ClosedOrderRows(ctx context.Context, eventID *uint, grade *string) ([]domain.ClosedOrderRow, error) {
	rows, err := r.dao.ClosedOrderRows(ctx, eventID, grade)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ClosedOrderRows -> %w", err)
	}

	result := make([]domain.ClosedOrderRow, len(rows))
	for i, row := range rows {
		result[i] = domain.ClosedOrderRow{
			OrderID:            row.OrderID,
			RepresentativeName: row.RepresentativeName,
			PaymentMethod:      domain.PaymentMethod(row.PaymentMethod),
			ReferenceNumber:    row.ReferenceNumber,
			TotalAmount:        row.TotalAmount,
			StudentName:        row.StudentName,
			Grade:              row.Grade,
			Section:            row.Section,
			ProductName:        row.ProductName,
			ProductPrice:       row.ProductPrice,
		}
	}

	return result, nil
}

func (r *ReportRepository) ProductSalesRows(ctx context.Context, eventID *uint) ([]domain.ProductSalesRow, error) {
	rows, err := r.dao.ProductSalesRows(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ProductSalesRows -> %w", err)
	}

	result := make([]domain.ProductSalesRow, len(rows))
	for i, row := range rows {
		result[i] = domain.ProductSalesRow{
			Name:      row.Name,
			Price:     row.Price,
			Stock:     row.Stock,
			UnitsSold: row.UnitsSold,
		}
	}

	return result, nil
}

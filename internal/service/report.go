package service

import (
	"context"
	"fmt"

	"github.com/cantinazo/api/internal/domain"
)

type ReportRepository interface {
	ClosedOrderRows(ctx context.Context, eventID *uint, grade *string) ([]domain.ClosedOrderRow, error)
	ProductSalesRows(ctx context.Context, eventID *uint) ([]domain.ProductSalesRow, error)
}

type ReportService struct {
	repo ReportRepository
}

func NewReportService(repo ReportRepository) *ReportService {
	return &ReportService{
		repo: repo,
	}
}

func (s *ReportService) ClosedOrderRows(ctx context.Context, eventID *uint, grade *string) ([]domain.ClosedOrderRow, error) {
	rows, err := s.repo.ClosedOrderRows(ctx, eventID, grade)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ClosedOrderRows -> %w", err)
	}

	return rows, nil
}

func (s *ReportService) ProductSalesRows(ctx context.Context, eventID *uint) ([]domain.ProductSalesRow, error) {
	rows, err := s.repo.ProductSalesRows(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ProductSalesRows -> %w", err)
	}

	return rows, nil
}

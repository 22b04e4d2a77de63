package service

import (
	"context"
	"fmt"

	"github.com/cantinazo/api/internal/domain"
	"github.com/cantinazo/api/internal/repository"
)

var (
	ErrNoCurrentRate        = repository.ErrNoCurrentRate
	ErrExchangeRateNotFound = repository.ErrExchangeRateNotFound
)

type ExchangeRateRepository interface {
	Append(ctx context.Context, rate domain.ExchangeRate) (domain.ExchangeRate, error)
	Current(ctx context.Context) (domain.ExchangeRate, error)
	FindByID(ctx context.Context, id uint) (domain.ExchangeRate, error)
	List(ctx context.Context) ([]domain.ExchangeRate, error)
}

type ExchangeRateService struct {
	repo ExchangeRateRepository
}

func NewExchangeRateService(repo ExchangeRateRepository) *ExchangeRateService {
	return &ExchangeRateService{
		repo: repo,
	}
}

func (s *ExchangeRateService) Append(ctx context.Context, rate domain.ExchangeRate) (domain.ExchangeRate, error) {
	created, err := s.repo.Append(ctx, rate)
	if err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("s.repo.Append -> %w", err)
	}

	return created, nil
}

// Current returns the newest ledger row. An empty ledger is a
// first-class condition (ErrNoCurrentRate), not a default row.
func (s *ExchangeRateService) Current(ctx context.Context) (domain.ExchangeRate, error) {
	rate, err := s.repo.Current(ctx)
	if err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("s.repo.Current -> %w", err)
	}

	return rate, nil
}

func (s *ExchangeRateService) List(ctx context.Context) ([]domain.ExchangeRate, error) {
	rates, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return rates, nil
}

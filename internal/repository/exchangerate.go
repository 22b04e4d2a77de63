package repository

import (
	"context"
	"fmt"

	"github.com/cantinazo/api/internal/domain"
	"github.com/cantinazo/api/internal/repository/dao"
)

var (
	ErrNoCurrentRate        = dao.ErrNoCurrentRate
	ErrExchangeRateNotFound = dao.ErrExchangeRateNotFound
)

type ExchangeRateDAO interface {
	Insert(ctx context.Context, rate dao.ExchangeRate) (dao.ExchangeRate, error)
	FindCurrent(ctx context.Context) (dao.ExchangeRate, error)
	FindByID(ctx context.Context, id uint) (dao.ExchangeRate, error)
	FindAll(ctx context.Context) ([]dao.ExchangeRate, error)
}

type ExchangeRateRepository struct {
	dao ExchangeRateDAO
}

func NewExchangeRateRepository(dao ExchangeRateDAO) *ExchangeRateRepository {
	return &ExchangeRateRepository{
		dao: dao,
	}
}

func (r *ExchangeRateRepository) Append(ctx context.Context, rate domain.ExchangeRate) (domain.ExchangeRate, error) {
	created, err := r.dao.Insert(ctx, dao.ExchangeRate{
		Rate: rate.Rate,
	})
	if err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ExchangeRateRepository) Current(ctx context.Context) (domain.ExchangeRate, error) {
	found, err := r.dao.FindCurrent(ctx)
	if err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("r.dao.FindCurrent -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ExchangeRateRepository) FindByID(ctx context.Context, id uint) (domain.ExchangeRate, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ExchangeRateRepository) List(ctx context.Context) ([]domain.ExchangeRate, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	rates := make([]domain.ExchangeRate, len(found))
	for i, rate := range found {
		rates[i] = r.daoToDomain(rate)
	}

	return rates, nil
}

func (r *ExchangeRateRepository) daoToDomain(rate dao.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ID:        rate.ID,
		Rate:      rate.Rate,
		CreatedAt: rate.CreatedAt,
	}
}

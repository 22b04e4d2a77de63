package repository

import (
	"context"
	"fmt"

	"github.com/cantinazo/api/internal/domain"
	"github.com/cantinazo/api/internal/repository/dao"
)

var (
	ErrProductNotFound = dao.ErrProductNotFound
	ErrEventNotFound   = dao.ErrEventNotFound
)

type CatalogDAO interface {
	FindAvailableProducts(ctx context.Context, eventID *uint) ([]dao.Product, error)
	FindAllProducts(ctx context.Context, eventID *uint) ([]dao.Product, error)
	FindProductByID(ctx context.Context, id uint) (dao.Product, error)
	InsertProduct(ctx context.Context, product dao.Product) (dao.Product, error)
	UpdateProduct(ctx context.Context, product dao.Product) (dao.Product, error)
	InsertEvent(ctx context.Context, event dao.Event) (dao.Event, error)
	FindEvents(ctx context.Context) ([]dao.Event, error)
	FindEventByID(ctx context.Context, id uint) (dao.Event, error)
}

type CatalogRepository struct {
	dao CatalogDAO
}

func NewCatalogRepository(dao CatalogDAO) *CatalogRepository {
	return &CatalogRepository{
		dao: dao,
	}
}

func (r *CatalogRepository) FindAvailableProducts(ctx context.Context, eventID *uint) ([]domain.Product, error) {
	found, err := r.dao.FindAvailableProducts(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAvailableProducts -> %w", err)
	}

	return r.productsDaoToDomain(found), nil
}

func (r *CatalogRepository) FindAllProducts(ctx context.Context, eventID *uint) ([]domain.Product, error) {
	found, err := r.dao.FindAllProducts(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllProducts -> %w", err)
	}

	return r.productsDaoToDomain(found), nil
}

func (r *CatalogRepository) FindProductByID(ctx context.Context, id uint) (domain.Product, error) {
	found, err := r.dao.FindProductByID(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.FindProductByID -> %w", err)
	}

	return r.productDaoToDomain(found), nil
}

func (r *CatalogRepository) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	created, err := r.dao.InsertProduct(ctx, r.productDomainToDao(product))
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.InsertProduct -> %w", err)
	}

	return r.productDaoToDomain(created), nil
}

func (r *CatalogRepository) UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	updated, err := r.dao.UpdateProduct(ctx, r.productDomainToDao(product))
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.dao.UpdateProduct -> %w", err)
	}

	return r.productDaoToDomain(updated), nil
}

func (r *CatalogRepository) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.InsertEvent(ctx, dao.Event{
		Name:   event.Name,
		Date:   event.Date,
		Active: event.Active,
	})
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.InsertEvent -> %w", err)
	}

	return r.eventDaoToDomain(created), nil
}

func (r *CatalogRepository) FindEvents(ctx context.Context) ([]domain.Event, error) {
	found, err := r.dao.FindEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindEvents -> %w", err)
	}

	events := make([]domain.Event, len(found))
	for i, e := range found {
		events[i] = r.eventDaoToDomain(e)
	}

	return events, nil
}

func (r *CatalogRepository) FindEventByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindEventByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindEventByID -> %w", err)
	}

	return r.eventDaoToDomain(found), nil
}

func (r *CatalogRepository) productDomainToDao(p domain.Product) dao.Product {
	return dao.Product{
		ID:      p.ID,
		Name:    p.Name,
		Price:   p.Price,
		Stock:   p.Stock,
		Hidden:  p.Hidden,
		EventID: p.EventID,
	}
}

func (r *CatalogRepository) productDaoToDomain(p dao.Product) domain.Product {
	return domain.Product{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		Hidden:    p.Hidden,
		EventID:   p.EventID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (r *CatalogRepository) productsDaoToDomain(products []dao.Product) []domain.Product {
	result := make([]domain.Product, len(products))
	for i, p := range products {
		result[i] = r.productDaoToDomain(p)
	}
	return result
}

func (r *CatalogRepository) eventDaoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:        e.ID,
		Name:      e.Name,
		Date:      e.Date,
		Active:    e.Active,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

package service

import (
	"context"
	"fmt"

	"github.com/cantinazo/api/internal/domain"
	"github.com/cantinazo/api/internal/repository"
)

var (
	ErrProductNotFound = repository.ErrProductNotFound
	ErrEventNotFound   = repository.ErrEventNotFound
)

type CatalogRepository interface {
	FindAvailableProducts(ctx context.Context, eventID *uint) ([]domain.Product, error)
	FindAllProducts(ctx context.Context, eventID *uint) ([]domain.Product, error)
	FindProductByID(ctx context.Context, id uint) (domain.Product, error)
	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	FindEvents(ctx context.Context) ([]domain.Event, error)
	FindEventByID(ctx context.Context, id uint) (domain.Event, error)
}

type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

// ListAvailable returns the products a guardian can order: hidden
// products are excluded. Staff use ListAll.
func (s *CatalogService) ListAvailable(ctx context.Context, eventID *uint) ([]domain.Product, error) {
	products, err := s.repo.FindAvailableProducts(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAvailableProducts -> %w", err)
	}

	return products, nil
}

func (s *CatalogService) ListAll(ctx context.Context, eventID *uint) ([]domain.Product, error) {
	products, err := s.repo.FindAllProducts(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllProducts -> %w", err)
	}

	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (domain.Product, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.repo.FindProductByID -> %w", err)
	}

	return product, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.EventID != nil {
		if _, err := s.repo.FindEventByID(ctx, *product.EventID); err != nil {
			return domain.Product{}, fmt.Errorf("s.repo.FindEventByID -> %w", err)
		}
	}

	created, err := s.repo.CreateProduct(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.repo.CreateProduct -> %w", err)
	}

	return created, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	updated, err := s.repo.UpdateProduct(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.repo.UpdateProduct -> %w", err)
	}

	return updated, nil
}

func (s *CatalogService) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.CreateEvent -> %w", err)
	}

	return created, nil
}

func (s *CatalogService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.FindEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindEvents -> %w", err)
	}

	return events, nil
}

func (s *CatalogService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindEventByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindEventByID -> %w", err)
	}

	return event, nil
}

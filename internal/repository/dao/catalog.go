package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrEventNotFound   = errors.New("event not found")
)

type Event struct {
	ID uint `gorm:"primaryKey"`

	Name   string    `gorm:"not null"`
	Date   time.Time `gorm:"not null"`
	Active bool      `gorm:"default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Product struct {
	ID uint `gorm:"primaryKey"`

	Name    string          `gorm:"not null"`
	Price   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock   int             `gorm:"not null"`
	Hidden  bool            `gorm:"default:false"`
	EventID *uint           `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type CatalogDAO struct {
	db *gorm.DB
}

func NewCatalogDAO(db *gorm.DB) *CatalogDAO {
	return &CatalogDAO{
		db: db,
	}
}

func (d *CatalogDAO) FindAvailableProducts(ctx context.Context, eventID *uint) ([]Product, error) {
	query := d.db.WithContext(ctx).Where("hidden = ?", false)
	if eventID != nil {
		query = query.Where("event_id = ?", *eventID)
	}

	var products []Product
	if err := query.Order("name").Find(&products).Error; err != nil {
		return nil, err
	}

	return products, nil
}

func (d *CatalogDAO) FindAllProducts(ctx context.Context, eventID *uint) ([]Product, error) {
	query := d.db.WithContext(ctx)
	if eventID != nil {
		query = query.Where("event_id = ?", *eventID)
	}

	var products []Product
	if err := query.Order("name").Find(&products).Error; err != nil {
		return nil, err
	}

	return products, nil
}

func (d *CatalogDAO) FindProductByID(ctx context.Context, id uint) (Product, error) {
	var product Product

	result := d.db.WithContext(ctx).First(&product, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Product{}, ErrProductNotFound
		}

		return Product{}, result.Error
	}

	return product, nil
}

func (d *CatalogDAO) InsertProduct(ctx context.Context, product Product) (Product, error) {
	result := d.db.WithContext(ctx).Create(&product)
	if result.Error != nil {
		return Product{}, result.Error
	}

	return product, nil
}

func (d *CatalogDAO) UpdateProduct(ctx context.Context, product Product) (Product, error) {
	result := d.db.WithContext(ctx).Model(&Product{ID: product.ID}).Updates(map[string]interface{}{
		"name":     product.Name,
		"price":    product.Price,
		"stock":    product.Stock,
		"hidden":   product.Hidden,
		"event_id": product.EventID,
	})
	if result.Error != nil {
		return Product{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Product{}, ErrProductNotFound
	}

	return d.FindProductByID(ctx, product.ID)
}

func (d *CatalogDAO) InsertEvent(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *CatalogDAO) FindEvents(ctx context.Context) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).Order("active DESC, date DESC").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *CatalogDAO) FindEventByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

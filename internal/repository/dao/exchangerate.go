package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNoCurrentRate        = errors.New("exchange rate ledger is empty")
	ErrExchangeRateNotFound = errors.New("exchange rate not found")
)

// ExchangeRate rows are append-only; the newest row is the current rate.
type ExchangeRate struct {
	ID uint `gorm:"primaryKey"`

	Rate decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	CreatedAt time.Time
}

type ExchangeRateDAO struct {
	db *gorm.DB
}

func NewExchangeRateDAO(db *gorm.DB) *ExchangeRateDAO {
	return &ExchangeRateDAO{
		db: db,
	}
}

func (d *ExchangeRateDAO) Insert(ctx context.Context, rate ExchangeRate) (ExchangeRate, error) {
	result := d.db.WithContext(ctx).Create(&rate)
	if result.Error != nil {
		return ExchangeRate{}, result.Error
	}

	return rate, nil
}

func (d *ExchangeRateDAO) FindCurrent(ctx context.Context) (ExchangeRate, error) {
	var rate ExchangeRate

	result := d.db.WithContext(ctx).Order("created_at DESC, id DESC").First(&rate)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ExchangeRate{}, ErrNoCurrentRate
		}

		return ExchangeRate{}, result.Error
	}

	return rate, nil
}

func (d *ExchangeRateDAO) FindByID(ctx context.Context, id uint) (ExchangeRate, error) {
	var rate ExchangeRate

	result := d.db.WithContext(ctx).First(&rate, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ExchangeRate{}, ErrExchangeRateNotFound
		}

		return ExchangeRate{}, result.Error
	}

	return rate, nil
}

func (d *ExchangeRateDAO) FindAll(ctx context.Context) ([]ExchangeRate, error) {
	var rates []ExchangeRate

	result := d.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&rates)
	if result.Error != nil {
		return nil, result.Error
	}

	return rates, nil
}

package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

type CreateEventRequest struct {
	Name   string    `json:"name"`
	Date   time.Time `json:"date"`
	Active bool      `json:"active"`
}

func (req CreateEventRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&req.Date, validation.Required),
	)
}

type CreateProductRequest struct {
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	Stock   int             `json:"stock"`
	Hidden  bool            `json:"hidden"`
	EventID *uint           `json:"event_id"`
}

func (req CreateProductRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&req.Price, validation.Required, validation.By(positiveDecimal)),
		validation.Field(&req.Stock, validation.Min(0)),
	)
}

type UpdateProductRequest struct {
	Name    *string          `json:"name"`
	Price   *decimal.Decimal `json:"price"`
	Stock   *int             `json:"stock"`
	Hidden  *bool            `json:"hidden"`
	EventID *uint            `json:"event_id"`
}

func (req UpdateProductRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, 120)),
		validation.Field(&req.Price, validation.By(optionalPositiveDecimal)),
	)
}

func positiveDecimal(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok || d.IsNegative() {
		return validation.NewError("validation_positive_decimal", "must be a non-negative amount")
	}
	return nil
}

func optionalPositiveDecimal(value interface{}) error {
	d, ok := value.(*decimal.Decimal)
	if !ok || d == nil {
		return nil
	}
	return positiveDecimal(*d)
}

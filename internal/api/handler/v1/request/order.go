package request

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type AddLineRequest struct {
	StudentID uint `json:"student_id"`
	ProductID uint `json:"product_id"`
}

func (req AddLineRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.StudentID, validation.Required),
		validation.Field(&req.ProductID, validation.Required),
	)
}

type CloseOrderRequest struct {
	PaymentMethod   int    `json:"payment_method"`
	ReferenceNumber string `json:"reference_number"`
	ExchangeRateID  *uint  `json:"exchange_rate_id"`
}

func (req CloseOrderRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.PaymentMethod, validation.Min(0), validation.Max(1)),
		validation.Field(&req.ReferenceNumber, validation.Length(0, 64)),
	)
}

type UpdateStatusRequest struct {
	Status int `json:"status"`
}

func (req UpdateStatusRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Status, validation.Min(0), validation.Max(2)),
	)
}

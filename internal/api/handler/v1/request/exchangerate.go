package request

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

type AppendExchangeRateRequest struct {
	Rate decimal.Decimal `json:"rate"`
}

func (req AppendExchangeRateRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Rate, validation.Required, validation.By(positiveDecimal)),
	)
}

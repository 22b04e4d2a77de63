package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is one row of the append-only rate ledger. The current
// rate is always the most recently created row.
type ExchangeRate struct {
	ID        uint            `json:"id"`
	Rate      decimal.Decimal `json:"rate"`
	CreatedAt time.Time       `json:"created_at"`
}

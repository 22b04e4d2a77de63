package domain

import "github.com/shopspring/decimal"

// ClosedOrderRow is the read-only projection consumed by the
// spreadsheet export: one row per line of each closed order.
type ClosedOrderRow struct {
	OrderID            uint
	RepresentativeName string
	PaymentMethod      PaymentMethod
	ReferenceNumber    *string
	TotalAmount        *decimal.Decimal
	StudentName        string
	Grade              string
	Section            string
	ProductName        string
	ProductPrice       decimal.Decimal
}

type ProductSalesRow struct {
	Name      string
	Price     decimal.Decimal
	Stock     int
	UnitsSold int
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod int

const (
	PaymentMobile PaymentMethod = 0
	PaymentCash   PaymentMethod = 1
)

func (m PaymentMethod) Label() string {
	switch m {
	case PaymentMobile:
		return "Pago móvil"
	case PaymentCash:
		return "Efectivo"
	default:
		return "Desconocido"
	}
}

func (m PaymentMethod) IsValid() bool {
	return m == PaymentMobile || m == PaymentCash
}

// OrderStatus is the staff status code applied to a closed order:
// 0 confirms payment, 1 rejects the order, 2 resets it to
// closed-unconfirmed.
type OrderStatus int

const (
	StatusChecked  OrderStatus = 0
	StatusRejected OrderStatus = 1
	StatusClosed   OrderStatus = 2
)

func (s OrderStatus) IsValid() bool {
	return s == StatusChecked || s == StatusRejected || s == StatusClosed
}

// Order is a representative's cart for one event. While open it is
// mutable; closing makes it immutable to the guardian and hands it to
// staff for payment confirmation.
type Order struct {
	ID               uint             `json:"id"`
	RepresentativeID uint64           `json:"representative_id"`
	EventID          uint             `json:"event_id"`
	Closed           bool             `json:"closed"`
	Checked          bool             `json:"checked"`
	Rejected         bool             `json:"rejected"`
	PaymentMethod    PaymentMethod    `json:"payment_method"`
	ReferenceNumber  *string          `json:"reference_number"`
	ExchangeRateID   *uint            `json:"exchange_rate_id"`
	TotalAmount      *decimal.Decimal `json:"total_amount"` // snapshotted at close
	Lines            []OrderLine      `json:"lines,omitempty"`
	ClosedAt         *time.Time       `json:"closed_at"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// OrderLine assigns one unit of one product to one student.
type OrderLine struct {
	ID        uint            `json:"id"`
	OrderID   uint            `json:"order_id"`
	StudentID uint            `json:"student_id"`
	ProductID uint            `json:"product_id"`
	UnitPrice decimal.Decimal `json:"unit_price"` // product price at add time
	Student   *Student        `json:"student,omitempty"`
	Product   *Product        `json:"product,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func (o *Order) IsOpen() bool {
	return !o.Closed
}

func (o *Order) IsConfirmed() bool {
	return o.Closed && o.Checked && !o.Rejected
}

func (o *Order) IsRejected() bool {
	return o.Closed && o.Rejected
}

// ApplyStatus overwrites the staff flags for the given status code.
// The three-way write is unconditional; staff may move an order between
// checked, rejected and closed-unconfirmed freely.
func (o *Order) ApplyStatus(status OrderStatus) {
	switch status {
	case StatusChecked:
		o.Checked = true
		o.Rejected = false
	case StatusRejected:
		o.Checked = false
		o.Rejected = true
	case StatusClosed:
		o.Checked = false
		o.Rejected = false
	}
}

// LiveTotal sums the current product prices of the lines. Used for
// open-order display; closed orders report the snapshotted TotalAmount.
func (o *Order) LiveTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		if line.Product != nil {
			total = total.Add(line.Product.Price)
		}
	}
	return total
}

// LineTotal sums the unit prices captured when each line was added.
// This is the amount snapshotted into TotalAmount at close time.
func (o *Order) LineTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.UnitPrice)
	}
	return total
}

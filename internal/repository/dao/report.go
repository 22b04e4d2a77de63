package dao

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ClosedOrderRow is one spreadsheet row: a single line of a closed
// order joined to its representative, student and product.
type ClosedOrderRow struct {
	OrderID            uint
	RepresentativeName string
	PaymentMethod      int16
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

type ReportDAO struct {
	db *gorm.DB
}

func NewReportDAO(db *gorm.DB) *ReportDAO {
	return &ReportDAO{
		db: db,
	}
}

func (d *ReportDAO) ClosedOrderRows(ctx context.Context, eventID *uint, grade *string) ([]ClosedOrderRow, error) {
	query := d.db.WithContext(ctx).
		Table("order_lines").
		Select(`orders.id AS order_id,
			representatives.name AS representative_name,
			orders.payment_method,
			orders.reference_number,
			orders.total_amount,
			students.name AS student_name,
			students.grade,
			students.section,
			products.name AS product_name,
			products.price AS product_price`).
		Joins("JOIN orders ON orders.id = order_lines.order_id").
		Joins("JOIN representatives ON representatives.id = orders.representative_id").
		Joins("JOIN students ON students.id = order_lines.student_id").
		Joins("JOIN products ON products.id = order_lines.product_id").
		Where("orders.closed = ?", true)

	if eventID != nil {
		query = query.Where("orders.event_id = ?", *eventID)
	}
	if grade != nil {
		query = query.Where("students.grade = ?", *grade)
	}

	var rows []ClosedOrderRow
	if err := query.Order("orders.id, students.name").Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

func (d *ReportDAO) ProductSalesRows(ctx context.Context, eventID *uint) ([]ProductSalesRow, error) {
	query := d.db.WithContext(ctx).
		Table("products").
		Select(`products.name,
			products.price,
			products.stock,
			COUNT(orders.id) AS units_sold`).
		Joins("LEFT JOIN order_lines ON order_lines.product_id = products.id").
		Joins("LEFT JOIN orders ON orders.id = order_lines.order_id AND orders.closed = ?", true).
		Group("products.id, products.name, products.price, products.stock")

	if eventID != nil {
		query = query.Where("products.event_id = ?", *eventID)
	}

	var rows []ProductSalesRow
	if err := query.Order("products.name").Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

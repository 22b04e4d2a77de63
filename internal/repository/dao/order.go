package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderLineNotFound = errors.New("order line not found")
	ErrOrderClosed       = errors.New("order is closed")
	ErrOrderNotClosed    = errors.New("order is not closed")
	ErrEmptyOrder        = errors.New("order has no lines")
	ErrOutOfStock        = errors.New("product is out of stock")
)

type Order struct {
	ID uint `gorm:"primaryKey"`

	// The partial unique index enforces the core invariant at the
	// storage layer: at most one open order per (representative, event).
	RepresentativeID uint64 `gorm:"not null;index:idx_one_open_order,unique,where:closed = false"`
	EventID          uint   `gorm:"not null;index:idx_one_open_order,unique"`

	Closed   bool `gorm:"not null;default:false"`
	Checked  bool `gorm:"not null;default:false"`
	Rejected bool `gorm:"not null;default:false"`

	PaymentMethod   int16 `gorm:"not null;default:0"`
	ReferenceNumber *string
	ExchangeRateID  *uint
	TotalAmount     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	ClosedAt        *time.Time

	Lines []OrderLine `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderLine struct {
	ID uint `gorm:"primaryKey"`

	OrderID   uint `gorm:"not null;index"`
	StudentID uint `gorm:"not null;index"`
	ProductID uint `gorm:"not null;index"`

	// Price of the product when the line was added. Open-order display
	// still joins to the live product price; this snapshot feeds the
	// close-time total.
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Student Student `gorm:"foreignKey:StudentID"`
	Product Product `gorm:"foreignKey:ProductID"`

	CreatedAt time.Time
}

type OrderDAO struct {
	db            *gorm.DB
	allowOversell bool
}

func NewOrderDAO(db *gorm.DB, allowOversell bool) *OrderDAO {
	return &OrderDAO{
		db:            db,
		allowOversell: allowOversell,
	}
}

// debitStock and creditStock are the stock ledger. They run inside the
// transaction of whatever mutation created or removed a line, so a line
// and its stock adjustment commit or roll back together. Every deletion
// path (direct removal, student detachment, order deletion) goes
// through creditStock exactly once per line.

func debitStock(tx *gorm.DB, productID uint, allowOversell bool) error {
	query := tx.Model(&Product{}).Where("id = ?", productID)
	if !allowOversell {
		query = query.Where("stock > 0")
	}

	result := query.UpdateColumn("stock", gorm.Expr("stock - 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// The caller verified the product exists, so zero rows means
		// the stock guard blocked the decrement.
		return ErrOutOfStock
	}

	return nil
}

func creditStock(tx *gorm.DB, productID uint) error {
	return tx.Model(&Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + 1")).Error
}

// GetOrCreateOpen returns the single open order for the pair, creating
// it when absent. A concurrent duplicate insert trips the partial
// unique index and is resolved by re-reading the surviving row, so
// callers always converge on the same order.
func (d *OrderDAO) GetOrCreateOpen(ctx context.Context, representativeID uint64, eventID uint) (Order, error) {
	order, err := d.findOpen(ctx, representativeID, eventID)
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Order{}, err
	}

	created := Order{
		RepresentativeID: representativeID,
		EventID:          eventID,
	}
	if err = d.db.WithContext(ctx).Create(&created).Error; err != nil {
		if isUniqueViolation(err) {
			return d.findOpen(ctx, representativeID, eventID)
		}

		return Order{}, err
	}

	return created, nil
}

func (d *OrderDAO) findOpen(ctx context.Context, representativeID uint64, eventID uint) (Order, error) {
	var order Order

	err := d.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("order_lines.student_id") }).
		Preload("Lines.Student").
		Preload("Lines.Product").
		Where("representative_id = ? AND event_id = ? AND closed = ?", representativeID, eventID, false).
		First(&order).Error
	if err != nil {
		return Order{}, err
	}

	return order, nil
}

func (d *OrderDAO) FindByID(ctx context.Context, id uint) (Order, error) {
	var order Order

	err := d.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("order_lines.student_id") }).
		Preload("Lines.Student").
		Preload("Lines.Product").
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Order{}, ErrOrderNotFound
		}

		return Order{}, err
	}

	return order, nil
}

// InsertLine adds one unit of a product for a student to an open order
// and debits stock in the same transaction.
func (d *OrderDAO) InsertLine(ctx context.Context, orderID, studentID, productID uint) (OrderLine, error) {
	var line OrderLine

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if order.Closed {
			return ErrOrderClosed
		}

		var student Student
		if err := tx.First(&student, studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentNotFound
			}
			return err
		}

		var product Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		if err := debitStock(tx, product.ID, d.allowOversell); err != nil {
			return err
		}

		line = OrderLine{
			OrderID:   orderID,
			StudentID: studentID,
			ProductID: productID,
			UnitPrice: product.Price,
		}

		return tx.Create(&line).Error
	})
	if err != nil {
		return OrderLine{}, err
	}

	return line, nil
}

// DeleteLine removes a line from an open order and credits stock in the
// same transaction.
func (d *OrderDAO) DeleteLine(ctx context.Context, lineID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var line OrderLine
		if err := tx.First(&line, lineID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderLineNotFound
			}
			return err
		}

		var order Order
		if err := tx.First(&order, line.OrderID).Error; err != nil {
			return err
		}
		if order.Closed {
			return ErrOrderClosed
		}

		if err := creditStock(tx, line.ProductID); err != nil {
			return err
		}

		return tx.Delete(&OrderLine{}, line.ID).Error
	})
}

// CloseOrder submits the cart. The closed flag flips via a
// compare-and-swap on closed = false, so a concurrent close loses with
// ErrOrderClosed instead of clobbering the first one. The total is
// snapshotted from the line unit prices at this moment.
func (d *OrderDAO) CloseOrder(ctx context.Context, orderID uint, paymentMethod int16, referenceNumber *string, exchangeRateID *uint) (Order, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order Order
		if err := tx.Preload("Lines").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if order.Closed {
			return ErrOrderClosed
		}
		if len(order.Lines) == 0 {
			return ErrEmptyOrder
		}

		total := decimal.Zero
		for _, line := range order.Lines {
			total = total.Add(line.UnitPrice)
		}

		now := time.Now()
		result := tx.Model(&Order{}).
			Where("id = ? AND closed = ?", orderID, false).
			Updates(map[string]interface{}{
				"closed":           true,
				"rejected":         false,
				"checked":          false,
				"payment_method":   paymentMethod,
				"reference_number": referenceNumber,
				"exchange_rate_id": exchangeRateID,
				"total_amount":     total,
				"closed_at":        now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrOrderClosed
		}

		return nil
	})
	if err != nil {
		return Order{}, err
	}

	return d.FindByID(ctx, orderID)
}

// UpdateStatus overwrites the staff flags of a closed order. The write
// is conditioned on closed = true so a guardian's still-open cart can
// never be confirmed or rejected.
func (d *OrderDAO) UpdateStatus(ctx context.Context, orderID uint, checked, rejected bool) (Order, error) {
	result := d.db.WithContext(ctx).Model(&Order{}).
		Where("id = ? AND closed = ?", orderID, true).
		Updates(map[string]interface{}{
			"checked":  checked,
			"rejected": rejected,
		})
	if result.Error != nil {
		return Order{}, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := d.FindByID(ctx, orderID); err != nil {
			return Order{}, err
		}
		return Order{}, ErrOrderNotClosed
	}

	return d.FindByID(ctx, orderID)
}

// DeleteOrder removes an order with all its lines, crediting stock for
// every line so the ledger stays balanced on this deletion path too.
func (d *OrderDAO) DeleteOrder(ctx context.Context, orderID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order Order
		if err := tx.Preload("Lines").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		for _, line := range order.Lines {
			if err := creditStock(tx, line.ProductID); err != nil {
				return err
			}
		}

		if err := tx.Where("order_id = ?", order.ID).Delete(&OrderLine{}).Error; err != nil {
			return err
		}

		return tx.Delete(&Order{}, order.ID).Error
	})
}

func (d *OrderDAO) FindClosedOrders(ctx context.Context, eventID *uint, representativeID *uint64) ([]Order, error) {
	query := d.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("order_lines.student_id") }).
		Preload("Lines.Student").
		Preload("Lines.Product").
		Where("closed = ?", true)

	if eventID != nil {
		query = query.Where("event_id = ?", *eventID)
	}
	if representativeID != nil {
		query = query.Where("representative_id = ?", *representativeID)
	}

	var orders []Order
	if err := query.Order("closed_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}

	return orders, nil
}

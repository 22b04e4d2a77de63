package repository

import (
	"context"
	"fmt"

	"github.com/cantinazo/api/internal/domain"
	"github.com/cantinazo/api/internal/repository/dao"
)

var (
	ErrOrderNotFound     = dao.ErrOrderNotFound
	ErrOrderLineNotFound = dao.ErrOrderLineNotFound
	ErrOrderClosed       = dao.ErrOrderClosed
	ErrOrderNotClosed    = dao.ErrOrderNotClosed
	ErrEmptyOrder        = dao.ErrEmptyOrder
	ErrOutOfStock        = dao.ErrOutOfStock
)

type OrderDAO interface {
	GetOrCreateOpen(ctx context.Context, representativeID uint64, eventID uint) (dao.Order, error)
	FindByID(ctx context.Context, id uint) (dao.Order, error)
	InsertLine(ctx context.Context, orderID, studentID, productID uint) (dao.OrderLine, error)
	DeleteLine(ctx context.Context, lineID uint) error
	CloseOrder(ctx context.Context, orderID uint, paymentMethod int16, referenceNumber *string, exchangeRateID *uint) (dao.Order, error)
	UpdateStatus(ctx context.Context, orderID uint, checked, rejected bool) (dao.Order, error)
	DeleteOrder(ctx context.Context, orderID uint) error
	FindClosedOrders(ctx context.Context, eventID *uint, representativeID *uint64) ([]dao.Order, error)
}

type OrderRepository struct {
	dao OrderDAO
}

func NewOrderRepository(dao OrderDAO) *OrderRepository {
	return &OrderRepository{
		dao: dao,
	}
}

func (r *OrderRepository) GetOrCreateOpen(ctx context.Context, representativeID uint64, eventID uint) (domain.Order, error) {
	order, err := r.dao.GetOrCreateOpen(ctx, representativeID, eventID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.GetOrCreateOpen -> %w", err)
	}

	return r.orderDaoToDomain(order), nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (domain.Order, error) {
	order, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.orderDaoToDomain(order), nil
}

func (r *OrderRepository) AddLine(ctx context.Context, orderID, studentID, productID uint) (domain.OrderLine, error) {
	line, err := r.dao.InsertLine(ctx, orderID, studentID, productID)
	if err != nil {
		return domain.OrderLine{}, fmt.Errorf("r.dao.InsertLine -> %w", err)
	}

	return r.lineDaoToDomain(line), nil
}

func (r *OrderRepository) RemoveLine(ctx context.Context, lineID uint) error {
	if err := r.dao.DeleteLine(ctx, lineID); err != nil {
		return fmt.Errorf("r.dao.DeleteLine -> %w", err)
	}

	return nil
}

func (r *OrderRepository) Close(ctx context.Context, orderID uint, paymentMethod domain.PaymentMethod, referenceNumber *string, exchangeRateID *uint) (domain.Order, error) {
	order, err := r.dao.CloseOrder(ctx, orderID, int16(paymentMethod), referenceNumber, exchangeRateID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.CloseOrder -> %w", err)
	}

	return r.orderDaoToDomain(order), nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID uint, checked, rejected bool) (domain.Order, error) {
	order, err := r.dao.UpdateStatus(ctx, orderID, checked, rejected)
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return r.orderDaoToDomain(order), nil
}

func (r *OrderRepository) Delete(ctx context.Context, orderID uint) error {
	if err := r.dao.DeleteOrder(ctx, orderID); err != nil {
		return fmt.Errorf("r.dao.DeleteOrder -> %w", err)
	}

	return nil
}

func (r *OrderRepository) FindClosed(ctx context.Context, eventID *uint, representativeID *uint64) ([]domain.Order, error) {
	orders, err := r.dao.FindClosedOrders(ctx, eventID, representativeID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindClosedOrders -> %w", err)
	}

	result := make([]domain.Order, len(orders))
	for i, o := range orders {
		result[i] = r.orderDaoToDomain(o)
	}

	return result, nil
}

func (r *OrderRepository) orderDaoToDomain(o dao.Order) domain.Order {
	lines := make([]domain.OrderLine, len(o.Lines))
	for i, line := range o.Lines {
		lines[i] = r.lineDaoToDomain(line)
	}

	return domain.Order{
		ID:               o.ID,
		RepresentativeID: o.RepresentativeID,
		EventID:          o.EventID,
		Closed:           o.Closed,
		Checked:          o.Checked,
		Rejected:         o.Rejected,
		PaymentMethod:    domain.PaymentMethod(o.PaymentMethod),
		ReferenceNumber:  o.ReferenceNumber,
		ExchangeRateID:   o.ExchangeRateID,
		TotalAmount:      o.TotalAmount,
		Lines:            lines,
		ClosedAt:         o.ClosedAt,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

func (r *OrderRepository) lineDaoToDomain(line dao.OrderLine) domain.OrderLine {
	result := domain.OrderLine{
		ID:        line.ID,
		OrderID:   line.OrderID,
		StudentID: line.StudentID,
		ProductID: line.ProductID,
		UnitPrice: line.UnitPrice,
		CreatedAt: line.CreatedAt,
	}

	if line.Student.ID != 0 {
		result.Student = &domain.Student{
			ID:               line.Student.ID,
			RepresentativeID: line.Student.RepresentativeID,
			Name:             line.Student.Name,
			Grade:            line.Student.Grade,
			Section:          line.Student.Section,
		}
	}

	if line.Product.ID != 0 {
		result.Product = &domain.Product{
			ID:      line.Product.ID,
			Name:    line.Product.Name,
			Price:   line.Product.Price,
			Stock:   line.Product.Stock,
			Hidden:  line.Product.Hidden,
			EventID: line.Product.EventID,
		}
	}

	return result
}

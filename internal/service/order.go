package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cantinazo/api/internal/domain"
	"github.com/cantinazo/api/internal/repository"
)

var (
	ErrOrderNotFound        = repository.ErrOrderNotFound
	ErrOrderLineNotFound    = repository.ErrOrderLineNotFound
	ErrOrderClosed          = repository.ErrOrderClosed
	ErrOrderNotClosed       = repository.ErrOrderNotClosed
	ErrEmptyOrder           = repository.ErrEmptyOrder
	ErrOutOfStock           = repository.ErrOutOfStock
	ErrNotStaff             = errors.New("caller is not staff")
	ErrInvalidPaymentMethod = errors.New("unknown payment method")
	ErrInvalidStatus        = errors.New("unknown status code")
)

type OrderRepository interface {
	GetOrCreateOpen(ctx context.Context, representativeID uint64, eventID uint) (domain.Order, error)
	FindByID(ctx context.Context, id uint) (domain.Order, error)
	AddLine(ctx context.Context, orderID, studentID, productID uint) (domain.OrderLine, error)
	RemoveLine(ctx context.Context, lineID uint) error
	Close(ctx context.Context, orderID uint, paymentMethod domain.PaymentMethod, referenceNumber *string, exchangeRateID *uint) (domain.Order, error)
	UpdateStatus(ctx context.Context, orderID uint, checked, rejected bool) (domain.Order, error)
	Delete(ctx context.Context, orderID uint) error
	FindClosed(ctx context.Context, eventID *uint, representativeID *uint64) ([]domain.Order, error)
}

type OrderService struct {
	repo        OrderRepository
	rosterRepo  RosterRepository
	catalogRepo CatalogRepository
	rateRepo    ExchangeRateRepository

	notifier    Notifier
	recipients  []string
	sendTimeout time.Duration
}

func NewOrderService(
	repo OrderRepository,
	rosterRepo RosterRepository,
	catalogRepo CatalogRepository,
	rateRepo ExchangeRateRepository,
	notifier Notifier,
	recipients []string,
	sendTimeout time.Duration,
) *OrderService {
	return &OrderService{
		repo:        repo,
		rosterRepo:  rosterRepo,
		catalogRepo: catalogRepo,
		rateRepo:    rateRepo,
		notifier:    notifier,
		recipients:  recipients,
		sendTimeout: sendTimeout,
	}
}

// GetOrCreateOpen returns the representative's single open cart for the
// event, creating it on first use.
func (s *OrderService) GetOrCreateOpen(ctx context.Context, representativeID uint64, eventID uint) (domain.Order, error) {
	if _, err := s.rosterRepo.FindRepresentativeByID(ctx, representativeID); err != nil {
		return domain.Order{}, fmt.Errorf("s.rosterRepo.FindRepresentativeByID -> %w", err)
	}
	if _, err := s.catalogRepo.FindEventByID(ctx, eventID); err != nil {
		return domain.Order{}, fmt.Errorf("s.catalogRepo.FindEventByID -> %w", err)
	}

	order, err := s.repo.GetOrCreateOpen(ctx, representativeID, eventID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.GetOrCreateOpen -> %w", err)
	}

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID uint) (domain.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return order, nil
}

func (s *OrderService) AddLine(ctx context.Context, orderID, studentID, productID uint) (domain.OrderLine, error) {
	line, err := s.repo.AddLine(ctx, orderID, studentID, productID)
	if err != nil {
		return domain.OrderLine{}, fmt.Errorf("s.repo.AddLine -> %w", err)
	}

	return line, nil
}

func (s *OrderService) RemoveLine(ctx context.Context, lineID uint) error {
	if err := s.repo.RemoveLine(ctx, lineID); err != nil {
		return fmt.Errorf("s.repo.RemoveLine -> %w", err)
	}

	return nil
}

// Close submits the cart. An empty reference number is normalized to
// absent; the staff-selected exchange rate is verified before binding.
// Staff are notified over WhatsApp after the commit — best effort, the
// close never rolls back on delivery failure.
func (s *OrderService) Close(ctx context.Context, orderID uint, paymentMethod domain.PaymentMethod, referenceNumber string, exchangeRateID *uint) (domain.Order, error) {
	if !paymentMethod.IsValid() {
		return domain.Order{}, ErrInvalidPaymentMethod
	}

	var reference *string
	if trimmed := strings.TrimSpace(referenceNumber); trimmed != "" {
		reference = &trimmed
	}

	if exchangeRateID != nil {
		if _, err := s.rateRepo.FindByID(ctx, *exchangeRateID); err != nil {
			return domain.Order{}, fmt.Errorf("s.rateRepo.FindByID -> %w", err)
		}
	}

	order, err := s.repo.Close(ctx, orderID, paymentMethod, reference, exchangeRateID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.Close -> %w", err)
	}

	s.notifyOrderClosed(order)

	return order, nil
}

// UpdateStatus applies the staff status code to a closed order:
// 0 confirms, 1 rejects, 2 resets to closed-unconfirmed. Non-staff
// callers are refused outright.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, status domain.OrderStatus, isStaff bool) (domain.Order, error) {
	if !isStaff {
		return domain.Order{}, ErrNotStaff
	}
	if !status.IsValid() {
		return domain.Order{}, ErrInvalidStatus
	}

	var flags domain.Order
	flags.ApplyStatus(status)

	order, err := s.repo.UpdateStatus(ctx, orderID, flags.Checked, flags.Rejected)
	if err != nil {
		return domain.Order{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	return order, nil
}

func (s *OrderService) ListClosed(ctx context.Context, eventID *uint, representativeID *uint64) ([]domain.Order, error) {
	orders, err := s.repo.FindClosed(ctx, eventID, representativeID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindClosed -> %w", err)
	}

	return orders, nil
}

// DeleteOrder removes an order entirely, restocking every line.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID uint, isStaff bool) error {
	if !isStaff {
		return ErrNotStaff
	}

	if err := s.repo.Delete(ctx, orderID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// notifyOrderClosed fans the message out to every configured staff
// recipient. Each send runs in its own goroutine with its own timeout,
// so one slow or failing recipient never blocks the others and nothing
// blocks the caller.
func (s *OrderService) notifyOrderClosed(order domain.Order) {
	if s.notifier == nil || len(s.recipients) == 0 {
		return
	}

	rep, err := s.rosterRepo.FindRepresentativeByID(context.Background(), order.RepresentativeID)
	if err != nil {
		zap.L().Warn("order notification skipped: representative lookup failed",
			zap.Uint("order_id", order.ID),
			zap.Error(err))
		return
	}

	body := s.closedOrderMessage(order, rep)

	for _, to := range s.recipients {
		go func(to string) {
			ctx, cancel := context.WithTimeout(context.Background(), s.sendTimeout)
			defer cancel()

			if _, err := s.notifier.Send(ctx, to, body); err != nil {
				zap.L().Warn("order notification failed",
					zap.Uint("order_id", order.ID),
					zap.String("to", to),
					zap.Error(err))
			}
		}(to)
	}
}

func (s *OrderService) closedOrderMessage(order domain.Order, rep domain.Representative) string {
	reference := "sin referencia"
	if order.ReferenceNumber != nil {
		reference = *order.ReferenceNumber
	}

	total := ""
	if order.TotalAmount != nil {
		total = order.TotalAmount.StringFixed(2)
	}

	return fmt.Sprintf("Nueva orden #%d de %s (%s). Método de pago: %s. Referencia: %s. Total: %s",
		order.ID, rep.Name, rep.PhoneE164(), order.PaymentMethod.Label(), reference, total)
}

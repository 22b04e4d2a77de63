package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cantinazo/api/internal/domain"
	"github.com/cantinazo/api/internal/repository"
)

type fakeOrderRepo struct {
	orders map[uint]domain.Order

	closeErr      error
	updatedChecks *struct{ checked, rejected bool }
	deletedID     uint
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[uint]domain.Order{}}
}

func (f *fakeOrderRepo) GetOrCreateOpen(_ context.Context, representativeID uint64, eventID uint) (domain.Order, error) {
	for _, order := range f.orders {
		if order.RepresentativeID == representativeID && order.EventID == eventID && !order.Closed {
			return order, nil
		}
	}

	order := domain.Order{ID: uint(len(f.orders) + 1), RepresentativeID: representativeID, EventID: eventID}
	f.orders[order.ID] = order

	return order, nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id uint) (domain.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return domain.Order{}, repository.ErrOrderNotFound
	}

	return order, nil
}

func (f *fakeOrderRepo) AddLine(_ context.Context, orderID, studentID, productID uint) (domain.OrderLine, error) {
	return domain.OrderLine{OrderID: orderID, StudentID: studentID, ProductID: productID}, nil
}

func (f *fakeOrderRepo) RemoveLine(context.Context, uint) error {
	return nil
}

func (f *fakeOrderRepo) Close(_ context.Context, orderID uint, paymentMethod domain.PaymentMethod, referenceNumber *string, exchangeRateID *uint) (domain.Order, error) {
	if f.closeErr != nil {
		return domain.Order{}, f.closeErr
	}

	order, ok := f.orders[orderID]
	if !ok {
		return domain.Order{}, repository.ErrOrderNotFound
	}
	if order.Closed {
		return domain.Order{}, repository.ErrOrderClosed
	}

	total := decimal.NewFromFloat(5.00)
	order.Closed = true
	order.PaymentMethod = paymentMethod
	order.ReferenceNumber = referenceNumber
	order.ExchangeRateID = exchangeRateID
	order.TotalAmount = &total
	f.orders[orderID] = order

	return order, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, orderID uint, checked, rejected bool) (domain.Order, error) {
	f.updatedChecks = &struct{ checked, rejected bool }{checked, rejected}

	order := f.orders[orderID]
	order.Checked = checked
	order.Rejected = rejected
	f.orders[orderID] = order

	return order, nil
}

func (f *fakeOrderRepo) Delete(_ context.Context, orderID uint) error {
	f.deletedID = orderID

	return nil
}

func (f *fakeOrderRepo) FindClosed(context.Context, *uint, *uint64) ([]domain.Order, error) {
	return nil, nil
}

type fakeRosterRepo struct {
	reps map[uint64]domain.Representative
}

func (f *fakeRosterRepo) CreateRepresentative(_ context.Context, rep domain.Representative) (domain.Representative, error) {
	if _, ok := f.reps[rep.ID]; ok {
		return domain.Representative{}, repository.ErrRepresentativeExists
	}
	f.reps[rep.ID] = rep

	return rep, nil
}

func (f *fakeRosterRepo) FindRepresentativeByID(_ context.Context, id uint64) (domain.Representative, error) {
	rep, ok := f.reps[id]
	if !ok {
		return domain.Representative{}, repository.ErrRepresentativeNotFound
	}

	return rep, nil
}

func (f *fakeRosterRepo) CreateStudent(_ context.Context, student domain.Student) (domain.Student, error) {
	student.ID = 1

	return student, nil
}

func (f *fakeRosterRepo) FindStudentByID(context.Context, uint) (domain.Student, error) {
	return domain.Student{}, repository.ErrStudentNotFound
}

func (f *fakeRosterRepo) FindStudentsByRepresentative(context.Context, uint64) ([]domain.Student, error) {
	return nil, nil
}

func (f *fakeRosterRepo) DetachStudent(context.Context, uint) error {
	return nil
}

type fakeCatalogRepo struct {
	events map[uint]domain.Event
}

func (f *fakeCatalogRepo) FindAvailableProducts(context.Context, *uint) ([]domain.Product, error) {
	return nil, nil
}

func (f *fakeCatalogRepo) FindAllProducts(context.Context, *uint) ([]domain.Product, error) {
	return nil, nil
}

func (f *fakeCatalogRepo) FindProductByID(context.Context, uint) (domain.Product, error) {
	return domain.Product{}, repository.ErrProductNotFound
}

func (f *fakeCatalogRepo) CreateProduct(_ context.Context, product domain.Product) (domain.Product, error) {
	return product, nil
}

func (f *fakeCatalogRepo) UpdateProduct(_ context.Context, product domain.Product) (domain.Product, error) {
	return product, nil
}

func (f *fakeCatalogRepo) CreateEvent(_ context.Context, event domain.Event) (domain.Event, error) {
	return event, nil
}

func (f *fakeCatalogRepo) FindEvents(context.Context) ([]domain.Event, error) {
	return nil, nil
}

func (f *fakeCatalogRepo) FindEventByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}

	return event, nil
}

type fakeRateRepo struct {
	rates map[uint]domain.ExchangeRate
}

func (f *fakeRateRepo) Append(_ context.Context, rate domain.ExchangeRate) (domain.ExchangeRate, error) {
	return rate, nil
}

func (f *fakeRateRepo) Current(context.Context) (domain.ExchangeRate, error) {
	return domain.ExchangeRate{}, repository.ErrNoCurrentRate
}

func (f *fakeRateRepo) FindByID(_ context.Context, id uint) (domain.ExchangeRate, error) {
	rate, ok := f.rates[id]
	if !ok {
		return domain.ExchangeRate{}, repository.ErrExchangeRateNotFound
	}

	return rate, nil
}

func (f *fakeRateRepo) List(context.Context) ([]domain.ExchangeRate, error) {
	return nil, nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	sends []string
	err   error
	done  chan struct{}
}

func (f *fakeNotifier) Send(_ context.Context, to, _ string) (string, error) {
	f.mu.Lock()
	f.sends = append(f.sends, to)
	f.mu.Unlock()

	if f.done != nil {
		f.done <- struct{}{}
	}

	return "SM123", f.err
}

const testRepID = uint64(584121234567)

func newOrderServiceForTest(repo *fakeOrderRepo, notifier Notifier, recipients []string) *OrderService {
	roster := &fakeRosterRepo{reps: map[uint64]domain.Representative{
		testRepID: {ID: testRepID, Name: "María Pérez", PhoneCode: "58", PhoneNumber: "4121234567"},
	}}
	catalog := &fakeCatalogRepo{events: map[uint]domain.Event{1: {ID: 1, Name: "Cantinazo", Active: true}}}
	rates := &fakeRateRepo{rates: map[uint]domain.ExchangeRate{7: {ID: 7, Rate: decimal.NewFromFloat(36.50)}}}

	return NewOrderService(repo, roster, catalog, rates, notifier, recipients, time.Second)
}

func TestGetOrCreateOpen_ValidatesRosterAndEvent(t *testing.T) {
	svc := newOrderServiceForTest(newFakeOrderRepo(), nil, nil)
	ctx := context.Background()

	_, err := svc.GetOrCreateOpen(ctx, 999, 1)
	assert.ErrorIs(t, err, ErrRepresentativeNotFound)

	_, err = svc.GetOrCreateOpen(ctx, testRepID, 999)
	assert.ErrorIs(t, err, ErrEventNotFound)

	order, err := svc.GetOrCreateOpen(ctx, testRepID, 1)
	require.NoError(t, err)
	assert.False(t, order.Closed)
}

func TestClose_InvalidPaymentMethod(t *testing.T) {
	svc := newOrderServiceForTest(newFakeOrderRepo(), nil, nil)

	_, err := svc.Close(context.Background(), 1, domain.PaymentMethod(5), "", nil)
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestClose_UnknownExchangeRate(t *testing.T) {
	svc := newOrderServiceForTest(newFakeOrderRepo(), nil, nil)

	unknown := uint(99)
	_, err := svc.Close(context.Background(), 1, domain.PaymentMobile, "", &unknown)
	assert.ErrorIs(t, err, ErrExchangeRateNotFound)
}

func TestClose_NormalizesReference(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := newOrderServiceForTest(repo, nil, nil)
	ctx := context.Background()

	order, err := svc.GetOrCreateOpen(ctx, testRepID, 1)
	require.NoError(t, err)

	closed, err := svc.Close(ctx, order.ID, domain.PaymentCash, "   ", nil)
	require.NoError(t, err)
	assert.Nil(t, closed.ReferenceNumber)
}

func TestClose_NotifiesEveryRecipient(t *testing.T) {
	repo := newFakeOrderRepo()
	notifier := &fakeNotifier{done: make(chan struct{}, 2)}
	svc := newOrderServiceForTest(repo, notifier, []string{"+584140000001", "+584140000002"})
	ctx := context.Background()

	order, err := svc.GetOrCreateOpen(ctx, testRepID, 1)
	require.NoError(t, err)

	rateID := uint(7)
	_, err = svc.Close(ctx, order.ID, domain.PaymentMobile, "12345678", &rateID)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		select {
		case <-notifier.done:
		case <-time.After(2 * time.Second):
			t.Fatal("notification never sent")
		}
	}

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	assert.ElementsMatch(t, []string{"+584140000001", "+584140000002"}, notifier.sends)
}

func TestClose_DeliveryFailureIsSwallowed(t *testing.T) {
	repo := newFakeOrderRepo()
	notifier := &fakeNotifier{err: ErrDeliveryFailed, done: make(chan struct{}, 1)}
	svc := newOrderServiceForTest(repo, notifier, []string{"+584140000001"})
	ctx := context.Background()

	order, err := svc.GetOrCreateOpen(ctx, testRepID, 1)
	require.NoError(t, err)

	closed, err := svc.Close(ctx, order.ID, domain.PaymentCash, "", nil)
	require.NoError(t, err)
	assert.True(t, closed.Closed)

	select {
	case <-notifier.done:
	case <-time.After(2 * time.Second):
		t.Fatal("notification never attempted")
	}
}

func TestClose_NoNotificationOnRepoError(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.closeErr = repository.ErrEmptyOrder
	notifier := &fakeNotifier{}
	svc := newOrderServiceForTest(repo, notifier, []string{"+584140000001"})

	_, err := svc.Close(context.Background(), 1, domain.PaymentCash, "", nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	assert.Empty(t, notifier.sends)
}

func TestUpdateStatus_RequiresStaff(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := newOrderServiceForTest(repo, nil, nil)

	_, err := svc.UpdateStatus(context.Background(), 1, domain.StatusChecked, false)
	assert.ErrorIs(t, err, ErrNotStaff)
	assert.Nil(t, repo.updatedChecks)
}

func TestUpdateStatus_MapsStatusToFlags(t *testing.T) {
	tests := []struct {
		name     string
		status   domain.OrderStatus
		checked  bool
		rejected bool
	}{
		{"checked", domain.StatusChecked, true, false},
		{"rejected", domain.StatusRejected, false, true},
		{"closed only", domain.StatusClosed, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeOrderRepo()
			svc := newOrderServiceForTest(repo, nil, nil)

			_, err := svc.UpdateStatus(context.Background(), 1, tc.status, true)
			require.NoError(t, err)
			require.NotNil(t, repo.updatedChecks)
			assert.Equal(t, tc.checked, repo.updatedChecks.checked)
			assert.Equal(t, tc.rejected, repo.updatedChecks.rejected)
		})
	}
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	svc := newOrderServiceForTest(newFakeOrderRepo(), nil, nil)

	_, err := svc.UpdateStatus(context.Background(), 1, domain.OrderStatus(9), true)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDeleteOrder_RequiresStaff(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := newOrderServiceForTest(repo, nil, nil)
	ctx := context.Background()

	err := svc.DeleteOrder(ctx, 1, false)
	assert.ErrorIs(t, err, ErrNotStaff)
	assert.Zero(t, repo.deletedID)

	require.NoError(t, svc.DeleteOrder(ctx, 1, true))
	assert.EqualValues(t, 1, repo.deletedID)
}

func TestClosedOrderMessage(t *testing.T) {
	svc := newOrderServiceForTest(newFakeOrderRepo(), nil, nil)

	ref := "12345678"
	total := decimal.NewFromFloat(5.00)
	order := domain.Order{
		ID:              3,
		PaymentMethod:   domain.PaymentMobile,
		ReferenceNumber: &ref,
		TotalAmount:     &total,
	}
	rep := domain.Representative{ID: testRepID, Name: "María Pérez", PhoneCode: "58", PhoneNumber: "4121234567"}

	msg := svc.closedOrderMessage(order, rep)
	assert.Equal(t, "Nueva orden #3 de María Pérez (+584121234567). Método de pago: Pago móvil. Referencia: 12345678. Total: 5.00", msg)

	order.ReferenceNumber = nil
	msg = svc.closedOrderMessage(order, rep)
	assert.Contains(t, msg, "Referencia: sin referencia")
}

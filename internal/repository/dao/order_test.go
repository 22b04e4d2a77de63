package dao

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%v?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, InitTables(db))

	return db
}

type fixture struct {
	rep     Representative
	student Student
	event   Event
	product Product
}

func seedFixture(t *testing.T, db *gorm.DB) fixture {
	t.Helper()

	rep := Representative{ID: 584121234567, Name: "María Pérez", PhoneCode: "58", PhoneNumber: "4121234567"}
	require.NoError(t, db.Create(&rep).Error)

	student := Student{RepresentativeID: &rep.ID, Name: "Pedro Pérez", Grade: "3", Section: "A"}
	require.NoError(t, db.Create(&student).Error)

	event := Event{Name: "Cantinazo Octubre", Active: true}
	require.NoError(t, db.Create(&event).Error)

	product := Product{Name: "Empanada", Price: decimal.NewFromFloat(2.50), Stock: 10}
	require.NoError(t, db.Create(&product).Error)

	return fixture{rep: rep, student: student, event: event, product: product}
}

func TestGetOrCreateOpen(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	d := NewOrderDAO(db, true)
	ctx := context.Background()

	first, err := d.GetOrCreateOpen(ctx, fx.rep.ID, fx.event.ID)
	require.NoError(t, err)
	assert.False(t, first.Closed)

	second, err := d.GetOrCreateOpen(ctx, fx.rep.ID, fx.event.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestGetOrCreateOpen_NewOrderAfterClose(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	d := NewOrderDAO(db, true)
	ctx := context.Background()

	first, err := d.GetOrCreateOpen(ctx, fx.rep.ID, fx.event.ID)
	require.NoError(t, err)

	_, err = d.InsertLine(ctx, first.ID, fx.student.ID, fx.product.ID)
	require.NoError(t, err)
	_, err = d.CloseOrder(ctx, first.ID, 1, nil, nil)
	require.NoError(t, err)

	second, err := d.GetOrCreateOpen(ctx, fx.rep.ID, fx.event.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestGetOrCreateOpen_DuplicateInsertConverges(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	d := NewOrderDAO(db, true)
	ctx := context.Background()

	// Simulate a racing insert that already claimed the open slot.
	existing := Order{RepresentativeID: fx.rep.ID, EventID: fx.event.ID}
	require.NoError(t, db.Create(&existing).Error)

	order, err := d.GetOrCreateOpen(ctx, fx.rep.ID, fx.event.ID)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, order.ID)

	var count int64
	require.NoError(t, db.Model(&Order{}).Where("representative_id = ? AND closed = ?", fx.rep.ID, false).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestInsertLine_DebitsStockAndSnapshotsPrice(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	d := NewOrderDAO(db, true)
	ctx := context.Background()

	order, err := d.GetOrCreateOpen(ctx, fx.rep.ID, fx.event.ID)
	require.NoError(t, err)

	line, err := d.InsertLine(ctx, order.ID, fx.student.ID, fx.product.ID)
	require.NoError(t, err)
	assert.True(t, line.UnitPrice.Equal(decimal.NewFromFloat(2.50)))

	var product Product
	require.NoError(t, db.First(&product, fx.product.ID).Error)
	assert.Equal(t, 9, product.Stock)
}

func TestInsertLine_ClosedOrder(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	d := NewOrderDAO(db, true)
	ctx := context.Background()

	order, err := d.GetOrCreateOpen(ctx, fx.rep.ID, fx.event.ID)
	require.NoError(t, err)
	_, err = d.InsertLine(ctx, order.ID, fx.student.ID, fx.product.ID)
	require.NoError(t, err)
	_, err = d.CloseOrder(ctx, order.ID, 1, nil, nil)
	require.NoError(t, err)

	_, err = d.InsertLine(ctx, order.ID, fx.student.ID, fx.product.ID)
	assert.ErrorIs(t, err, ErrOrderClosed)

	// The rejected transaction must not have touched stock.
	var product Product
	require.NoError(t, db.First(&product, fx.product.ID).Error)
	assert.Equal(t, 9, product.Stock)
}

func TestInsertLine_Oversell(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	ctx := context.Background()

	require.NoError(t, db.Model(&Product{}).Where("id = ?", fx.product.ID).Update("stock", 0).Error)

	strict := NewOrderDAO(db, false)
	order, err := strict.GetOrCreateOpen(ctx, fx.rep.ID, fx.event.ID)
	require.NoError(t, err)

	_, err = strict.InsertLine(ctx, order.ID, fx.student.ID, fx.product.ID)
	assert.ErrorIs(t, err, ErrOutOfStock)

	lenient := NewOrderDAO(db, true)
	_, err = lenient.InsertLine(ctx, order.ID, fx.student.ID, fx.product.ID)
	require.NoError(t, err)

	var product Product
	require.NoError(t, db.First(&product, fx.product.ID).Error)
	assert.Equal(t, -1, product.Stock)
}

func TestDeleteLine_CreditsStock(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	d := NewOrderDAO(db, true)
	ctx := context.Background()

	order, err := d.GetOrCreateOpen(ctx, fx.rep.ID, fx.event.ID)
	require.NoError(t, err)
	line, err := d.InsertLine(ctx, order.ID, fx.student.ID, fx.product.ID)
	require.NoError(t, err)

	require.NoError(t, d.DeleteLine(ctx, line.ID))

	var product Product
	require.NoError(t, db.First(&product, fx.product.ID).Error)
	assert.Equal(t, 10, product.Stock)

	err = d.DeleteLine(ctx, line.ID)
	assert.ErrorIs(t, err, ErrOrderLineNotFound)
}

func TestDeleteLine_ClosedOrder(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	d := NewOrderDAO(db, true)
	ctx := context.Background()

	order, err := d.GetOrCreateOpen(ctx, fx.rep.ID, fx.event.ID)
	require.NoError(t, err)
	line, err := d.InsertLine(ctx, order.ID, fx.student.ID, fx.product.ID)
	require.NoError(t, err)
	_, err = d.CloseOrder(ctx, order.ID, 0, nil, nil)
	require.NoError(t, err)

	err = d.DeleteLine(ctx, line.ID)
	assert.ErrorIs(t, err, ErrOrderClosed)
}

func TestCloseOrder(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	d := NewOrderDAO(db, true)
	ctx := context.Background()

	rate := ExchangeRate{Rate: decimal.NewFromFloat(36.50)}
	require.NoError(t, db.Create(&rate).Error)

	order, err := d.GetOrCreateOpen(ctx, fx.rep.ID, fx.event.ID)
	require.NoError(t, err)

	_, err = d.CloseOrder(ctx, order.ID, 0, nil, nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = d.InsertLine(ctx, order.ID, fx.student.ID, fx.product.ID)
	require.NoError(t, err)
	_, err = d.InsertLine(ctx, order.ID, fx.student.ID, fx.product.ID)
	require.NoError(t, err)

	ref := "01234567"
	closed, err := d.CloseOrder(ctx, order.ID, 0, &ref, &rate.ID)
	require.NoError(t, err)
	assert.True(t, closed.Closed)
	assert.False(t, closed.Checked)
	assert.False(t, closed.Rejected)
	require.NotNil(t, closed.TotalAmount)
	assert.True(t, closed.TotalAmount.Equal(decimal.NewFromFloat(5.00)))
	require.NotNil(t, closed.ClosedAt)
	require.NotNil(t, closed.ReferenceNumber)
	assert.Equal(t, ref, *closed.ReferenceNumber)

	_, err = d.CloseOrder(ctx, order.ID, 0, nil, nil)
	assert.ErrorIs(t, err, ErrOrderClosed)
}

func TestCloseOrder_TotalUsesSnapshotPrice(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	d := NewOrderDAO(db, true)
	ctx := context.Background()

	order, err := d.GetOrCreateOpen(ctx, fx.rep.ID, fx.event.ID)
	require.NoError(t, err)
	_, err = d.InsertLine(ctx, order.ID, fx.student.ID, fx.product.ID)
	require.NoError(t, err)

	// Price change after the line was added must not affect the total.
	require.NoError(t, db.Model(&Product{}).Where("id = ?", fx.product.ID).Update("price", decimal.NewFromFloat(9.99)).Error)

	closed, err := d.CloseOrder(ctx, order.ID, 1, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, closed.TotalAmount)
	assert.True(t, closed.TotalAmount.Equal(decimal.NewFromFloat(2.50)))
}

func TestUpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	d := NewOrderDAO(db, true)
	ctx := context.Background()

	order, err := d.GetOrCreateOpen(ctx, fx.rep.ID, fx.event.ID)
	require.NoError(t, err)

	_, err = d.UpdateStatus(ctx, order.ID, true, false)
	assert.ErrorIs(t, err, ErrOrderNotClosed)

	_, err = d.UpdateStatus(ctx, order.ID+100, true, false)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = d.InsertLine(ctx, order.ID, fx.student.ID, fx.product.ID)
	require.NoError(t, err)
	_, err = d.CloseOrder(ctx, order.ID, 0, nil, nil)
	require.NoError(t, err)

	checked, err := d.UpdateStatus(ctx, order.ID, true, false)
	require.NoError(t, err)
	assert.True(t, checked.Checked)
	assert.False(t, checked.Rejected)

	rejected, err := d.UpdateStatus(ctx, order.ID, false, true)
	require.NoError(t, err)
	assert.False(t, rejected.Checked)
	assert.True(t, rejected.Rejected)

	neither, err := d.UpdateStatus(ctx, order.ID, false, false)
	require.NoError(t, err)
	assert.False(t, neither.Checked)
	assert.False(t, neither.Rejected)
	assert.True(t, neither.Closed)
}

func TestDeleteOrder_CreditsEveryLine(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	d := NewOrderDAO(db, true)
	ctx := context.Background()

	order, err := d.GetOrCreateOpen(ctx, fx.rep.ID, fx.event.ID)
	require.NoError(t, err)
	_, err = d.InsertLine(ctx, order.ID, fx.student.ID, fx.product.ID)
	require.NoError(t, err)
	_, err = d.InsertLine(ctx, order.ID, fx.student.ID, fx.product.ID)
	require.NoError(t, err)

	require.NoError(t, d.DeleteOrder(ctx, order.ID))

	var product Product
	require.NoError(t, db.First(&product, fx.product.ID).Error)
	assert.Equal(t, 10, product.Stock)

	var lines int64
	require.NoError(t, db.Model(&OrderLine{}).Where("order_id = ?", order.ID).Count(&lines).Error)
	assert.EqualValues(t, 0, lines)

	err = d.DeleteOrder(ctx, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestFindClosedOrders_Filters(t *testing.T) {
	db := setupTestDB(t)
	fx := seedFixture(t, db)
	d := NewOrderDAO(db, true)
	ctx := context.Background()

	otherEvent := Event{Name: "Cantinazo Noviembre"}
	require.NoError(t, db.Create(&otherEvent).Error)

	for _, eventID := range []uint{fx.event.ID, otherEvent.ID} {
		order, err := d.GetOrCreateOpen(ctx, fx.rep.ID, eventID)
		require.NoError(t, err)
		_, err = d.InsertLine(ctx, order.ID, fx.student.ID, fx.product.ID)
		require.NoError(t, err)
		_, err = d.CloseOrder(ctx, order.ID, 1, nil, nil)
		require.NoError(t, err)
	}

	all, err := d.FindClosedOrders(ctx, nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := d.FindClosedOrders(ctx, &fx.event.ID, nil)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, fx.event.ID, scoped[0].EventID)

	nobody := uint64(999)
	none, err := d.FindClosedOrders(ctx, nil, &nobody)
	require.NoError(t, err)
	assert.Empty(t, none)
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/davronbek/resto-app/models"
	"github.com/davronbek/resto-app/utils"
)

// order dine-in: 2x Plov (50.000) + 1x Lagman (30.000), service charge 10%
func createDineInOrder(t *testing.T, db *gorm.DB, waiter *models.User, tableID *uint) *models.Order {
	t.Helper()
	order, err := NewOrderService(db).CreateOrder(waiter, models.OrderTypeDineIn, tableID, []NewItem{
		{FoodID: 1, Quantity: 2},
		{FoodID: 2, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order
}

func TestProcessPaymentFull(t *testing.T) {
	db := setupTestDB(t, "pay_full")
	waiter, _, cashier := seedRestaurant(t, db)
	openTestShift(t, db, cashier, 0)

	tableID := uint(1)
	order := createDineInOrder(t, db, waiter, &tableID)
	assert.Equal(t, float64(88000), order.GrandTotal)

	paid, err := NewPaymentService(db).ProcessPayment(cashier, order.ID, models.PaymentCash, nil, "keep the change")
	assert.NoError(t, err)
	assert.True(t, paid.IsPaid)
	assert.Equal(t, models.OrderPaid, paid.Status)
	assert.Equal(t, models.PaymentCash, *paid.PaymentType)
	assert.Equal(t, float64(88000), paid.PaymentSplit.Cash)
	assert.NotNil(t, paid.PaidAt)
	assert.Equal(t, cashier.ID, *paid.PaidByID)

	// meja langsung bebas setelah lunas
	var table models.Table
	assert.NoError(t, db.First(&table, tableID).Error)
	assert.Equal(t, models.TableFree, table.Status)
	assert.Nil(t, table.ActiveOrderID)
}

func TestProcessPaymentAlreadyPaid(t *testing.T) {
	db := setupTestDB(t, "pay_twice")
	waiter, _, cashier := seedRestaurant(t, db)
	openTestShift(t, db, cashier, 0)
	ps := NewPaymentService(db)

	order := createDineInOrder(t, db, waiter, nil)
	_, err := ps.ProcessPayment(cashier, order.ID, models.PaymentCard, nil, "")
	assert.NoError(t, err)

	_, err = ps.ProcessPayment(cashier, order.ID, models.PaymentCard, nil, "")
	assertAppCode(t, err, utils.CodeAlreadyPaid)
}

func TestProcessPaymentCancelledOrder(t *testing.T) {
	db := setupTestDB(t, "pay_cancelled")
	waiter, _, cashier := seedRestaurant(t, db)
	openTestShift(t, db, cashier, 0)
	os := NewOrderService(db)

	order, err := os.CreateOrder(waiter, models.OrderTypeDineIn, nil, []NewItem{{FoodID: 1, Quantity: 1}})
	assert.NoError(t, err)
	_, err = os.CancelItem(waiter, order.ID, order.Items[0].ID, "guest left")
	assert.NoError(t, err)

	_, err = NewPaymentService(db).ProcessPayment(cashier, order.ID, models.PaymentCash, nil, "")
	assertAppCode(t, err, utils.CodeAlreadyCancelled)
}

func TestProcessPaymentMixedRequiresSplit(t *testing.T) {
	db := setupTestDB(t, "pay_mixed_nosplit")
	waiter, _, cashier := seedRestaurant(t, db)
	openTestShift(t, db, cashier, 0)

	order := createDineInOrder(t, db, waiter, nil)
	_, err := NewPaymentService(db).ProcessPayment(cashier, order.ID, models.PaymentMixed, nil, "")
	assertAppCode(t, err, utils.CodeValidation)
}

func TestPartialPaymentLifecycle(t *testing.T) {
	db := setupTestDB(t, "pay_partial")
	waiter, _, cashier := seedRestaurant(t, db)
	openTestShift(t, db, cashier, 0)
	ps := NewPaymentService(db)

	tableID := uint(1)
	order := createDineInOrder(t, db, waiter, &tableID)
	plovID := order.Items[0].ID
	lagmanID := order.Items[1].ID

	// bayar Plov dulu: subtotal 50.000 + SC 5.000
	result, err := ps.ProcessPartialPayment(cashier, order.ID, []uint{plovID}, models.PaymentCash, nil, "")
	assert.NoError(t, err)
	assert.Equal(t, float64(50000), result.Session.Subtotal)
	assert.Equal(t, float64(5000), result.Session.ServiceCharge)
	assert.Equal(t, float64(55000), result.Session.Total)
	assert.Equal(t, float64(55000), result.Session.Split.Cash)
	assert.Equal(t, float64(33000), result.Remaining)
	assert.False(t, result.Order.IsPaid)

	// meja masih dipakai selama belum lunas penuh
	var table models.Table
	assert.NoError(t, db.First(&table, tableID).Error)
	assert.Equal(t, models.TableOccupied, table.Status)

	// item yang sama tidak bisa dibayar dua kali
	_, err = ps.ProcessPartialPayment(cashier, order.ID, []uint{plovID}, models.PaymentCash, nil, "")
	assertAppCode(t, err, utils.CodeValidation)

	// sisa item dibayar: order lunas, meja bebas
	result, err = ps.ProcessPartialPayment(cashier, order.ID, []uint{lagmanID}, models.PaymentCard, nil, "")
	assert.NoError(t, err)
	assert.Equal(t, float64(0), result.Remaining)
	assert.True(t, result.Order.IsPaid)
	assert.Equal(t, models.OrderPaid, result.Order.Status)

	assert.NoError(t, db.First(&table, tableID).Error)
	assert.Equal(t, models.TableFree, table.Status)

	sessions, err := ps.ListSessions(cashier.RestaurantID, order.ID)
	assert.NoError(t, err)
	assert.Len(t, sessions, 2)
	assert.Equal(t, []uint{plovID}, sessions[0].ItemIDs)
	assert.Equal(t, []uint{lagmanID}, sessions[1].ItemIDs)
}

func TestPartialPaymentUnknownItem(t *testing.T) {
	db := setupTestDB(t, "pay_partial_unknown")
	waiter, _, cashier := seedRestaurant(t, db)
	openTestShift(t, db, cashier, 0)

	order := createDineInOrder(t, db, waiter, nil)
	_, err := NewPaymentService(db).ProcessPartialPayment(cashier, order.ID, []uint{9999}, models.PaymentCash, nil, "")
	assertAppCode(t, err, utils.CodeNotFound)
}

func TestPartialPaymentNoServiceChargeForSaboy(t *testing.T) {
	db := setupTestDB(t, "pay_partial_saboy")
	waiter, _, cashier := seedRestaurant(t, db)
	openTestShift(t, db, cashier, 0)

	order, err := NewOrderService(db).CreateOrder(waiter, models.OrderTypeSaboy, nil, []NewItem{
		{FoodID: 1, Quantity: 1},
		{FoodID: 2, Quantity: 1},
	})
	assert.NoError(t, err)

	result, err := NewPaymentService(db).ProcessPartialPayment(cashier, order.ID, []uint{order.Items[0].ID}, models.PaymentClick, nil, "")
	assert.NoError(t, err)
	assert.Equal(t, float64(0), result.Session.ServiceCharge)
	assert.Equal(t, float64(25000), result.Session.Total)
	assert.Equal(t, float64(30000), result.Remaining)
}

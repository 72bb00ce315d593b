package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/davronbek/resto-app/utils"
)

func appCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *utils.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *utils.AppError, got %v", err)
	}
	return appErr.Code
}

// Order dine-in standar untuk test: dua item, service charge 10%
func newTestOrder() *Order {
	return &Order{
		ID:                   1,
		RestaurantID:         1,
		OrderType:            OrderTypeDineIn,
		Status:               OrderPending,
		ServiceChargePercent: 10,
		Items: []OrderItem{
			{ID: 1, OrderID: 1, FoodID: 10, FoodName: "Plov", Quantity: 2, Price: 25000, Status: ItemPending},
			{ID: 2, OrderID: 1, FoodID: 20, FoodName: "Lagman", Quantity: 1, Price: 30000, Status: ItemPending},
		},
	}
}

func TestRecalculateTotalsDineIn(t *testing.T) {
	order := newTestOrder()
	order.Surcharge = 5000
	order.DiscountPercent = 10
	order.Refresh()

	assert.Equal(t, float64(80000), order.Subtotal)
	assert.Equal(t, float64(8000), order.ServiceCharge)
	assert.Equal(t, float64(8000), order.Discount)
	// grandTotal = subtotal + serviceCharge + surcharge - discount
	assert.Equal(t, float64(85000), order.GrandTotal)
	assert.False(t, order.AllItemsReady)
}

func TestRecalculateTotalsMixedQuantities(t *testing.T) {
	order := &Order{
		OrderType:            OrderTypeDineIn,
		Status:               OrderPending,
		ServiceChargePercent: 10,
		Items: []OrderItem{
			{ID: 1, FoodID: 10, Quantity: 2, Price: 25000, Status: ItemPending},
			{ID: 2, FoodID: 20, Quantity: 3, Price: 5000, Status: ItemPending},
		},
	}
	order.Refresh()
	assert.Equal(t, float64(65000), order.Subtotal)
	assert.Equal(t, float64(6500), order.ServiceCharge)
	assert.Equal(t, float64(71500), order.GrandTotal)

	order.OrderType = OrderTypeSaboy
	order.Refresh()
	assert.Equal(t, float64(0), order.ServiceCharge)
	assert.Equal(t, float64(65000), order.GrandTotal)

	// satu item penuh, satu baru sebagian: order masih preparing
	one := 1
	assert.NoError(t, order.MarkItemReady(1, nil))
	assert.NoError(t, order.MarkItemReady(2, &one))
	assert.False(t, order.AllItemsReady)
	assert.Equal(t, OrderPreparing, order.Status)
}

func TestServiceChargeExemptOrderTypes(t *testing.T) {
	for _, typ := range []string{OrderTypeSaboy, OrderTypeTakeaway} {
		order := newTestOrder()
		order.OrderType = typ
		order.Refresh()

		assert.Equal(t, float64(0), order.ServiceCharge, typ)
		assert.Equal(t, float64(80000), order.GrandTotal, typ)
	}
}

func TestRecalculateTotalsIdempotent(t *testing.T) {
	order := newTestOrder()
	order.Refresh()
	first := order.GrandTotal
	order.Refresh()
	order.Refresh()
	assert.Equal(t, first, order.GrandTotal)
	assert.Equal(t, float64(80000), order.Subtotal)
}

func TestAddItemMergesSameFood(t *testing.T) {
	order := newTestOrder()
	order.Refresh()

	order.AddItem(OrderItem{FoodID: 10, FoodName: "Plov", Quantity: 3, Price: 25000})

	assert.Len(t, order.Items, 2)
	assert.Equal(t, 5, order.Items[0].Quantity)
	assert.Equal(t, float64(155000), order.Subtotal)
}

func TestAddItemIntoReadyItemDemotesToPreparing(t *testing.T) {
	order := newTestOrder()
	order.Items = order.Items[:1]
	order.Refresh()

	assert.NoError(t, order.MarkItemReady(1, nil))
	assert.Equal(t, ItemReady, order.Items[0].Status)
	assert.Equal(t, OrderReady, order.Status)

	merged := order.AddItem(OrderItem{FoodID: 10, FoodName: "Plov", Quantity: 1, Price: 25000})

	// porsi tambahan belum dimasak: item dan order kembali preparing
	assert.Equal(t, 3, merged.Quantity)
	assert.Equal(t, 2, merged.ReadyQuantity)
	assert.Equal(t, ItemPreparing, merged.Status)
	assert.Equal(t, OrderPreparing, order.Status)
	assert.False(t, order.AllItemsReady)
}

func TestAddItemDoesNotMergeIntoCancelled(t *testing.T) {
	order := newTestOrder()
	_, err := order.CancelItem(1, 99, "out of stock")
	assert.NoError(t, err)

	added := order.AddItem(OrderItem{FoodID: 10, FoodName: "Plov", Quantity: 1, Price: 25000})

	// item cancelled tetap cancelled, yang baru berdiri sendiri
	assert.Len(t, order.Items, 3)
	assert.Equal(t, ItemCancelled, order.Items[0].Status)
	assert.Equal(t, ItemPending, added.Status)
	assert.Equal(t, 1, added.Quantity)
}

func TestRemoveLastItemSoftDeletesOrder(t *testing.T) {
	order := newTestOrder()
	order.Refresh()

	assert.NoError(t, order.RemoveItem(1, 99))
	assert.False(t, order.IsDeleted)
	assert.Equal(t, float64(30000), order.Subtotal)

	assert.NoError(t, order.RemoveItem(2, 99))
	assert.True(t, order.IsDeleted)
	assert.NotNil(t, order.DeletedAt)
	assert.Equal(t, uint(99), *order.DeletedByID)
}

func TestRemoveMissingItem(t *testing.T) {
	order := newTestOrder()
	err := order.RemoveItem(42, 99)
	assert.Equal(t, utils.CodeNotFound, appCode(t, err))
}

func TestCancelLastActiveItemCancelsOrder(t *testing.T) {
	order := newTestOrder()

	cascaded, err := order.CancelItem(1, 99, "guest left")
	assert.NoError(t, err)
	assert.False(t, cascaded)
	assert.NotEqual(t, OrderCancelled, order.Status)

	cascaded, err = order.CancelItem(2, 99, "guest left")
	assert.NoError(t, err)
	assert.True(t, cascaded)
	assert.Equal(t, OrderCancelled, order.Status)
	// item cancelled tidak masuk total
	assert.Equal(t, float64(0), order.Subtotal)
	assert.Equal(t, float64(0), order.GrandTotal)
}

func TestCancelServedItemRejected(t *testing.T) {
	order := newTestOrder()
	assert.NoError(t, order.MarkItemReady(1, nil))
	assert.NoError(t, order.MarkItemServed(1))

	_, err := order.CancelItem(1, 99, "too late")
	assert.Equal(t, utils.CodeAlreadyCancelled, appCode(t, err))
}

func TestCancelItemTwiceRejected(t *testing.T) {
	order := newTestOrder()
	_, err := order.CancelItem(1, 99, "first")
	assert.NoError(t, err)
	_, err = order.CancelItem(1, 99, "second")
	assert.Equal(t, utils.CodeAlreadyCancelled, appCode(t, err))
}

func TestMarkItemReadyAccumulatesAndClamps(t *testing.T) {
	order := newTestOrder()
	one := 1

	assert.NoError(t, order.MarkItemReady(1, &one))
	assert.Equal(t, 1, order.Items[0].ReadyQuantity)
	assert.Equal(t, ItemPreparing, order.Items[0].Status)
	assert.Equal(t, OrderPreparing, order.Status)

	five := 5
	assert.NoError(t, order.MarkItemReady(1, &five))
	assert.Equal(t, 2, order.Items[0].ReadyQuantity, "ready quantity clamps at quantity")
	assert.Equal(t, ItemReady, order.Items[0].Status)
}

func TestMarkItemReadyNilMeansFullQuantity(t *testing.T) {
	order := newTestOrder()
	assert.NoError(t, order.MarkItemReady(1, nil))
	assert.NoError(t, order.MarkItemReady(2, nil))

	assert.True(t, order.AllItemsReady)
	assert.Equal(t, OrderReady, order.Status)
}

func TestRevertItemReady(t *testing.T) {
	order := newTestOrder()
	assert.NoError(t, order.MarkItemReady(1, nil))

	one := 1
	assert.NoError(t, order.RevertItemReady(1, &one))
	assert.Equal(t, 1, order.Items[0].ReadyQuantity)
	assert.Equal(t, ItemPreparing, order.Items[0].Status)

	ten := 10
	assert.NoError(t, order.RevertItemReady(1, &ten))
	assert.Equal(t, 0, order.Items[0].ReadyQuantity, "ready quantity floors at zero")

	assert.NoError(t, order.MarkItemReady(1, nil))
	assert.NoError(t, order.RevertItemReady(1, nil))
	assert.Equal(t, 0, order.Items[0].ReadyQuantity)
}

func TestMarkItemServedRequiresReady(t *testing.T) {
	order := newTestOrder()

	err := order.MarkItemServed(1)
	assert.Equal(t, utils.CodeValidation, appCode(t, err))

	assert.NoError(t, order.MarkItemReady(1, nil))
	assert.NoError(t, order.MarkItemServed(1))
	assert.Equal(t, ItemServed, order.Items[0].Status)
}

func TestOrderServedWhenAllItemsServed(t *testing.T) {
	order := newTestOrder()
	assert.NoError(t, order.MarkItemReady(1, nil))
	assert.NoError(t, order.MarkItemReady(2, nil))
	assert.NoError(t, order.MarkItemServed(1))
	assert.Equal(t, OrderReady, order.Status, "one served one ready is still ready")

	assert.NoError(t, order.MarkItemServed(2))
	assert.Equal(t, OrderServed, order.Status)
}

func TestCancelledItemIgnoredByStatusDerivation(t *testing.T) {
	order := newTestOrder()
	_, err := order.CancelItem(2, 99, "out of stock")
	assert.NoError(t, err)

	assert.NoError(t, order.MarkItemReady(1, nil))
	assert.NoError(t, order.MarkItemServed(1))
	assert.Equal(t, OrderServed, order.Status)
}

func TestTerminalStatusSticky(t *testing.T) {
	order := newTestOrder()
	order.Status = OrderPaid
	order.IsPaid = true

	assert.NoError(t, order.MarkItemReady(1, nil))
	assert.Equal(t, OrderPaid, order.Status, "paid never overwritten by derivation")

	order = newTestOrder()
	order.Status = OrderCancelled
	order.Refresh()
	assert.Equal(t, OrderCancelled, order.Status)
}

func TestUpdateItemQuantity(t *testing.T) {
	order := newTestOrder()
	assert.NoError(t, order.MarkItemReady(1, nil)) // ready = 2

	assert.NoError(t, order.UpdateItemQuantity(1, 1))
	assert.Equal(t, 1, order.Items[0].ReadyQuantity, "ready quantity clamped down")
	assert.Equal(t, float64(55000), order.Subtotal)

	err := order.UpdateItemQuantity(1, 0)
	assert.Equal(t, utils.CodeValidation, appCode(t, err))
}

func TestApprove(t *testing.T) {
	order := newTestOrder()
	assert.NoError(t, order.Approve())
	assert.Equal(t, OrderApproved, order.Status)

	err := order.Approve()
	assert.Equal(t, utils.CodeAlreadyApproved, appCode(t, err))
}

func TestGrandTotalIdentityHolds(t *testing.T) {
	order := newTestOrder()
	order.Surcharge = 3000
	order.DiscountPercent = 5

	mutations := []func(){
		func() { order.AddItem(OrderItem{FoodID: 30, FoodName: "Shashlik", Quantity: 4, Price: 18000}) },
		func() { _ = order.UpdateItemQuantity(2, 3) },
		func() { _, _ = order.CancelItem(1, 9, "x") },
		func() { _ = order.RemoveItem(2, 9) },
	}
	for _, mutate := range mutations {
		mutate()
		assert.Equal(t,
			order.Subtotal+order.ServiceCharge+order.Surcharge-order.Discount,
			order.GrandTotal)
	}
}

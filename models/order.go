package models

import (
	"math"
	"time"

	"github.com/davronbek/resto-app/utils"
)

// Order statuses
const (
	OrderPending   = "pending"
	OrderApproved  = "approved"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderServed    = "served"
	OrderPaid      = "paid"
	OrderCancelled = "cancelled"
)

// Order types
const (
	OrderTypeDineIn   = "dine_in"
	OrderTypeSaboy    = "saboy"
	OrderTypeTakeaway = "takeaway"
)

// Payment types
const (
	PaymentCash  = "cash"
	PaymentCard  = "card"
	PaymentClick = "click"
	PaymentMixed = "mixed"
)

// PaymentSplit menyimpan pembagian pembayaran mixed (cash/card/click).
// Untuk type 'mixed' nilai ini disimpan apa adanya dari kasir, bukan dihitung.
type PaymentSplit struct {
	Cash  float64 `gorm:"type:decimal(12,2);not null;default:0" json:"cash"`
	Card  float64 `gorm:"type:decimal(12,2);not null;default:0" json:"card"`
	Click float64 `gorm:"type:decimal(12,2);not null;default:0" json:"click"`
}

func (s PaymentSplit) Total() float64 {
	return s.Cash + s.Card + s.Click
}

type Order struct {
	ID           uint  `gorm:"primaryKey" json:"id"`
	RestaurantID uint  `gorm:"not null;index" json:"restaurant_id"`
	ShiftID      *uint `gorm:"index" json:"shift_id,omitempty"`
	// ShiftID == nil berarti order "orphan", menunggu diadopsi shift berikutnya
	TransferredFromShiftID *uint  `json:"transferred_from_shift_id,omitempty"`
	OrderNumber            int    `gorm:"not null" json:"order_number"`
	OrderType              string `gorm:"type:varchar(20);not null;default:'dine_in'" json:"order_type"`
	TableID                *uint  `gorm:"index" json:"table_id,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	Subtotal             float64 `gorm:"type:decimal(12,2);not null;default:0" json:"subtotal"`
	ServiceCharge        float64 `gorm:"type:decimal(12,2);not null;default:0" json:"service_charge"`
	ServiceChargePercent float64 `gorm:"type:decimal(5,2);not null;default:0" json:"service_charge_percent"`
	Discount             float64 `gorm:"type:decimal(12,2);not null;default:0" json:"discount"`
	DiscountPercent      float64 `gorm:"type:decimal(5,2);not null;default:0" json:"discount_percent"`
	Surcharge            float64 `gorm:"type:decimal(12,2);not null;default:0" json:"surcharge"`
	GrandTotal           float64 `gorm:"type:decimal(12,2);not null;default:0" json:"grand_total"`
	AllItemsReady        bool    `gorm:"not null;default:false" json:"all_items_ready"`

	Status   string `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	WaiterID *uint  `gorm:"index" json:"waiter_id,omitempty"`
	Waiter   *User  `gorm:"foreignKey:WaiterID" json:"waiter,omitempty"`

	IsPaid         bool         `gorm:"not null;default:false" json:"is_paid"`
	PaymentType    *string      `gorm:"type:varchar(20)" json:"payment_type,omitempty"`
	PaymentSplit   PaymentSplit `gorm:"embedded;embeddedPrefix:payment_" json:"payment_split"`
	PaymentComment string       `gorm:"type:text" json:"payment_comment,omitempty"`
	PaidAt         *time.Time   `json:"paid_at,omitempty"`
	PaidByID       *uint        `json:"paid_by_id,omitempty"`

	IsDeleted   bool       `gorm:"not null;default:false;index" json:"is_deleted"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	DeletedByID *uint      `json:"deleted_by_id,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// IsTerminal -> paid dan cancelled bersifat final
func (o *Order) IsTerminal() bool {
	return o.Status == OrderPaid || o.Status == OrderCancelled
}

// ActiveItems mengembalikan item yang tidak dihapus dan tidak dibatalkan.
// Semua perhitungan total/status hanya melihat item ini.
func (o *Order) ActiveItems() []*OrderItem {
	var items []*OrderItem
	for i := range o.Items {
		it := &o.Items[i]
		if !it.IsDeleted && it.Status != ItemCancelled {
			items = append(items, it)
		}
	}
	return items
}

// VisibleItems mengembalikan item yang tidak dihapus (termasuk cancelled, untuk audit)
func (o *Order) VisibleItems() []*OrderItem {
	var items []*OrderItem
	for i := range o.Items {
		it := &o.Items[i]
		if !it.IsDeleted {
			items = append(items, it)
		}
	}
	return items
}

func (o *Order) findItem(itemID uint) *OrderItem {
	for i := range o.Items {
		it := &o.Items[i]
		if it.ID == itemID && !it.IsDeleted {
			return it
		}
	}
	return nil
}

// AddItem -> jika item aktif dengan food yang sama sudah ada quantity-nya
// ditambah, kalau tidak item baru ditambahkan. Tidak ada batas atas quantity.
func (o *Order) AddItem(item OrderItem) *OrderItem {
	for i := range o.Items {
		existing := &o.Items[i]
		if existing.IsDeleted || existing.Status == ItemCancelled {
			continue
		}
		if existing.FoodID == item.FoodID {
			existing.Quantity += item.Quantity
			// item yang sudah ready turun lagi ke preparing kalau porsi baru belum siap
			if existing.Status == ItemReady && existing.ReadyQuantity < existing.Quantity {
				existing.Status = ItemPreparing
			}
			o.Refresh()
			return existing
		}
	}

	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}
	if item.Status == "" {
		item.Status = ItemPending
	}
	o.Items = append(o.Items, item)
	o.Refresh()
	return &o.Items[len(o.Items)-1]
}

// RemoveItem -> soft-delete item. Jika tidak ada item aktif (non-deleted)
// tersisa, order ikut di-soft-delete (post-condition cascading).
func (o *Order) RemoveItem(itemID uint, actorID uint) error {
	item := o.findItem(itemID)
	if item == nil {
		return utils.NotFoundError("order item")
	}

	now := time.Now()
	item.IsDeleted = true
	item.DeletedAt = &now
	item.DeletedByID = &actorID

	if len(o.VisibleItems()) == 0 {
		o.IsDeleted = true
		o.DeletedAt = &now
		o.DeletedByID = &actorID
	}

	o.Refresh()
	return nil
}

// UpdateItemQuantity -> ubah jumlah item; readyQuantity di-clamp turun
// kalau quantity baru lebih kecil.
func (o *Order) UpdateItemQuantity(itemID uint, qty int) error {
	if qty < 1 {
		return utils.ValidationError("quantity must be at least 1")
	}
	item := o.findItem(itemID)
	if item == nil {
		return utils.NotFoundError("order item")
	}

	item.Quantity = qty
	if item.ReadyQuantity > qty {
		item.ReadyQuantity = qty
	}

	o.Refresh()
	return nil
}

// CancelItem membatalkan satu item. Kalau setelahnya tidak ada item yang
// bukan deleted/cancelled, seluruh order ikut dibatalkan. Return pertama
// true jika order ikut dibatalkan (sinyal "meja bisa dibebaskan").
func (o *Order) CancelItem(itemID uint, actorID uint, reason string) (bool, error) {
	item := o.findItem(itemID)
	if item == nil {
		return false, utils.NotFoundError("order item")
	}
	// cancelled bersifat terminal; item served juga tidak bisa dibatalkan lagi
	if item.Status == ItemCancelled || item.Status == ItemServed {
		return false, utils.NewAppError(utils.CodeAlreadyCancelled, "item can no longer be cancelled")
	}

	now := time.Now()
	item.Status = ItemCancelled
	item.CancelledAt = &now
	item.CancelledByID = &actorID
	item.CancelReason = reason

	orderCancelled := false
	if len(o.ActiveItems()) == 0 && !o.IsTerminal() {
		o.Status = OrderCancelled
		orderCancelled = true
	}

	o.Refresh()
	return orderCancelled, nil
}

// MarkItemReady -> readyCount nil berarti seluruh quantity siap.
// readyQuantity diakumulasi dan di-clamp di quantity.
func (o *Order) MarkItemReady(itemID uint, readyCount *int) error {
	item := o.findItem(itemID)
	if item == nil {
		return utils.NotFoundError("order item")
	}
	if item.Status == ItemCancelled {
		return utils.NewAppError(utils.CodeAlreadyCancelled, "item is cancelled")
	}

	if readyCount == nil {
		item.ReadyQuantity = item.Quantity
	} else {
		if *readyCount < 1 {
			return utils.ValidationError("ready count must be at least 1")
		}
		item.ReadyQuantity += *readyCount
		if item.ReadyQuantity > item.Quantity {
			item.ReadyQuantity = item.Quantity
		}
	}

	if item.ReadyQuantity >= item.Quantity {
		item.Status = ItemReady
	} else {
		item.Status = ItemPreparing
	}

	o.Refresh()
	return nil
}

// RevertItemReady -> jalur kebalikan MarkItemReady: kurangi readyQuantity
// (floor 0) dan turunkan status ke preparing kalau tidak lagi penuh.
func (o *Order) RevertItemReady(itemID uint, count *int) error {
	item := o.findItem(itemID)
	if item == nil {
		return utils.NotFoundError("order item")
	}
	if item.Status == ItemCancelled {
		return utils.NewAppError(utils.CodeAlreadyCancelled, "item is cancelled")
	}

	if count == nil {
		item.ReadyQuantity = 0
	} else {
		if *count < 1 {
			return utils.ValidationError("revert count must be at least 1")
		}
		item.ReadyQuantity -= *count
		if item.ReadyQuantity < 0 {
			item.ReadyQuantity = 0
		}
	}

	if item.ReadyQuantity < item.Quantity {
		item.Status = ItemPreparing
	}

	o.Refresh()
	return nil
}

// MarkItemServed -> item ready disajikan ke meja
func (o *Order) MarkItemServed(itemID uint) error {
	item := o.findItem(itemID)
	if item == nil {
		return utils.NotFoundError("order item")
	}
	if item.Status == ItemCancelled {
		return utils.NewAppError(utils.CodeAlreadyCancelled, "item is cancelled")
	}
	if item.Status != ItemReady {
		return utils.ValidationError("item is not ready yet")
	}

	item.Status = ItemServed
	o.Refresh()
	return nil
}

// Approve -> waiter/admin menyetujui order pending
func (o *Order) Approve() error {
	if o.Status != OrderPending {
		return utils.NewAppError(utils.CodeAlreadyApproved, "order is already approved")
	}
	o.Status = OrderApproved
	return nil
}

// Refresh menjalankan RecalculateTotals + UpdateStatusFromItems.
// Dipanggil setelah setiap mutasi item.
func (o *Order) Refresh() {
	o.RecalculateTotals()
	o.UpdateStatusFromItems()
}

// RecalculateTotals menghitung ulang semua field turunan. Pure dan idempotent.
// Service charge dipaksa 0 untuk saboy/takeaway.
func (o *Order) RecalculateTotals() {
	active := o.ActiveItems()

	var subtotal float64
	for _, it := range active {
		subtotal += it.Price * float64(it.Quantity)
	}
	o.Subtotal = subtotal

	if o.OrderType == OrderTypeSaboy || o.OrderType == OrderTypeTakeaway {
		o.ServiceCharge = 0
	} else {
		o.ServiceCharge = math.Round(subtotal * o.ServiceChargePercent / 100)
	}

	if o.DiscountPercent > 0 {
		o.Discount = math.Round(subtotal * o.DiscountPercent / 100)
	} else {
		o.Discount = 0
	}

	o.GrandTotal = o.Subtotal + o.ServiceCharge + o.Surcharge - o.Discount

	allReady := len(active) > 0
	for _, it := range active {
		if it.ReadyQuantity < it.Quantity {
			allReady = false
			break
		}
	}
	o.AllItemsReady = allReady
}

// UpdateStatusFromItems menurunkan status order dari status item aktif.
// paid dan cancelled sticky: tidak pernah ditimpa di sini.
func (o *Order) UpdateStatusFromItems() {
	if o.IsTerminal() {
		return
	}

	active := o.ActiveItems()
	if len(active) == 0 {
		return
	}

	allServed := true
	allReadyOrServed := true
	anyInProgress := false
	for _, it := range active {
		if it.Status != ItemServed {
			allServed = false
		}
		if it.Status != ItemReady && it.Status != ItemServed {
			allReadyOrServed = false
		}
		if it.Status == ItemPreparing || it.ReadyQuantity > 0 {
			anyInProgress = true
		}
	}

	switch {
	case allServed:
		o.Status = OrderServed
	case allReadyOrServed:
		o.Status = OrderReady
	case anyInProgress:
		o.Status = OrderPreparing
	}
}

package services

import (
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/davronbek/resto-app/models"
	"github.com/davronbek/resto-app/realtime"
	"github.com/davronbek/resto-app/utils"
)

type PaymentService struct {
	DB *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{DB: db}
}

func validPaymentType(t string) bool {
	return t == models.PaymentCash || t == models.PaymentCard ||
		t == models.PaymentClick || t == models.PaymentMixed
}

// ProcessPayment melunasi satu order penuh. Untuk type 'mixed' split dari
// kasir disimpan apa adanya untuk rekonsiliasi, tidak pernah dihitung ulang.
func (ps *PaymentService) ProcessPayment(actor *models.User, orderID uint, paymentType string, split *models.PaymentSplit, comment string) (*models.Order, error) {
	if !validPaymentType(paymentType) {
		return nil, utils.ValidationError("unknown payment type: %s", paymentType)
	}
	if paymentType == models.PaymentMixed && split == nil {
		return nil, utils.ValidationError("mixed payment requires a cash/card/click split")
	}

	var order *models.Order
	err := ps.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = loadOrder(tx, actor.RestaurantID, orderID)
		if err != nil {
			return err
		}
		if order.IsPaid {
			return utils.NewAppError(utils.CodeAlreadyPaid, "order is already paid")
		}
		if order.Status == models.OrderCancelled {
			return utils.NewAppError(utils.CodeAlreadyCancelled, "order is cancelled")
		}

		now := time.Now()
		order.IsPaid = true
		order.Status = models.OrderPaid
		order.PaymentType = &paymentType
		order.PaymentComment = comment
		order.PaidAt = &now
		order.PaidByID = &actor.ID

		switch paymentType {
		case models.PaymentMixed:
			order.PaymentSplit = *split
		case models.PaymentCash:
			order.PaymentSplit = models.PaymentSplit{Cash: order.GrandTotal}
		case models.PaymentCard:
			order.PaymentSplit = models.PaymentSplit{Card: order.GrandTotal}
		case models.PaymentClick:
			order.PaymentSplit = models.PaymentSplit{Click: order.GrandTotal}
		}

		if order.TableID != nil {
			if err := FreeTable(tx, *order.TableID); err != nil {
				return err
			}
		}
		return tx.Save(order).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Order #%d paid (%s, %s)",
		order.OrderNumber, paymentType, utils.FormatCurrencyUZS(order.GrandTotal))
	ps.broadcastPayment(order, nil)
	return order, nil
}

// PartialPaymentResult -> hasil satu pembayaran parsial
type PartialPaymentResult struct {
	Order     *models.Order          `json:"order"`
	Session   *models.PaymentSession `json:"session"`
	Remaining float64                `json:"remaining"`
}

// ProcessPartialPayment melunasi subset item yang dipilih kasir. Dicatat
// sebagai payment session immutable, bukan flag destruktif di item. Order
// baru dianggap paid kalau SEMUA item aktif sudah tercakup session.
// Ini satu-satunya jalur meja boleh dibebaskan sebelum order lunas penuh.
func (ps *PaymentService) ProcessPartialPayment(actor *models.User, orderID uint, itemIDs []uint, paymentType string, split *models.PaymentSplit, comment string) (*PartialPaymentResult, error) {
	if !validPaymentType(paymentType) {
		return nil, utils.ValidationError("unknown payment type: %s", paymentType)
	}
	if len(itemIDs) == 0 {
		return nil, utils.ValidationError("no items selected for payment")
	}
	if paymentType == models.PaymentMixed && split == nil {
		return nil, utils.ValidationError("mixed payment requires a cash/card/click split")
	}

	var result PartialPaymentResult
	err := ps.DB.Transaction(func(tx *gorm.DB) error {
		order, err := loadOrder(tx, actor.RestaurantID, orderID)
		if err != nil {
			return err
		}
		if order.IsPaid {
			return utils.NewAppError(utils.CodeAlreadyPaid, "order is already paid")
		}
		if order.Status == models.OrderCancelled {
			return utils.NewAppError(utils.CodeAlreadyCancelled, "order is cancelled")
		}

		covered, err := coveredItemIDs(tx, order.ID)
		if err != nil {
			return err
		}

		active := order.ActiveItems()
		activeByID := make(map[uint]*models.OrderItem, len(active))
		for _, it := range active {
			activeByID[it.ID] = it
		}

		var subtotal float64
		for _, id := range itemIDs {
			it, ok := activeByID[id]
			if !ok {
				return utils.NotFoundError("order item")
			}
			if covered[id] {
				return utils.ValidationError("item %d is already paid", id)
			}
			subtotal += it.Price * float64(it.Quantity)
			covered[id] = true
		}

		serviceCharge := subsetServiceCharge(order, subtotal)
		total := subtotal + serviceCharge

		session := models.PaymentSession{
			OrderID:       order.ID,
			ShiftID:       order.ShiftID,
			ItemIDs:       itemIDs,
			Subtotal:      subtotal,
			ServiceCharge: serviceCharge,
			Total:         total,
			PaymentType:   paymentType,
			Comment:       comment,
			CashierID:     actor.ID,
			PaidAt:        time.Now(),
		}
		switch paymentType {
		case models.PaymentMixed:
			session.Split = *split
		case models.PaymentCash:
			session.Split = models.PaymentSplit{Cash: total}
		case models.PaymentCard:
			session.Split = models.PaymentSplit{Card: total}
		case models.PaymentClick:
			session.Split = models.PaymentSplit{Click: total}
		}
		if err := tx.Create(&session).Error; err != nil {
			return err
		}

		// order lunas kalau tidak ada lagi item aktif di luar coverage
		var remainingSubtotal float64
		allCovered := true
		for _, it := range active {
			if !covered[it.ID] {
				allCovered = false
				remainingSubtotal += it.Price * float64(it.Quantity)
			}
		}

		if allCovered {
			now := time.Now()
			order.IsPaid = true
			order.Status = models.OrderPaid
			order.PaidAt = &now
			order.PaidByID = &actor.ID
			if order.TableID != nil {
				if err := FreeTable(tx, *order.TableID); err != nil {
					return err
				}
			}
			result.Remaining = 0
		} else {
			result.Remaining = remainingSubtotal + subsetServiceCharge(order, remainingSubtotal)
		}

		if err := tx.Save(order).Error; err != nil {
			return err
		}

		result.Order = order
		result.Session = &session
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Partial payment on order #%d: %s, remaining %s",
		result.Order.OrderNumber, utils.FormatCurrencyUZS(result.Session.Total),
		utils.FormatCurrencyUZS(result.Remaining))
	ps.broadcastPayment(result.Order, result.Session)
	return &result, nil
}

// subsetServiceCharge menerapkan aturan service charge ke subtotal subset;
// saboy/takeaway tetap bebas service charge.
func subsetServiceCharge(order *models.Order, subtotal float64) float64 {
	if order.OrderType == models.OrderTypeSaboy || order.OrderType == models.OrderTypeTakeaway {
		return 0
	}
	return math.Round(subtotal * order.ServiceChargePercent / 100)
}

// coveredItemIDs -> union item id dari semua session order ini
func coveredItemIDs(tx *gorm.DB, orderID uint) (map[uint]bool, error) {
	var sessions []models.PaymentSession
	if err := tx.Where("order_id = ?", orderID).Find(&sessions).Error; err != nil {
		return nil, err
	}
	covered := make(map[uint]bool)
	for _, s := range sessions {
		for _, id := range s.ItemIDs {
			covered[id] = true
		}
	}
	return covered, nil
}

// ListSessions -> riwayat pembayaran parsial satu order
func (ps *PaymentService) ListSessions(restaurantID, orderID uint) ([]models.PaymentSession, error) {
	if _, err := loadOrder(ps.DB, restaurantID, orderID); err != nil {
		return nil, err
	}
	var sessions []models.PaymentSession
	err := ps.DB.Where("order_id = ?", orderID).Order("paid_at asc").Find(&sessions).Error
	return sessions, err
}

func (ps *PaymentService) broadcastPayment(order *models.Order, session *models.PaymentSession) {
	realtime.BroadcastToRestaurant(order.RestaurantID, realtime.Message{
		Event: realtime.EventPaymentUpdate,
		Data: map[string]interface{}{
			"order":   order,
			"session": session,
		},
	})
	realtime.BroadcastToRole(order.RestaurantID, models.RoleCashier, realtime.Message{
		Event: realtime.EventStaffNotif,
		Data:  "Payment received for order",
	})
}

package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/davronbek/resto-app/models"
	"github.com/davronbek/resto-app/realtime"
	"github.com/davronbek/resto-app/utils"
)

type ShiftService struct {
	DB *gorm.DB
}

func NewShiftService(db *gorm.DB) *ShiftService {
	return &ShiftService{DB: db}
}

// ActiveShiftTx mengembalikan shift aktif restoran, atau nil kalau tidak ada.
// Aturan "maksimal satu shift aktif" dijaga saat open, bukan di query ini.
func ActiveShiftTx(tx *gorm.DB, restaurantID uint) (*models.Shift, error) {
	var shift models.Shift
	err := tx.Where("restaurant_id = ? AND status = ? AND is_deleted = ?",
		restaurantID, models.ShiftActive, false).
		First(&shift).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (ss *ShiftService) GetActiveShift(restaurantID uint) (*models.Shift, error) {
	return ActiveShiftTx(ss.DB, restaurantID)
}

// OpenShift membuka shift baru. Gagal ACTIVE_SHIFT_EXISTS kalau masih ada
// shift aktif. Setelah dibuat, semua order orphan (shift_id null, belum
// dibayar, belum terminal) diadopsi oleh shift baru dan id-nya dicatat.
func (ss *ShiftService) OpenShift(actor *models.User, openingCash float64) (*models.Shift, error) {
	if openingCash < 0 {
		return nil, utils.ValidationError("opening cash cannot be negative")
	}

	var shift models.Shift
	err := ss.DB.Transaction(func(tx *gorm.DB) error {
		existing, err := ActiveShiftTx(tx, actor.RestaurantID)
		if err != nil {
			return err
		}
		if existing != nil {
			return utils.NewAppError(utils.CodeActiveShiftExists, "an active shift already exists")
		}

		number, err := NextSequence(tx, ShiftNumberKey(actor.RestaurantID))
		if err != nil {
			return err
		}

		shift = models.Shift{
			RestaurantID: actor.RestaurantID,
			ShiftNumber:  int(number),
			Status:       models.ShiftActive,
			OpeningCash:  openingCash,
			OpenedByID:   actor.ID,
			OpenedAt:     time.Now(),
		}
		if err := tx.Create(&shift).Error; err != nil {
			return err
		}

		// Adoption sweep: order tanpa shift (ditinggal shift sebelumnya atau
		// dibuat sebelum sistem shift ada) ditarik ke shift baru.
		var orphans []models.Order
		if err := tx.Where(
			"restaurant_id = ? AND shift_id IS NULL AND is_paid = ? AND is_deleted = ? AND status NOT IN ?",
			actor.RestaurantID, false, false, []string{models.OrderPaid, models.OrderCancelled},
		).Find(&orphans).Error; err != nil {
			return err
		}

		if len(orphans) > 0 {
			var adoptedIDs []uint
			for i := range orphans {
				adoptedIDs = append(adoptedIDs, orphans[i].ID)
			}
			if err := tx.Model(&models.Order{}).
				Where("id IN ?", adoptedIDs).
				Update("shift_id", shift.ID).Error; err != nil {
				return err
			}
			shift.AdoptedOrderIDs = adoptedIDs
			if err := tx.Save(&shift).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Shift #%d opened for restaurant %d (adopted %d orders)",
		shift.ShiftNumber, shift.RestaurantID, len(shift.AdoptedOrderIDs))
	realtime.BroadcastToRestaurant(shift.RestaurantID, realtime.Message{
		Event: realtime.EventShiftOpen,
		Data:  shift,
	})
	return &shift, nil
}

// CloseShift menutup shift aktif: hitung statistik dari semua order shift
// ini, lepaskan order yang belum dibayar (shift_id = null) supaya diadopsi
// shift berikutnya, lalu tandai closed. Order paid tidak pernah disentuh.
func (ss *ShiftService) CloseShift(actor *models.User, closingCash float64, notes string) (*models.Shift, error) {
	var shift *models.Shift
	err := ss.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		shift, err = ActiveShiftTx(tx, actor.RestaurantID)
		if err != nil {
			return err
		}
		if shift == nil {
			return utils.NewAppError(utils.CodeNoActiveShift, "no active shift to close")
		}

		var orders []models.Order
		if err := tx.Preload("Items").
			Where("shift_id = ? AND is_deleted = ?", shift.ID, false).
			Find(&orders).Error; err != nil {
			return err
		}

		stats, err := computeShiftStats(tx, shift.ID, orders)
		if err != nil {
			return err
		}
		shift.Stats = stats

		// Transfer order yang belum selesai ke shift berikutnya lewat
		// mekanisme orphan + adoption sweep.
		var detachIDs []uint
		for i := range orders {
			o := &orders[i]
			if !o.IsPaid && !o.IsTerminal() {
				detachIDs = append(detachIDs, o.ID)
			}
		}
		if len(detachIDs) > 0 {
			if err := tx.Model(&models.Order{}).
				Where("id IN ?", detachIDs).
				Updates(map[string]interface{}{
					"shift_id":                  nil,
					"transferred_from_shift_id": shift.ID,
				}).Error; err != nil {
				return err
			}
		}

		now := time.Now()
		shift.Status = models.ShiftClosed
		shift.ClosingCash = closingCash
		shift.ExpectedClosingCash = shift.OpeningCash + stats.CashRevenue
		shift.CashDifference = closingCash - shift.ExpectedClosingCash
		shift.ClosedByID = &actor.ID
		shift.ClosedAt = &now
		shift.Notes = notes

		return tx.Save(shift).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Shift #%d closed for restaurant %d (cash difference: %s)",
		shift.ShiftNumber, shift.RestaurantID, utils.FormatCurrencyUZS(shift.CashDifference))
	realtime.BroadcastToRestaurant(shift.RestaurantID, realtime.Message{
		Event: realtime.EventShiftClose,
		Data:  shift,
	})
	return shift, nil
}

// computeShiftStats memindai order satu shift. Revenue dari payment session
// dihitung di shift tempat session itu diterima, jadi order parsial yang
// menyeberang shift tidak membawa uang shift lama ke shift berikutnya.
// Order yang dilunasi penuh tanpa session memakai pembayaran di order;
// pembayaran mixed memakai split yang tercatat, bukan estimasi.
func computeShiftStats(tx *gorm.DB, shiftID uint, orders []models.Order) (models.ShiftStats, error) {
	var stats models.ShiftStats
	stats.TotalOrders = len(orders)

	for i := range orders {
		o := &orders[i]

		if o.Status == models.OrderCancelled {
			stats.CancelledOrders++
		}

		for _, it := range o.VisibleItems() {
			if it.Status == models.ItemCancelled {
				stats.CancelledItemsCount += it.Quantity
				stats.CancelledItemsValue += it.Price * float64(it.Quantity)
			} else if o.IsPaid {
				stats.ItemsSold += it.Quantity
			}
		}

		if !o.IsPaid {
			continue
		}
		stats.PaidOrders++

		var sessionCount int64
		if err := tx.Model(&models.PaymentSession{}).
			Where("order_id = ?", o.ID).
			Count(&sessionCount).Error; err != nil {
			return stats, err
		}
		if sessionCount == 0 && o.PaymentType != nil {
			addRevenue(&stats, *o.PaymentType, o.GrandTotal, o.PaymentSplit)
		}
	}

	// semua session shift ini, termasuk pada order yang belum lunas saat tutup
	var sessions []models.PaymentSession
	if err := tx.Where("shift_id = ?", shiftID).Find(&sessions).Error; err != nil {
		return stats, err
	}
	for _, s := range sessions {
		addRevenue(&stats, s.PaymentType, s.Total, s.Split)
	}

	stats.TotalRevenue = stats.CashRevenue + stats.CardRevenue + stats.ClickRevenue
	return stats, nil
}

func addRevenue(stats *models.ShiftStats, paymentType string, total float64, split models.PaymentSplit) {
	switch paymentType {
	case models.PaymentCash:
		stats.CashRevenue += total
	case models.PaymentCard:
		stats.CardRevenue += total
	case models.PaymentClick:
		stats.ClickRevenue += total
	case models.PaymentMixed:
		stats.CashRevenue += split.Cash
		stats.CardRevenue += split.Card
		stats.ClickRevenue += split.Click
	}
}

// GetShiftByID -> detail shift beserta stats
func (ss *ShiftService) GetShiftByID(restaurantID, shiftID uint) (*models.Shift, error) {
	var shift models.Shift
	err := ss.DB.Where("id = ? AND restaurant_id = ? AND is_deleted = ?", shiftID, restaurantID, false).
		First(&shift).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFoundError("shift")
	}
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

// ListShifts -> riwayat shift terbaru dulu
func (ss *ShiftService) ListShifts(restaurantID uint) ([]models.Shift, error) {
	var shifts []models.Shift
	err := ss.DB.Where("restaurant_id = ? AND is_deleted = ?", restaurantID, false).
		Order("shift_number desc").
		Find(&shifts).Error
	return shifts, err
}

package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/davronbek/resto-app/models"
	"github.com/davronbek/resto-app/realtime"
	"github.com/davronbek/resto-app/utils"
)

type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

// NewItem adalah permintaan penambahan item dari client
type NewItem struct {
	FoodID   uint `json:"food_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required"`
}

func validOrderType(t string) bool {
	return t == models.OrderTypeDineIn || t == models.OrderTypeSaboy || t == models.OrderTypeTakeaway
}

// CreateOrder membuat order baru di bawah shift aktif. Gagal NO_ACTIVE_SHIFT
// kalau tidak ada shift, FOOD_UNAVAILABLE kalau ada food di stop-list.
func (svc *OrderService) CreateOrder(actor *models.User, orderType string, tableID *uint, items []NewItem) (*models.Order, error) {
	if !validOrderType(orderType) {
		return nil, utils.ValidationError("unknown order type: %s", orderType)
	}
	if len(items) == 0 {
		return nil, utils.ValidationError("order must contain at least one item")
	}
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, utils.ValidationError("quantity must be at least 1")
		}
	}

	var order models.Order
	err := svc.DB.Transaction(func(tx *gorm.DB) error {
		shift, err := ActiveShiftTx(tx, actor.RestaurantID)
		if err != nil {
			return err
		}
		if shift == nil {
			return utils.NewAppError(utils.CodeNoActiveShift, "no active shift, open a shift first")
		}

		var restaurant models.Restaurant
		if err := tx.First(&restaurant, actor.RestaurantID).Error; err != nil {
			return err
		}

		foods, err := loadAvailableFoods(tx, actor.RestaurantID, items)
		if err != nil {
			return err
		}

		number, err := NextSequence(tx, OrderNumberKey(actor.RestaurantID, time.Now()))
		if err != nil {
			return err
		}

		order = models.Order{
			RestaurantID:         actor.RestaurantID,
			ShiftID:              &shift.ID,
			OrderNumber:          int(number),
			OrderType:            orderType,
			TableID:              tableID,
			ServiceChargePercent: restaurant.ServiceChargePercent,
			Status:               models.OrderPending,
			WaiterID:             &actor.ID,
		}
		for _, it := range items {
			food := foods[it.FoodID]
			categoryID := food.CategoryID
			order.AddItem(models.OrderItem{
				FoodID:     food.ID,
				FoodName:   food.Name,
				CategoryID: &categoryID,
				Quantity:   it.Quantity,
				Price:      food.Price,
				Status:     models.ItemPending,
				AddedAt:    time.Now(),
				AddedByID:  &actor.ID,
			})
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if err := bumpSoldToday(tx, items); err != nil {
			return err
		}

		if tableID != nil {
			if err := OccupyTable(tx, *tableID, order.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Order #%d created (%s, %d items)", order.OrderNumber, order.OrderType, len(order.Items))
	svc.broadcastOrder(realtime.EventOrderCreate, &order)
	return &order, nil
}

// loadAvailableFoods memuat semua food yang diminta dan memvalidasi
// stop-list/daily-limit. Food yang tidak tersedia dikumpulkan dan
// dikembalikan dalam satu error FOOD_UNAVAILABLE.
func loadAvailableFoods(tx *gorm.DB, restaurantID uint, items []NewItem) (map[uint]*models.Food, error) {
	foods := make(map[uint]*models.Food, len(items))
	var unavailable []uint

	// total qty per food dulu; food yang sama bisa muncul di beberapa entry
	needed := make(map[uint]int, len(items))
	for _, it := range items {
		needed[it.FoodID] += it.Quantity
	}

	seen := make(map[uint]bool, len(items))
	for _, it := range items {
		if seen[it.FoodID] {
			continue
		}
		seen[it.FoodID] = true
		var food models.Food
		err := tx.Where("id = ? AND restaurant_id = ?", it.FoodID, restaurantID).First(&food).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("food")
		}
		if err != nil {
			return nil, err
		}
		if !food.Available(needed[food.ID]) {
			unavailable = append(unavailable, food.ID)
			continue
		}
		foods[it.FoodID] = &food
	}

	if len(unavailable) > 0 {
		return nil, utils.FoodUnavailableError(unavailable)
	}
	return foods, nil
}

func bumpSoldToday(tx *gorm.DB, items []NewItem) error {
	for _, it := range items {
		if err := tx.Model(&models.Food{}).
			Where("id = ?", it.FoodID).
			Update("sold_today", gorm.Expr("sold_today + ?", it.Quantity)).Error; err != nil {
			return err
		}
	}
	return nil
}

// loadOrder -> order beserta item-nya; soft-deleted dianggap tidak ada
func loadOrder(tx *gorm.DB, restaurantID, orderID uint) (*models.Order, error) {
	var order models.Order
	err := tx.Preload("Items").
		Where("id = ? AND restaurant_id = ? AND is_deleted = ?", orderID, restaurantID, false).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFoundError("order")
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func guardOpen(order *models.Order) error {
	if order.Status == models.OrderPaid {
		return utils.NewAppError(utils.CodeAlreadyPaid, "order is already paid")
	}
	if order.Status == models.OrderCancelled {
		return utils.NewAppError(utils.CodeAlreadyCancelled, "order is already cancelled")
	}
	return nil
}

func saveOrder(tx *gorm.DB, order *models.Order) error {
	return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error
}

// AddItems menambahkan item ke order berjalan; item dengan food sama
// digabung ke item yang sudah ada.
func (svc *OrderService) AddItems(actor *models.User, orderID uint, items []NewItem) (*models.Order, error) {
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, utils.ValidationError("quantity must be at least 1")
		}
	}

	var order *models.Order
	err := svc.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = loadOrder(tx, actor.RestaurantID, orderID)
		if err != nil {
			return err
		}
		if err := guardOpen(order); err != nil {
			return err
		}

		foods, err := loadAvailableFoods(tx, actor.RestaurantID, items)
		if err != nil {
			return err
		}

		for _, it := range items {
			food := foods[it.FoodID]
			categoryID := food.CategoryID
			order.AddItem(models.OrderItem{
				OrderID:    order.ID,
				FoodID:     food.ID,
				FoodName:   food.Name,
				CategoryID: &categoryID,
				Quantity:   it.Quantity,
				Price:      food.Price,
				Status:     models.ItemPending,
				AddedAt:    time.Now(),
				AddedByID:  &actor.ID,
			})
		}

		if err := bumpSoldToday(tx, items); err != nil {
			return err
		}
		return saveOrder(tx, order)
	})
	if err != nil {
		return nil, err
	}

	svc.broadcastOrder(realtime.EventOrderUpdate, order)
	return order, nil
}

// ApproveOrder -> pending => approved, gagal ALREADY_APPROVED kalau sudah lewat
func (svc *OrderService) ApproveOrder(actor *models.User, orderID uint) (*models.Order, error) {
	var order *models.Order
	err := svc.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = loadOrder(tx, actor.RestaurantID, orderID)
		if err != nil {
			return err
		}
		if err := order.Approve(); err != nil {
			return err
		}
		return tx.Save(order).Error
	})
	if err != nil {
		return nil, err
	}

	svc.broadcastOrder(realtime.EventOrderUpdate, order)
	return order, nil
}

// RemoveItem soft-delete satu item. Kalau tidak ada item tersisa order ikut
// di-soft-delete dan meja dibebaskan.
func (svc *OrderService) RemoveItem(actor *models.User, orderID, itemID uint) (*models.Order, error) {
	var order *models.Order
	err := svc.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = loadOrder(tx, actor.RestaurantID, orderID)
		if err != nil {
			return err
		}
		if err := guardOpen(order); err != nil {
			return err
		}
		if err := order.RemoveItem(itemID, actor.ID); err != nil {
			return err
		}
		if order.IsDeleted && order.TableID != nil {
			if err := FreeTable(tx, *order.TableID); err != nil {
				return err
			}
		}
		return saveOrder(tx, order)
	})
	if err != nil {
		return nil, err
	}

	svc.broadcastOrder(realtime.EventOrderUpdate, order)
	return order, nil
}

// UpdateItemQuantity mengubah jumlah item
func (svc *OrderService) UpdateItemQuantity(actor *models.User, orderID, itemID uint, qty int) (*models.Order, error) {
	var order *models.Order
	err := svc.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = loadOrder(tx, actor.RestaurantID, orderID)
		if err != nil {
			return err
		}
		if err := guardOpen(order); err != nil {
			return err
		}
		if err := order.UpdateItemQuantity(itemID, qty); err != nil {
			return err
		}
		return saveOrder(tx, order)
	})
	if err != nil {
		return nil, err
	}

	svc.broadcastOrder(realtime.EventOrderUpdate, order)
	return order, nil
}

// CancelItem membatalkan satu item; kalau semua item sudah batal order ikut
// dibatalkan dan meja dibebaskan.
func (svc *OrderService) CancelItem(actor *models.User, orderID, itemID uint, reason string) (*models.Order, error) {
	var order *models.Order
	var orderCancelled bool
	err := svc.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = loadOrder(tx, actor.RestaurantID, orderID)
		if err != nil {
			return err
		}
		if err := guardOpen(order); err != nil {
			return err
		}
		orderCancelled, err = order.CancelItem(itemID, actor.ID, reason)
		if err != nil {
			return err
		}
		if orderCancelled && order.TableID != nil {
			if err := FreeTable(tx, *order.TableID); err != nil {
				return err
			}
		}
		return saveOrder(tx, order)
	})
	if err != nil {
		return nil, err
	}

	if orderCancelled {
		utils.InfoLogger.Printf("Order #%d cancelled (last item pulled)", order.OrderNumber)
		svc.broadcastOrder(realtime.EventOrderCancel, order)
	} else {
		svc.broadcastOrder(realtime.EventOrderUpdate, order)
	}
	return order, nil
}

// MarkItemReady -> cook menandai item (sebagian) siap
func (svc *OrderService) MarkItemReady(actor *models.User, orderID, itemID uint, readyCount *int) (*models.Order, error) {
	return svc.mutateItem(actor, orderID, func(order *models.Order) error {
		return order.MarkItemReady(itemID, readyCount)
	})
}

// RevertItemReady -> koreksi: tarik kembali ready count
func (svc *OrderService) RevertItemReady(actor *models.User, orderID, itemID uint, count *int) (*models.Order, error) {
	return svc.mutateItem(actor, orderID, func(order *models.Order) error {
		return order.RevertItemReady(itemID, count)
	})
}

// MarkItemServed -> waiter menyajikan item ready
func (svc *OrderService) MarkItemServed(actor *models.User, orderID, itemID uint) (*models.Order, error) {
	return svc.mutateItem(actor, orderID, func(order *models.Order) error {
		return order.MarkItemServed(itemID)
	})
}

func (svc *OrderService) mutateItem(actor *models.User, orderID uint, mutate func(*models.Order) error) (*models.Order, error) {
	var order *models.Order
	err := svc.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = loadOrder(tx, actor.RestaurantID, orderID)
		if err != nil {
			return err
		}
		if err := guardOpen(order); err != nil {
			return err
		}
		if err := mutate(order); err != nil {
			return err
		}
		return saveOrder(tx, order)
	})
	if err != nil {
		return nil, err
	}

	svc.broadcastOrder(realtime.EventOrderUpdate, order)
	return order, nil
}

// DeleteOrder -> admin soft-delete order
func (svc *OrderService) DeleteOrder(actor *models.User, orderID uint) error {
	return svc.DB.Transaction(func(tx *gorm.DB) error {
		order, err := loadOrder(tx, actor.RestaurantID, orderID)
		if err != nil {
			return err
		}
		now := time.Now()
		order.IsDeleted = true
		order.DeletedAt = &now
		order.DeletedByID = &actor.ID
		if order.TableID != nil {
			if err := FreeTable(tx, *order.TableID); err != nil {
				return err
			}
		}
		return tx.Save(order).Error
	})
}

// GetOrder -> detail satu order
func (svc *OrderService) GetOrder(restaurantID, orderID uint) (*models.Order, error) {
	return loadOrder(svc.DB, restaurantID, orderID)
}

// ListOrders -> semua order restoran yang tidak dihapus, terbaru dulu
func (svc *OrderService) ListOrders(restaurantID uint) ([]models.Order, error) {
	var orders []models.Order
	err := svc.DB.Preload("Items").
		Where("restaurant_id = ? AND is_deleted = ?", restaurantID, false).
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}

func (svc *OrderService) broadcastOrder(event string, order *models.Order) {
	msg := realtime.Message{Event: event, Data: order}
	realtime.BroadcastToRestaurant(order.RestaurantID, msg)
	realtime.BroadcastToRole(order.RestaurantID, models.RoleCook, realtime.Message{
		Event: realtime.EventKitchenUpdate,
		Data:  order,
	})
}

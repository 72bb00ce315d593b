package services

import (
	"gorm.io/gorm"

	"github.com/davronbek/resto-app/models"
)

// ProjectedItem adalah item order yang sudah di-augment untuk layar dapur.
// OriginalIndex adalah posisi item di array item LENGKAP order (sebelum
// filter kategori), karena perintah mutasi dari client menunjuk item secara
// posisional dan harus tetap valid setelah filtering.
type ProjectedItem struct {
	models.OrderItem
	DisplayStatus string `json:"display_status"`
	DisplayName   string `json:"display_name"`
	OriginalIndex int    `json:"original_index"`
}

// ProjectedOrder adalah satu order di layar dapur seorang cook
type ProjectedOrder struct {
	ID          uint            `json:"id"`
	OrderNumber int             `json:"order_number"`
	OrderType   string          `json:"order_type"`
	TableID     *uint           `json:"table_id,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   string          `json:"created_at"`
	Items       []ProjectedItem `json:"items"`
}

type KitchenProjector struct {
	DB *gorm.DB
}

func NewKitchenProjector(db *gorm.DB) *KitchenProjector {
	return &KitchenProjector{DB: db}
}

func kitchenRelevantOrder(status string) bool {
	switch status {
	case models.OrderPending, models.OrderApproved, models.OrderPreparing, models.OrderReady:
		return true
	}
	return false
}

func kitchenRelevantItem(status string) bool {
	switch status {
	case models.ItemPending, models.ItemPreparing, models.ItemReady:
		return true
	}
	return false
}

// Project membangun view dapur untuk satu cook. Sumbernya order milik shift
// aktif (atau, kalau tidak ada shift aktif, order lama yang masih membawa
// shift id apa pun; order tanpa shift tidak pernah tampil). Order cancelled
// ditampilkan utuh tanpa filter supaya cook lihat persis apa yang ditarik.
func (kp *KitchenProjector) Project(restaurantID uint, cook *models.User) ([]ProjectedOrder, error) {
	activeShift, err := ActiveShiftTx(kp.DB, restaurantID)
	if err != nil {
		return nil, err
	}

	query := kp.DB.Preload("Items").
		Where("restaurant_id = ? AND is_deleted = ?", restaurantID, false)
	if activeShift != nil {
		query = query.Where("shift_id = ?", activeShift.ID)
	} else {
		// safety net untuk order lama yang belum dilepas shift-nya
		query = query.Where("shift_id IS NOT NULL")
	}

	var orders []models.Order
	if err := query.Order("created_at asc").Find(&orders).Error; err != nil {
		return nil, err
	}

	foodNames, err := kp.liveFoodNames(orders)
	if err != nil {
		return nil, err
	}

	assigned := make(map[uint]bool, len(cook.AssignedCategoryIDs))
	for _, id := range cook.AssignedCategoryIDs {
		assigned[id] = true
	}

	var projected []ProjectedOrder
	for i := range orders {
		o := &orders[i]

		cancelled := o.Status == models.OrderCancelled
		if !cancelled && !kitchenRelevantOrder(o.Status) {
			continue
		}

		var items []ProjectedItem
		for idx := range o.Items {
			it := &o.Items[idx]
			if it.IsDeleted {
				continue
			}
			if !cancelled {
				if !kitchenRelevantItem(it.Status) {
					continue
				}
				// cook tanpa assignment melihat semua item
				if len(assigned) > 0 && (it.CategoryID == nil || !assigned[*it.CategoryID]) {
					continue
				}
			}

			name := it.FoodName
			if live, ok := foodNames[it.FoodID]; ok && live != "" {
				name = live
			}
			items = append(items, ProjectedItem{
				OrderItem:     *it,
				DisplayStatus: it.Status,
				DisplayName:   name,
				OriginalIndex: idx,
			})
		}

		if len(items) == 0 {
			continue
		}

		projected = append(projected, ProjectedOrder{
			ID:          o.ID,
			OrderNumber: o.OrderNumber,
			OrderType:   o.OrderType,
			TableID:     o.TableID,
			Status:      o.Status,
			CreatedAt:   o.CreatedAt.Format("2006-01-02 15:04:05"),
			Items:       items,
		})
	}
	return projected, nil
}

// liveFoodNames -> nama food terkini lebih diutamakan daripada snapshot
// saat order dibuat (food bisa di-rename di tengah shift)
func (kp *KitchenProjector) liveFoodNames(orders []models.Order) (map[uint]string, error) {
	idSet := make(map[uint]bool)
	for i := range orders {
		for j := range orders[i].Items {
			idSet[orders[i].Items[j].FoodID] = true
		}
	}
	if len(idSet) == 0 {
		return map[uint]string{}, nil
	}

	ids := make([]uint, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	var foods []models.Food
	if err := kp.DB.Where("id IN ?", ids).Find(&foods).Error; err != nil {
		return nil, err
	}

	names := make(map[uint]string, len(foods))
	for _, f := range foods {
		names[f.ID] = f.Name
	}
	return names, nil
}

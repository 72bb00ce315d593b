package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/davronbek/resto-app/models"
)

// ResolvedTable adalah view meja dengan status occupancy yang sudah
// dikoreksi terhadap shift aktif. Koreksi tidak pernah ditulis ke storage.
type ResolvedTable struct {
	models.Table
	EffectiveStatus string `json:"effective_status"`
}

// ResolveTableStatus -> transform murni. Status cached "occupied" bisa basi
// begitu shift ditutup di tengah pelayanan; daripada menulis ulang semua
// meja saat close, koreksinya dilakukan lazy di setiap read:
// meja dilaporkan free kalau tidak ada shift aktif, atau kalau order yang
// dirujuk bukan milik shift aktif.
func ResolveTableStatus(table models.Table, activeShift *models.Shift, activeOrder *models.Order) string {
	if table.Status != models.TableOccupied {
		return table.Status
	}
	if activeShift == nil {
		return models.TableFree
	}
	if table.ActiveOrderID == nil || activeOrder == nil || activeOrder.IsDeleted ||
		activeOrder.ShiftID == nil || *activeOrder.ShiftID != activeShift.ID {
		return models.TableFree
	}
	return table.Status
}

type TableService struct {
	DB *gorm.DB
}

func NewTableService(db *gorm.DB) *TableService {
	return &TableService{DB: db}
}

// ListTables mengembalikan semua meja restoran dengan status yang sudah
// diresolve terhadap shift aktif.
func (ts *TableService) ListTables(restaurantID uint) ([]ResolvedTable, error) {
	activeShift, err := ActiveShiftTx(ts.DB, restaurantID)
	if err != nil {
		return nil, err
	}

	var tables []models.Table
	if err := ts.DB.Where("restaurant_id = ?", restaurantID).
		Order("number asc").
		Find(&tables).Error; err != nil {
		return nil, err
	}

	resolved := make([]ResolvedTable, 0, len(tables))
	for _, table := range tables {
		var activeOrder *models.Order
		if table.ActiveOrderID != nil {
			var order models.Order
			err := ts.DB.First(&order, *table.ActiveOrderID).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			if err == nil {
				activeOrder = &order
			}
		}
		resolved = append(resolved, ResolvedTable{
			Table:           table,
			EffectiveStatus: ResolveTableStatus(table, activeShift, activeOrder),
		})
	}
	return resolved, nil
}

// OccupyTable menandai meja dipakai oleh satu order
func OccupyTable(tx *gorm.DB, tableID, orderID uint) error {
	return tx.Model(&models.Table{}).
		Where("id = ?", tableID).
		Updates(map[string]interface{}{
			"status":          models.TableOccupied,
			"active_order_id": orderID,
		}).Error
}

// FreeTable membebaskan meja (order dibatalkan atau sudah dibayar)
func FreeTable(tx *gorm.DB, tableID uint) error {
	return tx.Model(&models.Table{}).
		Where("id = ?", tableID).
		Updates(map[string]interface{}{
			"status":          models.TableFree,
			"active_order_id": nil,
		}).Error
}

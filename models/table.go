package models

import "time"

// Table statuses
const (
	TableFree     = "free"
	TableOccupied = "occupied"
)

// Table menyimpan status occupancy "cached" yang bisa basi saat shift
// berganti. Koreksinya dilakukan saat baca lewat TableOccupancyResolver,
// tidak pernah ditulis balik.
type Table struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	RestaurantID  uint   `gorm:"not null;index" json:"restaurant_id"`
	Number        string `gorm:"type:varchar(50);not null" json:"number"`
	Status        string `gorm:"type:varchar(50);not null;default:'free'" json:"status"`
	ActiveOrderID *uint  `json:"active_order_id,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

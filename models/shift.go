package models

import "time"

// Shift statuses
const (
	ShiftActive = "active"
	ShiftClosed = "closed"
)

// ShiftStats adalah snapshot statistik yang dihitung saat shift ditutup
type ShiftStats struct {
	TotalOrders     int `gorm:"not null;default:0" json:"total_orders"`
	PaidOrders      int `gorm:"not null;default:0" json:"paid_orders"`
	CancelledOrders int `gorm:"not null;default:0" json:"cancelled_orders"`

	CashRevenue  float64 `gorm:"type:decimal(14,2);not null;default:0" json:"cash_revenue"`
	CardRevenue  float64 `gorm:"type:decimal(14,2);not null;default:0" json:"card_revenue"`
	ClickRevenue float64 `gorm:"type:decimal(14,2);not null;default:0" json:"click_revenue"`
	TotalRevenue float64 `gorm:"type:decimal(14,2);not null;default:0" json:"total_revenue"`

	ItemsSold           int     `gorm:"not null;default:0" json:"items_sold"`
	CancelledItemsCount int     `gorm:"not null;default:0" json:"cancelled_items_count"`
	CancelledItemsValue float64 `gorm:"type:decimal(14,2);not null;default:0" json:"cancelled_items_value"`
}

// Shift adalah satu periode operasional restoran. Maksimal satu shift
// aktif per restoran; shift yang sudah closed tidak pernah dibuka lagi.
type Shift struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	RestaurantID uint   `gorm:"not null;index" json:"restaurant_id"`
	ShiftNumber  int    `gorm:"not null" json:"shift_number"`
	Status       string `gorm:"type:varchar(20);not null;default:'active'" json:"status"`

	OpeningCash         float64 `gorm:"type:decimal(14,2);not null;default:0" json:"opening_cash"`
	ClosingCash         float64 `gorm:"type:decimal(14,2);not null;default:0" json:"closing_cash"`
	ExpectedClosingCash float64 `gorm:"type:decimal(14,2);not null;default:0" json:"expected_closing_cash"`
	CashDifference      float64 `gorm:"type:decimal(14,2);not null;default:0" json:"cash_difference"`

	Stats ShiftStats `gorm:"embedded;embeddedPrefix:stats_" json:"stats"`

	// id order orphan yang diadopsi saat shift ini dibuka, untuk traceability
	AdoptedOrderIDs []uint `gorm:"serializer:json" json:"adopted_order_ids,omitempty"`

	OpenedByID uint       `gorm:"not null" json:"opened_by_id"`
	OpenedBy   *User      `gorm:"foreignKey:OpenedByID" json:"opened_by,omitempty"`
	ClosedByID *uint      `json:"closed_by_id,omitempty"`
	ClosedBy   *User      `gorm:"foreignKey:ClosedByID" json:"closed_by,omitempty"`
	OpenedAt   time.Time  `gorm:"not null" json:"opened_at"`
	ClosedAt   *time.Time `json:"closed_at,omitempty"`
	Notes      string     `gorm:"type:text" json:"notes,omitempty"`

	IsDeleted bool `gorm:"not null;default:false" json:"is_deleted"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

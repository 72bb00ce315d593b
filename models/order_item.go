package models

import (
	"time"
)

// Item statuses
const (
	ItemPending   = "pending"
	ItemPreparing = "preparing"
	ItemReady     = "ready"
	ItemServed    = "served"
	ItemCancelled = "cancelled"
)

// OrderItem dimiliki sepenuhnya oleh Order (tidak punya lifecycle sendiri).
// Nama/harga/kategori food di-snapshot saat item ditambahkan.
type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`

	FoodID     uint    `gorm:"not null" json:"food_id"`
	FoodName   string  `gorm:"type:varchar(255);not null" json:"food_name"`
	CategoryID *uint   `json:"category_id,omitempty"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	Price      float64 `gorm:"type:decimal(12,2);not null" json:"price"`

	Status        string `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ReadyQuantity int    `gorm:"not null;default:0" json:"ready_quantity"`

	AddedAt   time.Time `gorm:"not null" json:"added_at"`
	AddedByID *uint     `json:"added_by_id,omitempty"`

	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
	CancelledByID *uint      `json:"cancelled_by_id,omitempty"`
	CancelReason  string     `gorm:"type:text" json:"cancel_reason,omitempty"`

	IsDeleted   bool       `gorm:"not null;default:false" json:"is_deleted"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	DeletedByID *uint      `json:"deleted_by_id,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

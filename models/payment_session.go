package models

import "time"

// PaymentSession adalah catatan immutable satu pembayaran parsial:
// item mana yang dibayar, berapa, kapan, oleh siapa. Tidak pernah diupdate.
type PaymentSession struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`

	// shift tempat uang ini diterima; revenue shift dihitung dari sini,
	// bukan dari shift order saat order lunas
	ShiftID *uint `gorm:"index" json:"shift_id,omitempty"`

	ItemIDs []uint `gorm:"serializer:json" json:"item_ids"`

	Subtotal      float64 `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	ServiceCharge float64 `gorm:"type:decimal(12,2);not null;default:0" json:"service_charge"`
	Total         float64 `gorm:"type:decimal(12,2);not null" json:"total"`

	PaymentType string       `gorm:"type:varchar(20);not null" json:"payment_type"`
	Split       PaymentSplit `gorm:"embedded;embeddedPrefix:split_" json:"split"`
	Comment     string       `gorm:"type:text" json:"comment,omitempty"`

	CashierID uint      `gorm:"not null" json:"cashier_id"`
	PaidAt    time.Time `gorm:"not null" json:"paid_at"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

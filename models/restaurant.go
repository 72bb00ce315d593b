package models

import "time"

type Restaurant struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	Name                 string    `gorm:"type:varchar(255);not null" json:"name"`
	ServiceChargePercent float64   `gorm:"type:decimal(5,2);not null;default:0" json:"service_charge_percent"`
	CreatedAt            time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt            time.Time `gorm:"not null" json:"updated_at"`
}

package models

import "time"

type Category struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurant_id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

type Food struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurant_id"`
	CategoryID   uint      `gorm:"not null" json:"category_id"`
	Category     *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Price        float64   `gorm:"type:decimal(12,2);not null" json:"price"`
	Description  string    `gorm:"type:text" json:"description,omitempty"`

	// stop-list: manual atau lewat batas harian
	InStopList bool `gorm:"not null;default:false" json:"in_stop_list"`
	DailyLimit *int `json:"daily_limit,omitempty"`
	SoldToday  int  `gorm:"not null;default:0" json:"sold_today"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// Available -> false kalau food di stop-list atau batas harian tercapai
func (f *Food) Available(qty int) bool {
	if f.InStopList {
		return false
	}
	if f.DailyLimit != nil && f.SoldToday+qty > *f.DailyLimit {
		return false
	}
	return true
}

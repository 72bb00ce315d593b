package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/davronbek/resto-app/models"
)

// NextSequence menaikkan counter secara atomik dan mengembalikan nilai baru.
// UPDATE value = value + 1 atomik di level row, jadi dua request bersamaan
// tidak pernah mendapat nomor yang sama.
func NextSequence(db *gorm.DB, key string) (int64, error) {
	var value int64
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Counter{}).
			Where("seq_key = ?", key).
			Update("value", gorm.Expr("value + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			if err := tx.Create(&models.Counter{SeqKey: key, Value: 1}).Error; err != nil {
				return err
			}
			value = 1
			return nil
		}

		var counter models.Counter
		if err := tx.Where("seq_key = ?", key).First(&counter).Error; err != nil {
			return err
		}
		value = counter.Value
		return nil
	})
	return value, err
}

// OrderNumberKey -> sequence order per restoran per hari
func OrderNumberKey(restaurantID uint, day time.Time) string {
	return fmt.Sprintf("order:%d:%s", restaurantID, day.Format("2006-01-02"))
}

// ShiftNumberKey -> sequence shift per restoran
func ShiftNumberKey(restaurantID uint) string {
	return fmt.Sprintf("shift:%d", restaurantID)
}

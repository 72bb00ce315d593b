package utils

import (
	"os"
	"sync"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	db   *gorm.DB
	once sync.Once
	mu   sync.RWMutex
)

// OpenDB membuka koneksi database berdasarkan env DB_DRIVER / DB_DSN.
// Default: sqlite lokal untuk development.
func OpenDB() (*gorm.DB, error) {
	driver := os.Getenv("DB_DRIVER")
	dsn := os.Getenv("DB_DSN")

	switch driver {
	case "mysql":
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	default:
		if dsn == "" {
			dsn = "resto.db"
		}
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
}

// InitDB menyimpan koneksi database untuk digunakan di controller
func InitDB(database *gorm.DB) {
	once.Do(func() {
		db = database
	})
}

// GetDB returns the database connection
func GetDB() *gorm.DB {
	mu.RLock()
	defer mu.RUnlock()
	return db
}

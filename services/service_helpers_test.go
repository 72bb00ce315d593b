package services

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/davronbek/resto-app/models"
	"github.com/davronbek/resto-app/utils"
)

// setupTestDB membuat sqlite in-memory terpisah per test (nama unik, supaya
// test paralel di package yang sama tidak berbagi database).
func setupTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	utils.InitLogger()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Restaurant{},
		&models.User{},
		&models.Table{},
		&models.Category{},
		&models.Food{},
		&models.Shift{},
		&models.Order{},
		&models.OrderItem{},
		&models.PaymentSession{},
		&models.Counter{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// seedRestaurant: restoran dengan service charge 10%, satu user per role,
// satu meja, satu kategori dengan dua makanan.
func seedRestaurant(t *testing.T, db *gorm.DB) (waiter, cook, cashier *models.User) {
	t.Helper()

	restaurant := models.Restaurant{Name: "Test Resto", ServiceChargePercent: 10}
	if err := db.Create(&restaurant).Error; err != nil {
		t.Fatalf("seed restaurant: %v", err)
	}

	users := []models.User{
		{RestaurantID: restaurant.ID, Name: "Waiter1", Email: "waiter1@example.com", Password: "secret", Role: models.RoleWaiter},
		{RestaurantID: restaurant.ID, Name: "Cook1", Email: "cook1@example.com", Password: "secret", Role: models.RoleCook},
		{RestaurantID: restaurant.ID, Name: "Cashier1", Email: "cashier1@example.com", Password: "secret", Role: models.RoleCashier},
	}
	if err := db.Create(&users).Error; err != nil {
		t.Fatalf("seed users: %v", err)
	}

	table := models.Table{RestaurantID: restaurant.ID, Number: "A1", Status: models.TableFree}
	if err := db.Create(&table).Error; err != nil {
		t.Fatalf("seed table: %v", err)
	}

	category := models.Category{RestaurantID: restaurant.ID, Name: "Main"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	foods := []models.Food{
		{RestaurantID: restaurant.ID, CategoryID: category.ID, Name: "Plov", Price: 25000},
		{RestaurantID: restaurant.ID, CategoryID: category.ID, Name: "Lagman", Price: 30000},
	}
	if err := db.Create(&foods).Error; err != nil {
		t.Fatalf("seed foods: %v", err)
	}

	return &users[0], &users[1], &users[2]
}

func openTestShift(t *testing.T, db *gorm.DB, cashier *models.User, openingCash float64) *models.Shift {
	t.Helper()
	shift, err := NewShiftService(db).OpenShift(cashier, openingCash)
	if err != nil {
		t.Fatalf("open shift: %v", err)
	}
	return shift
}

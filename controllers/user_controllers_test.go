package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/davronbek/resto-app/models"
	"github.com/davronbek/resto-app/utils"
)

func setupTestDBForUsers(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()

	db, err := gorm.Open(sqlite.Open("file:users_ctrl?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Restaurant{}, &models.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	restaurant := models.Restaurant{Name: "Test Resto", ServiceChargePercent: 10}
	db.Create(&restaurant)
	return db
}

func setupUserRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	userCtrl := NewUserController(db)
	router.POST("/register", userCtrl.Register)
	router.POST("/login", userCtrl.Login)
	return router
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDBForUsers(t)
	router := setupUserRouter(db)

	payload := map[string]interface{}{
		"restaurant_id": 1,
		"name":          "Waiter1",
		"email":         "waiter1@example.com",
		"password":      "secret123",
		"role":          "waiter",
	}
	payloadBytes, err := json.Marshal(payload)
	assert.NoError(t, err)

	req, err := http.NewRequest("POST", "/register", bytes.NewBuffer(payloadBytes))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	// password disimpan sebagai hash, bukan plaintext
	var user models.User
	assert.NoError(t, db.Where("email = ?", "waiter1@example.com").First(&user).Error)
	assert.NotEqual(t, "secret123", user.Password)

	loginPayload := map[string]interface{}{
		"email":    "waiter1@example.com",
		"password": "secret123",
	}
	loginBytes, err := json.Marshal(loginPayload)
	assert.NoError(t, err)

	req, err = http.NewRequest("POST", "/login", bytes.NewBuffer(loginBytes))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, "waiter", data["user_role"])

	// token membawa identitas user
	claims, err := utils.ParseToken(data["token"].(string))
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, uint(1), claims.RestaurantID)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDBForUsers(t)
	router := setupUserRouter(db)

	payload := map[string]interface{}{
		"restaurant_id": 1,
		"name":          "Waiter2",
		"email":         "waiter2@example.com",
		"password":      "secret123",
		"role":          "waiter",
	}
	payloadBytes, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/register", bytes.NewBuffer(payloadBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	loginPayload := map[string]interface{}{
		"email":    "waiter2@example.com",
		"password": "wrong",
	}
	loginBytes, _ := json.Marshal(loginPayload)
	req, _ = http.NewRequest("POST", "/login", bytes.NewBuffer(loginBytes))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/davronbek/resto-app/models"
	"github.com/davronbek/resto-app/utils"
)

type FoodController struct {
	DB *gorm.DB
}

func NewFoodController(db *gorm.DB) *FoodController {
	return &FoodController{DB: db}
}

// GetAllFoods -> list semua food beserta kategorinya
func (fc *FoodController) GetAllFoods(c *gin.Context) {
	var foods []models.Food
	if err := fc.DB.Preload("Category").
		Where("restaurant_id = ?", c.GetUint("restaurant_id")).
		Find(&foods).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of foods", foods)
}

// GetFoodsByCategory -> filter per kategori
func (fc *FoodController) GetFoodsByCategory(c *gin.Context) {
	categoryID := c.Query("category_id")
	if categoryID == "" {
		utils.RespondError(c, http.StatusBadRequest, utils.ValidationError("category_id is required"))
		return
	}

	var foods []models.Food
	if err := fc.DB.Where("restaurant_id = ? AND category_id = ?",
		c.GetUint("restaurant_id"), categoryID).
		Find(&foods).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Foods by category", foods)
}

// CreateFood -> tambah food baru
func (fc *FoodController) CreateFood(c *gin.Context) {
	var req struct {
		CategoryID  uint    `json:"category_id" binding:"required"`
		Name        string  `json:"name" binding:"required"`
		Price       float64 `json:"price" binding:"required"`
		Description string  `json:"description"`
		DailyLimit  *int    `json:"daily_limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Price < 0 {
		utils.RespondError(c, http.StatusBadRequest, utils.ValidationError("price cannot be negative"))
		return
	}

	food := models.Food{
		RestaurantID: c.GetUint("restaurant_id"),
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		Price:        req.Price,
		Description:  req.Description,
		DailyLimit:   req.DailyLimit,
	}
	if err := fc.DB.Create(&food).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New food created: %s (%s)", food.Name, utils.FormatCurrencyUZS(food.Price))
	utils.RespondJSON(c, http.StatusCreated, "Food created", food)
}

// UpdateFood -> update sebagian field food
func (fc *FoodController) UpdateFood(c *gin.Context) {
	foodID, ok := parseID(c, "food_id")
	if !ok {
		return
	}

	var food models.Food
	if err := fc.DB.Where("id = ? AND restaurant_id = ?", foodID, c.GetUint("restaurant_id")).
		First(&food).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name        *string  `json:"name"`
		Price       *float64 `json:"price"`
		CategoryID  *uint    `json:"category_id"`
		Description *string  `json:"description"`
		DailyLimit  *int     `json:"daily_limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		food.Name = *req.Name
	}
	if req.Price != nil {
		food.Price = *req.Price
	}
	if req.CategoryID != nil {
		food.CategoryID = *req.CategoryID
	}
	if req.Description != nil {
		food.Description = *req.Description
	}
	if req.DailyLimit != nil {
		food.DailyLimit = req.DailyLimit
	}

	if err := fc.DB.Save(&food).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Food updated", food)
}

// SetStopList -> keluar-masukkan food dari stop-list
func (fc *FoodController) SetStopList(c *gin.Context) {
	foodID, ok := parseID(c, "food_id")
	if !ok {
		return
	}

	var req struct {
		InStopList *bool `json:"in_stop_list" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var food models.Food
	if err := fc.DB.Where("id = ? AND restaurant_id = ?", foodID, c.GetUint("restaurant_id")).
		First(&food).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	food.InStopList = *req.InStopList
	if err := fc.DB.Save(&food).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Food %s stop-list: %v", food.Name, food.InStopList)
	utils.RespondJSON(c, http.StatusOK, "Stop-list updated", food)
}

// DeleteFood
func (fc *FoodController) DeleteFood(c *gin.Context) {
	foodID, ok := parseID(c, "food_id")
	if !ok {
		return
	}

	if err := fc.DB.Where("restaurant_id = ?", c.GetUint("restaurant_id")).
		Delete(&models.Food{}, foodID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Food deleted", gin.H{"food_id": foodID})
}

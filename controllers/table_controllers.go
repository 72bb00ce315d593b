package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/davronbek/resto-app/models"
	"github.com/davronbek/resto-app/realtime"
	"github.com/davronbek/resto-app/services"
	"github.com/davronbek/resto-app/utils"
)

type TableController struct {
	DB      *gorm.DB
	Service *services.TableService
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db, Service: services.NewTableService(db)}
}

// CreateTable -> menambahkan meja baru
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		Number string `json:"number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.Table{
		RestaurantID: c.GetUint("restaurant_id"),
		Number:       req.Number,
		Status:       models.TableFree,
	}
	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastToRestaurant(table.RestaurantID, realtime.Message{
		Event: realtime.EventTableUpdate,
		Data:  table,
	})

	utils.InfoLogger.Printf("New table created: %s", table.Number)
	utils.RespondJSON(c, http.StatusCreated, "Table created", table)
}

// GetAllTables -> semua meja dengan occupancy yang sudah diresolve
// terhadap shift aktif (koreksi staleness saat baca, tanpa write).
func (tc *TableController) GetAllTables(c *gin.Context) {
	tables, err := tc.Service.ListTables(c.GetUint("restaurant_id"))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID -> detail satu meja
func (tc *TableController) GetTableByID(c *gin.Context) {
	tableID, ok := parseID(c, "table_id")
	if !ok {
		return
	}

	var table models.Table
	if err := tc.DB.Where("id = ? AND restaurant_id = ?", tableID, c.GetUint("restaurant_id")).
		First(&table).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// DeleteTable -> menghapus meja
func (tc *TableController) DeleteTable(c *gin.Context) {
	tableID, ok := parseID(c, "table_id")
	if !ok {
		return
	}

	var table models.Table
	if err := tc.DB.Where("id = ? AND restaurant_id = ?", tableID, c.GetUint("restaurant_id")).
		First(&table).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastToRestaurant(table.RestaurantID, realtime.Message{
		Event: realtime.EventTableUpdate,
		Data:  gin.H{"table_id": table.ID, "deleted": true},
	})

	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"id": table.ID})
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/davronbek/resto-app/services"
	"github.com/davronbek/resto-app/utils"
)

type ShiftController struct {
	DB      *gorm.DB
	Service *services.ShiftService
}

func NewShiftController(db *gorm.DB) *ShiftController {
	return &ShiftController{DB: db, Service: services.NewShiftService(db)}
}

// OpenShift -> buka shift kerja baru
func (sc *ShiftController) OpenShift(c *gin.Context) {
	actor, err := currentUser(c, sc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var body struct {
		OpeningCash float64 `json:"opening_cash"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	shift, err := sc.Service.OpenShift(actor, body.OpeningCash)
	if err != nil {
		utils.RespondAppErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Shift opened", shift)
}

// CloseShift -> tutup shift aktif dengan rekonsiliasi kas
func (sc *ShiftController) CloseShift(c *gin.Context) {
	actor, err := currentUser(c, sc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var body struct {
		ClosingCash float64 `json:"closing_cash"`
		Notes       string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	shift, err := sc.Service.CloseShift(actor, body.ClosingCash, body.Notes)
	if err != nil {
		utils.RespondAppErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Shift closed", shift)
}

// GetActiveShift -> shift aktif saat ini (404 kalau tidak ada)
func (sc *ShiftController) GetActiveShift(c *gin.Context) {
	restaurantID := c.GetUint("restaurant_id")
	shift, err := sc.Service.GetActiveShift(restaurantID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if shift == nil {
		utils.RespondAppErr(c, utils.NewAppError(utils.CodeNoActiveShift, "no active shift"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active shift", shift)
}

// GetShiftByID -> detail shift beserta stats snapshot
func (sc *ShiftController) GetShiftByID(c *gin.Context) {
	shiftID, ok := parseID(c, "shift_id")
	if !ok {
		return
	}

	shift, err := sc.Service.GetShiftByID(c.GetUint("restaurant_id"), shiftID)
	if err != nil {
		utils.RespondAppErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Shift detail", shift)
}

// GetAllShifts -> riwayat shift
func (sc *ShiftController) GetAllShifts(c *gin.Context) {
	shifts, err := sc.Service.ListShifts(c.GetUint("restaurant_id"))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of shifts", shifts)
}

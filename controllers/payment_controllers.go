package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/davronbek/resto-app/models"
	"github.com/davronbek/resto-app/services"
	"github.com/davronbek/resto-app/utils"
)

type PaymentController struct {
	DB      *gorm.DB
	Service *services.PaymentService
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db, Service: services.NewPaymentService(db)}
}

// ProcessPayment -> pelunasan penuh satu order
func (pc *PaymentController) ProcessPayment(c *gin.Context) {
	actor, err := currentUser(c, pc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	orderID, ok := parseID(c, "order_id")
	if !ok {
		return
	}

	var body struct {
		PaymentType string               `json:"payment_type" binding:"required"`
		Split       *models.PaymentSplit `json:"split"`
		Comment     string               `json:"comment"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := pc.Service.ProcessPayment(actor, orderID, body.PaymentType, body.Split, body.Comment)
	if err != nil {
		utils.RespondAppErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment processed", order)
}

// ProcessPartialPayment -> pelunasan subset item pilihan kasir
func (pc *PaymentController) ProcessPartialPayment(c *gin.Context) {
	actor, err := currentUser(c, pc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	orderID, ok := parseID(c, "order_id")
	if !ok {
		return
	}

	var body struct {
		ItemIDs     []uint               `json:"item_ids" binding:"required"`
		PaymentType string               `json:"payment_type" binding:"required"`
		Split       *models.PaymentSplit `json:"split"`
		Comment     string               `json:"comment"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	result, err := pc.Service.ProcessPartialPayment(actor, orderID, body.ItemIDs, body.PaymentType, body.Split, body.Comment)
	if err != nil {
		utils.RespondAppErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Partial payment processed", result)
}

// GetPaymentSessions -> riwayat pembayaran parsial satu order
func (pc *PaymentController) GetPaymentSessions(c *gin.Context) {
	orderID, ok := parseID(c, "order_id")
	if !ok {
		return
	}

	sessions, err := pc.Service.ListSessions(c.GetUint("restaurant_id"), orderID)
	if err != nil {
		utils.RespondAppErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment sessions", sessions)
}

package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/davronbek/resto-app/services"
	"github.com/davronbek/resto-app/utils"
)

type OrderController struct {
	DB      *gorm.DB
	Service *services.OrderService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db, Service: services.NewOrderService(db)}
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		utils.RespondError(c, http.StatusBadRequest, utils.ValidationError("invalid %s", name))
		return 0, false
	}
	return uint(id), true
}

// GetAllOrders -> list orders beserta items
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	restaurantID := c.GetUint("restaurant_id")
	orders, err := oc.Service.ListOrders(restaurantID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// CreateOrder -> buat order baru di bawah shift aktif
func (oc *OrderController) CreateOrder(c *gin.Context) {
	actor, err := currentUser(c, oc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	type reqBody struct {
		OrderType string             `json:"order_type" binding:"required"`
		TableID   *uint              `json:"table_id"`
		Items     []services.NewItem `json:"items" binding:"required"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Service.CreateOrder(actor, body.OrderType, body.TableID, body.Items)
	if err != nil {
		utils.RespondAppErr(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetOrderByID -> detail 1 order
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	orderID, ok := parseID(c, "order_id")
	if !ok {
		return
	}

	order, err := oc.Service.GetOrder(c.GetUint("restaurant_id"), orderID)
	if err != nil {
		utils.RespondAppErr(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// ApproveOrder -> waiter/admin menyetujui order pending
func (oc *OrderController) ApproveOrder(c *gin.Context) {
	actor, err := currentUser(c, oc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	orderID, ok := parseID(c, "order_id")
	if !ok {
		return
	}

	order, err := oc.Service.ApproveOrder(actor, orderID)
	if err != nil {
		utils.RespondAppErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order approved", order)
}

// AddItems -> tambah item ke order berjalan
func (oc *OrderController) AddItems(c *gin.Context) {
	actor, err := currentUser(c, oc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	orderID, ok := parseID(c, "order_id")
	if !ok {
		return
	}

	var body struct {
		Items []services.NewItem `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Service.AddItems(actor, orderID, body.Items)
	if err != nil {
		utils.RespondAppErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Items added", order)
}

// UpdateItemQuantity -> ubah jumlah satu item
func (oc *OrderController) UpdateItemQuantity(c *gin.Context) {
	actor, err := currentUser(c, oc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	orderID, ok := parseID(c, "order_id")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "item_id")
	if !ok {
		return
	}

	var body struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Service.UpdateItemQuantity(actor, orderID, itemID, body.Quantity)
	if err != nil {
		utils.RespondAppErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item quantity updated", order)
}

// RemoveItem -> soft-delete satu item
func (oc *OrderController) RemoveItem(c *gin.Context) {
	actor, err := currentUser(c, oc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	orderID, ok := parseID(c, "order_id")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "item_id")
	if !ok {
		return
	}

	order, err := oc.Service.RemoveItem(actor, orderID, itemID)
	if err != nil {
		utils.RespondAppErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item removed", order)
}

// CancelItem -> batalkan satu item (dengan alasan)
func (oc *OrderController) CancelItem(c *gin.Context) {
	actor, err := currentUser(c, oc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	orderID, ok := parseID(c, "order_id")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "item_id")
	if !ok {
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	// body opsional
	_ = c.ShouldBindJSON(&body)

	order, err := oc.Service.CancelItem(actor, orderID, itemID, body.Reason)
	if err != nil {
		utils.RespondAppErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item cancelled", order)
}

// MarkItemReady -> cook menandai item (sebagian) siap.
// ready_count kosong berarti seluruh quantity siap.
func (oc *OrderController) MarkItemReady(c *gin.Context) {
	actor, err := currentUser(c, oc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	orderID, ok := parseID(c, "order_id")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "item_id")
	if !ok {
		return
	}

	var body struct {
		ReadyCount *int `json:"ready_count"`
	}
	_ = c.ShouldBindJSON(&body)

	order, err := oc.Service.MarkItemReady(actor, orderID, itemID, body.ReadyCount)
	if err != nil {
		utils.RespondAppErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item ready", order)
}

// RevertItemReady -> koreksi ready count
func (oc *OrderController) RevertItemReady(c *gin.Context) {
	actor, err := currentUser(c, oc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	orderID, ok := parseID(c, "order_id")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "item_id")
	if !ok {
		return
	}

	var body struct {
		Count *int `json:"count"`
	}
	_ = c.ShouldBindJSON(&body)

	order, err := oc.Service.RevertItemReady(actor, orderID, itemID, body.Count)
	if err != nil {
		utils.RespondAppErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item ready count reverted", order)
}

// MarkItemServed -> waiter menyajikan item
func (oc *OrderController) MarkItemServed(c *gin.Context) {
	actor, err := currentUser(c, oc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	orderID, ok := parseID(c, "order_id")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "item_id")
	if !ok {
		return
	}

	order, err := oc.Service.MarkItemServed(actor, orderID, itemID)
	if err != nil {
		utils.RespondAppErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item served", order)
}

// DeleteOrder -> admin soft-delete
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	actor, err := currentUser(c, oc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	orderID, ok := parseID(c, "order_id")
	if !ok {
		return
	}

	if err := oc.Service.DeleteOrder(actor, orderID); err != nil {
		utils.RespondAppErr(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": orderID})
}

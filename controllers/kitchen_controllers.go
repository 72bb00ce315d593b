package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/davronbek/resto-app/realtime"
	"github.com/davronbek/resto-app/services"
	"github.com/davronbek/resto-app/utils"
)

type KitchenController struct {
	DB        *gorm.DB
	Projector *services.KitchenProjector
}

func NewKitchenController(db *gorm.DB) *KitchenController {
	return &KitchenController{DB: db, Projector: services.NewKitchenProjector(db)}
}

// GetKitchenDisplay -> view dapur untuk actor yang request. Cook dengan
// assigned categories hanya melihat item kategorinya.
func (kc *KitchenController) GetKitchenDisplay(c *gin.Context) {
	actor, err := currentUser(c, kc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	orders, err := kc.Projector.Project(actor.RestaurantID, actor)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Kitchen display orders", orders)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler -> endpoint WebSocket untuk update real-time
func (kc *KitchenController) WSHandler(c *gin.Context) {
	actor, err := currentUser(c, kc.DB)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	realtime.RegisterClient(ws, actor.RestaurantID, actor.ID, actor.Role)
	utils.InfoLogger.Printf("WS client connected: user %d (%s)", actor.ID, actor.Role)

	// baca sampai client putus
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	realtime.UnregisterClient(ws)
}

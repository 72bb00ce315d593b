package realtime

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Event types
const (
	EventOrderUpdate   = "order_update"
	EventOrderCreate   = "order_create"
	EventOrderCancel   = "order_cancel"
	EventKitchenUpdate = "kitchen_update"
	EventTableUpdate   = "table_update"
	EventShiftOpen     = "shift_open"
	EventShiftClose    = "shift_close"
	EventPaymentUpdate = "payment_update"
	EventStaffNotif    = "staff_notification"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Client adalah satu koneksi websocket beserta identitas actor-nya
type Client struct {
	Conn         *websocket.Conn
	RestaurantID uint
	UserID       uint
	Role         string
}

// Hub menampung semua client (admin, waiter, cook, cashier) dan menyediakan
// tiga mode pengiriman: broadcast per restoran, per role, dan unicast per user.
// Pengiriman best-effort: client yang gagal ditulis dilewati.
type Hub struct {
	clients map[*websocket.Conn]*Client
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]*Client),
}

// RegisterClient -> menambahkan connection ke set
func RegisterClient(conn *websocket.Conn, restaurantID, userID uint, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = &Client{
		Conn:         conn,
		RestaurantID: restaurantID,
		UserID:       userID,
		Role:         role,
	}
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastToRestaurant mengirim event ke semua client satu restoran
func BroadcastToRestaurant(restaurantID uint, msg Message) {
	send(msg, func(cl *Client) bool {
		return cl.RestaurantID == restaurantID
	})
}

// BroadcastToRole mengirim event ke satu role dalam satu restoran
func BroadcastToRole(restaurantID uint, role string, msg Message) {
	send(msg, func(cl *Client) bool {
		return cl.RestaurantID == restaurantID && cl.Role == role
	})
}

// SendToUser -> unicast ke satu user
func SendToUser(userID uint, msg Message) {
	send(msg, func(cl *Client) bool {
		return cl.UserID == userID
	})
}

func send(msg Message, match func(*Client) bool) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn, cl := range hub.clients {
		if !match(cl) {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to user %d: %v", cl.UserID, err)
			continue
		}
	}
}

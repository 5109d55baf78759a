package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// Client is a connected dashboard session subscribed to expiry alerts.
type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

// Alert is pushed to every connected dashboard when the reminder job
// finds certificates entering a renewal window.
type Alert struct {
	Kind              string `json:"kind"`
	Bucket            string `json:"bucket"`
	CertificateNumber string `json:"certificate_number"`
	StaffName         string `json:"staff_name"`
	TrainingTitle     string `json:"training_title"`
	ExpiryDate        string `json:"expiry_date"`
	DaysLeft          int    `json:"days_left"`
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan *Alert)

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Alert client registered: %s", client.UserID)
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Alert client unregistered: %s", client.UserID)
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case alert := <-Broadcast:
			clientsMu.RLock()
			var stale []uuid.UUID
			for userID, conn := range clients {
				if err := conn.WriteJSON(alert); err != nil {
					log.Printf("Error sending alert to client %s: %v", userID, err)
					conn.Close()
					stale = append(stale, userID)
				}
			}
			clientsMu.RUnlock()

			if len(stale) > 0 {
				clientsMu.Lock()
				for _, userID := range stale {
					delete(clients, userID)
				}
				clientsMu.Unlock()
			}
		}
	}
}

// PushAlert hands an alert to the hub without blocking the caller when
// no hub goroutine is draining the channel.
func PushAlert(alert *Alert) {
	select {
	case Broadcast <- alert:
	default:
		log.Println("Alert hub not running, dropping alert.")
	}
}

package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs attaches one participant connection to the room hub and runs the
// pump pair until the connection drops.
func ServeWs(hub *Hub, c *websocket.Conn, roomID, identity, role string) {
	client := &Client{
		Hub:      hub,
		Conn:     c,
		RoomID:   roomID,
		Identity: identity,
		Role:     role,
		Send:     make(chan []byte, 256),
	}
	client.Hub.register <- client

	go client.writePump()
	client.readPump() // readPump runs in the handler goroutine
}

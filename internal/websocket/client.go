package websocket

import (
	"encoding/json"
	"log"
	"time"

	"github.com/cleanaz-dev/hueline-sub000/internal/constant"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client is a middleman between one participant's websocket connection and
// the room hub.
type Client struct {
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	// Room this participant joined (tenant/roomKey).
	RoomID string

	// Identity resolved from the join credential.
	Identity string

	// HOST or CLIENT, resolved at join time.
	Role string

	// Buffered channel of outbound messages.
	Send chan []byte
}

// readPump pumps control frames from the websocket connection into the
// room. Only the host originates pointer/mockup/countdown frames; frames
// from a CLIENT-role participant are dropped, not errored.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("readPump error for %s in %s: %v", c.Identity, c.RoomID, err)
			}
			break
		}
		c.handleFrame(raw)
	}
}

func (c *Client) handleFrame(raw []byte) {
	env, ok := DecodeEnvelope(raw)
	if !ok {
		// Unknown or malformed type. Closed catalogue: drop, never error
		// back to the peer.
		c.Hub.logger.Debug("Client", "Dropped unknown control frame", map[string]interface{}{
			"room_id":  c.RoomID,
			"identity": c.Identity,
			"type":     env.Type,
		})
		return
	}

	if c.Role != constant.RoleHost {
		return
	}

	switch env.Type {
	case TypePointer:
		var p PointerPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return
		}
		data, err := Encode(TypePointer, SanitizePointer(p))
		if err != nil {
			return
		}
		c.Hub.BroadcastToRoom(c.RoomID, data, c)

	case TypeMockupReady, TypeCountdown:
		// Relay as-is; these are flat payloads the receiver re-validates.
		c.Hub.BroadcastToRoom(c.RoomID, raw, c)
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/cleanaz-dev/hueline-sub000/internal/constant"
	"github.com/cleanaz-dev/hueline-sub000/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// RoomID joins the (tenant, roomKey) pair into the hub's map key.
func RoomID(tenantSlug, roomKey string) string {
	return tenantSlug + "/" + roomKey
}

type Hub struct {
	// Registered clients map: RoomID -> participants of that session
	rooms map[string][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance frame relay
	rdb *redis.Client

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	// Start Redis Subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.rooms[client.RoomID] = append(h.rooms[client.RoomID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Participant joined room", map[string]interface{}{
				"room_id":  client.RoomID,
				"identity": client.Identity,
				"role":     client.Role,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.rooms[client.RoomID]; ok {
				for i, c := range clients {
					if c == client {
						h.rooms[client.RoomID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.rooms[client.RoomID]) == 0 {
					delete(h.rooms, client.RoomID)
					h.logger.Info("Hub", "Room drained", map[string]interface{}{"room_id": client.RoomID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToRoom sends a frame to every participant of a room except the
// sender. Control frames are best-effort: a participant with a full buffer
// is dropped from the room, the frame is not retried.
func (h *Hub) BroadcastToRoom(roomID string, data []byte, except *Client) {
	var dropped []*Client

	h.mu.RLock()
	for _, client := range h.rooms[roomID] {
		if client == except {
			continue
		}
		select {
		case client.Send <- data:
		default:
			dropped = append(dropped, client)
		}
	}
	h.mu.RUnlock()

	// The unregister case owns closing Send. Queueing after the read lock
	// is released keeps this from deadlocking against Run's register path.
	for _, client := range dropped {
		h.unregister <- client
	}

	// Relay to other instances. The sender is local by definition, so the
	// relayed frame needs no exclusion marker.
	if h.rdb != nil {
		payload := map[string]interface{}{
			"room_id": roomID,
			"message": json.RawMessage(data),
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), "cluster_events", jsonPayload)
	}
}

// SendToHosts pushes a frame to the room's HOST-role participants only.
// The live scope stream uses this: clients never see raw scope items.
func (h *Hub) SendToHosts(roomID string, data []byte) {
	var dropped []*Client

	h.mu.RLock()
	for _, client := range h.rooms[roomID] {
		if client.Role != constant.RoleHost {
			continue
		}
		select {
		case client.Send <- data:
		default:
			dropped = append(dropped, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range dropped {
		h.logger.Warn("Hub", "Host send buffer full, dropping participant", map[string]interface{}{
			"room_id":  roomID,
			"identity": client.Identity,
		})
		h.unregister <- client
	}

	if h.rdb != nil {
		payload := map[string]interface{}{
			"room_id":   roomID,
			"role_only": constant.RoleHost,
			"message":   json.RawMessage(data),
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), "cluster_events", jsonPayload)
	}
}

// RoomPresence reports how many participants of each role are connected on
// this instance. Used by the REST layer to distinguish "stream open, no
// items yet" from "no stream at all".
func (h *Hub) RoomPresence(roomID string) (hosts, clients int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.rooms[roomID] {
		if c.Role == constant.RoleHost {
			hosts++
		} else {
			clients++
		}
	}
	return hosts, clients
}

func (h *Hub) subscribeToRedis() {
	// All instances share one relay channel; each checks whether it hosts
	// any participant of the target room before fanning out.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			RoomID   string          `json:"room_id"`
			RoleOnly string          `json:"role_only"`
			Message  json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		h.mu.RLock()
		clients, ok := h.rooms[payload.RoomID]
		h.mu.RUnlock()
		if !ok {
			continue
		}

		for _, client := range clients {
			if payload.RoleOnly != "" && client.Role != payload.RoleOnly {
				continue
			}
			select {
			case client.Send <- payload.Message:
			default:
				h.unregister <- client
			}
		}
	}
}

package websocket

import (
	"testing"
	"time"

	"github.com/cleanaz-dev/hueline-sub000/internal/constant"

	"github.com/stretchr/testify/assert"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func waitForPresence(t *testing.T, h *Hub, roomID string, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		hosts, clients := h.RoomPresence(roomID)
		if hosts+clients == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	hosts, clients := h.RoomPresence(roomID)
	t.Fatalf("room %s has %d participants, want %d", roomID, hosts+clients, want)
}

func TestHubSurvivesStalledParticipant(t *testing.T) {
	h := NewHub(nil, nopLogger{})
	go h.Run()

	roomID := RoomID("hueline", "walk-42")

	// Unbuffered Send with no reader: every delivery attempt is a full
	// buffer, so the first frame drops this participant.
	stalled := &Client{Hub: h, RoomID: roomID, Identity: "stalled", Role: constant.RoleHost, Send: make(chan []byte)}
	h.register <- stalled

	healthy := &Client{Hub: h, RoomID: roomID, Identity: "healthy", Role: constant.RoleHost, Send: make(chan []byte, 8)}
	h.register <- healthy
	waitForPresence(t, h, roomID, 2)

	h.BroadcastToRoom(roomID, []byte(`{"type":"COUNTDOWN","data":{"seconds":3}}`), healthy)
	waitForPresence(t, h, roomID, 1)

	// Dropping one stalled participant must not take down the hub loop or
	// the rest of the room.
	h.SendToHosts(roomID, []byte(`{"type":"SCOPE_ITEM"}`))
	select {
	case frame := <-healthy.Send:
		assert.Contains(t, string(frame), "SCOPE_ITEM")
	case <-time.After(2 * time.Second):
		t.Fatal("hub stopped routing after dropping a stalled participant")
	}

	// The stalled participant's channel was closed exactly once, by the
	// unregister path.
	select {
	case _, open := <-stalled.Send:
		assert.False(t, open)
	default:
		t.Fatal("stalled participant's send channel was never closed")
	}
}

func TestHubBroadcastExcludesSender(t *testing.T) {
	h := NewHub(nil, nopLogger{})
	go h.Run()

	roomID := RoomID("hueline", "walk-7")
	sender := &Client{Hub: h, RoomID: roomID, Identity: "host", Role: constant.RoleHost, Send: make(chan []byte, 8)}
	receiver := &Client{Hub: h, RoomID: roomID, Identity: "client", Role: constant.RoleClient, Send: make(chan []byte, 8)}
	h.register <- sender
	h.register <- receiver
	waitForPresence(t, h, roomID, 2)

	h.BroadcastToRoom(roomID, []byte(`{"type":"POINTER"}`), sender)

	select {
	case frame := <-receiver.Send:
		assert.Contains(t, string(frame), "POINTER")
	case <-time.After(2 * time.Second):
		t.Fatal("receiver never got the broadcast")
	}

	select {
	case <-sender.Send:
		t.Fatal("sender received its own broadcast")
	default:
	}
}

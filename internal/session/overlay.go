package session

import (
	"time"

	"github.com/cleanaz-dev/hueline-sub000/internal/websocket"

	gocache "github.com/patrickmn/go-cache"
)

// Ephemeral overlay TTLs. There is no explicit clear message for the
// pointer, and none is guaranteed to arrive for the others across a
// reconnect, so every overlay expires on its own.
const (
	PointerTTL   = 3 * time.Second
	MockupTTL    = 30 * time.Second
	CountdownTTL = 30 * time.Second
)

const (
	overlayKeyPointer   = "pointer"
	overlayKeyMockup    = "mockup"
	overlayKeyCountdown = "countdown"
)

// overlayStore holds the controller's ephemeral annotation state. Values
// are soft UI affordances, never data-integrity-bearing: a lost write is
// repaired by the next frame, an expired one simply disappears.
type overlayStore struct {
	cache *gocache.Cache
}

func newOverlayStore() *overlayStore {
	return &overlayStore{
		cache: gocache.New(gocache.NoExpiration, time.Second),
	}
}

func (o *overlayStore) SetPointer(p websocket.PointerPayload) {
	o.cache.Set(overlayKeyPointer, websocket.SanitizePointer(p), PointerTTL)
}

func (o *overlayStore) Pointer() (websocket.PointerPayload, bool) {
	v, ok := o.cache.Get(overlayKeyPointer)
	if !ok {
		return websocket.PointerPayload{}, false
	}
	return v.(websocket.PointerPayload), true
}

func (o *overlayStore) SetMockup(url string) {
	if url == "" {
		o.cache.Delete(overlayKeyMockup)
		return
	}
	o.cache.Set(overlayKeyMockup, url, MockupTTL)
}

func (o *overlayStore) Mockup() (string, bool) {
	v, ok := o.cache.Get(overlayKeyMockup)
	if !ok {
		return "", false
	}
	return v.(string), true
}

func (o *overlayStore) SetCountdown(c websocket.CountdownPayload) {
	o.cache.Set(overlayKeyCountdown, c, CountdownTTL)
}

func (o *overlayStore) Countdown() (websocket.CountdownPayload, bool) {
	v, ok := o.cache.Get(overlayKeyCountdown)
	if !ok {
		return websocket.CountdownPayload{}, false
	}
	return v.(websocket.CountdownPayload), true
}

// Clear drops every overlay at once. Called on disconnect so stale
// pointer/mockup state can't outlive the connection that produced it.
func (o *overlayStore) Clear() {
	o.cache.Flush()
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// ScopeItem is one discovered or declared unit of work tied to an area of
// the property. Timestamp is the client-generated ISO string identity used
// by edit/delete targeting; Id is the server-issued key persisted alongside
// it so same-millisecond collisions can't cross wires.
type ScopeItem struct {
	Id            uuid.UUID
	TenantSlug    string
	RoomKey       string
	Type          string
	Area          string
	Item          string
	Action        string
	ImageUrls     []string
	DetectionData map[string]int
	Timestamp     string
	Position      int
	CreatedAt     time.Time
}

package dto

import (
	"github.com/google/uuid"
)

// ScopeItemPayload is the wire shape of one ledger item. Field names match
// what the frontend already persists: timestamp is the client-generated ISO
// string that doubles as the mutation target key, id is the server-issued
// identity stamped on first write.
type ScopeItemPayload struct {
	Id            uuid.UUID      `json:"id,omitempty"`
	Type          string         `json:"type" validate:"required"`
	Area          string         `json:"area" validate:"required,max=100"`
	Item          string         `json:"item"`
	Action        string         `json:"action"`
	ImageUrls     []string       `json:"imageUrls,omitempty"`
	DetectionData map[string]int `json:"detectionData,omitempty"`
	Timestamp     string         `json:"timestamp" validate:"required,max=40"`
}

type GetLedgerResponse struct {
	RoomKey string              `json:"room_key"`
	Version int64               `json:"version"`
	Items   []*ScopeItemPayload `json:"items"`
}

type AddScopeItemRequest struct {
	Version int64            `json:"version" validate:"min=0"`
	Item    ScopeItemPayload `json:"item" validate:"required"`
}

type EditScopeItemRequest struct {
	Version   int64            `json:"version" validate:"min=0"`
	Timestamp string           // from route param
	Item      ScopeItemPayload `json:"item" validate:"required"`
}

type DeleteScopeItemRequest struct {
	Version   int64 `json:"version" validate:"min=0"`
	Timestamp string
}

type ReplaceLedgerRequest struct {
	Version int64               `json:"version" validate:"min=0"`
	Items   []*ScopeItemPayload `json:"items" validate:"required,dive"`
}

// MutateLedgerResponse returns the authoritative post-write collection so
// an optimistic client reconciles in one round trip.
type MutateLedgerResponse struct {
	RoomKey string              `json:"room_key"`
	Version int64               `json:"version"`
	Items   []*ScopeItemPayload `json:"items"`
}

type GalleryPayload struct {
	Cover string   `json:"cover"`
	Extra int      `json:"extra"`
	Urls  []string `json:"urls"`
}

type CategoryGroupPayload struct {
	Type  string              `json:"type"`
	Items []*ScopeItemPayload `json:"items"`
}

type AreaGroupPayload struct {
	Area       string                  `json:"area"`
	Categories []*CategoryGroupPayload `json:"categories"`
	Gallery    *GalleryPayload         `json:"gallery,omitempty"`
}

type GroupedLedgerResponse struct {
	RoomKey string              `json:"room_key"`
	Version int64               `json:"version"`
	Areas   []*AreaGroupPayload `json:"areas"`
}

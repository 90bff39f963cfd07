package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is one real-time walkthrough occurrence. RoomKey correlates the
// live connection with its persisted scope ledger. ScopeVersion is the
// optimistic-concurrency token for that ledger: every accepted write bumps
// it, every write request must carry the value it last saw.
type Session struct {
	Id           uuid.UUID
	TenantSlug   string
	RoomKey      string
	Mode         string
	Status       string
	RecordingUrl string
	ScopeVersion int64
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	EndedAt      *time.Time
}

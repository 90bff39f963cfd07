package model

import (
	"time"

	"github.com/google/uuid"
)

type Session struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantSlug   string     `gorm:"type:varchar(100);not null;uniqueIndex:idx_sessions_room,priority:1"`
	RoomKey      string     `gorm:"type:varchar(100);not null;uniqueIndex:idx_sessions_room,priority:2"`
	Mode         string     `gorm:"type:varchar(20);not null;default:'PROJECT'"`
	Status       string     `gorm:"type:varchar(20);not null;default:'PENDING'"`
	RecordingUrl string     `gorm:"type:text"`
	ScopeVersion int64      `gorm:"not null;default:0"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
	EndedAt      *time.Time `gorm:""`
}

func (Session) TableName() string {
	return "walkthrough_sessions"
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ScopeItem struct {
	Id            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantSlug    string         `gorm:"type:varchar(100);not null;index:idx_scope_items_room,priority:1"`
	RoomKey       string         `gorm:"type:varchar(100);not null;index:idx_scope_items_room,priority:2"`
	Type          string         `gorm:"type:varchar(20);not null"`
	Area          string         `gorm:"type:varchar(100);not null"`
	Item          string         `gorm:"type:text"`
	Action        string         `gorm:"type:text"`
	ImageUrls     datatypes.JSON `gorm:"type:jsonb"`
	DetectionData datatypes.JSON `gorm:"type:jsonb"`
	Timestamp     string         `gorm:"type:varchar(40);not null;index:idx_scope_items_ts"`
	Position      int            `gorm:"not null;default:0"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
}

func (ScopeItem) TableName() string {
	return "scope_items"
}

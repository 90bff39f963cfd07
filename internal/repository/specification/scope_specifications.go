package specification

import (
	"gorm.io/gorm"
)

// ByTimestamp filters scope items by the client-generated ISO timestamp,
// the identity key the frontend targets mutations with.
type ByTimestamp struct {
	Timestamp string
}

func (s ByTimestamp) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("timestamp = ?", s.Timestamp)
}

// ByArea filters by the stored (already lowercased) area label.
type ByArea struct {
	Area string
}

func (s ByArea) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("area = ?", s.Area)
}

// ByType filters by scope item type.
type ByType struct {
	Type string
}

func (s ByType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("type = ?", s.Type)
}

// InsertionOrder sorts by ledger position, the append order of the
// collection.
type InsertionOrder struct{}

func (s InsertionOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

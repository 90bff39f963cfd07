package specification

import (
	"gorm.io/gorm"
)

// ByStatus filters sessions by lifecycle status.
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ByTenant filters by tenant slug only (all rooms of one tenant).
type ByTenant struct {
	TenantSlug string
}

func (s ByTenant) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("tenant_slug = ?", s.TenantSlug)
}

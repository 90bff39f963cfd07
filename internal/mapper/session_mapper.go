package mapper

import (
	"time"

	"github.com/cleanaz-dev/hueline-sub000/internal/entity"
	"github.com/cleanaz-dev/hueline-sub000/internal/model"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(s *model.Session) *entity.Session {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.Session{
		Id:           s.Id,
		TenantSlug:   s.TenantSlug,
		RoomKey:      s.RoomKey,
		Mode:         s.Mode,
		Status:       s.Status,
		RecordingUrl: s.RecordingUrl,
		ScopeVersion: s.ScopeVersion,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    updatedAt,
		EndedAt:      s.EndedAt,
	}
}

func (m *SessionMapper) ToModel(s *entity.Session) *model.Session {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.Session{
		Id:           s.Id,
		TenantSlug:   s.TenantSlug,
		RoomKey:      s.RoomKey,
		Mode:         s.Mode,
		Status:       s.Status,
		RecordingUrl: s.RecordingUrl,
		ScopeVersion: s.ScopeVersion,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    updatedAt,
		EndedAt:      s.EndedAt,
	}
}

func (m *SessionMapper) ToEntities(sessions []*model.Session) []*entity.Session {
	entities := make([]*entity.Session, len(sessions))
	for i, s := range sessions {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

package mapper

import (
	"encoding/json"

	"github.com/cleanaz-dev/hueline-sub000/internal/entity"
	"github.com/cleanaz-dev/hueline-sub000/internal/model"

	"gorm.io/datatypes"
)

type ScopeItemMapper struct{}

func NewScopeItemMapper() *ScopeItemMapper {
	return &ScopeItemMapper{}
}

func (m *ScopeItemMapper) ToEntity(s *model.ScopeItem) *entity.ScopeItem {
	if s == nil {
		return nil
	}

	var imageUrls []string
	if len(s.ImageUrls) > 0 {
		// Ignore malformed jsonb, treat as empty rather than failing a read
		_ = json.Unmarshal(s.ImageUrls, &imageUrls)
	}

	var detectionData map[string]int
	if len(s.DetectionData) > 0 {
		_ = json.Unmarshal(s.DetectionData, &detectionData)
	}

	return &entity.ScopeItem{
		Id:            s.Id,
		TenantSlug:    s.TenantSlug,
		RoomKey:       s.RoomKey,
		Type:          s.Type,
		Area:          s.Area,
		Item:          s.Item,
		Action:        s.Action,
		ImageUrls:     imageUrls,
		DetectionData: detectionData,
		Timestamp:     s.Timestamp,
		Position:      s.Position,
		CreatedAt:     s.CreatedAt,
	}
}

func (m *ScopeItemMapper) ToModel(s *entity.ScopeItem) *model.ScopeItem {
	if s == nil {
		return nil
	}

	var imageUrls datatypes.JSON
	if len(s.ImageUrls) > 0 {
		b, _ := json.Marshal(s.ImageUrls)
		imageUrls = datatypes.JSON(b)
	}

	var detectionData datatypes.JSON
	if len(s.DetectionData) > 0 {
		b, _ := json.Marshal(s.DetectionData)
		detectionData = datatypes.JSON(b)
	}

	return &model.ScopeItem{
		Id:            s.Id,
		TenantSlug:    s.TenantSlug,
		RoomKey:       s.RoomKey,
		Type:          s.Type,
		Area:          s.Area,
		Item:          s.Item,
		Action:        s.Action,
		ImageUrls:     imageUrls,
		DetectionData: detectionData,
		Timestamp:     s.Timestamp,
		Position:      s.Position,
		CreatedAt:     s.CreatedAt,
	}
}

func (m *ScopeItemMapper) ToEntities(items []*model.ScopeItem) []*entity.ScopeItem {
	entities := make([]*entity.ScopeItem, len(items))
	for i, s := range items {
		entities[i] = m.ToEntity(s)
	}
	return entities
}

func (m *ScopeItemMapper) ToModels(items []*entity.ScopeItem) []*model.ScopeItem {
	models := make([]*model.ScopeItem, len(items))
	for i, s := range items {
		models[i] = m.ToModel(s)
	}
	return models
}

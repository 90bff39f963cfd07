package implementation

import (
	"context"
	"errors"

	"github.com/cleanaz-dev/hueline-sub000/internal/entity"
	"github.com/cleanaz-dev/hueline-sub000/internal/mapper"
	"github.com/cleanaz-dev/hueline-sub000/internal/model"
	"github.com/cleanaz-dev/hueline-sub000/internal/repository/contract"
	"github.com/cleanaz-dev/hueline-sub000/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScopeItemRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ScopeItemMapper
}

func NewScopeItemRepository(db *gorm.DB) contract.ScopeItemRepository {
	return &ScopeItemRepositoryImpl{
		db:     db,
		mapper: mapper.NewScopeItemMapper(),
	}
}

func (r *ScopeItemRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ScopeItemRepositoryImpl) Create(ctx context.Context, item *entity.ScopeItem) error {
	m := r.mapper.ToModel(item)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*item = *r.mapper.ToEntity(m)
	return nil
}

func (r *ScopeItemRepositoryImpl) Update(ctx context.Context, item *entity.ScopeItem) error {
	m := r.mapper.ToModel(item)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*item = *r.mapper.ToEntity(m)
	return nil
}

func (r *ScopeItemRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ScopeItem{}, id).Error
}

func (r *ScopeItemRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ScopeItem, error) {
	var m model.ScopeItem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ScopeItemRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ScopeItem, error) {
	var models []*model.ScopeItem
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ScopeItemRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ScopeItem{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ScopeItemRepositoryImpl) ReplaceCollection(ctx context.Context, tenantSlug, roomKey string, items []*entity.ScopeItem) error {
	db := r.db.WithContext(ctx)

	if err := db.Where("tenant_slug = ? AND room_key = ?", tenantSlug, roomKey).
		Delete(&model.ScopeItem{}).Error; err != nil {
		return err
	}

	if len(items) == 0 {
		return nil
	}

	models := make([]*model.ScopeItem, len(items))
	for i, item := range items {
		item.TenantSlug = tenantSlug
		item.RoomKey = roomKey
		item.Position = i
		if item.Id == uuid.Nil {
			item.Id = uuid.New()
		}
		models[i] = r.mapper.ToModel(item)
	}

	if err := db.Create(&models).Error; err != nil {
		return err
	}

	for i, m := range models {
		*items[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

package contract

import (
	"context"

	"github.com/cleanaz-dev/hueline-sub000/internal/entity"
	"github.com/cleanaz-dev/hueline-sub000/internal/repository/specification"

	"github.com/google/uuid"
)

type ScopeItemRepository interface {
	Create(ctx context.Context, item *entity.ScopeItem) error
	Update(ctx context.Context, item *entity.ScopeItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ScopeItem, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ScopeItem, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// ReplaceCollection swaps the entire item collection of one room, the
	// bulk path the legacy client uses for every mutation. Positions are
	// reassigned from slice order.
	ReplaceCollection(ctx context.Context, tenantSlug, roomKey string, items []*entity.ScopeItem) error
}

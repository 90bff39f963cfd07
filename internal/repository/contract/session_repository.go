package contract

import (
	"context"

	"github.com/cleanaz-dev/hueline-sub000/internal/entity"
	"github.com/cleanaz-dev/hueline-sub000/internal/repository/specification"

	"github.com/google/uuid"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	Update(ctx context.Context, session *entity.Session) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Session, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// BumpScopeVersion atomically increments the session's ledger version
	// iff the stored value still equals expected. Returns the new version,
	// or ErrVersionConflict when another writer got there first.
	BumpScopeVersion(ctx context.Context, id uuid.UUID, expected int64) (int64, error)
}

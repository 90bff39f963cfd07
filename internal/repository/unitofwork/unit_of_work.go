package unitofwork

import (
	"context"

	"github.com/cleanaz-dev/hueline-sub000/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SessionRepository() contract.SessionRepository
	ScopeItemRepository() contract.ScopeItemRepository
}

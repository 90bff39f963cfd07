package service

import (
	"context"
	"strings"
	"time"

	"github.com/cleanaz-dev/hueline-sub000/internal/constant"
	"github.com/cleanaz-dev/hueline-sub000/internal/dto"
	"github.com/cleanaz-dev/hueline-sub000/internal/entity"
	"github.com/cleanaz-dev/hueline-sub000/internal/repository/specification"
	"github.com/cleanaz-dev/hueline-sub000/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ILedgerService interface {
	Get(ctx context.Context, tenantSlug, roomKey string) (*dto.GetLedgerResponse, error)
	GetGrouped(ctx context.Context, tenantSlug, roomKey string) (*dto.GroupedLedgerResponse, error)
	Add(ctx context.Context, tenantSlug, roomKey string, req *dto.AddScopeItemRequest) (*dto.MutateLedgerResponse, error)
	Edit(ctx context.Context, tenantSlug, roomKey string, req *dto.EditScopeItemRequest) (*dto.MutateLedgerResponse, error)
	Delete(ctx context.Context, tenantSlug, roomKey string, req *dto.DeleteScopeItemRequest) (*dto.MutateLedgerResponse, error)
	Replace(ctx context.Context, tenantSlug, roomKey string, req *dto.ReplaceLedgerRequest) (*dto.MutateLedgerResponse, error)
}

type ledgerService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewLedgerService(uowFactory unitofwork.RepositoryFactory) ILedgerService {
	return &ledgerService{
		uowFactory: uowFactory,
	}
}

func (s *ledgerService) Get(ctx context.Context, tenantSlug, roomKey string) (*dto.GetLedgerResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByRoom{TenantSlug: tenantSlug, RoomKey: roomKey})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	items, err := uow.ScopeItemRepository().FindAll(ctx,
		specification.ByRoom{TenantSlug: tenantSlug, RoomKey: roomKey},
		specification.InsertionOrder{},
	)
	if err != nil {
		return nil, err
	}

	return &dto.GetLedgerResponse{
		RoomKey: roomKey,
		Version: session.ScopeVersion,
		Items:   toItemPayloads(items),
	}, nil
}

func (s *ledgerService) GetGrouped(ctx context.Context, tenantSlug, roomKey string) (*dto.GroupedLedgerResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByRoom{TenantSlug: tenantSlug, RoomKey: roomKey})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	items, err := uow.ScopeItemRepository().FindAll(ctx,
		specification.ByRoom{TenantSlug: tenantSlug, RoomKey: roomKey},
		specification.InsertionOrder{},
	)
	if err != nil {
		return nil, err
	}

	return &dto.GroupedLedgerResponse{
		RoomKey: roomKey,
		Version: session.ScopeVersion,
		Areas:   GroupByArea(items),
	}, nil
}

func (s *ledgerService) Add(ctx context.Context, tenantSlug, roomKey string, req *dto.AddScopeItemRequest) (*dto.MutateLedgerResponse, error) {
	item, err := itemFromPayload(&req.Item)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, tenantSlug, roomKey, req.Version, func(items []*entity.ScopeItem) ([]*entity.ScopeItem, error) {
		return append(items, item), nil
	})
}

func (s *ledgerService) Edit(ctx context.Context, tenantSlug, roomKey string, req *dto.EditScopeItemRequest) (*dto.MutateLedgerResponse, error) {
	item, err := itemFromPayload(&req.Item)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, tenantSlug, roomKey, req.Version, func(items []*entity.ScopeItem) ([]*entity.ScopeItem, error) {
		for i, existing := range items {
			if existing.Timestamp == req.Timestamp {
				// In-place replace; the row keeps its server identity
				if item.Id == uuid.Nil {
					item.Id = existing.Id
				}
				item.Position = existing.Position
				items[i] = item
				return items, nil
			}
		}
		return nil, ErrItemNotFound
	})
}

func (s *ledgerService) Delete(ctx context.Context, tenantSlug, roomKey string, req *dto.DeleteScopeItemRequest) (*dto.MutateLedgerResponse, error) {
	return s.mutate(ctx, tenantSlug, roomKey, req.Version, func(items []*entity.ScopeItem) ([]*entity.ScopeItem, error) {
		next := make([]*entity.ScopeItem, 0, len(items))
		found := false
		for _, existing := range items {
			if existing.Timestamp == req.Timestamp && !found {
				found = true
				continue
			}
			next = append(next, existing)
		}
		if !found {
			return nil, ErrItemNotFound
		}
		return next, nil
	})
}

func (s *ledgerService) Replace(ctx context.Context, tenantSlug, roomKey string, req *dto.ReplaceLedgerRequest) (*dto.MutateLedgerResponse, error) {
	replacement := make([]*entity.ScopeItem, 0, len(req.Items))
	for _, payload := range req.Items {
		item, err := itemFromPayload(payload)
		if err != nil {
			return nil, err
		}
		replacement = append(replacement, item)
	}

	return s.mutate(ctx, tenantSlug, roomKey, req.Version, func([]*entity.ScopeItem) ([]*entity.ScopeItem, error) {
		return replacement, nil
	})
}

// mutate runs one ledger write transactionally: version CAS on the session
// row first, then whole-collection replacement. A concurrent editor's
// write shows up as a version conflict, never a silent clobber.
func (s *ledgerService) mutate(
	ctx context.Context,
	tenantSlug, roomKey string,
	version int64,
	apply func(items []*entity.ScopeItem) ([]*entity.ScopeItem, error),
) (*dto.MutateLedgerResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback() // no-op after Commit

	session, err := uow.SessionRepository().FindOne(ctx, specification.ByRoom{TenantSlug: tenantSlug, RoomKey: roomKey})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	newVersion, err := uow.SessionRepository().BumpScopeVersion(ctx, session.Id, version)
	if err != nil {
		return nil, err
	}

	current, err := uow.ScopeItemRepository().FindAll(ctx,
		specification.ByRoom{TenantSlug: tenantSlug, RoomKey: roomKey},
		specification.InsertionOrder{},
	)
	if err != nil {
		return nil, err
	}

	next, err := apply(current)
	if err != nil {
		return nil, err
	}

	if err := uow.ScopeItemRepository().ReplaceCollection(ctx, tenantSlug, roomKey, next); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.MutateLedgerResponse{
		RoomKey: roomKey,
		Version: newVersion,
		Items:   toItemPayloads(next),
	}, nil
}

// itemFromPayload validates a client-supplied item against the model
// invariants and normalizes the area for storage.
func itemFromPayload(p *dto.ScopeItemPayload) (*entity.ScopeItem, error) {
	if !constant.IsKnownScopeType(p.Type) {
		return nil, ErrUnknownType
	}

	area := strings.ToLower(strings.TrimSpace(p.Area))
	if area == "" || strings.EqualFold(area, constant.AreaFilterAll) {
		return nil, ErrReservedArea
	}

	item := &entity.ScopeItem{
		Id:        p.Id,
		Type:      p.Type,
		Area:      area,
		Item:      p.Item,
		Action:    p.Action,
		Timestamp: p.Timestamp,
		CreatedAt: time.Now(),
	}
	if item.Id == uuid.Nil {
		item.Id = uuid.New()
	}

	// imageUrls is authoritative only on IMAGE items, detectionData only on
	// DETECTION items; anything else is shed at the boundary
	if p.Type == constant.ScopeTypeImage {
		item.ImageUrls = p.ImageUrls
	}
	if p.Type == constant.ScopeTypeDetection {
		item.DetectionData = p.DetectionData
		if len(item.DetectionData) == 0 {
			return nil, ErrMissingCounts
		}
	}

	return item, nil
}

package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/cleanaz-dev/hueline-sub000/internal/constant"
	"github.com/cleanaz-dev/hueline-sub000/internal/entity"
)

var (
	ErrMutationInFlight = errors.New("another ledger mutation is in flight")
	ErrItemNotFound     = errors.New("no ledger item with that timestamp")
	ErrReservedArea     = errors.New("\"ALL\" is a filter token, not an area")
)

// LedgerWriter is the persistence edge the cache reconciles against. The
// legacy write path replaces the whole collection; the server answers with
// the authoritative post-write collection and version.
type LedgerWriter interface {
	Replace(ctx context.Context, items []*entity.ScopeItem, version int64) ([]*entity.ScopeItem, int64, error)
	Fetch(ctx context.Context) ([]*entity.ScopeItem, int64, error)
}

// LedgerCache is the host-side optimistic copy of one room's scope ledger.
// Every mutation applies locally first, then writes; on success the server
// response replaces the guess, on failure the cache rolls back to the last
// known-good server state and revalidates. One mutation runs at a time.
type LedgerCache struct {
	writer LedgerWriter

	mu         sync.Mutex
	inflight   bool
	items      []*entity.ScopeItem
	version    int64
	lastServer []*entity.ScopeItem

	// onFailure fires exactly once per failed mutation, after rollback.
	onFailure func(err error)
}

func NewLedgerCache(writer LedgerWriter, onFailure func(err error)) *LedgerCache {
	if onFailure == nil {
		onFailure = func(error) {}
	}
	return &LedgerCache{
		writer:    writer,
		onFailure: onFailure,
	}
}

// Seed installs the client-supplied fallback snapshot for instant paint
// while the first server read is in flight.
func (l *LedgerCache) Seed(items []*entity.ScopeItem) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = cloneItems(items)
}

// Refresh replaces the cache with a fresh server read.
func (l *LedgerCache) Refresh(ctx context.Context) error {
	items, version, err := l.writer.Fetch(ctx)
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.items = items
	l.version = version
	l.lastServer = cloneItems(items)
	l.mu.Unlock()
	return nil
}

// Items returns a copy of the current collection.
func (l *LedgerCache) Items() []*entity.ScopeItem {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneItems(l.items)
}

func (l *LedgerCache) Version() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.version
}

// Add appends an item and persists the new collection.
func (l *LedgerCache) Add(ctx context.Context, item *entity.ScopeItem) error {
	if isReservedArea(item.Area) {
		return ErrReservedArea
	}
	normalized := *item
	normalized.Area = strings.ToLower(strings.TrimSpace(item.Area))

	return l.mutate(ctx, func(items []*entity.ScopeItem) ([]*entity.ScopeItem, error) {
		return append(items, &normalized), nil
	})
}

// Edit replaces the item with a matching timestamp in place.
func (l *LedgerCache) Edit(ctx context.Context, item *entity.ScopeItem) error {
	if isReservedArea(item.Area) {
		return ErrReservedArea
	}
	normalized := *item
	normalized.Area = strings.ToLower(strings.TrimSpace(item.Area))

	return l.mutate(ctx, func(items []*entity.ScopeItem) ([]*entity.ScopeItem, error) {
		for i, existing := range items {
			if existing.Timestamp == normalized.Timestamp {
				items[i] = &normalized
				return items, nil
			}
		}
		return nil, ErrItemNotFound
	})
}

// Delete filters out the item with a matching timestamp.
func (l *LedgerCache) Delete(ctx context.Context, timestamp string) error {
	return l.mutate(ctx, func(items []*entity.ScopeItem) ([]*entity.ScopeItem, error) {
		next := items[:0]
		found := false
		for _, existing := range items {
			if existing.Timestamp == timestamp && !found {
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

func (l *LedgerCache) mutate(ctx context.Context, apply func([]*entity.ScopeItem) ([]*entity.ScopeItem, error)) error {
	l.mu.Lock()
	if l.inflight {
		l.mu.Unlock()
		return ErrMutationInFlight
	}
	l.inflight = true

	optimistic, err := apply(cloneItems(l.items))
	if err != nil {
		l.inflight = false
		l.mu.Unlock()
		return err
	}

	// Apply locally before the network round trip.
	l.items = optimistic
	version := l.version
	l.mu.Unlock()

	serverItems, serverVersion, writeErr := l.writer.Replace(ctx, cloneItems(optimistic), version)

	if writeErr != nil {
		// Discard the optimistic guess and revalidate against the server.
		// If the revalidating read also fails, the last known-good server
		// state stands in until the next successful Refresh.
		freshItems, freshVersion, fetchErr := l.writer.Fetch(ctx)

		l.mu.Lock()
		if fetchErr == nil {
			l.items = freshItems
			l.version = freshVersion
			l.lastServer = cloneItems(freshItems)
		} else {
			l.items = cloneItems(l.lastServer)
		}
		l.inflight = false
		l.mu.Unlock()

		l.onFailure(writeErr)
		return writeErr
	}

	l.mu.Lock()
	// The server response is authoritative even when it matches the guess.
	l.items = serverItems
	l.version = serverVersion
	l.lastServer = cloneItems(serverItems)
	l.inflight = false
	l.mu.Unlock()
	return nil
}

func isReservedArea(area string) bool {
	return strings.EqualFold(strings.TrimSpace(area), constant.AreaFilterAll)
}

func cloneItems(items []*entity.ScopeItem) []*entity.ScopeItem {
	out := make([]*entity.ScopeItem, len(items))
	copy(out, items)
	return out
}

package session

import (
	"context"
	"errors"
	"testing"

	"github.com/cleanaz-dev/hueline-sub000/internal/entity"

	"github.com/stretchr/testify/assert"
)

// fakeWriter plays the persistence edge: Replace either accepts the
// collection as the new canonical state or fails, Fetch returns whatever is
// canonical right now.
type fakeWriter struct {
	items      []*entity.ScopeItem
	version    int64
	replaceErr error
	fetchErr   error

	replaceCalls int
	fetchCalls   int

	// blockReplace, when set, holds Replace until released; replaceEntered
	// is closed once the first blocked call arrives.
	blockReplace   chan struct{}
	replaceEntered chan struct{}
}

func (w *fakeWriter) Replace(_ context.Context, items []*entity.ScopeItem, _ int64) ([]*entity.ScopeItem, int64, error) {
	w.replaceCalls++
	if w.blockReplace != nil {
		if w.replaceEntered != nil {
			close(w.replaceEntered)
			w.replaceEntered = nil
		}
		<-w.blockReplace
	}
	if w.replaceErr != nil {
		return nil, 0, w.replaceErr
	}
	w.items = items
	w.version++
	return items, w.version, nil
}

func (w *fakeWriter) Fetch(_ context.Context) ([]*entity.ScopeItem, int64, error) {
	w.fetchCalls++
	if w.fetchErr != nil {
		return nil, 0, w.fetchErr
	}
	return w.items, w.version, nil
}

func item(ts, area, name string) *entity.ScopeItem {
	return &entity.ScopeItem{Timestamp: ts, Area: area, Item: name, Type: "REPAIR"}
}

func TestLedgerCacheAddAdoptsServerResponse(t *testing.T) {
	w := &fakeWriter{}
	cache := NewLedgerCache(w, nil)
	assert.NoError(t, cache.Refresh(context.Background()))

	err := cache.Add(context.Background(), item("t1", "Kitchen", "drywall"))
	assert.NoError(t, err)

	items := cache.Items()
	if assert.Len(t, items, 1) {
		assert.Equal(t, "kitchen", items[0].Area, "area is lowercased on write")
	}
	assert.Equal(t, int64(1), cache.Version())
}

func TestLedgerCacheRejectsReservedArea(t *testing.T) {
	w := &fakeWriter{}
	cache := NewLedgerCache(w, nil)

	err := cache.Add(context.Background(), item("t1", "ALL", "x"))
	assert.ErrorIs(t, err, ErrReservedArea)

	err = cache.Add(context.Background(), item("t1", "all", "x"))
	assert.ErrorIs(t, err, ErrReservedArea)

	assert.Zero(t, w.replaceCalls, "reserved area never reaches the writer")
}

func TestLedgerCacheEditUnknownTimestamp(t *testing.T) {
	w := &fakeWriter{items: []*entity.ScopeItem{item("t1", "kitchen", "drywall")}}
	cache := NewLedgerCache(w, nil)
	assert.NoError(t, cache.Refresh(context.Background()))

	err := cache.Edit(context.Background(), item("missing", "kitchen", "x"))
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.Zero(t, w.replaceCalls)
}

func TestLedgerCacheFailedEditRollsBackToServerState(t *testing.T) {
	w := &fakeWriter{items: []*entity.ScopeItem{item("t1", "kitchen", "drywall")}, version: 4}
	failures := 0
	var lastErr error
	cache := NewLedgerCache(w, func(err error) {
		failures++
		lastErr = err
	})
	assert.NoError(t, cache.Refresh(context.Background()))

	conflict := errors.New("version conflict")
	w.replaceErr = conflict

	edited := item("t1", "kitchen", "replace drywall and paint")
	err := cache.Edit(context.Background(), edited)
	assert.ErrorIs(t, err, conflict)

	// State equals a fresh read of the server, not the optimistic guess.
	items := cache.Items()
	if assert.Len(t, items, 1) {
		assert.Equal(t, "drywall", items[0].Item)
	}
	assert.Equal(t, int64(4), cache.Version())

	// Exactly one failure notice, carrying the write error.
	assert.Equal(t, 1, failures)
	assert.ErrorIs(t, lastErr, conflict)
}

func TestLedgerCacheFailedWriteAndFetchFallsBackToLastKnown(t *testing.T) {
	w := &fakeWriter{items: []*entity.ScopeItem{item("t1", "kitchen", "drywall")}}
	cache := NewLedgerCache(w, nil)
	assert.NoError(t, cache.Refresh(context.Background()))

	w.replaceErr = errors.New("write timeout")
	w.fetchErr = errors.New("read timeout")

	err := cache.Delete(context.Background(), "t1")
	assert.Error(t, err)

	// Revalidation failed too, so the last known-good server copy stands.
	items := cache.Items()
	if assert.Len(t, items, 1) {
		assert.Equal(t, "drywall", items[0].Item)
	}
}

func TestLedgerCacheSingleMutationInFlight(t *testing.T) {
	w := &fakeWriter{blockReplace: make(chan struct{}), replaceEntered: make(chan struct{})}
	cache := NewLedgerCache(w, nil)
	assert.NoError(t, cache.Refresh(context.Background()))

	entered := w.replaceEntered
	firstDone := make(chan error, 1)
	go func() {
		firstDone <- cache.Add(context.Background(), item("t1", "kitchen", "drywall"))
	}()

	// Wait for the first mutation to reach the blocked writer.
	<-entered

	err := cache.Add(context.Background(), item("t2", "bath", "caulk"))
	assert.ErrorIs(t, err, ErrMutationInFlight)

	close(w.blockReplace)
	assert.NoError(t, <-firstDone)

	// The guarded second mutation never mutated anything.
	assert.Len(t, cache.Items(), 1)
}

func TestLedgerCacheSeedPaintsBeforeFirstRead(t *testing.T) {
	w := &fakeWriter{items: []*entity.ScopeItem{item("t9", "garage", "door")}}
	cache := NewLedgerCache(w, nil)

	cache.Seed([]*entity.ScopeItem{item("t1", "kitchen", "cached")})
	if items := cache.Items(); assert.Len(t, items, 1) {
		assert.Equal(t, "cached", items[0].Item)
	}

	assert.NoError(t, cache.Refresh(context.Background()))
	if items := cache.Items(); assert.Len(t, items, 1) {
		assert.Equal(t, "door", items[0].Item)
	}
}

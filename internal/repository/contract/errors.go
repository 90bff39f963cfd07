package contract

import "errors"

// ErrVersionConflict signals an optimistic-concurrency failure: the caller's
// last-seen ledger version is stale because another editor wrote first.
var ErrVersionConflict = errors.New("ledger version conflict")

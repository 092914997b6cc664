// Package cache defines the read cache contract for account snapshots.
// Implementations (Redis, in-memory) live under infra/cache.
package cache

import (
	"context"
	"time"
)

// AccountSnapshot is the cached projection of an account used to serve
// balance reads without touching the ledger store. It carries the PIN hash
// so credential checks work on a cache hit; it must never be serialized
// into an API response.
type AccountSnapshot struct {
	Number       string    `json:"number"`
	Name         string    `json:"name"`
	PinHash      string    `json:"pin_hash"`
	BalancePaise int64     `json:"balance_paise"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// AccountCache is a read-through cache for account snapshots. Misses and
// backend errors both report !ok; cache failures are never fatal to a
// request.
type AccountCache interface {
	Get(ctx context.Context, number string) (*AccountSnapshot, bool)
	Set(ctx context.Context, snapshot *AccountSnapshot)
	// Delete invalidates the snapshot. Every mutation of the underlying
	// account goes through here.
	Delete(ctx context.Context, number string)
}

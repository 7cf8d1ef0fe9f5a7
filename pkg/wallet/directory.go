// Package wallet maps chat users to a single linked blockchain address.
// The directory owns this mapping exclusively: handlers link and look up
// through it and never touch the store directly.
package wallet

import (
	"context"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/wrmarte/MuscleRHB/pkg/errorx"
)

var (
	ErrInvalidAddress = errorx.New(errorx.Validation, "❌ Invalid wallet address.")
	ErrNotLinked      = errorx.New(errorx.NotFound, "⚠️ You haven't linked your wallet. Use `!linkwallet 0x...` first.")
)

// Store persists user-to-address links. Implementations must make Upsert
// atomic per key; concurrent writers for different users never conflict.
type Store interface {
	Upsert(ctx context.Context, userID, address string) error
	Get(ctx context.Context, userID string) (address string, found bool, err error)
	Close() error
}

// ValidAddress reports whether s is a 0x-prefixed 40-digit hex address.
func ValidAddress(s string) bool {
	return strings.HasPrefix(s, "0x") && common.IsHexAddress(s)
}

// ChecksumAddress renders a valid address in EIP-55 checksum form for
// display. The stored value is never rewritten.
func ChecksumAddress(s string) string {
	return common.HexToAddress(s).Hex()
}

// Directory is the durable user-to-wallet mapping with a process-lifetime
// read cache. Last write wins; there is no unlink.
type Directory struct {
	store Store

	mu    sync.RWMutex
	cache map[string]string
}

func NewDirectory(store Store) *Directory {
	return &Directory{
		store: store,
		cache: make(map[string]string),
	}
}

// Link validates address and upserts it for userID. Invalid input fails
// before any storage access, so a prior linked value is never disturbed.
func (d *Directory) Link(ctx context.Context, userID, address string) error {
	if !ValidAddress(address) {
		return ErrInvalidAddress
	}

	if err := d.store.Upsert(ctx, userID, address); err != nil {
		return errorx.Wrap(errorx.Storage, err, "🚫 Could not save your wallet. Try again later.")
	}

	d.mu.Lock()
	d.cache[userID] = address
	d.mu.Unlock()

	return nil
}

// Lookup returns the linked address for userID, serving repeat reads from
// the cache populated on first hit and overwritten by Link.
func (d *Directory) Lookup(ctx context.Context, userID string) (string, error) {
	d.mu.RLock()
	cached, ok := d.cache[userID]
	d.mu.RUnlock()
	if ok {
		return cached, nil
	}

	address, found, err := d.store.Get(ctx, userID)
	if err != nil {
		return "", errorx.Wrap(errorx.Storage, err, "🚫 Could not read the wallet directory. Try again later.")
	}
	if !found {
		return "", ErrNotLinked
	}

	d.mu.Lock()
	d.cache[userID] = address
	d.mu.Unlock()

	return address, nil
}

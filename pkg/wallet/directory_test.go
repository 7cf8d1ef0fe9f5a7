package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrmarte/MuscleRHB/pkg/errorx"
)

const validAddr = "0xABCDEF0123456789ABCDEF0123456789ABCDEF01"

func TestValidAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    bool
	}{
		{"checksummed", validAddr, true},
		{"lowercase", "0xabcdef0123456789abcdef0123456789abcdef01", true},
		{"missing 0x", "abcdef0123456789abcdef0123456789abcdef01", false},
		{"uppercase 0X prefix", "0XABCDEF0123456789ABCDEF0123456789ABCDEF01", false},
		{"too short", "0xabc", false},
		{"too long", validAddr + "ff", false},
		{"non-hex chars", "0xZZCDEF0123456789ABCDEF0123456789ABCDEF01", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidAddress(tt.address))
		})
	}
}

func TestLinkThenLookupRoundTrips(t *testing.T) {
	dir := NewDirectory(NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, dir.Link(ctx, "user-1", validAddr))

	got, err := dir.Lookup(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, validAddr, got)
}

func TestLinkInvalidDoesNotAlterStoredValue(t *testing.T) {
	dir := NewDirectory(NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, dir.Link(ctx, "user-1", validAddr))

	err := dir.Link(ctx, "user-1", "0xnothex")
	require.Error(t, err)
	assert.Equal(t, errorx.Validation, errorx.CodeOf(err))

	got, err := dir.Lookup(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, validAddr, got)
}

func TestRelinkLastWriteWins(t *testing.T) {
	dir := NewDirectory(NewMemoryStore())
	ctx := context.Background()

	first := "0x1111111111111111111111111111111111111111"
	second := "0x2222222222222222222222222222222222222222"

	require.NoError(t, dir.Link(ctx, "user-1", first))
	require.NoError(t, dir.Link(ctx, "user-1", second))

	got, err := dir.Lookup(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestLookupUnlinked(t *testing.T) {
	dir := NewDirectory(NewMemoryStore())

	_, err := dir.Lookup(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotLinked)
}

// failingStore errors on every access once tripped, to exercise the cache
// and the storage error category.
type failingStore struct {
	*MemoryStore
	broken bool
}

func (s *failingStore) Upsert(ctx context.Context, userID, address string) error {
	if s.broken {
		return errors.New("database locked")
	}
	return s.MemoryStore.Upsert(ctx, userID, address)
}

func (s *failingStore) Get(ctx context.Context, userID string) (string, bool, error) {
	if s.broken {
		return "", false, errors.New("database locked")
	}
	return s.MemoryStore.Get(ctx, userID)
}

func TestLookupServedFromCacheAfterFirstHit(t *testing.T) {
	store := &failingStore{MemoryStore: NewMemoryStore()}
	dir := NewDirectory(store)
	ctx := context.Background()

	require.NoError(t, dir.Link(ctx, "user-1", validAddr))

	store.broken = true

	got, err := dir.Lookup(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, validAddr, got)
}

func TestStorageErrorsAreCategorized(t *testing.T) {
	store := &failingStore{MemoryStore: NewMemoryStore(), broken: true}
	dir := NewDirectory(store)
	ctx := context.Background()

	err := dir.Link(ctx, "user-1", validAddr)
	assert.Equal(t, errorx.Storage, errorx.CodeOf(err))

	_, err = dir.Lookup(ctx, "user-2")
	assert.Equal(t, errorx.Storage, errorx.CodeOf(err))
}

func TestChecksumAddress(t *testing.T) {
	got := ChecksumAddress("0x52908400098527886e0f7030069857d2e4169ee7")
	assert.Equal(t, "0x52908400098527886E0F7030069857D2E4169EE7", got)
}

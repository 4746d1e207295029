package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/storage"
)

func TestManagerReturnsSameStorePerSession(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(storage.NewMemoryStore())

	first := manager.Session(ctx, "s1")
	second := manager.Session(ctx, "s1")
	other := manager.Session(ctx, "s2")

	assert.Same(t, first, second)
	assert.NotSame(t, first, other)
}

func TestSnapshotSurvivesCartEdits(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(storage.NewMemoryStore())
	store := manager.Session(ctx, "s1")

	store.Add(ctx, testProduct("p1", 100), 2)
	_, err := store.StageCheckout(ctx)
	require.NoError(t, err)

	// Edits after staging must not leak into the snapshot.
	store.Add(ctx, testProduct("p2", 500), 1)

	snapshot, err := manager.Snapshot(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, 200.0, snapshot.Total)
}

func TestSnapshotReadDoesNotConsumeSlot(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(storage.NewMemoryStore())
	store := manager.Session(ctx, "s1")

	store.Add(ctx, testProduct("p1", 100), 1)
	_, err := store.StageCheckout(ctx)
	require.NoError(t, err)

	_, err = manager.Snapshot(ctx, "s1")
	require.NoError(t, err)
	_, err = manager.Snapshot(ctx, "s1")
	assert.NoError(t, err)
}

func TestSnapshotMissing(t *testing.T) {
	manager := NewManager(storage.NewMemoryStore())

	_, err := manager.Snapshot(context.Background(), "s1")
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestSnapshotCorruptReadsAsMissing(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Put(ctx, checkoutKey("s1"), []byte("][")))

	manager := NewManager(kv)
	_, err := manager.Snapshot(ctx, "s1")
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestCompleteCheckoutClearsCartAndSlot(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	manager := NewManager(kv)
	store := manager.Session(ctx, "s1")

	store.Add(ctx, testProduct("p1", 100), 1)
	_, err := store.StageCheckout(ctx)
	require.NoError(t, err)

	manager.CompleteCheckout(ctx, "s1")

	assert.Empty(t, store.Items())
	_, err = kv.Get(ctx, cartKey("s1"))
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = manager.Snapshot(ctx, "s1")
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"storefront/internal/models"
	"storefront/internal/storage"
)

var ErrNoSnapshot = errors.New("cart: no checkout snapshot staged")

// Manager hands out the per-session cart stores. One store per session for
// the lifetime of the process; a store is created on first use with its
// persisted state loaded, and is never torn down.
type Manager struct {
	mu     sync.Mutex
	kv     storage.Store
	stores map[string]*Store
}

func NewManager(kv storage.Store) *Manager {
	return &Manager{kv: kv, stores: make(map[string]*Store)}
}

func (m *Manager) Session(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if store, ok := m.stores[sessionID]; ok {
		return store
	}

	store := NewStore(m.kv, sessionID)
	store.Load(ctx)
	m.stores[sessionID] = store
	return store
}

// Snapshot returns the staged checkout handoff for a session. Reading
// consumes the slot logically but never deletes it, so a retry after a
// failed submission sees the same snapshot. Corrupt payloads read as no
// snapshot.
func (m *Manager) Snapshot(ctx context.Context, sessionID string) (models.CartSnapshot, error) {
	data, err := m.kv.Get(ctx, checkoutKey(sessionID))
	if errors.Is(err, storage.ErrNotFound) {
		return models.CartSnapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return models.CartSnapshot{}, fmt.Errorf("read checkout snapshot: %w", err)
	}

	var snapshot models.CartSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		log.Println("[CART] [ERROR] staged snapshot undecodable:", err)
		return models.CartSnapshot{}, ErrNoSnapshot
	}
	return snapshot, nil
}

// CompleteCheckout clears the session cart and drops the staged snapshot
// after a successful order submission.
func (m *Manager) CompleteCheckout(ctx context.Context, sessionID string) {
	m.Session(ctx, sessionID).Clear(ctx)
	if err := m.kv.Delete(ctx, checkoutKey(sessionID)); err != nil {
		log.Println("[CART] [ERROR] drop checkout snapshot failed:", err)
	}
}

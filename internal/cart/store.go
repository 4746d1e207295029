package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"storefront/internal/models"
	"storefront/internal/storage"
)

type Direction string

const (
	Increase Direction = "increase"
	Decrease Direction = "decrease"
)

var ErrItemNotFound = errors.New("cart: item not found")

func cartKey(sessionID string) string     { return "cart:" + sessionID }
func checkoutKey(sessionID string) string { return "checkout:" + sessionID }

// Store owns one session's cart and is its single source of truth. Mutations
// apply to the in-memory list first and are written through to storage before
// returning; a storage failure does not roll the mutation back, it only
// raises the soft error flag.
type Store struct {
	mu        sync.Mutex
	kv        storage.Store
	sessionID string
	items     []models.CartLineItem
	lastErr   error
}

func NewStore(kv storage.Store, sessionID string) *Store {
	return &Store{kv: kv, sessionID: sessionID}
}

// Load reads the persisted cart. Absent or undecodable data falls back to an
// empty cart so the caller always gets a usable store; the failure is kept on
// the soft error flag instead of being returned.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.lastErr = nil

	data, err := s.kv.Get(ctx, cartKey(s.sessionID))
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		log.Println("[CART] [ERROR] load failed:", err)
		s.lastErr = err
		return
	}

	var items []models.CartLineItem
	if err := json.Unmarshal(data, &items); err != nil {
		log.Println("[CART] [ERROR] persisted cart undecodable, starting empty:", err)
		s.lastErr = err
		return
	}
	s.items = items
}

// Add merges into an existing line when the product is already in the cart,
// otherwise appends a new line. Quantities below one are ignored.
func (s *Store) Add(ctx context.Context, product models.Product, quantity int) []models.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		return s.copyItems()
	}

	for i := range s.items {
		if s.items[i].CartID == product.ID {
			s.items[i].Quantity += quantity
			s.persist(ctx)
			return s.copyItems()
		}
	}

	s.items = append(s.items, newLineItem(product, quantity))
	s.persist(ctx)
	return s.copyItems()
}

// Remove filters the line out. Removing an unknown cartId is a no-op.
func (s *Store) Remove(ctx context.Context, cartID string) []models.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0]
	for _, item := range s.items {
		if item.CartID != cartID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.persist(ctx)
	return s.copyItems()
}

// UpdateQuantity steps a line's quantity by one in the given direction.
// Decrementing a quantity-1 line removes it entirely.
func (s *Store) UpdateQuantity(ctx context.Context, cartID string, direction Direction) ([]models.CartLineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.items {
		if s.items[i].CartID == cartID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return s.copyItems(), ErrItemNotFound
	}

	switch direction {
	case Increase:
		s.items[idx].Quantity++
	case Decrease:
		s.items[idx].Quantity--
		if s.items[idx].Quantity < 1 {
			s.items = append(s.items[:idx], s.items[idx+1:]...)
		}
	default:
		return s.copyItems(), fmt.Errorf("cart: unknown direction %q", direction)
	}

	s.persist(ctx)
	return s.copyItems(), nil
}

// BuyNow replaces the whole cart with a single line and stages the checkout
// snapshot in one step, bypassing the merge logic of Add. This is the
// "skip cart, go straight to checkout" path.
func (s *Store) BuyNow(ctx context.Context, product models.Product, quantity int) (models.CartSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		quantity = 1
	}
	s.items = []models.CartLineItem{newLineItem(product, quantity)}
	s.persist(ctx)
	return s.stageCheckoutLocked(ctx)
}

// Clear empties the cart and removes the persisted entry.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	if err := s.kv.Delete(ctx, cartKey(s.sessionID)); err != nil {
		log.Println("[CART] [ERROR] clear failed:", err)
		s.lastErr = err
		return
	}
	s.lastErr = nil
}

// StageCheckout writes the current cart into the checkout handoff slot and
// returns the staged snapshot. The slot is read, not deleted, by the checkout
// flow, so a failed submission can be retried from the same snapshot.
func (s *Store) StageCheckout(ctx context.Context) (models.CartSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stageCheckoutLocked(ctx)
}

// Items returns a copy of the current lines in insertion order.
func (s *Store) Items() []models.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyItems()
}

// Total is always derived from the current lines, never stored separately.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked()
}

// Err reports the last persistence problem, if any. It is a soft indicator:
// the in-memory cart is still authoritative for the session.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Store) stageCheckoutLocked(ctx context.Context) (models.CartSnapshot, error) {
	snapshot := models.CartSnapshot{
		Version:    models.CartSnapshotVersion,
		Items:      s.copyItems(),
		Total:      s.totalLocked(),
		CapturedAt: time.Now(),
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return models.CartSnapshot{}, fmt.Errorf("encode checkout snapshot: %w", err)
	}
	if err := s.kv.Put(ctx, checkoutKey(s.sessionID), data); err != nil {
		return models.CartSnapshot{}, fmt.Errorf("stage checkout snapshot: %w", err)
	}
	return snapshot, nil
}

func (s *Store) persist(ctx context.Context) {
	data, err := json.Marshal(s.items)
	if err == nil {
		err = s.kv.Put(ctx, cartKey(s.sessionID), data)
	}
	if err != nil {
		// No rollback: the in-memory cart stays authoritative for the session.
		log.Println("[CART] [ERROR] persist failed:", err)
		s.lastErr = err
		return
	}
	s.lastErr = nil
}

func (s *Store) copyItems() []models.CartLineItem {
	out := make([]models.CartLineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) totalLocked() float64 {
	var total float64
	for _, item := range s.items {
		total += item.LineTotal()
	}
	return total
}

func newLineItem(product models.Product, quantity int) models.CartLineItem {
	return models.CartLineItem{
		CartID:    product.ID,
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		SalePrice: product.SalePrice,
		Quantity:  quantity,
		Images:    product.Images,
		Color:     product.Color,
		Size:      product.Size,
	}
}

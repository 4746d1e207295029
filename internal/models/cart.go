package models

import "time"

// Product is the catalog entry shape the UI submits when adding to the cart.
// The catalog itself lives behind the remote API; this is a weak reference.
type Product struct {
	ID        string   `json:"_id" binding:"required"`
	Name      string   `json:"name" binding:"required"`
	Price     float64  `json:"price"`
	SalePrice float64  `json:"salePrice"`
	Images    []string `json:"images"`
	Color     string   `json:"color,omitempty"`
	Size      string   `json:"size,omitempty"`
}

// CartLineItem is one distinct product/variant entry in the cart with its own
// quantity. CartID is the stable identity within the cart, distinct from the
// catalog product id it references.
type CartLineItem struct {
	CartID    string   `json:"cartId"`
	ProductID string   `json:"productId"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	SalePrice float64  `json:"salePrice"`
	Quantity  int      `json:"quantity"`
	Images    []string `json:"images"`
	Color     string   `json:"color,omitempty"`
	Size      string   `json:"size,omitempty"`
}

func (i CartLineItem) LineTotal() float64 {
	return i.SalePrice * float64(i.Quantity)
}

// CartSnapshotVersion tags the checkout handoff payload so a future shape
// change can be detected instead of silently misparsed.
const CartSnapshotVersion = 1

// CartSnapshot is the one-time handoff written when the user proceeds to
// checkout. Later cart edits do not touch it; the order reflects the cart as
// it was at this moment.
type CartSnapshot struct {
	Version    int            `json:"version"`
	Items      []CartLineItem `json:"items"`
	Total      float64        `json:"total"`
	CapturedAt time.Time      `json:"capturedAt"`
}

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"storefront/internal/storage"
)

const listingKey = "catalog:products"

type cachedListing struct {
	Data     json.RawMessage `json:"data"`
	CachedAt time.Time       `json:"cachedAt"`
}

// Client is a read-through proxy for the remote catalog API. Listings are
// cached briefly so storefront pages don't hammer the upstream, and
// concurrent misses collapse into a single fetch.
type Client struct {
	httpClient *http.Client
	baseURL    string
	kv         storage.Store
	ttl        time.Duration
	sfg        singleflight.Group
}

func NewClient(baseURL string, kv storage.Store, ttl time.Duration) *Client {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		kv:         kv,
		ttl:        ttl,
	}
}

// Products returns the raw product listing from the upstream catalog.
func (c *Client) Products(ctx context.Context) (json.RawMessage, error) {
	if data, ok := c.cached(ctx); ok {
		return data, nil
	}

	v, err, _ := c.sfg.Do(listingKey, func() (interface{}, error) {
		data, err := c.fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.cache(ctx, data)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(json.RawMessage), nil
}

func (c *Client) cached(ctx context.Context) (json.RawMessage, bool) {
	data, err := c.kv.Get(ctx, listingKey)
	if err != nil {
		return nil, false
	}

	var entry cachedListing
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	if time.Since(entry.CachedAt) > c.ttl {
		return nil, false
	}
	return entry.Data, true
}

func (c *Client) cache(ctx context.Context, data json.RawMessage) {
	entry, err := json.Marshal(cachedListing{Data: data, CachedAt: time.Now()})
	if err == nil {
		err = c.kv.Put(ctx, listingKey, entry)
	}
	if err != nil {
		log.Println("[CATALOG] [WARN] cache write failed:", err)
	}
}

func (c *Client) fetch(ctx context.Context) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("catalog api returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read products response: %w", err)
	}
	return json.RawMessage(body), nil
}

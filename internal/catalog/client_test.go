package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/storage"
)

func TestProductsCachedWithinTTL(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/products", r.URL.Path)
		w.Write([]byte(`[{"_id":"p1","name":"Headphones"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, storage.NewMemoryStore(), time.Minute)
	ctx := context.Background()

	first, err := client.Products(ctx)
	require.NoError(t, err)
	second, err := client.Products(ctx)
	require.NoError(t, err)

	assert.JSONEq(t, string(first), string(second))
	assert.Equal(t, int64(1), hits.Load())
}

func TestProductsRefetchedAfterTTL(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, storage.NewMemoryStore(), time.Millisecond)
	ctx := context.Background()

	_, err := client.Products(ctx)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = client.Products(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), hits.Load())
}

func TestProductsCorruptCacheEntryIgnored(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Put(context.Background(), listingKey, []byte("corrupt")))

	client := NewClient(server.URL, kv, time.Minute)
	data, err := client.Products(context.Background())

	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestProductsUpstreamErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, storage.NewMemoryStore(), time.Minute)
	_, err := client.Products(context.Background())

	assert.Error(t, err)
}

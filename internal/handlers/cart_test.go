package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"storefront/internal/cart"
	"storefront/internal/middleware"
	"storefront/internal/storage"
)

func newCartRouter(manager *cart.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextSessionKey, "test-session")
		c.Next()
	})
	r.GET("/cart", GetCart(manager))
	r.POST("/cart/items", AddCartItem(manager))
	r.PATCH("/cart/items/:cartId", UpdateCartItem(manager))
	r.DELETE("/cart/items/:cartId", RemoveCartItem(manager))
	r.DELETE("/cart", ClearCart(manager))
	r.POST("/cart/buy-now", BuyNow(manager))
	r.POST("/cart/checkout", StageCheckout(manager))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddItemAndGetCart(t *testing.T) {
	r := newCartRouter(cart.NewManager(storage.NewMemoryStore()))

	w := doJSON(t, r, http.MethodPost, "/cart/items",
		`{"product":{"_id":"p1","name":"Headphones","price":2500,"salePrice":1800},"quantity":2}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/cart", "")
	var response struct {
		Total     float64 `json:"total"`
		ItemCount int     `json:"itemCount"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response.ItemCount != 1 || response.Total != 3600 {
		t.Fatalf("expected 1 item totalling 3600, got %d items totalling %v", response.ItemCount, response.Total)
	}
}

func TestAddItemRejectsInvalidBody(t *testing.T) {
	r := newCartRouter(cart.NewManager(storage.NewMemoryStore()))

	w := doJSON(t, r, http.MethodPost, "/cart/items", `{"quantity":0}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestDecreaseToZeroRemovesLine(t *testing.T) {
	r := newCartRouter(cart.NewManager(storage.NewMemoryStore()))

	doJSON(t, r, http.MethodPost, "/cart/items",
		`{"product":{"_id":"p1","name":"Case","salePrice":600},"quantity":1}`)

	w := doJSON(t, r, http.MethodPatch, "/cart/items/p1", `{"direction":"decrease"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var response struct {
		ItemCount int `json:"itemCount"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response.ItemCount != 0 {
		t.Fatalf("expected empty cart, got %d items", response.ItemCount)
	}
}

func TestUpdateUnknownItemReturns404(t *testing.T) {
	r := newCartRouter(cart.NewManager(storage.NewMemoryStore()))

	w := doJSON(t, r, http.MethodPatch, "/cart/items/nope", `{"direction":"increase"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestBuyNowStagesCheckout(t *testing.T) {
	kv := storage.NewMemoryStore()
	manager := cart.NewManager(kv)
	r := newCartRouter(manager)

	doJSON(t, r, http.MethodPost, "/cart/items",
		`{"product":{"_id":"p1","name":"Old","salePrice":100},"quantity":3}`)

	w := doJSON(t, r, http.MethodPost, "/cart/buy-now",
		`{"product":{"_id":"p2","name":"New","salePrice":900},"quantity":1}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var response struct {
		Checkout struct {
			Items []struct {
				CartID string `json:"cartId"`
			} `json:"items"`
			Total float64 `json:"total"`
		} `json:"checkout"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(response.Checkout.Items) != 1 || response.Checkout.Items[0].CartID != "p2" {
		t.Fatalf("expected single staged item p2, got %+v", response.Checkout.Items)
	}
	if response.Checkout.Total != 900 {
		t.Fatalf("expected staged total 900, got %v", response.Checkout.Total)
	}
}

func TestClearCartEmptiesEverything(t *testing.T) {
	r := newCartRouter(cart.NewManager(storage.NewMemoryStore()))

	doJSON(t, r, http.MethodPost, "/cart/items",
		`{"product":{"_id":"p1","name":"Case","salePrice":600},"quantity":2}`)

	w := doJSON(t, r, http.MethodDelete, "/cart", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var response struct {
		ItemCount int     `json:"itemCount"`
		Total     float64 `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response.ItemCount != 0 || response.Total != 0 {
		t.Fatalf("expected empty cart, got %+v", response)
	}
}

package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
)

func testOrder() models.CheckoutOrder {
	return models.CheckoutOrder{
		CustomerInfo: models.CustomerInfo{
			Name:   "Test Customer",
			Mobile: "01712345678",
			Area:   "dhaka-inside",
		},
		Items: []models.OrderItem{
			{ProductID: "p1", Name: "Item", SalePrice: 500, Quantity: 2, ItemTotal: 1000},
		},
		TotalAmount:    1000,
		DeliveryCharge: 60,
		FinalTotal:     1060,
		Status:         "pending",
		OrderDate:      time.Now(),
	}
}

func TestSubmitSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var received map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		assert.Equal(t, 1060.0, received["finalTotal"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"orderId":"ORD-123","message":"order created"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.Submit(context.Background(), testOrder())

	require.NoError(t, err)
	assert.Equal(t, "ORD-123", result.OrderID)
}

func TestSubmitNon2xxFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Submit(context.Background(), testOrder())

	assert.Error(t, err)
}

func TestSubmitTransportErrorFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL)
	_, err := client.Submit(context.Background(), testOrder())

	assert.Error(t, err)
}

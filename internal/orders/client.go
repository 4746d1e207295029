package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"storefront/internal/models"
)

// Client submits assembled orders to the external order processing service.
// Any non-2xx response is a submission failure; there is no caller-exposed
// cancellation once the request is dispatched.
type Client struct {
	httpClient *http.Client
	submitURL  string
}

func NewClient(submitURL string) *Client {
	return &Client{httpClient: &http.Client{}, submitURL: submitURL}
}

// SubmitResult carries the order identifier returned by the service.
type SubmitResult struct {
	OrderID string `json:"orderId"`
}

func (c *Client) Submit(ctx context.Context, order models.CheckoutOrder) (*SubmitResult, error) {
	payload, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("encode order: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.submitURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("order service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read order response: %w", err)
	}

	var result SubmitResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}
	return &result, nil
}

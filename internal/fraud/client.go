package fraud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker/v2"

	"storefront/internal/models"
)

const defaultTimeout = 5 * time.Second

type apiResponse struct {
	CourierData map[string]models.CourierStats `json:"courierData"`
}

// Client queries the fraud screening API for a mobile number's courier order
// history. The result is advisory: every outcome, including a dead API, maps
// to a usable assessment and never blocks checkout.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	timeout    time.Duration
	breaker    *gobreaker.CircuitBreaker[*apiResponse]
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		apiKey:     apiKey,
		timeout:    timeout,
		breaker: gobreaker.NewCircuitBreaker[*apiResponse](gobreaker.Settings{
			Name:    "fraud-api",
			Timeout: 30 * time.Second,
		}),
	}
}

// Check runs one bounded assessment. The request is actively cancelled when
// the timeout window closes; timeout, non-2xx and unparseable-body outcomes
// all collapse into a degraded assessment rather than an error.
func (c *Client) Check(ctx context.Context, mobile string) models.FraudAssessment {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.breaker.Execute(func() (*apiResponse, error) {
		return c.fetch(ctx, mobile)
	})
	if err != nil {
		status := models.FraudAPIFailed
		if errors.Is(err, context.DeadlineExceeded) {
			status = models.FraudAPITimeout
		}
		log.Printf("[FRAUD] [WARN] check degraded (%s): %v", status, err)
		return degradedAssessment(status)
	}

	return buildAssessment(resp.CourierData)
}

func (c *Client) fetch(ctx context.Context, mobile string) (*apiResponse, error) {
	endpoint := fmt.Sprintf("%s?number=%s&api_key=%s",
		c.baseURL, url.QueryEscape(mobile), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fraud api returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode fraud api response: %w", err)
	}
	return &parsed, nil
}

func buildAssessment(courierData map[string]models.CourierStats) models.FraudAssessment {
	if courierData == nil {
		courierData = map[string]models.CourierStats{}
	}

	var totalOrders, totalFraud int
	for _, stats := range courierData {
		totalOrders += stats.Orders()
		totalFraud += stats.Frauds()
	}

	fraudPercentage := 0.0
	if totalOrders > 0 {
		fraudPercentage = float64(totalFraud) / float64(totalOrders) * 100
	}

	level, recommendation := classify(fraudPercentage)

	return models.FraudAssessment{
		CourierData:    courierData,
		RiskScore:      fmt.Sprintf("%g%%", math.Round(fraudPercentage*10)/10),
		Recommendation: recommendation,
		APIStatus:      models.FraudAPISuccess,
		Details: &models.FraudDetails{
			TotalOrders:     totalOrders,
			TotalFraud:      totalFraud,
			FraudPercentage: fraudPercentage,
			RiskLevel:       level,
		},
		CheckedAt: time.Now(),
	}
}

// Risk bands are evaluated in order on the aggregated fraud percentage.
func classify(fraudPercentage float64) (models.RiskLevel, string) {
	switch {
	case fraudPercentage == 0:
		return models.RiskLow, "Safe to proceed"
	case fraudPercentage <= 10:
		return models.RiskLow, "Low risk - proceed with normal verification"
	case fraudPercentage <= 25:
		return models.RiskMedium, "Medium risk - additional verification recommended"
	case fraudPercentage <= 50:
		return models.RiskHigh, "High risk - thorough verification required"
	default:
		return models.RiskCritical, "Critical risk - manual review required"
	}
}

func degradedAssessment(status models.FraudAPIStatus) models.FraudAssessment {
	return models.FraudAssessment{
		CourierData:    map[string]models.CourierStats{},
		RiskScore:      "0%",
		Recommendation: "API unavailable",
		APIStatus:      status,
		CheckedAt:      time.Now(),
	}
}

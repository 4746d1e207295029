package models

import "time"

type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

type FraudAPIStatus string

const (
	FraudAPISuccess FraudAPIStatus = "success"
	FraudAPIFailed  FraudAPIStatus = "failed"
	FraudAPITimeout FraudAPIStatus = "timeout"
)

// CourierStats is the (totalOrders, totalFraudOrders) pair the fraud API
// reports per courier, serialized as a two-element array.
type CourierStats [2]int

func (s CourierStats) Orders() int { return s[0] }
func (s CourierStats) Frauds() int { return s[1] }

type FraudDetails struct {
	TotalOrders     int       `json:"totalOrders"`
	TotalFraud      int       `json:"totalFraud"`
	FraudPercentage float64   `json:"fraudPercentage"`
	RiskLevel       RiskLevel `json:"riskLevel"`
}

// FraudAssessment is always present on an order. A degraded assessment (API
// failed or timed out) is still a valid assessment: Details is nil, the score
// defaults to "0%" and checkout proceeds regardless.
type FraudAssessment struct {
	CourierData    map[string]CourierStats `json:"courierData"`
	RiskScore      string                  `json:"riskScore"`
	Recommendation string                  `json:"recommendation"`
	APIStatus      FraudAPIStatus          `json:"apiStatus"`
	Details        *FraudDetails           `json:"details,omitempty"`
	CheckedAt      time.Time               `json:"checkedAt"`
}

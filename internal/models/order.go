package models

import "time"

// CustomerInfo captures the checkout form contact details.
type CustomerInfo struct {
	Name     string  `json:"name"`
	Mobile   string  `json:"mobile"`
	Address  string  `json:"address"`
	Area     string  `json:"area"`
	AreaName string  `json:"areaName"`
	Note     *string `json:"note"`
}

// OrderItem is a cart line reduced to what the order service needs, with the
// line total computed at submission time.
type OrderItem struct {
	ProductID    string  `json:"productId"`
	Name         string  `json:"name"`
	SalePrice    float64 `json:"salePrice"`
	Quantity     int     `json:"quantity"`
	ItemTotal    float64 `json:"itemTotal"`
	Color        *string `json:"color"`
	Size         *string `json:"size"`
	PrimaryImage *string `json:"primaryImage"`
}

type StatusHistoryEntry struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note"`
}

type OrderMetadata struct {
	Source    string `json:"source"`
	UserAgent string `json:"userAgent"`
	Platform  string `json:"platform"`
	Version   string `json:"version"`
}

// CheckoutOrder is the full payload submitted to the order service. It is
// assembled once per checkout attempt and never persisted locally.
type CheckoutOrder struct {
	CustomerInfo      CustomerInfo         `json:"customerInfo"`
	Items             []OrderItem          `json:"items"`
	TotalAmount       float64              `json:"totalAmount"`
	TotalQuantity     int                  `json:"totalQuantity"`
	DeliveryCharge    float64              `json:"deliveryCharge"`
	FinalTotal        float64              `json:"finalTotal"`
	PaymentMethod     string               `json:"paymentMethod"`
	PaymentMethodName string               `json:"paymentMethodName"`
	PaymentStatus     string               `json:"paymentStatus"`
	FraudCheckData    FraudAssessment      `json:"fraudCheckData"`
	Status            string               `json:"status"`
	StatusHistory     []StatusHistoryEntry `json:"statusHistory"`
	OrderDate         time.Time            `json:"orderDate"`
	Metadata          OrderMetadata        `json:"metadata"`
}

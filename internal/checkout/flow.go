package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/orders"
)

// Delivery charge is a pure function of the two-valued area selector. There
// is no third zone and no distance calculation.
const (
	AreaInsideDhaka  = "dhaka-inside"
	AreaOutsideDhaka = "dhaka-outside"

	deliveryChargeInside  = 60
	deliveryChargeOutside = 120
)

const (
	PaymentCashOnDelivery = "cod"
	PaymentBkash          = "bkash"
)

var ErrEmptyCart = errors.New("checkout: no staged cart, nothing to check out")

type ValidationError struct {
	Field string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("checkout: required field %q is missing", e.Field)
}

// CartGateway is what the flow needs from the cart side: the staged snapshot
// going in, and the clear-on-success going out.
type CartGateway interface {
	Snapshot(ctx context.Context, sessionID string) (models.CartSnapshot, error)
	CompleteCheckout(ctx context.Context, sessionID string)
}

// FraudChecker produces an assessment for a mobile number. It must not fail;
// degraded outcomes are encoded in the assessment itself.
type FraudChecker interface {
	Check(ctx context.Context, mobile string) models.FraudAssessment
}

type OrderSubmitter interface {
	Submit(ctx context.Context, order models.CheckoutOrder) (*orders.SubmitResult, error)
}

// Request carries the checkout form fields as submitted by the UI.
type Request struct {
	Name          string
	Mobile        string
	Address       string
	Area          string
	Note          string
	PaymentMethod string
	UserAgent     string
}

type Result struct {
	Status     Status
	OrderID    string
	Order      *models.CheckoutOrder
	Assessment models.FraudAssessment
}

// Flow orchestrates one checkout attempt:
// Idle -> Validating -> AssessingRisk -> Submitting -> Succeeded | Failed.
// Validation and submission failures abort the attempt; the fraud check never
// does.
type Flow struct {
	cart   CartGateway
	fraud  FraudChecker
	orders OrderSubmitter
}

func NewFlow(cart CartGateway, fraud FraudChecker, orders OrderSubmitter) *Flow {
	return &Flow{cart: cart, fraud: fraud, orders: orders}
}

// Place runs one attempt end to end. A validation failure returns the flow to
// Idle before any network call; a submission failure leaves the cart and the
// staged snapshot untouched so the user can resubmit without re-entering
// anything.
func (f *Flow) Place(ctx context.Context, sessionID string, req Request) (*Result, error) {
	if req.PaymentMethod == "" {
		req.PaymentMethod = PaymentCashOnDelivery
	}

	if err := validate(req); err != nil {
		log.Println("[CHECKOUT] [ERROR] validation failed:", err)
		return &Result{Status: StatusIdle}, err
	}

	snapshot, err := f.cart.Snapshot(ctx, sessionID)
	if err != nil {
		log.Println("[CHECKOUT] [ERROR] snapshot unavailable:", err)
		return &Result{Status: StatusIdle}, ErrEmptyCart
	}
	if len(snapshot.Items) == 0 {
		return &Result{Status: StatusIdle}, ErrEmptyCart
	}

	log.Printf("[CHECKOUT] [INFO] %s session %s", StatusAssessingRisk, sessionID)
	assessment := f.fraud.Check(ctx, req.Mobile)

	order := assembleOrder(req, snapshot, assessment)

	log.Printf("[CHECKOUT] [INFO] %s session %s, final total %.0f", StatusSubmitting, sessionID, order.FinalTotal)
	result, err := f.orders.Submit(ctx, order)
	if err != nil {
		log.Println("[CHECKOUT] [ERROR] submission failed:", err)
		return &Result{Status: StatusFailed, Assessment: assessment}, fmt.Errorf("order submission failed: %w", err)
	}

	f.cart.CompleteCheckout(ctx, sessionID)
	log.Printf("[CHECKOUT] [INFO] order %s placed for session %s", result.OrderID, sessionID)

	return &Result{
		Status:     StatusSucceeded,
		OrderID:    result.OrderID,
		Order:      &order,
		Assessment: assessment,
	}, nil
}

func validate(req Request) error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", req.Name},
		{"mobile", req.Mobile},
		{"address", req.Address},
		{"area", req.Area},
	}
	for _, field := range fields {
		if strings.TrimSpace(field.value) == "" {
			return ValidationError{Field: field.name}
		}
	}
	if req.PaymentMethod != PaymentCashOnDelivery && req.PaymentMethod != PaymentBkash {
		return ValidationError{Field: "paymentMethod"}
	}
	return nil
}

// assembleOrder builds the full order payload from the staged snapshot. All
// amounts are recomputed here, never trusted from UI state.
func assembleOrder(req Request, snapshot models.CartSnapshot, assessment models.FraudAssessment) models.CheckoutOrder {
	now := time.Now()

	items := make([]models.OrderItem, 0, len(snapshot.Items))
	var subtotal float64
	var totalQuantity int

	for _, line := range snapshot.Items {
		items = append(items, models.OrderItem{
			ProductID:    line.ProductID,
			Name:         line.Name,
			SalePrice:    line.SalePrice,
			Quantity:     line.Quantity,
			ItemTotal:    line.LineTotal(),
			Color:        optional(line.Color),
			Size:         optional(line.Size),
			PrimaryImage: primaryImage(line.Images),
		})
		subtotal += line.LineTotal()
		totalQuantity += line.Quantity
	}

	deliveryCharge := DeliveryCharge(req.Area)

	return models.CheckoutOrder{
		CustomerInfo: models.CustomerInfo{
			Name:     strings.TrimSpace(req.Name),
			Mobile:   strings.TrimSpace(req.Mobile),
			Address:  strings.TrimSpace(req.Address),
			Area:     req.Area,
			AreaName: areaName(req.Area),
			Note:     optional(strings.TrimSpace(req.Note)),
		},
		Items:             items,
		TotalAmount:       subtotal,
		TotalQuantity:     totalQuantity,
		DeliveryCharge:    deliveryCharge,
		FinalTotal:        subtotal + deliveryCharge,
		PaymentMethod:     req.PaymentMethod,
		PaymentMethodName: paymentMethodName(req.PaymentMethod),
		PaymentStatus:     "pending",
		FraudCheckData:    assessment,
		Status:            "pending",
		StatusHistory: []models.StatusHistoryEntry{
			{Status: "pending", Timestamp: now, Note: "Order placed successfully"},
		},
		OrderDate: now,
		Metadata: models.OrderMetadata{
			Source:    "web_checkout",
			UserAgent: req.UserAgent,
			Platform:  "web",
			Version:   "1.0",
		},
	}
}

func DeliveryCharge(area string) float64 {
	if area == AreaInsideDhaka {
		return deliveryChargeInside
	}
	return deliveryChargeOutside
}

func areaName(area string) string {
	if area == AreaInsideDhaka {
		return "Inside Dhaka"
	}
	return "Outside Dhaka"
}

func paymentMethodName(method string) string {
	if method == PaymentBkash {
		return "Bkash"
	}
	return "Cash On Delivery"
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func primaryImage(images []string) *string {
	if len(images) == 0 || images[0] == "" {
		return nil
	}
	return &images[0]
}

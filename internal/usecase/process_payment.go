package usecase

import (
	"context"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/shopsphere/fulfillment/internal/contracts"
	domain "github.com/shopsphere/fulfillment/internal/entity"
)

const (
	// declineLastFour always declines, for deterministic test checkouts.
	declineLastFour = "1234"

	taxRate            = 0.18
	shippingFee        = 50.0
	freeShippingAbove  = 4000.0
	paymentMethodLabel = "Credit Card"
)

// ProcessPayment consumes payment-requested and, on successful settlement,
// publishes invoice-created. The service holds no state; it can be scaled
// horizontally without coordination.
type ProcessPayment struct {
	bus         EventPublisher
	log         *slog.Logger
	declineProb float64
	rng         func() float64
	now         func() time.Time
}

type PaymentOption func(*ProcessPayment)

// WithRNG replaces the settlement randomness source.
func WithRNG(fn func() float64) PaymentOption {
	return func(uc *ProcessPayment) { uc.rng = fn }
}

// WithClock replaces the invoice timestamp source.
func WithClock(fn func() time.Time) PaymentOption {
	return func(uc *ProcessPayment) { uc.now = fn }
}

func NewProcessPayment(bus EventPublisher, declineProb float64, log *slog.Logger, opts ...PaymentOption) *ProcessPayment {
	uc := &ProcessPayment{
		bus:         bus,
		log:         log,
		declineProb: declineProb,
		rng:         rand.Float64,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Handle simulates settlement. A card ending in 1234 always declines;
// otherwise the processor declines with the configured probability. A
// decline is a normal outcome, not an error: it is logged and the saga ends
// there (the order stays PROCESSING, no compensation).
func (uc *ProcessPayment) Handle(ctx context.Context, ev contracts.PaymentRequested) error {
	if declined, reason := uc.settle(ev.Card); declined {
		uc.log.Info("payment declined",
			"order_id", ev.OrderID, "user_id", ev.UserID, "reason", reason)
		return nil
	}

	inv := uc.buildInvoice(ev)
	out := contracts.InvoiceCreated{EventID: uuid.NewString(), Invoice: inv}
	if err := uc.bus.Publish(ctx, contracts.TopicInvoiceCreated, ev.OrderID, out); err != nil {
		uc.log.Error("invoice-created publish failed",
			"order_id", ev.OrderID, "invoice_id", inv.ID, "error", err)
		return err
	}

	uc.log.Info("payment settled",
		"order_id", ev.OrderID, "invoice_id", inv.ID, "total", inv.Total)
	return nil
}

func (uc *ProcessPayment) settle(card domain.Card) (declined bool, reason string) {
	if card.LastFour() == declineLastFour {
		return true, "card declined by issuer"
	}
	if uc.rng() < uc.declineProb {
		return true, "processor unavailable"
	}
	return false, ""
}

func (uc *ProcessPayment) buildInvoice(ev contracts.PaymentRequested) domain.Invoice {
	items := make([]domain.InvoiceItem, 0, len(ev.Items))
	var subTotal float64
	for _, it := range ev.Items {
		line := round2(it.UnitPrice * float64(it.Quantity))
		subTotal += line
		items = append(items, domain.InvoiceItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   line,
		})
	}
	subTotal = round2(subTotal)

	fee := shippingFee
	if subTotal > freeShippingAbove {
		fee = 0
	}
	tax := round2(subTotal * taxRate)

	return domain.Invoice{
		ID:              uuid.NewString(),
		OrderID:         ev.OrderID,
		UserID:          ev.UserID,
		Items:           items,
		SubTotal:        subTotal,
		ShippingFee:     fee,
		TaxRate:         taxRate,
		TaxAmount:       tax,
		Total:           round2(subTotal + fee + tax),
		ShippingAddress: ev.ShippingAddress,
		MaskedCard:      ev.Card.Masked(),
		PaymentMethod:   paymentMethodLabel,
		CreatedAt:       uc.now().UTC(),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Package contracts holds the event payloads exchanged over the bus.
// Producers and consumers in every service import this package and nothing
// else from each other.
package contracts

import (
	"time"

	domain "github.com/shopsphere/fulfillment/internal/entity"
)

const (
	TopicPaymentRequested  = "payment-requested"
	TopicInvoiceCreated    = "invoice-created"
	TopicRefundApproved    = "refund-approved"
	TopicWishlistPriceDrop = "wishlist-price-drop"
)

// PaymentRequested carries the full order snapshot so the payment service
// needs no lookups. Keyed by OrderID on the bus.
type PaymentRequested struct {
	EventID         string             `json:"eventId"`
	OrderID         string             `json:"orderId"`
	UserID          string             `json:"userId"`
	ShippingAddress string             `json:"shippingAddress"`
	Card            domain.Card        `json:"card"`
	Items           []domain.OrderItem `json:"items"`
	Total           float64            `json:"total"`
	CreatedAt       time.Time          `json:"createdAt"`
}

// InvoiceCreated carries the complete invoice; downstream consumers must
// not need any further lookup beyond the recipient's contact info.
type InvoiceCreated struct {
	EventID string         `json:"eventId"`
	Invoice domain.Invoice `json:"invoice"`
}

type RefundApproved struct {
	EventID string             `json:"eventId"`
	OrderID string             `json:"orderId"`
	UserID  string             `json:"userId"`
	Items   []domain.OrderItem `json:"items"`
	Total   float64            `json:"total"`
}

// WishlistPriceDrop is produced by the external wishlist collaborator.
// Keyed by UserID on the bus.
type WishlistPriceDrop struct {
	UserID      string  `json:"userId"`
	ProductName string  `json:"productName"`
	NewPrice    float64 `json:"newPrice"`
}

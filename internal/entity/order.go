package domain

import (
	"errors"
	"time"
)

type OrderStatus string

const (
	StatusProcessing OrderStatus = "PROCESSING"
	StatusOnWay      OrderStatus = "ONWAY"
	StatusDelivered  OrderStatus = "DELIVERED"
	StatusRejected   OrderStatus = "REJECTED"
)

var (
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrNoItems           = errors.New("order must contain at least one item")
	ErrInvalidItem       = errors.New("item must have a product id, positive quantity and non-negative price")
	ErrMissingUser       = errors.New("user id is required")
	ErrMissingAddress    = errors.New("shipping address is required")
)

// allowedTransitions is the canonical state machine. PROCESSING may move
// forward to ONWAY or terminate in REJECTED; ONWAY may only complete in
// DELIVERED. Terminal states accept nothing, including re-setting the same
// status.
var allowedTransitions = map[OrderStatus]map[OrderStatus]bool{
	StatusProcessing: {StatusOnWay: true, StatusRejected: true},
	StatusOnWay:      {StatusDelivered: true},
	StatusDelivered:  {},
	StatusRejected:   {},
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case StatusProcessing, StatusOnWay, StatusDelivered, StatusRejected:
		return OrderStatus(s), nil
	}
	return "", ErrUnknownStatus
}

// CanTransition reports whether from may move to to.
func CanTransition(from, to OrderStatus) bool {
	return allowedTransitions[from][to]
}

type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

type Order struct {
	ID              string      `json:"orderId"`
	UserID          string      `json:"userId"`
	ShippingAddress string      `json:"shippingAddress"`
	Items           []OrderItem `json:"items"`
	Total           float64     `json:"total"`
	Status          OrderStatus `json:"status"`
	CreatedAt       time.Time   `json:"createdAt"`
	DeliveredAt     *time.Time  `json:"deliveredAt,omitempty"`
}

func (o *Order) Validate() error {
	if o.UserID == "" {
		return ErrMissingUser
	}
	if o.ShippingAddress == "" {
		return ErrMissingAddress
	}
	if len(o.Items) == 0 {
		return ErrNoItems
	}
	for _, it := range o.Items {
		if it.ProductID == "" || it.Quantity <= 0 || it.UnitPrice < 0 {
			return ErrInvalidItem
		}
	}
	return nil
}

// ItemsTotal sums line price x quantity. The order total is this sum taken
// once at creation time; it is never recomputed afterwards.
func ItemsTotal(items []OrderItem) float64 {
	var total float64
	for _, it := range items {
		total += it.UnitPrice * float64(it.Quantity)
	}
	return total
}

// TotalQuantity sums line quantities, used by the order history projection.
func (o *Order) TotalQuantity() int {
	var n int
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

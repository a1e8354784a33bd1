package domain

import (
	"errors"
	"time"
)

type RefundStatus string

const (
	RefundPending  RefundStatus = "PENDING"
	RefundApproved RefundStatus = "APPROVED"
	RefundRejected RefundStatus = "REJECTED"
)

var ErrUnknownRefundStatus = errors.New("unknown refund status")

func ParseRefundStatus(s string) (RefundStatus, error) {
	switch RefundStatus(s) {
	case RefundPending, RefundApproved, RefundRejected:
		return RefundStatus(s), nil
	}
	return "", ErrUnknownRefundStatus
}

// Active reports whether the status blocks a new refund for the same order.
func (s RefundStatus) Active() bool {
	return s == RefundPending || s == RefundApproved
}

// Refund is created PENDING and reviewed exactly once into APPROVED or
// REJECTED. It is immutable afterwards.
type Refund struct {
	ID         string       `json:"refundId"`
	OrderID    string       `json:"orderId"`
	UserID     string       `json:"userId"`
	Reason     string       `json:"reason"`
	Status     RefundStatus `json:"status"`
	ReviewedBy *string      `json:"reviewedBy,omitempty"`
	ReviewedAt *time.Time   `json:"reviewedAt,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
}

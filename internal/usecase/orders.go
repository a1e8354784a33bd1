package usecase

import (
	"context"
	"time"

	domain "github.com/shopsphere/fulfillment/internal/entity"
)

// Orders serves the synchronous status mutation and the read-only order
// projections.
type Orders struct {
	repo OrderRepo
	now  func() time.Time
}

func NewOrders(repo OrderRepo) *Orders {
	return &Orders{repo: repo, now: time.Now}
}

// UpdateStatus moves an order along the canonical state machine. Invalid
// targets are rejected; nothing accepts arbitrary strings.
func (uc *Orders) UpdateStatus(ctx context.Context, orderID string, to domain.OrderStatus) (domain.OrderStatus, error) {
	order, err := uc.repo.GetByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	if order == nil {
		return "", ErrOrderNotFound
	}
	if !domain.CanTransition(order.Status, to) {
		return "", ErrInvalidTransition
	}

	var deliveredAt *time.Time
	if to == domain.StatusDelivered {
		t := uc.now().UTC()
		deliveredAt = &t
	}

	ok, err := uc.repo.UpdateStatusIf(ctx, orderID, order.Status, to, deliveredAt)
	if err != nil {
		return "", err
	}
	if !ok {
		// Lost a race with a concurrent transition.
		return "", ErrInvalidTransition
	}
	return to, nil
}

func (uc *Orders) GetByID(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := uc.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (uc *Orders) GetStatus(ctx context.Context, orderID string) (domain.OrderStatus, error) {
	order, err := uc.GetByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	return order.Status, nil
}

// HistoryEntry is the order history projection: the order plus its total
// item quantity.
type HistoryEntry struct {
	Order         domain.Order `json:"order"`
	TotalQuantity int          `json:"totalQuantity"`
}

func (uc *Orders) History(ctx context.Context, userID string) ([]HistoryEntry, error) {
	orders, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	entries := make([]HistoryEntry, 0, len(orders))
	for _, o := range orders {
		entries = append(entries, HistoryEntry{Order: o, TotalQuantity: o.TotalQuantity()})
	}
	return entries, nil
}

package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shopsphere/fulfillment/internal/contracts"
	domain "github.com/shopsphere/fulfillment/internal/entity"
)

type Refunds struct {
	refunds RefundRepo
	orders  OrderRepo
	bus     EventPublisher
	log     *slog.Logger
	now     func() time.Time
}

func NewRefunds(refunds RefundRepo, orders OrderRepo, bus EventPublisher, log *slog.Logger) *Refunds {
	return &Refunds{refunds: refunds, orders: orders, bus: bus, log: log, now: time.Now}
}

// Request creates a PENDING refund for the order. At most one refund may be
// active (PENDING or APPROVED) per order: the pre-check gives a friendly
// conflict on the common path, and the store's unique index on the active
// slot closes the race between two concurrent requests.
func (uc *Refunds) Request(ctx context.Context, orderID, userID, reason string) (*domain.Refund, error) {
	order, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	exists, err := uc.refunds.HasActiveForOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrRefundExists
	}

	refund := &domain.Refund{
		ID:        uuid.NewString(),
		OrderID:   orderID,
		UserID:    userID,
		Reason:    reason,
		Status:    domain.RefundPending,
		CreatedAt: uc.now().UTC(),
	}
	if err := uc.refunds.Create(ctx, refund); err != nil {
		return nil, err
	}
	return refund, nil
}

// Review transitions a PENDING refund to APPROVED or REJECTED. Approval
// publishes refund-approved so the customer gets a confirmation; the
// publish is best-effort since the authoritative refund record already
// lives in the store.
func (uc *Refunds) Review(ctx context.Context, refundID string, to domain.RefundStatus, reviewedBy string) (*domain.Refund, error) {
	if to != domain.RefundApproved && to != domain.RefundRejected {
		return nil, domain.ErrUnknownRefundStatus
	}

	refund, err := uc.refunds.GetByID(ctx, refundID)
	if err != nil {
		return nil, err
	}
	if refund == nil {
		return nil, ErrRefundNotFound
	}

	reviewedAt := uc.now().UTC()
	ok, err := uc.refunds.Review(ctx, refundID, to, reviewedBy, reviewedAt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRefundReviewed
	}

	refund.Status = to
	refund.ReviewedBy = &reviewedBy
	refund.ReviewedAt = &reviewedAt

	if to == domain.RefundApproved {
		order, err := uc.orders.GetByID(ctx, refund.OrderID)
		if err != nil || order == nil {
			uc.log.Error("refund approved but order lookup failed",
				"refund_id", refundID, "order_id", refund.OrderID, "error", err)
			return refund, nil
		}
		ev := contracts.RefundApproved{
			EventID: uuid.NewString(),
			OrderID: order.ID,
			UserID:  refund.UserID,
			Items:   order.Items,
			Total:   order.Total,
		}
		if err := uc.bus.Publish(ctx, contracts.TopicRefundApproved, order.ID, ev); err != nil {
			uc.log.Error("refund-approved publish failed",
				"refund_id", refundID, "order_id", order.ID, "error", err)
		}
	}
	return refund, nil
}

func (uc *Refunds) List(ctx context.Context) ([]domain.Refund, error) {
	return uc.refunds.List(ctx)
}

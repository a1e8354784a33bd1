package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shopsphere/fulfillment/internal/contracts"
	domain "github.com/shopsphere/fulfillment/internal/entity"
)

type CreateOrderInput struct {
	UserID          string
	ShippingAddress string
	Card            domain.Card
	Items           []domain.OrderItem
	IdempotencyKey  string
}

type CreateOrderOutput struct {
	OrderID string
	Status  domain.OrderStatus
	Replay  bool
}

type CreateOrder struct {
	repo OrderRepo
	idem IdempotencyStore
	bus  EventPublisher
	log  *slog.Logger
	now  func() time.Time
}

func NewCreateOrder(repo OrderRepo, idem IdempotencyStore, bus EventPublisher, log *slog.Logger) *CreateOrder {
	return &CreateOrder{repo: repo, idem: idem, bus: bus, log: log, now: time.Now}
}

// Execute validates the checkout, persists the order as PROCESSING and
// publishes payment-requested. The write happens before the publish, so the
// event is never observed for an order that does not exist. The publish is
// fire-and-forget: a bus failure is logged and the caller still gets the
// order id (the order then stays PROCESSING until reconciled by an
// operator, which is the documented behavior).
func (uc *CreateOrder) Execute(ctx context.Context, in CreateOrderInput) (CreateOrderOutput, error) {
	if err := in.Card.Validate(); err != nil {
		return CreateOrderOutput{}, ErrInvalidCard
	}

	order := &domain.Order{
		ID:              uuid.NewString(),
		UserID:          in.UserID,
		ShippingAddress: in.ShippingAddress,
		Items:           in.Items,
		Total:           domain.ItemsTotal(in.Items),
		Status:          domain.StatusProcessing,
		CreatedAt:       uc.now().UTC(),
	}
	if err := order.Validate(); err != nil {
		return CreateOrderOutput{}, err
	}

	// Idempotency-key replay: the first request with a given key wins, any
	// repeat returns the original order id without touching the store.
	if in.IdempotencyKey != "" {
		if id, ok, _ := uc.idem.Recall(ctx, in.UserID, in.IdempotencyKey); ok {
			out := CreateOrderOutput{OrderID: id, Status: domain.StatusProcessing, Replay: true}
			// The order may have moved on since the original request;
			// report its current status when it can be read.
			if existing, err := uc.repo.GetByID(ctx, id); err == nil && existing != nil {
				out.Status = existing.Status
			}
			return out, nil
		}
		ok, err := uc.idem.TryLock(ctx, in.UserID, in.IdempotencyKey)
		if err != nil {
			return CreateOrderOutput{}, err
		}
		if !ok {
			return CreateOrderOutput{}, ErrDuplicateRequest
		}
	}

	if err := uc.repo.Create(ctx, order); err != nil {
		if in.IdempotencyKey != "" {
			// Release the claim so the client can retry with the same key
			// once the store recovers.
			if uerr := uc.idem.Unlock(ctx, in.UserID, in.IdempotencyKey); uerr != nil {
				uc.log.Error("idempotency unlock failed",
					"user_id", in.UserID, "key", in.IdempotencyKey, "error", uerr)
			}
		}
		return CreateOrderOutput{}, fmt.Errorf("%w: %v", ErrOrderPersistFailed, err)
	}

	if in.IdempotencyKey != "" {
		_ = uc.idem.Remember(ctx, in.UserID, in.IdempotencyKey, order.ID)
	}

	ev := contracts.PaymentRequested{
		EventID:         uuid.NewString(),
		OrderID:         order.ID,
		UserID:          order.UserID,
		ShippingAddress: order.ShippingAddress,
		Card:            in.Card,
		Items:           order.Items,
		Total:           order.Total,
		CreatedAt:       order.CreatedAt,
	}
	if err := uc.bus.Publish(ctx, contracts.TopicPaymentRequested, order.ID, ev); err != nil {
		uc.log.Error("payment-requested publish failed",
			"order_id", order.ID, "event_id", ev.EventID, "error", err)
	}

	return CreateOrderOutput{OrderID: order.ID, Status: order.Status}, nil
}

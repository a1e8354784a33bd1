package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsphere/fulfillment/internal/contracts"
	domain "github.com/shopsphere/fulfillment/internal/entity"
	"github.com/shopsphere/fulfillment/internal/usecase"
)

func validCard() domain.Card {
	return domain.Card{Number: "4242424242424242", CVV: "123", Expiry: "11/27"}
}

func checkoutInput() usecase.CreateOrderInput {
	return usecase.CreateOrderInput{
		UserID:          "user-1",
		ShippingAddress: "1 Main St",
		Card:            validCard(),
		Items: []domain.OrderItem{
			{ProductID: "p1", ProductName: "Keyboard", Quantity: 2, UnitPrice: 1000},
		},
	}
}

func TestCreateOrder_Execute(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*usecase.CreateOrderInput)
		createFunc func(ctx context.Context, o *domain.Order) error
		wantErrIs  error
	}{
		{
			name:   "missing card number",
			mutate: func(in *usecase.CreateOrderInput) { in.Card.Number = "" },

			wantErrIs: usecase.ErrInvalidCard,
		},
		{
			name:      "short card number",
			mutate:    func(in *usecase.CreateOrderInput) { in.Card.Number = "42424242" },
			wantErrIs: usecase.ErrInvalidCard,
		},
		{
			name:      "bad expiry",
			mutate:    func(in *usecase.CreateOrderInput) { in.Card.Expiry = "13/27" },
			wantErrIs: usecase.ErrInvalidCard,
		},
		{
			name:      "bad cvv",
			mutate:    func(in *usecase.CreateOrderInput) { in.Card.CVV = "12" },
			wantErrIs: usecase.ErrInvalidCard,
		},
		{
			name:      "no items",
			mutate:    func(in *usecase.CreateOrderInput) { in.Items = nil },
			wantErrIs: domain.ErrNoItems,
		},
		{
			name: "store write failure",
			createFunc: func(ctx context.Context, o *domain.Order) error {
				return errors.New("connection reset")
			},
			wantErrIs: usecase.ErrOrderPersistFailed,
		},
		{
			name: "success",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := checkoutInput()
			if tt.mutate != nil {
				tt.mutate(&in)
			}

			createFunc := tt.createFunc
			if createFunc == nil {
				createFunc = func(ctx context.Context, o *domain.Order) error { return nil }
			}
			repo := &mockOrderRepo{createFunc: createFunc}
			bus := &mockPublisher{}
			uc := usecase.NewCreateOrder(repo, newMockIdem(), bus, discardLogger())

			out, err := uc.Execute(context.Background(), in)

			if tt.wantErrIs != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErrIs))
				// Nothing reaches the bus unless the write committed.
				assert.Empty(t, bus.events)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, out.OrderID)
			assert.Equal(t, domain.StatusProcessing, out.Status)

			require.Len(t, bus.events, 1)
			assert.Equal(t, contracts.TopicPaymentRequested, bus.events[0].Topic)
			assert.Equal(t, out.OrderID, bus.events[0].Key)

			ev, ok := bus.events[0].Payload.(contracts.PaymentRequested)
			require.True(t, ok)
			assert.Equal(t, out.OrderID, ev.OrderID)
			assert.Equal(t, "user-1", ev.UserID)
			assert.InDelta(t, 2000.0, ev.Total, 1e-9)
			assert.Equal(t, validCard(), ev.Card)
		})
	}
}

func TestCreateOrder_TotalIsItemSnapshotSum(t *testing.T) {
	var persisted *domain.Order
	repo := &mockOrderRepo{createFunc: func(ctx context.Context, o *domain.Order) error {
		persisted = o
		return nil
	}}
	uc := usecase.NewCreateOrder(repo, newMockIdem(), &mockPublisher{}, discardLogger())

	in := checkoutInput()
	in.Items = []domain.OrderItem{
		{ProductID: "p1", ProductName: "Keyboard", Quantity: 2, UnitPrice: 1250.50},
		{ProductID: "p2", ProductName: "Mouse", Quantity: 1, UnitPrice: 499},
	}

	_, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.InDelta(t, 3000.0, persisted.Total, 1e-9)
	assert.Equal(t, domain.StatusProcessing, persisted.Status)
}

func TestCreateOrder_PublishFailureStillReturnsOrder(t *testing.T) {
	repo := &mockOrderRepo{createFunc: func(ctx context.Context, o *domain.Order) error { return nil }}
	bus := &mockPublisher{err: errors.New("broker down")}
	uc := usecase.NewCreateOrder(repo, newMockIdem(), bus, discardLogger())

	out, err := uc.Execute(context.Background(), checkoutInput())

	// Fire-and-forget: the caller gets the order id even when the bus is
	// down; the order just never progresses past PROCESSING.
	require.NoError(t, err)
	assert.NotEmpty(t, out.OrderID)
}

func TestCreateOrder_IdempotencyKeyReplay(t *testing.T) {
	calls := 0
	var persisted *domain.Order
	repo := &mockOrderRepo{
		createFunc: func(ctx context.Context, o *domain.Order) error {
			calls++
			persisted = o
			return nil
		},
		getByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			return persisted, nil
		},
	}
	bus := &mockPublisher{}
	uc := usecase.NewCreateOrder(repo, newMockIdem(), bus, discardLogger())

	in := checkoutInput()
	in.IdempotencyKey = "k-1"

	first, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first.OrderID, second.OrderID)
	assert.True(t, second.Replay)
	assert.Equal(t, 1, calls)
	assert.Len(t, bus.events, 1)
}

func TestCreateOrder_ReplayReportsCurrentStatus(t *testing.T) {
	var persisted *domain.Order
	repo := &mockOrderRepo{
		createFunc: func(ctx context.Context, o *domain.Order) error {
			persisted = o
			return nil
		},
		getByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			return persisted, nil
		},
	}
	uc := usecase.NewCreateOrder(repo, newMockIdem(), &mockPublisher{}, discardLogger())

	in := checkoutInput()
	in.IdempotencyKey = "k-1"

	first, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	// The order moved on before the client replayed the request; the
	// replay must not claim it is still PROCESSING.
	persisted.Status = domain.StatusOnWay

	second, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, first.OrderID, second.OrderID)
	assert.True(t, second.Replay)
	assert.Equal(t, domain.StatusOnWay, second.Status)
}

func TestCreateOrder_RetryAfterPersistFailure(t *testing.T) {
	dbDown := true
	repo := &mockOrderRepo{createFunc: func(ctx context.Context, o *domain.Order) error {
		if dbDown {
			return errors.New("connection reset")
		}
		return nil
	}}
	uc := usecase.NewCreateOrder(repo, newMockIdem(), &mockPublisher{}, discardLogger())

	in := checkoutInput()
	in.IdempotencyKey = "k-1"

	_, err := uc.Execute(context.Background(), in)
	require.ErrorIs(t, err, usecase.ErrOrderPersistFailed)

	// The store recovers; the same key must create the order instead of
	// bouncing off its own abandoned lock.
	dbDown = false
	out, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.NotEmpty(t, out.OrderID)
	assert.False(t, out.Replay)
}

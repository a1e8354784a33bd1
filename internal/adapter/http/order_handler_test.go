package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterhttp "github.com/shopsphere/fulfillment/internal/adapter/http"
	domain "github.com/shopsphere/fulfillment/internal/entity"
	"github.com/shopsphere/fulfillment/internal/logging"
	"github.com/shopsphere/fulfillment/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubOrderRepo struct {
	createFunc         func(ctx context.Context, o *domain.Order) error
	getByIDFunc        func(ctx context.Context, id string) (*domain.Order, error)
	listByUserFunc     func(ctx context.Context, userID string) ([]domain.Order, error)
	updateStatusIfFunc func(ctx context.Context, id string, from, to domain.OrderStatus, deliveredAt *time.Time) (bool, error)
}

func (s *stubOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	if s.createFunc != nil {
		return s.createFunc(ctx, o)
	}
	return nil
}

func (s *stubOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if s.getByIDFunc != nil {
		return s.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (s *stubOrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	if s.listByUserFunc != nil {
		return s.listByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (s *stubOrderRepo) UpdateStatusIf(ctx context.Context, id string, from, to domain.OrderStatus, deliveredAt *time.Time) (bool, error) {
	if s.updateStatusIfFunc != nil {
		return s.updateStatusIfFunc(ctx, id, from, to, deliveredAt)
	}
	return true, nil
}

type stubRefundRepo struct {
	createFunc            func(ctx context.Context, r *domain.Refund) error
	getByIDFunc           func(ctx context.Context, id string) (*domain.Refund, error)
	hasActiveForOrderFunc func(ctx context.Context, orderID string) (bool, error)
}

func (s *stubRefundRepo) Create(ctx context.Context, r *domain.Refund) error {
	if s.createFunc != nil {
		return s.createFunc(ctx, r)
	}
	return nil
}

func (s *stubRefundRepo) GetByID(ctx context.Context, id string) (*domain.Refund, error) {
	if s.getByIDFunc != nil {
		return s.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (s *stubRefundRepo) List(ctx context.Context) ([]domain.Refund, error) {
	return nil, nil
}

func (s *stubRefundRepo) HasActiveForOrder(ctx context.Context, orderID string) (bool, error) {
	if s.hasActiveForOrderFunc != nil {
		return s.hasActiveForOrderFunc(ctx, orderID)
	}
	return false, nil
}

func (s *stubRefundRepo) Review(ctx context.Context, id string, to domain.RefundStatus, reviewedBy string, reviewedAt time.Time) (bool, error) {
	return true, nil
}

type stubIdem struct{}

func (stubIdem) TryLock(_ context.Context, _, _ string) (bool, error) { return true, nil }

func (stubIdem) Unlock(_ context.Context, _, _ string) error { return nil }

func (stubIdem) Remember(_ context.Context, _, _, _ string) error { return nil }

func (stubIdem) Recall(_ context.Context, _, _ string) (string, bool, error) {
	return "", false, nil
}

type nopBus struct{}

func (nopBus) Publish(_ context.Context, topic, key string, payload any) error { return nil }

func newTestRouter(orders *stubOrderRepo, refunds *stubRefundRepo) *gin.Engine {
	log := logging.New("test")
	createUC := usecase.NewCreateOrder(orders, stubIdem{}, nopBus{}, log)
	ordersUC := usecase.NewOrders(orders)
	refundsUC := usecase.NewRefunds(refunds, orders, nopBus{}, log)

	oh := adapterhttp.NewOrderHandler(createUC, ordersUC)
	rh := adapterhttp.NewRefundHandler(refundsUC)
	return adapterhttp.NewOrderRouter(oh, rh)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const validOrderBody = `{
	"userId": "user-1",
	"shippingAddress": "1 Main St",
	"card": {"number": "4242424242424242", "cvv": "123", "expiry": "12/27"},
	"items": [{"productId": "p1", "productName": "Keyboard", "quantity": 2, "unitPrice": 1000}]
}`

func TestCreateOrder_Accepted(t *testing.T) {
	r := newTestRouter(&stubOrderRepo{}, &stubRefundRepo{})

	w := doJSON(t, r, http.MethodPost, "/v1/orders", validOrderBody)

	require.Equal(t, http.StatusAccepted, w.Code)
	var resp struct {
		Status      bool   `json:"status"`
		OrderID     string `json:"orderId"`
		OrderStatus string `json:"orderStatus"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Status)
	assert.NotEmpty(t, resp.OrderID)
	assert.Equal(t, "PROCESSING", resp.OrderStatus)
}

func TestCreateOrder_MissingItems(t *testing.T) {
	r := newTestRouter(&stubOrderRepo{}, &stubRefundRepo{})

	body := `{"userId": "user-1", "shippingAddress": "1 Main St", "card": {"number": "4242424242424242", "cvv": "123", "expiry": "12/27"}, "items": []}`
	w := doJSON(t, r, http.MethodPost, "/v1/orders", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"status":false`)
}

func TestCreateOrder_InvalidCard(t *testing.T) {
	r := newTestRouter(&stubOrderRepo{}, &stubRefundRepo{})

	body := strings.Replace(validOrderBody, "12/27", "13/27", 1)
	w := doJSON(t, r, http.MethodPost, "/v1/orders", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_CARD")
}

func TestUpdateOrderStatus_InvalidTransition(t *testing.T) {
	orders := &stubOrderRepo{
		getByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			return &domain.Order{ID: id, Status: domain.StatusDelivered}, nil
		},
	}
	r := newTestRouter(orders, &stubRefundRepo{})

	w := doJSON(t, r, http.MethodPut, "/v1/orders/o-1/status", `{"status": "ONWAY"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrderStatus_UnknownStatus(t *testing.T) {
	r := newTestRouter(&stubOrderRepo{}, &stubRefundRepo{})

	w := doJSON(t, r, http.MethodPut, "/v1/orders/o-1/status", `{"status": "SHIPPED"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrderStatus_NotFound(t *testing.T) {
	r := newTestRouter(&stubOrderRepo{}, &stubRefundRepo{})

	req := httptest.NewRequest(http.MethodGet, "/v1/orders/nope/status", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"status":false`)
}

func TestRequestRefund_Conflict(t *testing.T) {
	orders := &stubOrderRepo{
		getByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			return &domain.Order{ID: id, UserID: "user-1", Status: domain.StatusDelivered}, nil
		},
	}
	refunds := &stubRefundRepo{
		hasActiveForOrderFunc: func(ctx context.Context, orderID string) (bool, error) {
			return true, nil
		},
	}
	r := newTestRouter(orders, refunds)

	w := doJSON(t, r, http.MethodPost, "/v1/refunds", `{"orderId": "o-1", "userId": "user-1", "reason": "damaged"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "REFUND_ALREADY_EXISTS")
}

func TestRequestRefund_Created(t *testing.T) {
	orders := &stubOrderRepo{
		getByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			return &domain.Order{ID: id, UserID: "user-1", Status: domain.StatusDelivered}, nil
		},
	}
	r := newTestRouter(orders, &stubRefundRepo{})

	w := doJSON(t, r, http.MethodPost, "/v1/refunds", `{"orderId": "o-1", "userId": "user-1", "reason": "damaged"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"PENDING"`)
}

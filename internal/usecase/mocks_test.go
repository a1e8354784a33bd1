package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	domain "github.com/shopsphere/fulfillment/internal/entity"
	"github.com/shopsphere/fulfillment/internal/usecase"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockOrderRepo struct {
	createFunc         func(ctx context.Context, o *domain.Order) error
	getByIDFunc        func(ctx context.Context, id string) (*domain.Order, error)
	listByUserFunc     func(ctx context.Context, userID string) ([]domain.Order, error)
	updateStatusIfFunc func(ctx context.Context, id string, from, to domain.OrderStatus, deliveredAt *time.Time) (bool, error)
}

func (m *mockOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	return m.createFunc(ctx, o)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockOrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return m.listByUserFunc(ctx, userID)
}

func (m *mockOrderRepo) UpdateStatusIf(ctx context.Context, id string, from, to domain.OrderStatus, deliveredAt *time.Time) (bool, error) {
	return m.updateStatusIfFunc(ctx, id, from, to, deliveredAt)
}

type mockRefundRepo struct {
	createFunc            func(ctx context.Context, r *domain.Refund) error
	getByIDFunc           func(ctx context.Context, id string) (*domain.Refund, error)
	listFunc              func(ctx context.Context) ([]domain.Refund, error)
	hasActiveForOrderFunc func(ctx context.Context, orderID string) (bool, error)
	reviewFunc            func(ctx context.Context, id string, to domain.RefundStatus, reviewedBy string, reviewedAt time.Time) (bool, error)
}

func (m *mockRefundRepo) Create(ctx context.Context, r *domain.Refund) error {
	return m.createFunc(ctx, r)
}

func (m *mockRefundRepo) GetByID(ctx context.Context, id string) (*domain.Refund, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockRefundRepo) List(ctx context.Context) ([]domain.Refund, error) {
	return m.listFunc(ctx)
}

func (m *mockRefundRepo) HasActiveForOrder(ctx context.Context, orderID string) (bool, error) {
	return m.hasActiveForOrderFunc(ctx, orderID)
}

func (m *mockRefundRepo) Review(ctx context.Context, id string, to domain.RefundStatus, reviewedBy string, reviewedAt time.Time) (bool, error) {
	return m.reviewFunc(ctx, id, to, reviewedBy, reviewedAt)
}

type mockInvoiceRepo struct {
	upsertFunc      func(ctx context.Context, inv *domain.Invoice) (bool, error)
	listBetweenFunc func(ctx context.Context, start, end time.Time) ([]domain.Invoice, error)
}

func (m *mockInvoiceRepo) Upsert(ctx context.Context, inv *domain.Invoice) (bool, error) {
	return m.upsertFunc(ctx, inv)
}

func (m *mockInvoiceRepo) ListBetween(ctx context.Context, start, end time.Time) ([]domain.Invoice, error) {
	return m.listBetweenFunc(ctx, start, end)
}

type published struct {
	Topic   string
	Key     string
	Payload any
}

// mockPublisher records every publish; set err to simulate a bus failure.
type mockPublisher struct {
	events []published
	err    error
}

func (m *mockPublisher) Publish(_ context.Context, topic, key string, payload any) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, published{Topic: topic, Key: key, Payload: payload})
	return nil
}

// mockIdem is an in-memory idempotency store.
type mockIdem struct {
	locks map[string]bool
	vals  map[string]string
}

func newMockIdem() *mockIdem {
	return &mockIdem{locks: map[string]bool{}, vals: map[string]string{}}
}

func (m *mockIdem) TryLock(_ context.Context, scope, key string) (bool, error) {
	k := scope + ":" + key
	if m.locks[k] {
		return false, nil
	}
	m.locks[k] = true
	return true, nil
}

func (m *mockIdem) Unlock(_ context.Context, scope, key string) error {
	delete(m.locks, scope+":"+key)
	return nil
}

func (m *mockIdem) Remember(_ context.Context, scope, key, value string) error {
	m.vals[scope+":"+key] = value
	return nil
}

func (m *mockIdem) Recall(_ context.Context, scope, key string) (string, bool, error) {
	v, ok := m.vals[scope+":"+key]
	return v, ok, nil
}

type mockUserDirectory struct {
	getUserFunc func(ctx context.Context, userID string) (usecase.User, error)
}

func (m *mockUserDirectory) GetUserByID(ctx context.Context, userID string) (usecase.User, error) {
	return m.getUserFunc(ctx, userID)
}

type mockMailSender struct {
	sent []usecase.Mail
	err  error
}

func (m *mockMailSender) Send(mail usecase.Mail) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, mail)
	return nil
}

type mockRenderer struct {
	invoiceFunc func(inv domain.Invoice, username string) ([]byte, error)
	reportFunc  func(invoices []domain.Invoice, start, end time.Time) ([]byte, error)
}

func (m *mockRenderer) RenderInvoice(inv domain.Invoice, username string) ([]byte, error) {
	if m.invoiceFunc != nil {
		return m.invoiceFunc(inv, username)
	}
	return []byte("%PDF-stub"), nil
}

func (m *mockRenderer) RenderReport(invoices []domain.Invoice, start, end time.Time) ([]byte, error) {
	if m.reportFunc != nil {
		return m.reportFunc(invoices, start, end)
	}
	return []byte("%PDF-stub"), nil
}

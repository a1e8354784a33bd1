package usecase

import (
	"context"
	"time"

	domain "github.com/shopsphere/fulfillment/internal/entity"
)

type OrderRepo interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	// UpdateStatusIf moves the order from one status to another in a single
	// guarded statement. Returns false when nothing matched (missing order
	// or concurrent transition).
	UpdateStatusIf(ctx context.Context, id string, from, to domain.OrderStatus, deliveredAt *time.Time) (bool, error)
}

type RefundRepo interface {
	// Create inserts a PENDING refund; returns ErrRefundExists when an
	// active refund for the same order already holds the unique slot.
	Create(ctx context.Context, r *domain.Refund) error
	GetByID(ctx context.Context, id string) (*domain.Refund, error)
	List(ctx context.Context) ([]domain.Refund, error)
	HasActiveForOrder(ctx context.Context, orderID string) (bool, error)
	// Review moves a PENDING refund to its terminal status. Returns false
	// when the refund was not PENDING anymore (or does not exist).
	Review(ctx context.Context, id string, to domain.RefundStatus, reviewedBy string, reviewedAt time.Time) (bool, error)
}

type InvoiceRepo interface {
	// Upsert persists the invoice keyed by its id. The write is idempotent:
	// a redelivered event finds the row and inserts nothing. Returns true
	// when this call created the row.
	Upsert(ctx context.Context, inv *domain.Invoice) (bool, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]domain.Invoice, error)
}

// EventPublisher abstracts the bus producer. Key selects the partition, so
// every event for one aggregate lands on one ordering domain.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload any) error
}

type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	// Unlock releases a claimed lock so the same key can be retried after
	// a failed request.
	Unlock(ctx context.Context, scope, key string) error
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserDirectory is the synchronous user-lookup collaborator.
type UserDirectory interface {
	GetUserByID(ctx context.Context, userID string) (User, error)
}

type Attachment struct {
	Filename string
	MIME     string
	Content  []byte
}

type Mail struct {
	To          string
	Subject     string
	Body        string
	Attachments []Attachment
}

type MailSender interface {
	Send(m Mail) error
}

type InvoiceRenderer interface {
	RenderInvoice(inv domain.Invoice, username string) ([]byte, error)
	RenderReport(invoices []domain.Invoice, start, end time.Time) ([]byte, error)
}

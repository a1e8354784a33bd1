package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopsphere/fulfillment/internal/contracts"
)

// Notifier handles the three notification topics. Every handler resolves
// the recipient through the user directory first; only the invoice handler
// leaves a durable record, keyed by invoice id so a redelivered event is a
// no-op.
type Notifier struct {
	users    UserDirectory
	mail     MailSender
	renderer InvoiceRenderer
	invoices InvoiceRepo
	log      *slog.Logger
}

func NewNotifier(users UserDirectory, mail MailSender, renderer InvoiceRenderer, invoices InvoiceRepo, log *slog.Logger) *Notifier {
	return &Notifier{users: users, mail: mail, renderer: renderer, invoices: invoices, log: log}
}

func (n *Notifier) HandleInvoiceCreated(ctx context.Context, ev contracts.InvoiceCreated) error {
	inv := ev.Invoice

	user, err := n.users.GetUserByID(ctx, inv.UserID)
	if err != nil {
		return fmt.Errorf("resolve user %s: %w", inv.UserID, err)
	}

	pdf, err := n.renderer.RenderInvoice(inv, user.Username)
	if err != nil {
		return fmt.Errorf("render invoice %s: %w", inv.ID, err)
	}

	m := Mail{
		To:      user.Email,
		Subject: fmt.Sprintf("Your invoice %s", inv.ID),
		Body: fmt.Sprintf("Hi %s,\n\nThank you for your order. Your invoice is attached.\nTotal charged: %.2f to card %s.\n",
			user.Username, inv.Total, inv.MaskedCard),
		Attachments: []Attachment{{
			Filename: fmt.Sprintf("invoice-%s.pdf", inv.ID),
			MIME:     "application/pdf",
			Content:  pdf,
		}},
	}
	if err := n.mail.Send(m); err != nil {
		return fmt.Errorf("send invoice mail %s: %w", inv.ID, err)
	}

	inserted, err := n.invoices.Upsert(ctx, &inv)
	if err != nil {
		return fmt.Errorf("persist invoice %s: %w", inv.ID, err)
	}
	if !inserted {
		n.log.Info("invoice already persisted, redelivery skipped", "invoice_id", inv.ID)
	}
	return nil
}

func (n *Notifier) HandleRefundApproved(ctx context.Context, ev contracts.RefundApproved) error {
	user, err := n.users.GetUserByID(ctx, ev.UserID)
	if err != nil {
		return fmt.Errorf("resolve user %s: %w", ev.UserID, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nYour refund for order %s has been approved.\n\nRefunded items:\n", user.Username, ev.OrderID)
	for _, it := range ev.Items {
		fmt.Fprintf(&b, "  - %s x%d (%.2f each)\n", it.ProductName, it.Quantity, it.UnitPrice)
	}
	fmt.Fprintf(&b, "\nRefund total: %.2f\n", ev.Total)

	m := Mail{
		To:      user.Email,
		Subject: fmt.Sprintf("Refund approved for order %s", ev.OrderID),
		Body:    b.String(),
	}
	if err := n.mail.Send(m); err != nil {
		return fmt.Errorf("send refund mail for order %s: %w", ev.OrderID, err)
	}
	return nil
}

func (n *Notifier) HandlePriceDrop(ctx context.Context, ev contracts.WishlistPriceDrop) error {
	user, err := n.users.GetUserByID(ctx, ev.UserID)
	if err != nil {
		return fmt.Errorf("resolve user %s: %w", ev.UserID, err)
	}

	m := Mail{
		To:      user.Email,
		Subject: fmt.Sprintf("Price drop: %s", ev.ProductName),
		Body: fmt.Sprintf("Hi %s,\n\n%s on your wishlist dropped to %.2f. Grab it while it lasts.\n",
			user.Username, ev.ProductName, ev.NewPrice),
	}
	if err := n.mail.Send(m); err != nil {
		return fmt.Errorf("send price-drop mail to %s: %w", ev.UserID, err)
	}
	return nil
}

package repo

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/shopsphere/fulfillment/internal/entity"
	"github.com/shopsphere/fulfillment/internal/usecase"
)

type MySQLInvoiceRepo struct{ db *sql.DB }

func NewMySQLInvoiceRepo(db *sql.DB) *MySQLInvoiceRepo { return &MySQLInvoiceRepo{db: db} }

// Upsert writes the invoice at most once. The bus delivers at least once,
// so a redelivered invoice-created event lands here again; INSERT IGNORE
// on the primary key makes the second write a no-op, items included.
func (r *MySQLInvoiceRepo) Upsert(ctx context.Context, inv *domain.Invoice) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
INSERT IGNORE INTO invoices
  (id, order_id, user_id, sub_total, shipping_fee, tax_rate, tax_amount, total,
   shipping_address, masked_card, payment_method, created_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?)
`, inv.ID, inv.OrderID, inv.UserID, inv.SubTotal, inv.ShippingFee, inv.TaxRate,
		inv.TaxAmount, inv.Total, inv.ShippingAddress, inv.MaskedCard, inv.PaymentMethod, inv.CreatedAt)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if rows == 0 {
		// Already persisted by an earlier delivery.
		return false, tx.Commit()
	}

	for _, it := range inv.Items {
		_, err = tx.ExecContext(ctx, `
INSERT INTO invoice_items (invoice_id, product_id, product_name, quantity, unit_price, line_total)
VALUES (?,?,?,?,?,?)
`, inv.ID, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice, it.LineTotal)
		if err != nil {
			return false, err
		}
	}

	return true, tx.Commit()
}

func (r *MySQLInvoiceRepo) ListBetween(ctx context.Context, start, end time.Time) ([]domain.Invoice, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, order_id, user_id, sub_total, shipping_fee, tax_rate, tax_amount, total,
       shipping_address, masked_card, payment_method, created_at
FROM invoices
WHERE created_at >= ? AND created_at <= ?
ORDER BY created_at`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []domain.Invoice
	var ids []string
	for rows.Next() {
		var inv domain.Invoice
		if err := rows.Scan(&inv.ID, &inv.OrderID, &inv.UserID, &inv.SubTotal, &inv.ShippingFee,
			&inv.TaxRate, &inv.TaxAmount, &inv.Total, &inv.ShippingAddress, &inv.MaskedCard,
			&inv.PaymentMethod, &inv.CreatedAt); err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
		ids = append(ids, inv.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	items, err := r.itemsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		invoices[i].Items = items[invoices[i].ID]
	}
	return invoices, nil
}

func (r *MySQLInvoiceRepo) itemsFor(ctx context.Context, invoiceIDs []string) (map[string][]domain.InvoiceItem, error) {
	out := make(map[string][]domain.InvoiceItem, len(invoiceIDs))
	if len(invoiceIDs) == 0 {
		return out, nil
	}

	query := `
SELECT invoice_id, product_id, product_name, quantity, unit_price, line_total
FROM invoice_items WHERE invoice_id IN (?` + placeholders(len(invoiceIDs)-1) + `) ORDER BY id`
	args := make([]any, len(invoiceIDs))
	for i, id := range invoiceIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var invoiceID string
		var it domain.InvoiceItem
		if err := rows.Scan(&invoiceID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return nil, err
		}
		out[invoiceID] = append(out[invoiceID], it)
	}
	return out, rows.Err()
}

var _ usecase.InvoiceRepo = (*MySQLInvoiceRepo)(nil)

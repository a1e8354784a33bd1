package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	domain "github.com/shopsphere/fulfillment/internal/entity"
	"github.com/shopsphere/fulfillment/internal/usecase"
)

const mysqlErrDuplicateEntry = 1062

type MySQLRefundRepo struct{ db *sql.DB }

func NewMySQLRefundRepo(db *sql.DB) *MySQLRefundRepo { return &MySQLRefundRepo{db: db} }

// Create inserts a PENDING refund. The refunds table has a unique index on
// a generated column that holds order_id only while the refund is PENDING
// or APPROVED, so two concurrent requests for the same order cannot both
// insert; the loser gets ErrRefundExists.
func (r *MySQLRefundRepo) Create(ctx context.Context, ref *domain.Refund) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO refunds (id, order_id, user_id, reason, status, created_at)
VALUES (?,?,?,?,?,?)
`, ref.ID, ref.OrderID, ref.UserID, ref.Reason, ref.Status, ref.CreatedAt)
	if isDuplicateEntry(err) {
		return usecase.ErrRefundExists
	}
	return err
}

func (r *MySQLRefundRepo) GetByID(ctx context.Context, id string) (*domain.Refund, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, order_id, user_id, reason, status, reviewed_by, reviewed_at, created_at
FROM refunds WHERE id=?`, id)

	ref, err := scanRefund(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return ref, err
}

func (r *MySQLRefundRepo) List(ctx context.Context) ([]domain.Refund, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, order_id, user_id, reason, status, reviewed_by, reviewed_at, created_at
FROM refunds ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Refund
	for rows.Next() {
		ref, err := scanRefund(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ref)
	}
	return out, rows.Err()
}

func (r *MySQLRefundRepo) HasActiveForOrder(ctx context.Context, orderID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `
SELECT 1 FROM refunds WHERE order_id=? AND status IN ('PENDING','APPROVED') LIMIT 1`, orderID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *MySQLRefundRepo) Review(ctx context.Context, id string, to domain.RefundStatus, reviewedBy string, reviewedAt time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE refunds
SET status = ?, reviewed_by = ?, reviewed_at = ?
WHERE id = ? AND status = 'PENDING'`,
		to, reviewedBy, reviewedAt, id,
	)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func scanRefund(row rowScanner) (*domain.Refund, error) {
	var ref domain.Refund
	var status string
	var reviewedBy sql.NullString
	var reviewedAt sql.NullTime
	if err := row.Scan(&ref.ID, &ref.OrderID, &ref.UserID, &ref.Reason, &status, &reviewedBy, &reviewedAt, &ref.CreatedAt); err != nil {
		return nil, err
	}
	ref.Status = domain.RefundStatus(status)
	if reviewedBy.Valid {
		ref.ReviewedBy = &reviewedBy.String
	}
	if reviewedAt.Valid {
		t := reviewedAt.Time
		ref.ReviewedAt = &t
	}
	return &ref, nil
}

func isDuplicateEntry(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry
}

var _ usecase.RefundRepo = (*MySQLRefundRepo)(nil)

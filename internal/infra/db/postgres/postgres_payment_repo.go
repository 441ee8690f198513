package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"study-notes-backend/internal/domain"
	"study-notes-backend/internal/domain/model"
	"study-notes-backend/internal/domain/ports/repository"
)

var _ repository.PaymentIntentRepository = (*paymentIntentRepo)(nil)

type paymentIntentRepo struct{ pool *pgxpool.Pool }

func NewPaymentIntentRepo(pool *pgxpool.Pool) *paymentIntentRepo {
	return &paymentIntentRepo{pool: pool}
}

const paymentIntentCols = `order_id, user_id, item_id, item_type, amount, status, created_at, updated_at`

func (r *paymentIntentRepo) Save(ctx context.Context, tx repository.Tx, p *model.PaymentIntent) error {
	const q = `
INSERT INTO payment_intents (` + paymentIntentCols + `)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
ON CONFLICT (order_id) DO UPDATE SET
  user_id=$2, item_id=$3, item_type=$4, amount=$5, status=$6, updated_at=$8;`

	_, err := execSQL(ctx, r.pool, tx, q, p.OrderID, p.UserID, p.ItemID, p.ItemType, p.Amount, p.Status, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *paymentIntentRepo) FindByOrderID(ctx context.Context, tx repository.Tx, orderID string) (*model.PaymentIntent, error) {
	q := `SELECT ` + paymentIntentCols + ` FROM payment_intents WHERE order_id=$1`
	if _, ok := tx.(pgx.Tx); ok {
		q += " FOR UPDATE"
	}
	row, err := pickRow(ctx, r.pool, tx, q, orderID)
	if err != nil {
		return nil, err
	}

	p := &model.PaymentIntent{}
	if err := row.Scan(&p.OrderID, &p.UserID, &p.ItemID, &p.ItemType, &p.Amount, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	return p, nil
}

// UpdateStatusIfPending atomically finalizes the intent only while the stored
// status is still PENDING. The RowsAffected check is the compare-and-set that
// keeps the webhook and redirect paths from double-granting.
func (r *paymentIntentRepo) UpdateStatusIfPending(ctx context.Context, tx repository.Tx, orderID string, status model.PaymentStatus) (bool, error) {
	const q = `
UPDATE payment_intents
   SET status = $2,
       updated_at = NOW()
 WHERE order_id = $1
   AND status = 'PENDING';`

	cmd, err := execSQL(ctx, r.pool, tx, q, orderID, string(status))
	if err != nil {
		if err == domain.ErrInvalidArgument || err == domain.ErrInvalidExecContext {
			return false, err
		}
		return false, domain.ErrOperationFailed
	}
	return cmd.RowsAffected() >= 1, nil
}

func (r *paymentIntentRepo) ListPendingOlderThan(ctx context.Context, tx repository.Tx, olderThan time.Time, limit int) ([]*model.PaymentIntent, error) {
	if limit <= 0 {
		limit = 100
	}
	const q = `SELECT ` + paymentIntentCols + ` FROM payment_intents WHERE status='PENDING' AND created_at < $1 ORDER BY created_at ASC LIMIT $2;`
	rows, err := queryRows(ctx, r.pool, tx, q, olderThan, limit)
	if err != nil {
		switch err {
		case domain.ErrInvalidArgument, domain.ErrInvalidExecContext:
			return nil, err
		default:
			return nil, domain.ErrOperationFailed
		}
	}
	defer rows.Close()

	var out []*model.PaymentIntent
	for rows.Next() {
		p := new(model.PaymentIntent)
		if err := rows.Scan(&p.OrderID, &p.UserID, &p.ItemID, &p.ItemType, &p.Amount, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *paymentIntentRepo) SumByPeriod(ctx context.Context, tx repository.Tx, period string) (int64, error) {
	const q = `SELECT COALESCE(SUM(amount),0)::bigint FROM payment_intents WHERE status='SUCCESS' AND updated_at >= DATE_TRUNC($1, NOW());`
	row, err := pickRow(ctx, r.pool, tx, q, period)
	if err != nil {
		return 0, err
	}

	var sum int64
	if err := row.Scan(&sum); err != nil {
		return 0, domain.ErrReadDatabaseRow
	}
	return sum, nil
}

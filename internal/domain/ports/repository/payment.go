package repository

import (
	"context"
	"time"

	"study-notes-backend/internal/domain/model"
)

type PaymentIntentRepository interface {
	Save(ctx context.Context, tx Tx, p *model.PaymentIntent) error
	FindByOrderID(ctx context.Context, tx Tx, orderID string) (*model.PaymentIntent, error)

	// UpdateStatusIfPending atomically finalizes the intent only while the
	// stored status is still PENDING. Returns false when another path won the
	// race (or the intent was already terminal).
	UpdateStatusIfPending(ctx context.Context, tx Tx, orderID string, status model.PaymentStatus) (bool, error)

	ListPendingOlderThan(ctx context.Context, tx Tx, olderThan time.Time, limit int) ([]*model.PaymentIntent, error)
	SumByPeriod(ctx context.Context, tx Tx, period string) (int64, error)
}

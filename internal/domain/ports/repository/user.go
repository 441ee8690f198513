package repository

import (
	"context"

	"study-notes-backend/internal/domain/model"
)

type UserRepository interface {
	Save(ctx context.Context, tx Tx, u *model.User) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.User, error)
	List(ctx context.Context, tx Tx, offset, limit int) ([]*model.User, error)
	Count(ctx context.Context, tx Tx) (int, error)

	// GrantItem adds itemID to the user's purchased set. Must be idempotent:
	// granting an already-owned item is a no-op, never a duplicate entry.
	GrantItem(ctx context.Context, tx Tx, userID, itemID string) error
}

package model

import (
	"time"

	"github.com/google/uuid"

	"study-notes-backend/internal/domain"
)

// User is a consumer of the catalog. PurchasedItems is the entitlement set:
// once an item id is present it is never removed by the payment flow.
type User struct {
	ID             string
	Email          string
	Phone          string
	Name           string
	PurchasedItems []string
	RegisteredAt   time.Time
	LastActiveAt   time.Time
	IsAdmin        bool
}

func NewUser(id, email, name, phone string) (*User, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if email == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &User{
		ID:           id,
		Email:        email,
		Name:         name,
		Phone:        phone,
		RegisteredAt: now,
		LastActiveAt: now,
	}, nil
}

func (u *User) IsZero() bool { return u == nil || u.ID == "" }
func (u *User) Touch()       { u.LastActiveAt = time.Now() }

// Owns reports whether the user's entitlement set contains the item.
func (u *User) Owns(itemID string) bool {
	for _, id := range u.PurchasedItems {
		if id == itemID {
			return true
		}
	}
	return false
}

package model

import (
	"time"

	"github.com/shopspring/decimal"

	"study-notes-backend/internal/domain"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING" // gateway order created; awaiting terminal status
	PaymentStatusSuccess PaymentStatus = "SUCCESS" // gateway reported paid; entitlement granted
	PaymentStatusFailed  PaymentStatus = "FAILED"  // gateway reported expired/failed/cancelled
)

// Terminal reports whether the status can no longer change.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusSuccess || s == PaymentStatusFailed
}

// PaymentIntent records one purchase attempt against the gateway.
// Exactly one intent exists per gateway order id; the status only ever
// moves PENDING -> SUCCESS or PENDING -> FAILED.
type PaymentIntent struct {
	OrderID   string // gateway-visible order id, primary key
	UserID    string
	ItemID    string
	ItemType  ItemType
	Amount    decimal.Decimal // INR, matches catalog price at creation time
	Status    PaymentStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPaymentIntent validates and constructs a pending intent.
func NewPaymentIntent(orderID, userID, itemID string, itemType ItemType, amount decimal.Decimal) (*PaymentIntent, error) {
	if orderID == "" || userID == "" || itemID == "" {
		return nil, domain.ErrInvalidArgument
	}
	if itemType != ItemTypeCombo && itemType != ItemTypePDF {
		return nil, domain.ErrInvalidArgument
	}
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &PaymentIntent{
		OrderID:   orderID,
		UserID:    userID,
		ItemID:    itemID,
		ItemType:  itemType,
		Amount:    amount,
		Status:    PaymentStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (p *PaymentIntent) IsZero() bool { return p == nil || p.OrderID == "" }

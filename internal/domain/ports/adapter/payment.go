package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Gateway order statuses we care about. Everything terminal that is not
// OrderPaid is treated as failed by reconciliation.
const (
	OrderPaid    = "PAID"
	OrderActive  = "ACTIVE"
	OrderExpired = "EXPIRED"
)

// CreateOrderRequest carries everything the gateway needs to open a hosted
// checkout session. Tags are opaque correlation data echoed back on status
// fetches; reconciliation uses them to rebuild a lost local record.
type CreateOrderRequest struct {
	OrderID       string
	Amount        decimal.Decimal
	Currency      string // always "INR"
	CustomerID    string
	CustomerEmail string
	CustomerPhone string
	CustomerName  string
	ReturnURL     string // contains the gateway's {order_id} placeholder
	NotifyURL     string
	Tags          map[string]string
}

// OrderState is the authoritative view of one gateway order.
type OrderState struct {
	OrderID string
	Status  string // OrderPaid / OrderActive / OrderExpired / provider-specific
	Amount  decimal.Decimal
	Tags    map[string]string
	PaidAt  *time.Time
}

// PaymentGateway is the hex port for the hosted-checkout provider.
type PaymentGateway interface {
	Name() string

	// CreateOrder opens a gateway order and returns the payment session id
	// the client SDK uses to redirect to hosted checkout.
	CreateOrder(ctx context.Context, req CreateOrderRequest) (sessionID string, err error)

	// FetchOrder returns the current authoritative order state.
	FetchOrder(ctx context.Context, orderID string) (*OrderState, error)

	// ListPaidOrders pages through orders in [from, to] with status PAID.
	// cursor is opaque; an empty next cursor means the listing is exhausted.
	ListPaidOrders(ctx context.Context, from, to time.Time, cursor string) (orders []*OrderState, next string, err error)
}

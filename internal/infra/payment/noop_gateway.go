package payment

import (
	"context"
	"time"

	"study-notes-backend/internal/domain/ports/adapter"
)

var _ adapter.PaymentGateway = (*NoopGateway)(nil)

// NoopGateway is a dev-mode gateway: every order is created instantly and
// reported PAID on the first status fetch.
type NoopGateway struct {
	orders map[string]*adapter.OrderState
}

func NewNoopGateway() *NoopGateway {
	return &NoopGateway{orders: make(map[string]*adapter.OrderState)}
}

func (g *NoopGateway) Name() string { return "noop" }

func (g *NoopGateway) CreateOrder(_ context.Context, req adapter.CreateOrderRequest) (string, error) {
	now := time.Now()
	g.orders[req.OrderID] = &adapter.OrderState{
		OrderID: req.OrderID,
		Status:  adapter.OrderPaid,
		Amount:  req.Amount,
		Tags:    req.Tags,
		PaidAt:  &now,
	}
	return "session_" + req.OrderID, nil
}

func (g *NoopGateway) FetchOrder(_ context.Context, orderID string) (*adapter.OrderState, error) {
	if st, ok := g.orders[orderID]; ok {
		return st, nil
	}
	return &adapter.OrderState{OrderID: orderID, Status: adapter.OrderExpired}, nil
}

func (g *NoopGateway) ListPaidOrders(context.Context, time.Time, time.Time, string) ([]*adapter.OrderState, string, error) {
	out := make([]*adapter.OrderState, 0, len(g.orders))
	for _, st := range g.orders {
		out = append(out, st)
	}
	return out, "", nil
}

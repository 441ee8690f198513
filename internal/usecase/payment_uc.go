package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"study-notes-backend/internal/domain"
	"study-notes-backend/internal/domain/model"
	"study-notes-backend/internal/domain/ports/adapter"
	"study-notes-backend/internal/domain/ports/repository"
	"study-notes-backend/internal/infra/metrics"
)

// Reconciliation entry paths, used for metrics/log labels only.
const (
	PathWebhook  = "webhook"
	PathRedirect = "redirect"
	PathPoll     = "poll"
	PathSweep    = "sweep"
	PathSync     = "sync"
)

// Compile-time check
var _ PaymentUseCase = (*paymentUC)(nil)

// CreateOrderInput carries one purchase intent. Phone and name are optional
// and defaulted; the item is resolved from the catalog, never taken from the
// client.
type CreateOrderInput struct {
	OrderID   string
	UserID    string
	UserEmail string
	UserPhone string
	UserName  string
	ItemID    string
	ItemType  model.ItemType
}

type PaymentUseCase interface {
	// CreateOrder opens a gateway order for a paid item and persists a
	// PENDING intent. Returns the order id and the gateway payment session id.
	CreateOrder(ctx context.Context, in CreateOrderInput) (orderID, sessionID string, err error)

	// Reconcile re-fetches the authoritative order status from the gateway
	// and finalizes the local intent, granting the entitlement exactly once.
	// Safe to call redundantly and concurrently for the same order id.
	Reconcile(ctx context.Context, orderID, path string) (*model.PaymentIntent, error)

	// SyncTransactions pages the gateway's recent PAID orders and repairs any
	// that are not SUCCESS locally. Returns the number of repaired orders.
	SyncTransactions(ctx context.Context) (int, error)

	// SumByPeriod totals successful payment amounts for stats ("week", "month", "year").
	SumByPeriod(ctx context.Context, tx repository.Tx, period string) (int64, error)
}

type paymentUC struct {
	payments repository.PaymentIntentRepository
	users    repository.UserRepository
	catalog  CatalogUseCase
	gateway  adapter.PaymentGateway
	tm       repository.TransactionManager

	baseURL    string
	returnPath string
	notifyPath string
	lookback   time.Duration

	log *zerolog.Logger
}

func NewPaymentUseCase(
	payments repository.PaymentIntentRepository,
	users repository.UserRepository,
	catalog CatalogUseCase,
	gateway adapter.PaymentGateway,
	tm repository.TransactionManager,
	baseURL, returnPath, notifyPath string,
	lookback time.Duration,
	logger *zerolog.Logger,
) *paymentUC {
	l := logger.With().Str("component", "PaymentUC").Logger()
	return &paymentUC{
		payments:   payments,
		users:      users,
		catalog:    catalog,
		gateway:    gateway,
		tm:         tm,
		baseURL:    strings.TrimRight(baseURL, "/"),
		returnPath: returnPath,
		notifyPath: notifyPath,
		lookback:   lookback,
		log:        &l,
	}
}

func (u *paymentUC) CreateOrder(ctx context.Context, in CreateOrderInput) (string, string, error) {
	if in.UserID == "" || in.UserEmail == "" {
		return "", "", domain.ErrValidation
	}
	if in.OrderID == "" {
		in.OrderID = "order_" + uuid.NewString()
	}

	item, err := u.catalog.GetItem(ctx, in.ItemID, in.ItemType)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", "", domain.ErrValidation
		}
		return "", "", err
	}
	if err := item.Purchasable(); err != nil {
		return "", "", err
	}

	// One intent per gateway order id.
	if existing, err := u.payments.FindByOrderID(ctx, repository.NoTX, in.OrderID); err == nil && !existing.IsZero() {
		return "", "", domain.ErrAlreadyExists
	}

	phone := in.UserPhone
	if phone == "" {
		phone = "9999999999"
	}
	name := in.UserName
	if name == "" {
		name = "Student"
	}

	sessionID, err := u.gateway.CreateOrder(ctx, adapter.CreateOrderRequest{
		OrderID:       in.OrderID,
		Amount:        item.Price,
		Currency:      "INR",
		CustomerID:    in.UserID,
		CustomerEmail: in.UserEmail,
		CustomerPhone: phone,
		CustomerName:  name,
		// The gateway substitutes its own order id for the placeholder on redirect.
		ReturnURL: u.baseURL + u.returnPath + "?order_id={order_id}",
		NotifyURL: u.baseURL + u.notifyPath,
		Tags: map[string]string{
			"userId":   in.UserID,
			"itemId":   item.ID,
			"itemType": string(item.Type),
		},
	})
	if err != nil {
		return "", "", err
	}

	// Persist the PENDING intent before returning so a reconciliation path has
	// something to finalize even if the user never comes back to the app.
	intent, err := model.NewPaymentIntent(in.OrderID, in.UserID, item.ID, item.Type, item.Price)
	if err != nil {
		return "", "", err
	}
	if err := u.payments.Save(ctx, repository.NoTX, intent); err != nil {
		return "", "", err
	}

	metrics.IncOrderCreated()
	u.log.Info().Str("order_id", in.OrderID).Str("item_id", item.ID).Msg("gateway order created")
	return in.OrderID, sessionID, nil
}

func (u *paymentUC) Reconcile(ctx context.Context, orderID, path string) (*model.PaymentIntent, error) {
	if orderID == "" {
		return nil, domain.ErrValidation
	}

	// The gateway is the only authoritative source; a client-reported status
	// is never consulted.
	state, err := u.gateway.FetchOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return u.applyState(ctx, state, path)
}

// applyState finalizes one order given its authoritative gateway state. It is
// the single reconciliation function behind the webhook, redirect, poll,
// sweep and sync entry points.
func (u *paymentUC) applyState(ctx context.Context, state *adapter.OrderState, path string) (*model.PaymentIntent, error) {
	target, terminal := targetStatus(state.Status)
	intent, err := u.payments.FindByOrderID(ctx, repository.NoTX, state.OrderID)
	missing := errors.Is(err, domain.ErrNotFound)
	if err != nil && !missing {
		return nil, err
	}
	if missing {
		// Defensive fallback for lost writes: rebuild the intent from the
		// correlation tags the order was created with.
		intent, err = intentFromTags(state)
		if err != nil {
			return nil, err
		}
	}

	if !terminal {
		// Still ACTIVE at the gateway; nothing to finalize.
		return intent, nil
	}
	if intent.Status.Terminal() {
		// Webhook and redirect may both land here; absorb silently.
		metrics.IncReconcileConflict()
		return intent, nil
	}

	var applied bool
	err = u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		if missing {
			if err := u.payments.Save(ctx, tx, intent); err != nil {
				return err
			}
		}
		ok, err := u.payments.UpdateStatusIfPending(ctx, tx, intent.OrderID, target)
		if err != nil {
			return err
		}
		applied = ok
		if !ok {
			// Lost the race; the winner already granted (or failed) the order.
			return nil
		}
		if target == model.PaymentStatusSuccess {
			// Status flip and entitlement grant commit together or not at all.
			return u.users.GrantItem(ctx, tx, intent.UserID, intent.ItemID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !applied {
		metrics.IncReconcileConflict()
		refreshed, err := u.payments.FindByOrderID(ctx, repository.NoTX, intent.OrderID)
		if err != nil {
			return nil, err
		}
		return refreshed, nil
	}

	intent.Status = target
	intent.UpdatedAt = time.Now()
	metrics.IncReconcile(string(target), path)
	if target == model.PaymentStatusSuccess {
		metrics.IncEntitlementGrant()
		amount, _ := intent.Amount.Float64()
		metrics.AddPaymentRevenue("INR", amount)
		u.log.Info().Str("order_id", intent.OrderID).Str("item_id", intent.ItemID).
			Str("path", path).Msg("payment reconciled, entitlement granted")
	} else {
		u.log.Info().Str("order_id", intent.OrderID).Str("gateway_status", state.Status).
			Str("path", path).Msg("payment reconciled as failed")
	}
	return intent, nil
}

func (u *paymentUC) SyncTransactions(ctx context.Context) (int, error) {
	to := time.Now()
	from := to.Add(-u.lookback)

	synced := 0
	cursor := ""
	for {
		orders, next, err := u.gateway.ListPaidOrders(ctx, from, to, cursor)
		if err != nil {
			return synced, err
		}
		for _, state := range orders {
			if state.Status != adapter.OrderPaid {
				continue
			}
			local, err := u.payments.FindByOrderID(ctx, repository.NoTX, state.OrderID)
			if err == nil && local.Status == model.PaymentStatusSuccess {
				continue
			}
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return synced, err
			}
			intent, err := u.applyState(ctx, state, PathSync)
			if err != nil {
				u.log.Error().Err(err).Str("order_id", state.OrderID).Msg("sync: reconcile failed")
				continue
			}
			if intent.Status == model.PaymentStatusSuccess {
				synced++
			}
		}
		if next == "" {
			break
		}
		cursor = next
	}

	metrics.AddSyncedOrders(synced)
	u.log.Info().Int("synced", synced).Msg("historical sync finished")
	return synced, nil
}

func (u *paymentUC) SumByPeriod(ctx context.Context, tx repository.Tx, period string) (int64, error) {
	return u.payments.SumByPeriod(ctx, tx, period)
}

// targetStatus maps a gateway order status to the local terminal status.
// ACTIVE is the only non-terminal gateway state we see.
func targetStatus(gatewayStatus string) (model.PaymentStatus, bool) {
	switch gatewayStatus {
	case adapter.OrderPaid:
		return model.PaymentStatusSuccess, true
	case adapter.OrderActive:
		return model.PaymentStatusPending, false
	default:
		return model.PaymentStatusFailed, true
	}
}

func intentFromTags(state *adapter.OrderState) (*model.PaymentIntent, error) {
	userID := state.Tags["userId"]
	itemID := state.Tags["itemId"]
	itemType := model.ItemType(state.Tags["itemType"])
	intent, err := model.NewPaymentIntent(state.OrderID, userID, itemID, itemType, state.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: order %s has no usable correlation tags", domain.ErrGateway, state.OrderID)
	}
	return intent, nil
}

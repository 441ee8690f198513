package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"study-notes-backend/internal/domain/ports/repository"
	"study-notes-backend/internal/infra/redis"
	"study-notes-backend/internal/usecase"
)

const (
	sweepLockKey = "lock:payment-sweep"
	syncLockKey  = "lock:payment-sync"
)

// PaymentReconciler periodically re-checks stale pending intents against the
// gateway. This covers a missed webhook, a closed payment tab, or a crash
// between the gateway charge and the local finalize.
type PaymentReconciler struct {
	uc         usecase.PaymentUseCase
	payments   repository.PaymentIntentRepository
	locker     redis.Locker
	interval   time.Duration // how often to scan
	staleAfter time.Duration // how old a pending intent must be to retry
	log        *zerolog.Logger
}

func NewPaymentReconciler(uc usecase.PaymentUseCase, payments repository.PaymentIntentRepository, locker redis.Locker, interval, staleAfter time.Duration, logger *zerolog.Logger) *PaymentReconciler {
	if interval <= 0 {
		interval = time.Minute
	}
	if staleAfter <= 0 {
		staleAfter = 10 * time.Minute
	}
	l := logger.With().Str("component", "PaymentReconciler").Logger()
	return &PaymentReconciler{uc: uc, payments: payments, locker: locker, interval: interval, staleAfter: staleAfter, log: &l}
}

func (w *PaymentReconciler) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("payment reconciler started")
	t := time.NewTicker(w.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("payment reconciler stopping")
			return
		case <-t.C:
			w.tick(ctx)
		}
	}
}

func (w *PaymentReconciler) tick(ctx context.Context) {
	token, err := w.locker.TryLock(ctx, sweepLockKey, w.interval)
	if err != nil {
		// Another replica holds the sweep.
		return
	}
	defer func() { _ = w.locker.Unlock(ctx, sweepLockKey, token) }()

	cutoff := time.Now().Add(-w.staleAfter)
	pending, err := w.payments.ListPendingOlderThan(ctx, repository.NoTX, cutoff, 200)
	if err != nil {
		w.log.Error().Err(err).Msg("list stale pending failed")
		return
	}
	for _, p := range pending {
		if _, err := w.uc.Reconcile(ctx, p.OrderID, usecase.PathSweep); err != nil {
			w.log.Warn().Err(err).Str("order_id", p.OrderID).Msg("sweep reconcile failed")
		}
	}
	if len(pending) > 0 {
		w.log.Info().Int("count", len(pending)).Msg("stale pending intents swept")
	}
}

// SyncWorker replays the gateway's PAID order history on a slow cadence so
// intents missed by both the webhook and the sweep still settle.
type SyncWorker struct {
	uc       usecase.PaymentUseCase
	locker   redis.Locker
	interval time.Duration
	log      *zerolog.Logger
}

func NewSyncWorker(uc usecase.PaymentUseCase, locker redis.Locker, interval time.Duration, logger *zerolog.Logger) *SyncWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	l := logger.With().Str("component", "SyncWorker").Logger()
	return &SyncWorker{uc: uc, locker: locker, interval: interval, log: &l}
}

func (w *SyncWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("sync worker started")
	t := time.NewTicker(w.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("sync worker stopping")
			return
		case <-t.C:
			w.tick(ctx)
		}
	}
}

func (w *SyncWorker) tick(ctx context.Context) {
	token, err := w.locker.TryLock(ctx, syncLockKey, w.interval)
	if err != nil {
		return
	}
	defer func() { _ = w.locker.Unlock(ctx, syncLockKey, token) }()

	n, err := w.uc.SyncTransactions(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("periodic sync failed")
		return
	}
	if n > 0 {
		w.log.Info().Int("synced", n).Msg("periodic sync repaired orders")
	}
}

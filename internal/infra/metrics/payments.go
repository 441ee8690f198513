package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		ordersCreatedTotal,
		reconcileTotal,
		reconcileConflicts,
		entitlementGrants,
		syncedOrdersTotal,
		paymentsRevenueTotal,
	)
}

var (
	ordersCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_orders_created_total",
			Help: "Gateway orders created (pending intents persisted).",
		},
	)

	reconcileTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_reconcile_total",
			Help: "Reconciliation outcomes by terminal status and entry path.",
		},
		[]string{"status", "path"},
	)

	reconcileConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_reconcile_conflicts_total",
			Help: "Reconciliation attempts absorbed because the intent was already terminal.",
		},
	)

	entitlementGrants = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_entitlement_grants_total",
			Help: "Items added to user purchased sets by reconciliation.",
		},
	)

	syncedOrdersTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_synced_orders_total",
			Help: "Orders repaired by the historical sync.",
		},
	)

	paymentsRevenueTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_revenue_total",
			Help: "The total monetary value of successful payments, labeled by currency.",
		},
		[]string{"currency"},
	)
)

func IncOrderCreated() { ordersCreatedTotal.Inc() }

func IncReconcile(status, path string) {
	reconcileTotal.WithLabelValues(norm(status), norm(path)).Inc()
}

func IncReconcileConflict() { reconcileConflicts.Inc() }
func IncEntitlementGrant()  { entitlementGrants.Inc() }
func AddSyncedOrders(n int) { syncedOrdersTotal.Add(float64(n)) }

func AddPaymentRevenue(currency string, amount float64) {
	paymentsRevenueTotal.WithLabelValues(norm(currency)).Add(amount)
}

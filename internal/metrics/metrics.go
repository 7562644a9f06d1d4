package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carbroker_orders_created_total",
		Help: "Total number of transport orders successfully created.",
	})

	AuctionsPurchasedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carbroker_auctions_purchased_total",
		Help: "Total number of instant-buy purchases that committed.",
	})

	PurchaseConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carbroker_purchase_conflicts_total",
		Help: "Purchase attempts that lost the sold race and were rolled back.",
	})

	CancellationFeesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "carbroker_cancellation_fees_total",
		Help: "Cancellation fee billing rows created.",
	})

	BillingDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carbroker_billing_decisions_total",
		Help: "Billing entries decided by an admin, by outcome.",
	},
		[]string{"status"},
	)

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "carbroker_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	AuctionCacheItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "carbroker_auction_cache_items",
		Help: "Current number of active auctions held in the listing cache.",
	})
)

// Package metrics defines the process-local prometheus counters kept by
// the exchange. There is no exposition endpoint; the reference driver
// opens no sockets, so the default registry is in-process state that an
// embedding binary may choose to serve.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OrdersPlaced counts accepted orders by market and side.
var OrdersPlaced = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "helios_orders_placed_total",
		Help: "Total number of orders accepted by the exchange",
	},
	[]string{"market", "side"},
)

// OrdersCancelled counts cancelled orders by market.
var OrdersCancelled = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "helios_orders_cancelled_total",
		Help: "Total number of orders cancelled",
	},
	[]string{"market"},
)

// TradesExecuted counts settled trades by market.
var TradesExecuted = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "helios_trades_executed_total",
		Help: "Total number of trades settled",
	},
	[]string{"market"},
)

// Wallet flow counters by asset.
var (
	Deposits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helios_deposits_total",
			Help: "Total number of wallet deposits",
		},
		[]string{"asset"},
	)

	Withdrawals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helios_withdrawals_total",
			Help: "Total number of wallet withdrawals",
		},
		[]string{"asset"},
	)
)

func init() {
	prometheus.MustRegister(OrdersPlaced, OrdersCancelled, TradesExecuted)
	prometheus.MustRegister(Deposits, Withdrawals)
}

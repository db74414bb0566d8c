package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PaymentsProcessed counts job payments by outcome (paid, not_found,
// forbidden, insufficient_funds, error).
var PaymentsProcessed = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ledgerd_payments_total",
		Help: "Total number of job payment attempts by outcome",
	},
	[]string{"outcome"},
)

// DepositsProcessed counts client deposits by outcome (deposited,
// not_found, limit_exceeded, error).
var DepositsProcessed = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ledgerd_deposits_total",
		Help: "Total number of deposit attempts by outcome",
	},
	[]string{"outcome"},
)

// LedgerTxnLatency records latency of ledger write transactions.
var LedgerTxnLatency = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "ledgerd_transaction_latency_seconds",
		Help:    "Latency in seconds of ledger write transactions",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// Database connection pool metrics
var (
	DBOpenConns = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ledgerd_db_open_connections",
			Help: "Number of open connections in the DB pool",
		},
	)

	DBIdleConns = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ledgerd_db_idle_connections",
			Help: "Number of idle connections in the DB pool",
		},
	)

	DBInUseConns = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ledgerd_db_in_use_connections",
			Help: "Number of in-use connections in the DB pool",
		},
	)
)

func init() {
	prometheus.MustRegister(PaymentsProcessed, DepositsProcessed, LedgerTxnLatency)
	prometheus.MustRegister(DBOpenConns, DBIdleConns, DBInUseConns)
}

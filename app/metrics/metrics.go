package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	txResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "namereg",
			Subsystem: "tx",
			Name:      "results_total",
			Help:      "Delivered transactions classified by message type and result",
		},
		[]string{"msg_type", "result"},
	)

	txDeliverSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "namereg",
			Subsystem: "tx",
			Name:      "deliver_seconds",
			Help:      "Time spent delivering a transaction, signature check included",
			Buckets:   []float64{0.0005, 0.001, 0.002, 0.005, 0.01, 0.02, 0.05, 0.1},
		},
		[]string{"msg_type"},
	)

	registrations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "namereg",
			Subsystem: "dns",
			Name:      "registrations_total",
			Help:      "Committed domain registrations",
		},
	)

	withdrawals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "namereg",
			Subsystem: "dns",
			Name:      "withdrawals_total",
			Help:      "Committed domain withdrawals by reason (owner, admin, expired)",
		},
		[]string{"reason"},
	)

	feesCollected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "namereg",
			Subsystem: "dns",
			Name:      "fees_collected_total",
			Help:      "Registration fees paid to the admin account, in base denom units",
		},
	)

	blockHeight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "namereg",
			Subsystem: "chain",
			Name:      "height",
			Help:      "Height of the last committed block",
		},
	)

	blockOps = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "namereg",
			Subsystem: "dns",
			Name:      "block_ops",
			Help:      "Registry operations applied in the last committed block",
		},
	)

	rateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "namereg",
			Subsystem: "tx",
			Name:      "rate_limited_total",
			Help:      "Transactions rejected by the rate limiter, by limit",
		},
		[]string{"limit"},
	)
)

func ensureRegistered() {
	registerOnce.Do(func() {
		prometheus.MustRegister(txResults, txDeliverSeconds, registrations, withdrawals, feesCollected, blockHeight, blockOps, rateLimited)
	})
}

func ObserveTx(msgType, result string, took time.Duration) {
	ensureRegistered()
	txResults.WithLabelValues(msgType, result).Inc()
	txDeliverSeconds.WithLabelValues(msgType).Observe(took.Seconds())
}

func IncRegistrations() {
	ensureRegistered()
	registrations.Inc()
}

func IncWithdrawals(reason string) {
	ensureRegistered()
	withdrawals.WithLabelValues(reason).Inc()
}

func AddFees(amount float64) {
	ensureRegistered()
	feesCollected.Add(amount)
}

func SetHeight(h int64) {
	ensureRegistered()
	blockHeight.Set(float64(h))
}

func SetBlockOps(n uint64) {
	ensureRegistered()
	blockOps.Set(float64(n))
}

func IncRateLimited(limit string) {
	ensureRegistered()
	rateLimited.WithLabelValues(limit).Inc()
}

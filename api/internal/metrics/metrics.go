package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Monitoring cycle
	CyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "walletwatch",
		Subsystem: "monitor",
		Name:      "cycles_total",
		Help:      "Total monitoring cycles run",
	})

	CyclesSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "walletwatch",
		Subsystem: "monitor",
		Name:      "cycles_skipped_total",
		Help:      "Scheduler ticks dropped because a cycle was still running",
	})

	CycleLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "walletwatch",
		Subsystem: "monitor",
		Name:      "cycle_duration_seconds",
		Help:      "Monitoring cycle duration",
		Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	})

	WalletsSynced = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "walletwatch",
		Subsystem: "monitor",
		Name:      "wallet_syncs_total",
		Help:      "Wallet synchronizations by result",
	}, []string{"result"})

	TransactionsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "walletwatch",
		Subsystem: "monitor",
		Name:      "transactions_ingested_total",
		Help:      "New transactions stored",
	})

	// Alerts
	AlertsFired = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "walletwatch",
		Subsystem: "alerts",
		Name:      "fired_total",
		Help:      "Alerts fired by type",
	}, []string{"alert_type"})

	AlertsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "walletwatch",
		Subsystem: "alerts",
		Name:      "skipped_total",
		Help:      "Alerts skipped because of a malformed threshold",
	})

	// Chain provider
	ProviderLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "walletwatch",
		Subsystem: "provider",
		Name:      "request_duration_seconds",
		Help:      "Chain provider call duration",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"op"})

	ProviderErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "walletwatch",
		Subsystem: "provider",
		Name:      "errors_total",
		Help:      "Chain provider call failures",
	}, []string{"op"})
)

const (
	ResultOK     = "ok"
	ResultFailed = "failed"
	ResultLocked = "locked"
)

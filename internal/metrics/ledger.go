package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ledgerRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blocktree",
		Subsystem: "ledger",
		Name:      "requests_total",
		Help:      "Count of ledger requests by mode and status.",
	}, []string{"mode", "status"})
	ledgerRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blocktree",
		Subsystem: "ledger",
		Name:      "request_duration_seconds",
		Help:      "Duration of ledger requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"mode", "status"})
)

// Ledger tracks metrics for the ledger service.
type Ledger struct{}

// NewLedger creates a Ledger metrics collector.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Observe records a ledger request. An empty mode is reported as "unknown".
func (m Ledger) Observe(mode string, err error, started time.Time) {
	if mode == "" {
		mode = "unknown"
	}
	status := statusOf(err)
	ledgerRequestsTotal.WithLabelValues(mode, status).Inc()
	ledgerRequestDuration.WithLabelValues(mode, status).Observe(time.Since(started).Seconds())
}

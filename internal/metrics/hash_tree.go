// Package metrics exposes application metrics collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	hashTreeInsertTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blocktree",
		Subsystem: "hash_tree",
		Name:      "insert_total",
		Help:      "Count of node insert attempts.",
	}, []string{"status"})

	hashTreeInsertDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blocktree",
		Subsystem: "hash_tree",
		Name:      "insert_duration_seconds",
		Help:      "Duration of node inserts.",
		Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05, .1},
	}, []string{"status"})

	hashTreeVerifyTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blocktree",
		Subsystem: "hash_tree",
		Name:      "verify_total",
		Help:      "Count of hash verifications by operation and result.",
	}, []string{"operation", "result"})

	hashTreeVerifyDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blocktree",
		Subsystem: "hash_tree",
		Name:      "verify_duration_seconds",
		Help:      "Duration of hash verifications.",
		Buckets:   prometheus.ExponentialBuckets(.00001, 4, 10),
	}, []string{"operation", "result"})

	hashTreeNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "blocktree",
		Subsystem: "hash_tree",
		Name:      "nodes",
		Help:      "Number of committed nodes, root included.",
	})
)

// HashTree tracks metrics for the hash-linked tree.
type HashTree struct{}

// NewHashTree creates a HashTree metrics collector.
func NewHashTree() *HashTree {
	return &HashTree{}
}

// ObserveInsert records an insert attempt outcome and duration.
func (m HashTree) ObserveInsert(err error, started time.Time) {
	status := statusOf(err)
	hashTreeInsertTotal.WithLabelValues(status).Inc()
	hashTreeInsertDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
}

// ObserveVerify records a verification result.
func (m HashTree) ObserveVerify(operation string, ok bool, started time.Time) {
	result := "valid"
	if !ok {
		result = "invalid"
	}
	hashTreeVerifyTotal.WithLabelValues(operation, result).Inc()
	hashTreeVerifyDuration.WithLabelValues(operation, result).Observe(time.Since(started).Seconds())
}

// SetNodes records the current node count.
func (m HashTree) SetNodes(count int) {
	hashTreeNodes.Set(float64(count))
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

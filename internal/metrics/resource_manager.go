package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	resourceLoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blocktree",
		Subsystem: "resource_manager",
		Name:      "loads_total",
		Help:      "Count of resource loads by class and status.",
	}, []string{"class", "status"})
	resourceLoadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blocktree",
		Subsystem: "resource_manager",
		Name:      "load_duration_seconds",
		Help:      "Duration of resource loads.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"class", "status"})
	resourceRegistered = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "blocktree",
		Subsystem: "resource_manager",
		Name:      "registered",
		Help:      "Number of registered resources.",
	})
)

// ResourceManager tracks metrics for resource loading.
type ResourceManager struct{}

// NewResourceManager creates a ResourceManager metrics collector.
func NewResourceManager() *ResourceManager {
	return &ResourceManager{}
}

// ObserveLoad records a single resource load.
func (m ResourceManager) ObserveLoad(class string, err error, started time.Time) {
	if class == "" {
		class = "unknown"
	}
	status := statusOf(err)
	resourceLoadsTotal.WithLabelValues(class, status).Inc()
	resourceLoadDuration.WithLabelValues(class, status).Observe(time.Since(started).Seconds())
}

// SetRegistered records the number of registered resources.
func (m ResourceManager) SetRegistered(count int) {
	resourceRegistered.Set(float64(count))
}

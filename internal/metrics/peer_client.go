package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	peerRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blocktree",
		Subsystem: "peer_client",
		Name:      "requests_total",
		Help:      "Count of approval requests sent to peers.",
	}, []string{"peer", "result"})
	peerRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blocktree",
		Subsystem: "peer_client",
		Name:      "request_duration_seconds",
		Help:      "Duration of approval requests sent to peers.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"peer", "result"})
)

// PeerClient tracks metrics for approval requests to a single peer.
type PeerClient struct {
	peer string
}

// NewPeerClient constructs a metrics collector for one peer.
func NewPeerClient(peer string) *PeerClient {
	if peer == "" {
		peer = "unknown"
	}
	return &PeerClient{peer: peer}
}

// Observe records one approval request outcome.
func (m PeerClient) Observe(approved bool, err error, started time.Time) {
	result := "approved"
	switch {
	case err != nil:
		result = "error"
	case !approved:
		result = "rejected"
	}
	peerRequestsTotal.WithLabelValues(m.peer, result).Inc()
	peerRequestDuration.WithLabelValues(m.peer, result).Observe(time.Since(started).Seconds())
}

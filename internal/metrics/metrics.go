// Package metrics holds the Prometheus collectors for the scoring pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "colorscore"

// Scoring records arbitration outcomes. A nil *Scoring is a valid no-op recorder.
type Scoring struct {
	Requests       *prometheus.CounterVec
	CacheLookups   *prometheus.CounterVec
	RemoteFailures *prometheus.CounterVec
	RemoteDuration prometheus.Histogram
}

// NewScoring registers the collectors on reg. A nil reg leaves them unregistered.
func NewScoring(reg prometheus.Registerer) *Scoring {
	f := promauto.With(reg)
	return &Scoring{
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scoring_requests_total",
			Help:      "Scored descriptions by result source.",
		}, []string{"source"}),
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Response cache lookups by result.",
		}, []string{"result"}),
		RemoteFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remote_failures_total",
			Help:      "Remote scorer failures that fell back to the heuristic.",
		}, []string{"reason"}),
		RemoteDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "remote_duration_seconds",
			Help:      "Latency of remote scorer calls.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func (m *Scoring) ObserveSource(source string) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(source).Inc()
}

func (m *Scoring) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

func (m *Scoring) ObserveRemoteFailure(reason string) {
	if m == nil {
		return
	}
	m.RemoteFailures.WithLabelValues(reason).Inc()
}

func (m *Scoring) ObserveRemoteDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.RemoteDuration.Observe(d.Seconds())
}

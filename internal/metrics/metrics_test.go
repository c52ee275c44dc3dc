package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoringCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewScoring(reg)

	m.ObserveSource("remote")
	m.ObserveSource("heuristic")
	m.ObserveSource("heuristic")
	m.ObserveCache(true)
	m.ObserveCache(false)
	m.ObserveCache(false)
	m.ObserveRemoteFailure("timeout")
	m.ObserveRemoteDuration(150 * time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("remote")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("heuristic")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RemoteFailures.WithLabelValues("timeout")))

	n, err := testutil.GatherAndCount(reg, "colorscore_remote_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNilScoringIsNoop(t *testing.T) {
	var m *Scoring
	assert.NotPanics(t, func() {
		m.ObserveSource("remote")
		m.ObserveCache(true)
		m.ObserveRemoteFailure("status")
		m.ObserveRemoteDuration(time.Second)
	})
}

func TestUnregisteredScoring(t *testing.T) {
	m := NewScoring(nil)
	m.ObserveSource("heuristic")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("heuristic")))
}

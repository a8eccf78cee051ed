package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_RegistersCollectors(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()
	require.NotNil(t, m)

	m.CounterRequests.With(prometheus.Labels{"method": "GET", "status": "200"}).Inc()
	m.CounterComments.Inc()
	m.CounterThreadCache.WithLabelValues("hit").Inc()
	m.HistRequestDuration.Observe(0.01)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterComments))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterRequests.WithLabelValues("GET", "200")))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "backend_test_server_request")
	assert.Contains(t, names, "backend_test_server_comments")
	assert.Contains(t, names, "backend_test_server_request_duration_seconds")
}

func TestNewManager_TwiceOnSameRegistryPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewManager("a", "b", reg)
	assert.Panics(t, func() { NewManager("a", "b", reg) })
}

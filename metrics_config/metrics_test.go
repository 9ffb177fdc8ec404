package metrics_config

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterRegistration(t *testing.T) {
	EnableMetrics()
	counter := NewCounterVec("test_events", "events seen by the test", "kind")
	counter.WithLabelValues("a").Inc()
	counter.WithLabelValues("a").Inc()
	assert.Equal(t, 2.0, testutil.ToFloat64(counter.WithLabelValues("a")))

	count, err := testutil.GatherAndCount(Registry, "bodhi_test_events")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Registering the same name again is tolerated.
	NewCounterVec("test_events", "events seen by the test", "kind")
}

func TestDisabledMetricsStayUnregistered(t *testing.T) {
	DisableMetrics()
	defer EnableMetrics()
	require.False(t, MetricsEnabled())

	counter := NewCounter("test_disabled", "never registered")
	counter.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(counter))

	count, err := testutil.GatherAndCount(Registry, "bodhi_test_disabled")
	require.NoError(t, err)
	assert.Zero(t, count)
}

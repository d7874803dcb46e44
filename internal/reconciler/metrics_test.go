package reconciler

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Register(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics()

	require.NoError(t, m.Register(reg))
	assert.Error(t, m.Register(reg), "registering twice is rejected")
}

func TestMetrics_Forget(t *testing.T) {
	m := NewMetrics()
	require.NoError(t, m.Register(prometheus.NewRegistry()))

	m.recordSuccess("team-a", "platform", 3, 1, time.Unix(1700000000, 0), time.Second)
	m.recordSuccess("team-b", "infra", 1, 0, time.Unix(1700000000, 0), time.Second)
	assert.Equal(t, 2, testutil.CollectAndCount(m.groupMembers))

	m.forget("team-a", "platform")

	assert.Equal(t, 1, testutil.CollectAndCount(m.groupMembers))
	assert.Equal(t, 1, testutil.CollectAndCount(m.lastSuccess))
	assert.Equal(t, 0, testutil.CollectAndCount(m.rejectedMembers))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.reconcileTotal.WithLabelValues("success")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.recordSuccess("ns", "name", 1, 0, time.Now(), time.Second)
		m.recordFailure(StageFetching, CategoryTransport, time.Second)
		m.forget("ns", "name")
	})
}

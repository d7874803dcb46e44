package reconciler

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"az-group-manager/pkg/logging"
)

const metricsNamespace = "az_group_manager"

// Metrics tracks reconciliation outcomes for monitoring and alerting.
//
// A stalled last_success_timestamp_seconds for a manager is the signal that
// its group stopped syncing; failures_total tells which stage and category.
type Metrics struct {
	reconcileTotal   *prometheus.CounterVec
	failuresTotal    *prometheus.CounterVec
	rejectedMembers  *prometheus.CounterVec
	groupMembers     *prometheus.GaugeVec
	lastSuccess      *prometheus.GaugeVec
	reconcileSeconds prometheus.Histogram
}

// NewMetrics creates the collectors. They are not registered yet.
func NewMetrics() *Metrics {
	return &Metrics{
		reconcileTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "reconcile_total",
			Help:      "Reconciliation cycles by result.",
		}, []string{"result"}),
		failuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "reconcile_failures_total",
			Help:      "Failed reconciliation cycles by stage and error category.",
		}, []string{"stage", "category"}),
		rejectedMembers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rejected_members_total",
			Help:      "Directory members left out of an AzureGroup because of missing fields.",
		}, []string{"namespace", "manager"}),
		groupMembers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "group_members",
			Help:      "Members written to the AzureGroup of a manager in the last successful cycle.",
		}, []string{"namespace", "manager"}),
		lastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful cycle of a manager.",
		}, []string{"namespace", "manager"}),
		reconcileSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "reconcile_duration_seconds",
			Help:      "Duration of reconciliation cycles.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Register adds every collector to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.reconcileTotal,
		m.failuresTotal,
		m.rejectedMembers,
		m.groupMembers,
		m.lastSuccess,
		m.reconcileSeconds,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) recordSuccess(namespace, manager string, accepted, rejected int, at time.Time, took time.Duration) {
	if m == nil {
		return
	}
	m.reconcileTotal.WithLabelValues("success").Inc()
	m.groupMembers.WithLabelValues(namespace, manager).Set(float64(accepted))
	m.lastSuccess.WithLabelValues(namespace, manager).Set(float64(at.Unix()))
	if rejected > 0 {
		m.rejectedMembers.WithLabelValues(namespace, manager).Add(float64(rejected))
	}
	m.reconcileSeconds.Observe(took.Seconds())
}

func (m *Metrics) recordFailure(stage Stage, category Category, took time.Duration) {
	if m == nil {
		return
	}
	m.reconcileTotal.WithLabelValues("failure").Inc()
	m.failuresTotal.WithLabelValues(string(stage), string(category)).Inc()
	m.reconcileSeconds.Observe(took.Seconds())
}

// forget drops the per-manager series of a deleted manager.
func (m *Metrics) forget(namespace, manager string) {
	if m == nil {
		return
	}
	m.groupMembers.DeleteLabelValues(namespace, manager)
	m.lastSuccess.DeleteLabelValues(namespace, manager)
	m.rejectedMembers.DeleteLabelValues(namespace, manager)
	logging.Debug("ReconcilerMetrics", "Dropped series for %s/%s", namespace, manager)
}

package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type PrometheusMetrics struct {
	transactionsCreated *prometheus.CounterVec
	transactionsDeleted prometheus.Counter
	transactionsCleared prometheus.Counter
	validationRejected  *prometheus.CounterVec
	budgetsUpserted     *prometheus.CounterVec
	budgetsDeleted      prometheus.Counter
	storeSaveFailures   *prometheus.CounterVec
	operationDuration   *prometheus.HistogramVec
	balance             prometheus.Gauge
	transactionCount    prometheus.Gauge
}

// NewPrometheusMetrics registers the tracker metrics with reg
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsRecorderInterface {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		transactionsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_transactions_created_total",
				Help: "Total number of transactions recorded",
			},
			[]string{"type"},
		),
		transactionsDeleted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "tracker_transactions_deleted_total",
				Help: "Total number of transactions deleted individually",
			},
		),
		transactionsCleared: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "tracker_transactions_cleared_total",
				Help: "Total number of clear-all operations",
			},
		),
		validationRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_validation_rejected_total",
				Help: "Total number of inputs rejected by validation",
			},
			[]string{"entity", "field"},
		),
		budgetsUpserted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_budgets_upserted_total",
				Help: "Total number of budget upserts",
			},
			[]string{"action"},
		),
		budgetsDeleted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "tracker_budgets_deleted_total",
				Help: "Total number of budgets deleted",
			},
		),
		storeSaveFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_store_save_failures_total",
				Help: "Total number of failed writes to the key/value store",
			},
			[]string{"collection"},
		),
		operationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tracker_operation_duration_milliseconds",
				Help:    "Duration of store mutations and aggregations in milliseconds",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
			},
			[]string{"operation"},
		),
		balance: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "tracker_balance",
				Help: "All-time balance of the stored transactions",
			},
		),
		transactionCount: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "tracker_transactions",
				Help: "Number of stored transactions",
			},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "transaction.created":
		m.transactionsCreated.WithLabelValues(tags["type"]).Inc()
	case "transaction.deleted":
		m.transactionsDeleted.Inc()
	case "transaction.cleared":
		m.transactionsCleared.Inc()
	case "validation.rejected":
		m.validationRejected.WithLabelValues(tags["entity"], tags["field"]).Inc()
	case "budget.upserted":
		m.budgetsUpserted.WithLabelValues(tags["action"]).Inc()
	case "budget.deleted":
		m.budgetsDeleted.Inc()
	case "store.save.failed":
		m.storeSaveFailures.WithLabelValues(tags["collection"]).Inc()
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	m.operationDuration.WithLabelValues(name).Observe(float64(duration.Microseconds()) / 1000)
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "balance":
		m.balance.Set(value)
	case "transactions":
		m.transactionCount.Set(value)
	}
}

type noopMetrics struct{}

func (noopMetrics) IncrementCounter(string, map[string]string)     {}
func (noopMetrics) RecordProcessingTime(string, time.Duration)     {}
func (noopMetrics) RecordGauge(string, float64, map[string]string) {}

func metricsOrNoop(metrics MetricsRecorderInterface) MetricsRecorderInterface {
	if metrics == nil {
		return noopMetrics{}
	}
	return metrics
}

package metrics

import (
	"sync"
	"time"

	"aptos-wallet/go-adapter/pkg/models"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "wallet_adapter"

type opMetric struct {
	Count   int
	Errors  int
	TotalNs int64
	MaxNs   int64
	LastNs  int64
}

// Recorder keeps an in-process snapshot of adapter operations and mirrors
// every update into Prometheus collectors.
type Recorder struct {
	mu             sync.RWMutex
	errorCounters  map[string]int
	opMetrics      map[string]*opMetric
	accountChanges map[string]int
	lastUpdatedAt  time.Time

	operations   *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	errors       *prometheus.CounterVec
	accountEvent *prometheus.CounterVec
}

// NewRecorder registers its collectors on reg. A nil reg keeps the collectors
// unregistered, which is what tests usually want.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		errorCounters: map[string]int{
			"api":     0,
			"network": 0,
			"crypto":  0,
			"storage": 0,
		},
		opMetrics:      map[string]*opMetric{},
		accountChanges: map[string]int{},
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Adapter operations by outcome.",
		}, []string{"operation", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_seconds",
			Help:      "Adapter operation latency including the provider round-trip.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 4, 8),
		}, []string{"operation"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Adapter errors by category.",
		}, []string{"category"}),
		accountEvent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "account_changes_total",
			Help:      "Provider account-change notifications by kind.",
		}, []string{"kind"}),
	}
	if reg == nil {
		return r, nil
	}
	for _, c := range []prometheus.Collector{r.operations, r.latency, r.errors, r.accountEvent} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Recorder) RecordOp(operation string, started time.Time) {
	if r == nil {
		return
	}
	elapsed := time.Since(started)
	latency := elapsed.Nanoseconds()
	r.mu.Lock()
	metric := r.opLocked(operation)
	metric.Count++
	metric.TotalNs += latency
	metric.LastNs = latency
	if latency > metric.MaxNs {
		metric.MaxNs = latency
	}
	r.lastUpdatedAt = time.Now().UTC()
	r.mu.Unlock()

	r.operations.WithLabelValues(operation, "ok").Inc()
	r.latency.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (r *Recorder) RecordOpError(operation, category string, started time.Time) {
	if r == nil {
		return
	}
	elapsed := time.Since(started)
	r.mu.Lock()
	metric := r.opLocked(operation)
	metric.Errors++
	r.errorCounters[category] = r.errorCounters[category] + 1
	r.lastUpdatedAt = time.Now().UTC()
	r.mu.Unlock()

	r.operations.WithLabelValues(operation, "error").Inc()
	r.latency.WithLabelValues(operation).Observe(elapsed.Seconds())
	r.errors.WithLabelValues(category).Inc()
}

func (r *Recorder) RecordAccountChange(kind string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.accountChanges[kind]++
	r.lastUpdatedAt = time.Now().UTC()
	r.mu.Unlock()
	r.accountEvent.WithLabelValues(kind).Inc()
}

func (r *Recorder) opLocked(operation string) *opMetric {
	metric, ok := r.opMetrics[operation]
	if !ok {
		metric = &opMetric{}
		r.opMetrics[operation] = metric
	}
	return metric
}

func (r *Recorder) Snapshot() models.MetricsSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counters := make(map[string]int, len(r.errorCounters))
	for k, v := range r.errorCounters {
		counters[k] = v
	}
	changes := make(map[string]int, len(r.accountChanges))
	for k, v := range r.accountChanges {
		changes[k] = v
	}
	opStats := make(map[string]models.OperationMetric, len(r.opMetrics))
	for name, metric := range r.opMetrics {
		avg := int64(0)
		if metric.Count > 0 {
			avg = metric.TotalNs / int64(metric.Count) / int64(time.Millisecond)
		}
		opStats[name] = models.OperationMetric{
			Count:         metric.Count,
			Errors:        metric.Errors,
			AvgLatencyMs:  avg,
			MaxLatencyMs:  metric.MaxNs / int64(time.Millisecond),
			LastLatencyMs: metric.LastNs / int64(time.Millisecond),
		}
	}
	return models.MetricsSnapshot{
		ErrorCounters:  counters,
		OperationStats: opStats,
		AccountChanges: changes,
		LastUpdatedAt:  r.lastUpdatedAt,
	}
}

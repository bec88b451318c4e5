package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"reservation/shared/constant"
)

const (
	ResultCreated       = "created"
	ResultMerged        = "merged"
	ResultAdmitted      = "admitted"
	ResultHeldByAnother = "held_by_another"
	ResultSlotConflict  = "slot_conflict"
	ResultLockTimeout   = "lock_timeout"
	ResultError         = "error"
)

type Metrics struct {
	Registry *prometheus.Registry

	HoldAcquisitions *prometheus.CounterVec
	HoldsPurged      prometheus.Counter
	Admissions       *prometheus.CounterVec
	Cancellations    *prometheus.CounterVec
	LockWait         *prometheus.HistogramVec
	LockTimeouts     prometheus.Counter
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
}

// New registers every collector on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		HoldAcquisitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: constant.MetricsNamespace,
			Name:      "hold_acquisitions_total",
			Help:      "Hold acquisition attempts by result.",
		}, []string{"result"}),

		HoldsPurged: factory.NewCounter(prometheus.CounterOpts{
			Namespace: constant.MetricsNamespace,
			Name:      "holds_purged_total",
			Help:      "Expired holds removed by the purge worker.",
		}),

		Admissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: constant.MetricsNamespace,
			Name:      "booking_admissions_total",
			Help:      "Booking admission attempts by result.",
		}, []string{"result"}),

		Cancellations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: constant.MetricsNamespace,
			Name:      "cancellations_total",
			Help:      "Cancellations by penalty tier.",
		}, []string{"penalty_rate"}),

		LockWait: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: constant.MetricsNamespace,
			Name:      "room_lock_wait_seconds",
			Help:      "Time spent waiting for the per-room lock.",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5, 15, 30, 60},
		}, []string{"strategy"}),

		LockTimeouts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: constant.MetricsNamespace,
			Name:      "room_lock_timeouts_total",
			Help:      "Per-room lock waits that exceeded the timeout.",
		}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: constant.MetricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),

		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: constant.MetricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *Metrics) HoldResult(result string) {
	m.HoldAcquisitions.WithLabelValues(result).Inc()
}

func (m *Metrics) AdmissionResult(result string) {
	m.Admissions.WithLabelValues(result).Inc()
}

func (m *Metrics) Cancelled(penaltyRate string) {
	m.Cancellations.WithLabelValues(penaltyRate).Inc()
}

func (m *Metrics) ObserveLockWait(strategy string, d time.Duration) {
	m.LockWait.WithLabelValues(strategy).Observe(d.Seconds())
}

func (m *Metrics) Purged(n int64) {
	m.HoldsPurged.Add(float64(n))
}

package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the recognition pipeline.
type Metrics struct {
	Recognitions        *prometheus.CounterVec
	RecognitionDuration prometheus.Histogram
	CheckinsRecorded    prometheus.Counter
	CheckinsSuppressed  prometheus.Counter
	EnrolledEmployees   prometheus.Gauge
}

// Recognition outcomes for the recognitions_total counter.
const (
	OutcomeMatched      = "matched"
	OutcomeUnrecognized = "unrecognized"
	OutcomeNoFace       = "no_face"
	OutcomeMultiFace    = "multiple_faces"
	OutcomeInvalidImage = "invalid_image"
	OutcomeError        = "error"
)

// NewMetrics registers the instruments on the given registerer. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Recognitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ponto",
			Name:      "recognitions_total",
			Help:      "Recognition attempts by outcome",
		}, []string{"outcome"}),
		RecognitionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ponto",
			Name:      "recognition_duration_seconds",
			Help:      "End-to-end recognition latency",
			Buckets:   prometheus.DefBuckets,
		}),
		CheckinsRecorded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "ponto",
			Name:      "checkins_recorded_total",
			Help:      "Check-ins written to the attendance ledger",
		}),
		CheckinsSuppressed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "ponto",
			Name:      "checkins_suppressed_total",
			Help:      "Check-ins suppressed by the cooldown window",
		}),
		EnrolledEmployees: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "ponto",
			Name:      "enrolled_employees",
			Help:      "Employees with an enrolled face embedding",
		}),
	}
}

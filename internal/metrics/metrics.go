package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)
)

// Garden Metrics
var (
	PlantsPlanted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePlantsPlanted,
			Help: HelpTextPlantsPlanted,
		},
		[]string{LabelRarity},
	)

	PlantsHarvested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePlantsHarvested,
			Help: HelpTextPlantsHarvested,
		},
		[]string{LabelType},
	)

	PlantsWithered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePlantsWithered,
			Help: HelpTextPlantsWithered,
		},
	)

	PlantsDestroyed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePlantsDestroyed,
			Help: HelpTextPlantsDestroyed,
		},
	)

	Waterings = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameWaterings,
			Help: HelpTextWaterings,
		},
	)

	RejectedInteractions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRejectedInteractions,
			Help: HelpTextRejectedInteractions,
		},
		[]string{LabelCommand, LabelReason},
	)

	CoinsEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsEarned,
			Help: HelpTextCoinsEarned,
		},
	)

	CoinsBalance = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameCoinsBalance,
			Help: HelpTextCoinsBalance,
		},
	)

	PetalsBalance = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNamePetalsBalance,
			Help: HelpTextPetalsBalance,
		},
		[]string{LabelType},
	)

	ActiveTimers = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricNameActiveTimers,
			Help: HelpTextActiveTimers,
		},
		[]string{LabelKind},
	)

	SavesCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSavesCompleted,
			Help: HelpTextSavesCompleted,
		},
	)
)

// Recorder feeds command-level metrics that have no event of their own
type Recorder struct{}

// NewRecorder creates a recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// RecordRejection counts a rejected grid command
func (*Recorder) RecordRejection(command, reason string) {
	RejectedInteractions.WithLabelValues(command, reason).Inc()
}

// SetActiveTimers publishes the armed timer counts
func (*Recorder) SetActiveTimers(growth, wither int) {
	ActiveTimers.WithLabelValues(TimerKindGrowth).Set(float64(growth))
	ActiveTimers.WithLabelValues(TimerKindWither).Set(float64(wither))
}

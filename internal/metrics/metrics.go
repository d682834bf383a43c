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

// Session Metrics
var (
	BetsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBetsTotal,
			Help: HelpTextBetsTotal,
		},
		[]string{LabelResult},
	)

	BetExecutionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameBetExecutionDuration,
			Help:    HelpTextBetExecutionDuration,
			Buckets: BetLatencyBuckets,
		},
	)

	SessionBalance = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSessionBalance,
			Help: HelpTextSessionBalance,
		},
	)

	SessionStopsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSessionStopsTotal,
			Help: HelpTextSessionStopsTotal,
		},
		[]string{LabelReason},
	)
)

// Verifier Metrics
var (
	VerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameVerificationsTotal,
			Help: HelpTextVerificationsTotal,
		},
		[]string{LabelStatus},
	)
)

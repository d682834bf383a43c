package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "dicemate_http_requests_total"
	MetricNameHTTPRequestDuration  = "dicemate_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "dicemate_http_requests_in_flight"

	MetricNameBetsTotal            = "dicemate_bets_total"
	MetricNameBetExecutionDuration = "dicemate_bet_execution_seconds"
	MetricNameSessionBalance       = "dicemate_session_balance"
	MetricNameSessionStopsTotal    = "dicemate_session_stops_total"
	MetricNameVerificationsTotal   = "dicemate_verifications_total"
)

// Help texts
const (
	HelpTextHTTPRequestsTotal    = "Total HTTP requests processed"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "HTTP requests currently being served"

	HelpTextBetsTotal            = "Settled bets by result"
	HelpTextBetExecutionDuration = "Time spent executing one bet, live or simulated"
	HelpTextSessionBalance       = "Current session balance in the session currency"
	HelpTextSessionStopsTotal    = "Session terminations by stop reason"
	HelpTextVerificationsTotal   = "Provably-fair verifications by status"
)

// Labels
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelResult = "result"
	LabelReason = "reason"
)

// Label values
const (
	ResultWin  = "win"
	ResultLoss = "loss"
)

// HTTPLatencyBuckets covers the health/metrics surface, which should be fast
var HTTPLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}

// BetLatencyBuckets covers simulated bets (microseconds) through live
// round-trips to the site (seconds)
var BetLatencyBuckets = prometheus.ExponentialBuckets(0.0001, 4, 10)

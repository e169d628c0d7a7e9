package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "plinko_http_requests_total"
	MetricNameHTTPRequestDuration  = "plinko_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "plinko_http_requests_in_flight"

	MetricNameDropsTotal      = "plinko_drops_total"
	MetricNameStakeTotal      = "plinko_stake_total"
	MetricNamePayoutTotal     = "plinko_payout_total"
	MetricNameLandingsTotal   = "plinko_landings_total"
	MetricNameDropErrorsTotal = "plinko_drop_errors_total"
	MetricNameTierSelections  = "plinko_tier_selections_total"
)

// Help texts
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Number of HTTP requests currently being served"

	HelpTextDropsTotal      = "Settled drops per tier"
	HelpTextStakeTotal      = "Sum of bets staked per tier"
	HelpTextPayoutTotal     = "Sum of payouts per tier"
	HelpTextLandingsTotal   = "Landings per tier and slot"
	HelpTextDropErrorsTotal = "Rejected drops per reason"
	HelpTextTierSelections  = "Active tier changes per tier"
)

// Labels
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelTier   = "tier"
	LabelSlot   = "slot"
	LabelReason = "reason"
)

// HTTPLatencyBuckets covers quick JSON handlers
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1}

package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished = "events_published_total"
)

// Garden metric names
const (
	MetricNamePlantsPlanted        = "garden_plants_planted_total"
	MetricNamePlantsHarvested      = "garden_plants_harvested_total"
	MetricNamePlantsWithered       = "garden_plants_withered_total"
	MetricNamePlantsDestroyed      = "garden_plants_destroyed_total"
	MetricNameWaterings            = "garden_waterings_total"
	MetricNameRejectedInteractions = "garden_rejected_interactions_total"
	MetricNameCoinsEarned          = "garden_coins_earned_total"
	MetricNameCoinsBalance         = "garden_coins_balance"
	MetricNamePetalsBalance        = "garden_petals_balance"
	MetricNameActiveTimers         = "garden_active_timers"
	MetricNameSavesCompleted       = "garden_saves_completed_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished = "Total number of events published"
)

// Garden metric help text
const (
	HelpTextPlantsPlanted        = "Total number of seeds planted"
	HelpTextPlantsHarvested      = "Total number of plants harvested"
	HelpTextPlantsWithered       = "Total number of plants that withered"
	HelpTextPlantsDestroyed      = "Total number of withered plants cleared"
	HelpTextWaterings            = "Total number of successful waterings"
	HelpTextRejectedInteractions = "Total number of rejected grid commands"
	HelpTextCoinsEarned          = "Total coins earned from harvests"
	HelpTextCoinsBalance         = "Current coin balance"
	HelpTextPetalsBalance        = "Current petal count per type"
	HelpTextActiveTimers         = "Currently armed plant timers"
	HelpTextSavesCompleted       = "Total number of ledger saves"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelRarity  = "rarity"
	LabelCommand = "command"
	LabelReason  = "reason"
	LabelKind    = "kind"
)

// Timer kinds for the active timer gauge
const (
	TimerKindGrowth = "growth"
	TimerKindWither = "wither"
)

// unmatchedRoute labels requests no route matched
const unmatchedRoute = "unmatched"

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgPayloadDecodeFailed = "Event payload could not be decoded"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)

package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Namespace prefixes every museum metric
const Namespace = "binhi"

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

// Museum metric names
const (
	MetricNameAdoptions             = "adoptions_total"
	MetricNameAdoptionFailures      = "adoption_failures_total"
	MetricNameQuestAnswers          = "quest_answers_total"
	MetricNameQuestsCompleted       = "quests_completed_total"
	MetricNameBadgesUnlocked        = "badges_unlocked_total"
	MetricNameLevelUps              = "level_ups_total"
	MetricNameTokensAwarded         = "tokens_awarded_total"
	MetricNamePesosDonated          = "pesos_donated_total"
	MetricNameTransactionsConfirmed = "transactions_confirmed_total"
	MetricNameActiveCheckouts       = "active_checkouts"
	MetricNameSSEClients            = "sse_clients"
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

// Museum metric help text
const (
	HelpTextAdoptions             = "Completed NFT adoptions"
	HelpTextAdoptionFailures      = "Checkouts that failed during processing"
	HelpTextQuestAnswers          = "Quest answers by result"
	HelpTextQuestsCompleted       = "Provinces completed"
	HelpTextBadgesUnlocked        = "Badges unlocked"
	HelpTextLevelUps              = "Visitor level ups"
	HelpTextTokensAwarded         = "Kalikhasan tokens awarded"
	HelpTextPesosDonated          = "Pesos donated through adoptions"
	HelpTextTransactionsConfirmed = "Transactions that reached full confirmation"
	HelpTextActiveCheckouts       = "Checkout sessions not yet in a terminal step"
	HelpTextSSEClients            = "Connected event stream clients"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelRarity   = "rarity"
	LabelPayment  = "payment_method"
	LabelResult   = "result"
	LabelBadge    = "badge"
	LabelProvince = "province"
	LabelSource   = "source"
)

// Quest answer results
const (
	ResultCorrect = "correct"
	ResultWrong   = "wrong"
)

// UnmatchedRoute labels requests that hit no route
const UnmatchedRoute = "unmatched"

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgPayloadDecodeFailed = "Event payload could not be decoded for metrics"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)

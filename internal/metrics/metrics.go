package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsTotal,
			Help:      HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestDuration,
			Help:      HelpTextHTTPRequestDuration,
			Buckets:   HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameHTTPRequestsInFlight,
			Help:      HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameEventsPublished,
			Help:      HelpTextEventsPublished,
		},
		[]string{LabelType},
	)
)

// Museum Metrics
var (
	Adoptions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameAdoptions,
			Help:      HelpTextAdoptions,
		},
		[]string{LabelRarity, LabelPayment},
	)

	AdoptionFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameAdoptionFailures,
			Help:      HelpTextAdoptionFailures,
		},
	)

	QuestAnswers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameQuestAnswers,
			Help:      HelpTextQuestAnswers,
		},
		[]string{LabelResult},
	)

	QuestsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameQuestsCompleted,
			Help:      HelpTextQuestsCompleted,
		},
		[]string{LabelProvince},
	)

	BadgesUnlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameBadgesUnlocked,
			Help:      HelpTextBadgesUnlocked,
		},
		[]string{LabelBadge},
	)

	LevelUps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameLevelUps,
			Help:      HelpTextLevelUps,
		},
		[]string{LabelSource},
	)

	TokensAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameTokensAwarded,
			Help:      HelpTextTokensAwarded,
		},
	)

	PesosDonated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNamePesosDonated,
			Help:      HelpTextPesosDonated,
		},
	)

	TransactionsConfirmed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      MetricNameTransactionsConfirmed,
			Help:      HelpTextTransactionsConfirmed,
		},
	)

	ActiveCheckouts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameActiveCheckouts,
			Help:      HelpTextActiveCheckouts,
		},
	)

	SSEClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      MetricNameSSEClients,
			Help:      HelpTextSSEClients,
		},
	)
)

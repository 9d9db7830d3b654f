package metrics

import "github.com/prometheus/client_golang/prometheus"

// Query outcome labels.
const (
	OutcomeMatched  = "matched"
	OutcomeFallback = "fallback"
	OutcomeEmpty    = "empty"
)

// FAQ matching Prometheus metrics.
var (
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "faqdex",
			Name:      "queries_total",
			Help:      "Total number of chat queries by outcome",
		},
		[]string{"outcome"},
	)

	QuerySimilarity = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "faqdex",
			Name:      "query_best_similarity",
			Help:      "Best cosine similarity observed per query",
			Buckets:   []float64{0.05, 0.1, 0.15, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1},
		},
	)

	CorpusEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "faqdex",
			Name:      "corpus_entries",
			Help:      "Number of FAQ entries in the fitted corpus",
		},
	)

	VocabularySize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "faqdex",
			Name:      "vocabulary_size",
			Help:      "Number of terms in the fitted vocabulary",
		},
	)

	HistoryRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "faqdex",
			Name:      "history_records",
			Help:      "Number of retained conversation history records",
		},
	)
)

var queryMetricsRegistered bool

// RegisterQueryMetrics registers FAQ matching metrics. Must be called once from main.
func RegisterQueryMetrics() {
	if queryMetricsRegistered {
		return
	}
	prometheus.MustRegister(QueriesTotal)
	prometheus.MustRegister(QuerySimilarity)
	prometheus.MustRegister(CorpusEntries)
	prometheus.MustRegister(VocabularySize)
	prometheus.MustRegister(HistoryRecords)
	queryMetricsRegistered = true
}

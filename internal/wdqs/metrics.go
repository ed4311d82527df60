package wdqs

import "github.com/prometheus/client_golang/prometheus"

var (
	// queriesTotal counts outbound SPARQL queries by outcome
	// (ok, http_error, transport_error, decode_error).
	queriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "depicts",
			Subsystem: "wdqs",
			Name:      "queries_total",
			Help:      "Total number of SPARQL queries sent to the Wikidata Query Service.",
		},
		[]string{"outcome"},
	)

	// queryDuration records round-trip time of outbound queries in seconds.
	// WDQS queries routinely take several seconds, hence the wide buckets.
	queryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "depicts",
			Subsystem: "wdqs",
			Name:      "query_duration_seconds",
			Help:      "Duration of SPARQL queries sent to the Wikidata Query Service.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)
)

func init() {
	prometheus.MustRegister(queriesTotal, queryDuration)
}

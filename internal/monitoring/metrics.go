// internal/monitoring/metrics.go

// Package monitoring exposes Prometheus metrics for the scraping engine and
// an optional HTTP endpoint serving them. The engine only writes metrics; it
// never reads them back.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "eurofencing"

var (
	// PagesFetched counts fencer result pages walked, successful or not.
	PagesFetched = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pages_fetched_total",
		Help:      "Number of fencer search result pages fetched.",
	})

	// CombinationsCompleted counts ranking filter combinations executed.
	CombinationsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "combinations_completed_total",
		Help:      "Number of ranking filter combinations fetched.",
	})

	// RowsParsed counts rows successfully converted into records, by kind.
	RowsParsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rows_parsed_total",
		Help:      "Number of result rows parsed into records.",
	}, []string{"kind"})

	// ParseFailures counts rows rejected by the row parser, by kind.
	ParseFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "parse_failures_total",
		Help:      "Number of result rows that failed to parse.",
	}, []string{"kind"})

	// InteractionFailures counts page interactions that degraded a page or
	// combination to an empty result.
	InteractionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "interaction_failures_total",
		Help:      "Number of failed page interactions (element not found, wait timeout).",
	})

	// RecordsExported counts records written to export files, by format.
	RecordsExported = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_exported_total",
		Help:      "Number of records written to export files.",
	}, []string{"format"})

	// RecordsStored counts records handed to the storage backend, by kind.
	RecordsStored = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_stored_total",
		Help:      "Number of records written to storage.",
	}, []string{"kind"})
)

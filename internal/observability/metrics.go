package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	TableLoadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vocabgen_table_load_seconds",
		Help:    "Time spent loading a vocabulary snapshot table.",
		Buckets: prometheus.DefBuckets,
	}, []string{"table"})

	TableRowsLoaded = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vocabgen_table_rows_loaded",
		Help: "Number of rows retained from the last load of each table.",
	}, []string{"table"})

	GraphNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vocabgen_graph_nodes_total",
		Help: "Total number of concepts in the hierarchy graph.",
	})

	GraphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vocabgen_graph_edges_total",
		Help: "Total number of is-a edges in the hierarchy graph.",
	})

	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vocabgen_stage_seconds",
		Help:    "Time spent in each extraction pipeline stage.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	TermsEmitted = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vocabgen_terms_emitted",
		Help: "Number of terms emitted by the last extraction per mode.",
	}, []string{"mode"})

	DuplicateLabels = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vocabgen_duplicate_labels",
		Help: "Number of labels with more than one occurrence in the last comparison.",
	})

	GraphCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vocabgen_graph_cache_hits_total",
		Help: "Total number of runs that reused the persisted hierarchy graph.",
	})

	GraphCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vocabgen_graph_cache_misses_total",
		Help: "Total number of runs that rebuilt the hierarchy graph from the relationship table.",
	})
)

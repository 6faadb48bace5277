package engine

import "github.com/prometheus/client_golang/prometheus"

var (
	modelLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "inferd",
			Subsystem: "engine",
			Name:      "model_loads_total",
			Help:      "Total model load attempts by result",
		},
		[]string{"result"},
	)

	generations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "inferd",
			Subsystem: "engine",
			Name:      "generations_total",
			Help:      "Total completion generations by mode and result",
		},
		[]string{"mode", "result"},
	)

	generatedTokens = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "inferd",
			Subsystem: "engine",
			Name:      "generated_tokens_total",
			Help:      "Total tokens produced across all generations",
		},
	)

	generationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "inferd",
			Subsystem: "engine",
			Name:      "generation_duration_seconds",
			Help:      "Duration of completion generations in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		},
	)
)

func init() {
	prometheus.MustRegister(modelLoads, generations, generatedTokens, generationDuration)
}

package queryexec

import "github.com/prometheus/client_golang/prometheus"

// prometheusRegisterer is a thin alias kept local to this package so
// callers of WithMetricsRegisterer don't need to import
// prometheus.Registerer themselves just to pass one through.
type prometheusRegisterer = prometheus.Registerer

// metricsSet holds the executor's prometheus collectors. They are
// always created so the executor can record against them unconditionally;
// whether they are ever scraped depends on whether the caller registered
// them (WithMetricsRegisterer).
type metricsSet struct {
	queryTotal  *prometheus.CounterVec
	queryErrors *prometheus.CounterVec
}

func newMetricsSet() *metricsSet {
	return &metricsSet{
		queryTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mlmd",
			Subsystem: "query_executor",
			Name:      "queries_total",
			Help:      "Number of query templates executed, by template name.",
		}, []string{"template"}),
		queryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mlmd",
			Subsystem: "query_executor",
			Name:      "query_errors_total",
			Help:      "Number of query templates that returned a driver error, by template name.",
		}, []string{"template"}),
	}
}

// register is a no-op when reg is nil, matching the injected,
// optional-observability style (spec.md §1: logging/metrics config stays
// outside the core, but the core still accepts an injected sink).
func (m *metricsSet) register(reg prometheus.Registerer) {
	if reg == nil {
		return
	}
	reg.MustRegister(m.queryTotal, m.queryErrors)
}

package ddvalidate

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the counters a validator run increments. The core never
// creates or registers a registry itself (spec's concurrency section
// keeps the library embeddable without a global side effect); a caller
// such as the CLI constructs a Metrics value with NewMetrics and decides
// whether and where to register it. A nil *Metrics is safe to use
// everywhere below: every method is a no-op on a nil receiver, so
// instrumentation can be wired in optionally.
type Metrics struct {
	runs         *prometheus.CounterVec
	cacheOps     *prometheus.CounterVec
	compatChecks *prometheus.CounterVec
}

// NewMetrics builds an unregistered set of counters. Call Register to
// attach them to a prometheus.Registerer.
func NewMetrics() *Metrics {
	return &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ddvalidate",
			Subsystem: "validate",
			Name:      "reports_total",
			Help:      "Validation reports produced, by outcome.",
		}, []string{"outcome"}),
		cacheOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ddvalidate",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Term cache lookups, by result.",
		}, []string{"result"}),
		compatChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ddvalidate",
			Subsystem: "compat",
			Name:      "checks_total",
			Help:      "Update-compatibility checks performed, by outcome.",
		}, []string{"outcome"}),
	}
}

// Register attaches every counter to reg. Callers typically pass a
// dedicated prometheus.Registry rather than the global default, the way
// the rest of the retrieval pack's services do.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	if m == nil {
		return nil
	}
	for _, c := range []prometheus.Collector{m.runs, m.cacheOps, m.compatChecks} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObserveReport increments the outcome counter matching r's severity.
func (m *Metrics) ObserveReport(r *Report) {
	if m == nil || r == nil {
		return
	}
	m.runs.WithLabelValues(outcomeLabel(r.Status.Code)).Inc()
}

// ObserveBatch increments the outcome counter once per element of a
// BatchReport.
func (m *Metrics) ObserveBatch(b *BatchReport) {
	if m == nil || b == nil {
		return
	}
	for _, r := range b.Reports {
		m.ObserveReport(r)
	}
}

// ObserveCacheLookup increments the cache-lookup counter for a hit or
// a miss.
func (m *Metrics) ObserveCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheOps.WithLabelValues(result).Inc()
}

// ObserveCompat increments the update-compat outcome counter.
func (m *Metrics) ObserveCompat(c Compat) {
	if m == nil {
		return
	}
	outcome := "incompatible"
	if c.OK {
		outcome = "compatible"
	}
	m.compatChecks.WithLabelValues(outcome).Inc()
}

func outcomeLabel(code Code) string {
	switch code.Severity() {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "valid"
	}
}

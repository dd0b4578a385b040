package normalform

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gnolang/boolnorm/internal/history"
)

// Metrics counts what the normalizer does. A nil *Metrics records nothing.
type Metrics struct {
	lawApplications *prometheus.CounterVec
	iterations      *prometheus.CounterVec
	hardLimits      *prometheus.CounterVec
	runs            *prometheus.CounterVec
}

// NewMetrics registers the normalizer collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		lawApplications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "boolnorm",
			Name:      "law_applications_total",
			Help:      "Recorded rewrites by law.",
		}, []string{"law"}),
		iterations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "boolnorm",
			Name:      "stage_iterations_total",
			Help:      "Fixpoint iterations by stage.",
		}, []string{"stage"}),
		hardLimits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "boolnorm",
			Name:      "hard_limit_total",
			Help:      "Stages that hit their iteration ceiling.",
		}, []string{"stage"}),
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "boolnorm",
			Name:      "runs_total",
			Help:      "Normalization runs by target form and outcome.",
		}, []string{"form", "outcome"}),
	}
}

func (m *Metrics) iteration(stage Stage) {
	if m == nil {
		return
	}
	m.iterations.WithLabelValues(string(stage)).Inc()
}

func (m *Metrics) hardLimit(stage Stage) {
	if m == nil {
		return
	}
	m.hardLimits.WithLabelValues(string(stage)).Inc()
}

func (m *Metrics) run(form Stage, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.runs.WithLabelValues(string(form), outcome).Inc()
}

func (m *Metrics) observe(versions []history.Version) {
	if m == nil {
		return
	}
	for _, v := range versions {
		if v.Law != "" {
			m.lawApplications.WithLabelValues(string(v.Law)).Inc()
		}
	}
}

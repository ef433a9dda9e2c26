package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Remote save results.
const (
	ResultOK      = "ok"
	ResultError   = "error"
	ResultSkipped = "skipped"
)

// Metrics holds all Prometheus metrics for the application.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Mutations         *prometheus.CounterVec
	RejectedMutations *prometheus.CounterVec
	RemoteSaves       *prometheus.CounterVec
	DocumentLoads     *prometheus.CounterVec
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "checklists_mutations_total",
			Help: "Accepted document mutations by operation",
		}, []string{"operation"}),
		RejectedMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "checklists_rejected_mutations_total",
			Help: "Rejected document mutations by operation",
		}, []string{"operation"}),
		RemoteSaves: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "checklists_remote_saves_total",
			Help: "Best-effort remote document writes by result",
		}, []string{"result"}),
		DocumentLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "checklists_document_loads_total",
			Help: "Startup document loads by the source that served them",
		}, []string{"source"}),
	}
}

// IncrementMutation counts an accepted mutation.
func (m *Metrics) IncrementMutation(op string) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(op).Inc()
}

// IncrementRejected counts a rejected mutation.
func (m *Metrics) IncrementRejected(op string) {
	if m == nil {
		return
	}
	m.RejectedMutations.WithLabelValues(op).Inc()
}

// ObserveRemoteSave counts a remote write outcome.
func (m *Metrics) ObserveRemoteSave(result string) {
	if m == nil {
		return
	}
	m.RemoteSaves.WithLabelValues(result).Inc()
}

// ObserveLoad counts which source served a document load.
func (m *Metrics) ObserveLoad(source string) {
	if m == nil {
		return
	}
	m.DocumentLoads.WithLabelValues(source).Inc()
}

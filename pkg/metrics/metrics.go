package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics agrupa los colectores Prometheus de la API.
type Metrics struct {
	Registry *prometheus.Registry

	AccessDecisions *prometheus.CounterVec
	SchedulerRuns   *prometheus.CounterVec
	RoomsProcessed  *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec
}

// New crea un registro propio (no el global) para poder instanciarlo en tests.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		AccessDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "access_decisions_total",
			Help:      "Decisiones del interceptor de acceso por resultado.",
		}, []string{"outcome"}),
		SchedulerRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scheduler_runs_total",
			Help:      "Ejecuciones de jobs programados por job y resultado.",
		}, []string{"job", "outcome"}),
		RoomsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rooms_processed_total",
			Help:      "Habitaciones procesadas por los jobs de estado.",
		}, []string{"job", "result"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP por método y código.",
		}, []string{"method", "status"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.AccessDecisions,
		m.SchedulerRuns,
		m.RoomsProcessed,
		m.HTTPRequests,
	)
	return m
}

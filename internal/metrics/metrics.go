package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "trivia"

// Metrics groups the collectors exported on /metrics. A nil *Metrics is a
// valid no-op recorder so tests and tools can skip instrumentation.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	questionsCreated prometheus.Counter
	questionsDeleted prometheus.Counter

	quizServed    *prometheus.CounterVec
	quizCompleted *prometheus.CounterVec
}

// New builds the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		questionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "questions_created_total",
			Help:      "Questions inserted into the store.",
		}),
		questionsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "questions_deleted_total",
			Help:      "Questions removed from the store.",
		}),
		quizServed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "quiz",
			Name:      "questions_served_total",
			Help:      "Quiz questions handed out, by selector scope (all or category).",
		}, []string{"scope"}),
		quizCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "quiz",
			Name:      "completed_total",
			Help:      "Quiz steps that found the pool exhausted, by selector scope (all or category).",
		}, []string{"scope"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.questionsCreated,
		m.questionsDeleted,
		m.quizServed,
		m.quizCompleted,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func (m *Metrics) QuestionCreated() {
	if m == nil {
		return
	}
	m.questionsCreated.Inc()
}

func (m *Metrics) QuestionDeleted() {
	if m == nil {
		return
	}
	m.questionsDeleted.Inc()
}

// QuizStep records one quiz step; exhausted marks a step that returned no
// question. Any scope other than "all" is recorded as "category".
func (m *Metrics) QuizStep(scope string, exhausted bool) {
	if m == nil {
		return
	}
	if scope != "all" {
		scope = "category"
	}
	if exhausted {
		m.quizCompleted.WithLabelValues(scope).Inc()
		return
	}
	m.quizServed.WithLabelValues(scope).Inc()
}

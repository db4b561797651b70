package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/lintang-b-s/behaviorplanner/pkg/planner"
	"github.com/prometheus/client_golang/prometheus"
)

// Metric holds the prometheus collectors of the planner API.
type Metric struct {
	trajectoryEvaluations *prometheus.CounterVec
	bestCost              prometheus.Histogram
	httpDuration          *prometheus.HistogramVec
	responseStatusCode    *prometheus.CounterVec

	routes map[string]struct{}
}

// OTHER_ROUTE is the path label of every request outside the tracked routes.
const OTHER_ROUTE = "other"

func NewMetric(reg prometheus.Registerer) *Metric {
	m := &Metric{
		trajectoryEvaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "behaviorplanner",
			Name:      "trajectory_evaluations_total",
			Help:      "The total number of evaluated candidate trajectories",
		}, []string{"result"}),
		bestCost: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "behaviorplanner",
			Name:      "best_trajectory_cost",
			Help:      "The cost of the chosen trajectory per decision cycle",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "behaviorplanner",
			Name:      "request_duration_seconds",
			Help:      "The duration of request",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25}, // 0.001 = 1ms
		}, []string{"method", "path"}),
		responseStatusCode: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "behaviorplanner",
			Name:      "response_status_code",
			Help:      "The status code of http response",
		}, []string{"status", "method", "path"}),
	}
	m.routes = make(map[string]struct{})
	reg.MustRegister(m.trajectoryEvaluations, m.bestCost, m.httpDuration, m.responseStatusCode)
	return m
}

// ObserveEvaluations records one decision cycle. bestIndex is -1 when no
// trajectory could be scored.
func (m *Metric) ObserveEvaluations(evaluations []planner.Evaluation, bestIndex int) {
	for _, ev := range evaluations {
		if ev.Err != nil {
			m.trajectoryEvaluations.WithLabelValues("error").Inc()
			continue
		}
		m.trajectoryEvaluations.WithLabelValues("ok").Inc()
	}
	if bestIndex >= 0 && bestIndex < len(evaluations) {
		m.bestCost.Observe(evaluations[bestIndex].Cost)
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// TrackRoutes sets the paths that get their own path label. Not safe to call
// while requests are served.
func (m *Metric) TrackRoutes(paths ...string) {
	for _, p := range paths {
		m.routes[p] = struct{}{}
	}
}

func (m *Metric) routeLabel(path string) string {
	if _, ok := m.routes[path]; ok {
		return path
	}
	return OTHER_ROUTE
}

func (m *Metric) HttpMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := m.routeLabel(r.URL.Path)
		rw := newResponseWriter(w)
		now := time.Now()

		next.ServeHTTP(rw, r)

		m.responseStatusCode.With(prometheus.Labels{"status": strconv.Itoa(rw.statusCode), "method": r.Method,
			"path": path}).Inc()
		m.httpDuration.With(prometheus.Labels{"method": r.Method, "path": path}).Observe(time.Since(now).Seconds())
	})
}

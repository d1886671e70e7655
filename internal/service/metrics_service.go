package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService owns the Prometheus registry and the domain counters.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	authAttempts    *prometheus.CounterVec
	ordersPlaced    prometheus.Counter
	orderRejected   *prometheus.CounterVec
	orderStatus     *prometheus.CounterVec
	quizSubmissions *prometheus.CounterVec
	applications    *prometheus.CounterVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	m := &MetricsService{
		registry: registry,
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		authAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Login and registration attempts by outcome",
		}, []string{"action", "outcome"}),
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Orders successfully placed",
		}),
		orderRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "orders_rejected_total",
			Help: "Orders rejected during stock reservation",
		}, []string{"reason"}),
		orderStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "order_status_transitions_total",
			Help: "Order status transitions by target status",
		}, []string{"status"}),
		quizSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quiz_submissions_total",
			Help: "Graded quiz submissions",
		}, []string{"passed"}),
		applications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "job_applications_total",
			Help: "Job application events",
		}, []string{"event"}),
	}

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(m.requestDuration, m.requestTotal, m.authAttempts, m.ordersPlaced, m.orderRejected, m.orderStatus, m.quizSubmissions, m.applications, goroutines)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry exposes the underlying registry (used by tests).
func (m *MetricsService) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// AuthAttempt counts a login or register outcome.
func (m *MetricsService) AuthAttempt(action string, ok bool) {
	if m == nil {
		return
	}
	outcome := "failure"
	if ok {
		outcome = "success"
	}
	m.authAttempts.WithLabelValues(action, outcome).Inc()
}

// OrderPlaced counts a committed order.
func (m *MetricsService) OrderPlaced() {
	if m == nil {
		return
	}
	m.ordersPlaced.Inc()
}

// OrderRejected counts an order refused during reservation.
func (m *MetricsService) OrderRejected(reason string) {
	if m == nil {
		return
	}
	m.orderRejected.WithLabelValues(reason).Inc()
}

// OrderTransition counts an order entering status.
func (m *MetricsService) OrderTransition(status string) {
	if m == nil {
		return
	}
	m.orderStatus.WithLabelValues(status).Inc()
}

// QuizSubmitted counts a graded submission.
func (m *MetricsService) QuizSubmitted(passed bool) {
	if m == nil {
		return
	}
	m.quizSubmissions.WithLabelValues(strconv.FormatBool(passed)).Inc()
}

// ApplicationEvent counts created, decided and withdrawn applications.
func (m *MetricsService) ApplicationEvent(event string) {
	if m == nil {
		return
	}
	m.applications.WithLabelValues(event).Inc()
}

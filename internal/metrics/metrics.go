// Package metrics exposes portal activity to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"clientportal/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry        *prometheus.Registry
	ticketOps       *prometheus.CounterVec
	sessionActive   prometheus.Gauge
	requestDuration *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		ticketOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_ticket_operations_total",
			Help: "Ticket store operations by kind and outcome",
		}, []string{"op", "result"}),
		sessionActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "portal_session_active",
			Help: "1 while a session is logged in",
		}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portal_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
	}
	reg.MustRegister(
		m.ticketOps,
		m.sessionActive,
		m.requestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// TrackTickets reports the live ticket count through count.
func (m *Metrics) TrackTickets(count func() int) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "portal_tickets",
		Help: "Tickets currently held in the store",
	}, func() float64 { return float64(count()) }))
}

func (m *Metrics) TicketOp(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.ticketOps.WithLabelValues(op, result).Inc()
}

// SessionChanged is a session.Listener.
func (m *Metrics) SessionChanged(_, next *models.Session) {
	if next != nil {
		m.sessionActive.Set(1)
	} else {
		m.sessionActive.Set(0)
	}
}

// Middleware records request latency labelled by the matched route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		code := ww.Status()
		if code == 0 {
			code = http.StatusOK
		}
		m.requestDuration.WithLabelValues(r.Method, route, strconv.Itoa(code)).Observe(time.Since(start).Seconds())
	})
}

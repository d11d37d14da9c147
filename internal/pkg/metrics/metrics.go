// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "schoolhub"

// Transition outcomes
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Registry is the registry every collector is attached to
var Registry = prometheus.NewRegistry()

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	studentTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "student_transitions_total",
		Help:      "Student lifecycle transitions by kind and outcome.",
	}, []string{"transition", "outcome"})

	sectionFull = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "section_full_rejections_total",
		Help:      "Seat reservations rejected because the section was full.",
	})

	rateLimited = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_requests_total",
		Help:      "Requests answered with 429.",
	})
)

func init() {
	Registry.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		httpRequests, httpDuration, studentTransitions, sectionFull, rateLimited,
	)
}

// Handler serves the registry in the Prometheus text format
func Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}

// Middleware records request count and latency per matched route
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// ObserveTransition counts n lifecycle transitions, e.g. ("promote", OutcomeSuccess, 3)
func ObserveTransition(transition, outcome string, n int) {
	if n <= 0 {
		return
	}
	studentTransitions.WithLabelValues(transition, outcome).Add(float64(n))
}

// SectionFull counts one rejected reservation
func SectionFull() {
	sectionFull.Inc()
}

// RateLimited counts one throttled request
func RateLimited() {
	rateLimited.Inc()
}

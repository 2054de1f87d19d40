package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var RequestDurationHistogram = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "hr_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "path", "status"},
)

var RequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "hr_http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"method", "path", "status"},
)

var LeaveApplications = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "hr_leave_applications_total",
		Help: "Total number of accepted leave applications",
	},
	[]string{"leave_type"},
)

var TimesheetSubmissions = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "hr_timesheet_submissions_total",
		Help: "Total number of accepted timesheet submissions",
	},
)

// StatusDecisions counts status changes made by reviewers, per resource.
var StatusDecisions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "hr_status_decisions_total",
		Help: "Total number of leave and timesheet status changes",
	},
	[]string{"resource", "status"},
)

var OutboxPublished = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "hr_outbox_events_published_total",
		Help: "Total number of outbox events delivered to Kafka",
	},
)

func init() {
	prometheus.MustRegister(RequestDurationHistogram)
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(LeaveApplications)
	prometheus.MustRegister(TimesheetSubmissions)
	prometheus.MustRegister(StatusDecisions)
	prometheus.MustRegister(OutboxPublished)
}

func Handler() http.Handler {
	return promhttp.Handler()
}

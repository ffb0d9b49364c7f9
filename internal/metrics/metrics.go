// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "permit_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "permit_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ApplicationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "permit_applications_created_total",
			Help: "Total number of permit applications opened",
		},
		[]string{"platform"},
	)

	ApplicationsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "permit_applications_submitted_total",
			Help: "Total number of submit actions, including resubmissions",
		},
		[]string{"platform"},
	)

	DocumentsUploaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "permit_documents_uploaded_total",
			Help: "Total number of documents attached to a requirement",
		},
		[]string{"document_id"},
	)

	UploadsCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "permit_uploads_cancelled_total",
			Help: "Total number of file picks cancelled by the user",
		},
	)

	PrintsDispatched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "permit_prints_dispatched_total",
			Help: "Total number of printable documents handed to the print backend",
		},
	)

	CollaboratorFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "permit_collaborator_failures_total",
			Help: "Failures of the picker, print and link opener collaborators",
		},
		[]string{"collaborator"},
	)
)

const (
	CollaboratorPicker     = "picker"
	CollaboratorPrint      = "print"
	CollaboratorLinkOpener = "link_opener"
)

package core

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Browse outcome labels.
const (
	statusOK               = "ok"
	statusEndpointNotFound = "endpoint_not_found"
	statusConnectionFailed = "connection_failed"
	statusListingFailed    = "listing_failed"
)

var (
	browseRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remotebrowse_browse_requests_total",
			Help: "Total number of browse requests by protocol and outcome",
		},
		[]string{"protocol", "status"},
	)

	browseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "remotebrowse_browse_duration_seconds",
			Help:    "End-to-end browse request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"protocol"},
	)
)

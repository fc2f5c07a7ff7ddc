// Package metrics defines and registers all custom Prometheus metrics for
// the RentEase API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register themselves with the default
// registry via promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rentease"

// PropertiesCreatedTotal counts newly created listings.
// Label:
//   - type: the free-text property type as submitted (e.g. "PG", "Apartment")
var PropertiesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "properties_created_total",
		Help:      "Total number of property listings created, by type.",
	},
	[]string{"type"},
)

// ImagesUploadedTotal counts images accepted and stored in the media store.
var ImagesUploadedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "images_uploaded_total",
		Help:      "Total number of listing images uploaded to the media store.",
	},
)

// ImageDeleteFailuresTotal counts best-effort media deletions that failed.
// These never fail the parent update/delete, so the counter is the only
// place the loss is visible.
var ImageDeleteFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_delete_failures_total",
		Help:      "Total number of media store image deletions that failed.",
	},
)

// OTPIssuedTotal counts one-time codes issued and dispatched by email.
// Label:
//   - purpose: "signup" or "reset"
var OTPIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_issued_total",
		Help:      "Total number of OTP challenges issued, by purpose.",
	},
	[]string{"purpose"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

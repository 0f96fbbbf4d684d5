// Package metrics holds Prometheus instruments that are used across the
// service.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SignupsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "signups_total",
			Help: "Cumulative number of waitlist signups accepted.",
		})

	SignupDuplicatesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "signup_duplicates_total",
			Help: "Cumulative number of signups rejected as duplicates.",
		})

	VerificationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "verifications_total",
			Help: "Cumulative number of signup emails verified.",
		})

	TenantResolveErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tenant_resolve_errors_total",
			Help: "Cumulative number of requests whose host matched no active project.",
		})

	LandingViewsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "landing_views_total",
			Help: "Cumulative number of waitlist landing pages served.",
		})
)

func init() {
	prometheus.MustRegister(
		SignupsTotal,
		SignupDuplicatesTotal,
		VerificationsTotal,
		TenantResolveErrorsTotal,
		LandingViewsTotal,
	)
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RegistrationsTotal counts accepted student registrations.
	RegistrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "registrations_total",
		Help: "Number of accepted student registrations",
	})

	// VerificationsTotal counts processed payment verifications by action.
	VerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "verifications_total",
		Help: "Number of processed payment verifications",
	}, []string{"action"})

	// LoginsTotal counts login attempts by outcome.
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logins_total",
		Help: "Number of login attempts",
	}, []string{"outcome"})
)

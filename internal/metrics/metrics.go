// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the counters recorded by the account flows. Registering
// against a caller-supplied registry keeps tests independent.
type Metrics struct {
	Registry *prometheus.Registry

	RegistrationsTotal         prometheus.Counter
	RegistrationConflictsTotal prometheus.Counter
	CredentialRotationsTotal   prometheus.Counter
	CredentialMismatchesTotal  prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	return &Metrics{
		Registry: reg,
		RegistrationsTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "accountd_registrations_total",
			Help: "Accounts created successfully.",
		}),
		RegistrationConflictsTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "accountd_registration_conflicts_total",
			Help: "Registrations rejected because the email was taken.",
		}),
		CredentialRotationsTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "accountd_credential_rotations_total",
			Help: "Password rotations applied.",
		}),
		CredentialMismatchesTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "accountd_credential_mismatches_total",
			Help: "Updates rejected by the old/new password checks.",
		}),
	}
}

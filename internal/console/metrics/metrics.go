// Package metrics defines and registers the console's Prometheus metrics.
// It is the single source of truth for metric names, labels, and help
// strings; promauto registers everything with the default registry at init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vendorsync"

// LoginAttemptsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "validation", "network",
//     "server", "superseded"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts by outcome (same label
// values as LoginAttemptsTotal).
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by outcome.",
	},
	[]string{"result"},
)

// GuardDecisionsTotal counts route guard verdicts.
// Labels:
//   - decision: "allow", "redirect_login", "redirect_unauthorized"
//   - capability: the required capability, or "none" for public views
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by verdict and required capability.",
	},
	[]string{"decision", "capability"},
)

// SessionRestoresTotal counts startup session restores.
// Label:
//   - result: "authenticated" or "anonymous"
var SessionRestoresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_restores_total",
		Help:      "Total number of startup session restores, by outcome.",
	},
	[]string{"result"},
)

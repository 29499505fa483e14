// Package metrics defines and registers all custom Prometheus metrics for the
// accounts API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import time
// via promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "accounts"

// RegistrationsTotal counts successful self-service registrations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful self-service registrations.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "not_found", "disabled", "bad_password", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// UsersCreatedTotal counts tenant users created by admins via add_user.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of tenant users created by administrators.",
	},
)

// UsersSuspendedTotal counts successful suspensions.
var UsersSuspendedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_suspended_total",
		Help:      "Total number of users suspended.",
	},
)

// PasswordChangesTotal counts successful password changes.
// Label:
//   - variant: "admin" or "user" (the entry endpoint used)
var PasswordChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_changes_total",
		Help:      "Total number of successful password changes, by entry variant.",
	},
	[]string{"variant"},
)

// TokenAuthTotal counts bearer-token authentication decisions made by the
// auth middleware.
// Label:
//   - result: "ok", "invalid", or "disabled"
var TokenAuthTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_auth_total",
		Help:      "Total number of bearer token authentications, labelled by result.",
	},
	[]string{"result"},
)

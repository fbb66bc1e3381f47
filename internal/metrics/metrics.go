// Package metrics holds the Prometheus counters for the account flows.
// They register on the default registry and are served by the debug module.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/oksasatya/go-forum-auth/internal/domain/apperror"
)

const namespace = "forum_auth"

// RegistrationsTotal counts sign-up attempts.
// Label result: "ok" or the error kind ("validation", "conflict", "internal").
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of sign-up attempts, by result.",
	},
	[]string{"result"},
)

// VerificationsTotal counts email verification attempts.
var VerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verifications_total",
		Help:      "Total number of email verification attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// NotificationsTotal counts verification mails, by origin page and result.
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of verification code notifications, by origin and result.",
	},
	[]string{"origin", "result"},
)

// Result turns an operation error into a label value.
func Result(err error) string {
	if err == nil {
		return "ok"
	}
	return apperror.KindOf(err).String()
}

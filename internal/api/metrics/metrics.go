// Package metrics defines and registers all custom Prometheus metrics for the
// forum API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register themselves with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "forum"

// RegistrationsTotal counts account registrations.
// Label:
//   - result: "created" or "duplicate"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid_credentials", "throttled" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenVerificationsTotal counts bearer-token verifications performed by the
// authentication gate.
// Label:
//   - result: "ok", "expired", "invalid" or "unknown_subject"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, by result.",
	},
	[]string{"result"},
)

// TopicWritesTotal counts topic mutations.
// Labels:
//   - action: "create", "update" or "delete"
//   - result: "ok", "forbidden", "not_found" or "error"
var TopicWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "topic_writes_total",
		Help:      "Total number of topic create/update/delete operations, by result.",
	},
	[]string{"action", "result"},
)

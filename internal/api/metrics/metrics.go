// Package metrics defines the custom Prometheus metrics of the leave API.
// Everything registers with the default registry through promauto on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "leave"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success", "invalid_input", "invalid_role", "duplicate_email" or "error"
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
//   - result: "success", "user_not_found", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts bearer tokens minted at login, by role.
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of bearer tokens issued, by role.",
	},
	[]string{"role"},
)

// GuardRejectionsTotal counts requests short-circuited by a guard.
// Labels:
//   - guard: "access" or "role"
//   - reason: "missing_token", "expired", "invalid_signature", "malformed", "no_identity" or "forbidden"
var GuardRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_rejections_total",
		Help:      "Total number of requests rejected by the access or role guard.",
	},
	[]string{"guard", "reason"},
)

// ── Leave metrics ─────────────────────────────────────────────────────────────

// LeavesAppliedTotal counts submitted leave requests, by leave type.
var LeavesAppliedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leaves_applied_total",
		Help:      "Total number of leave requests submitted, by leave type.",
	},
	[]string{"leave_type"},
)

// LeaveStatusChangesTotal counts HR review decisions, by resulting status.
var LeaveStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leave_status_changes_total",
		Help:      "Total number of leave status changes, by new status.",
	},
	[]string{"status"},
)

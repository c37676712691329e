// Package metrics defines and registers all custom Prometheus metrics for
// the ServiceHub marketplace API. It is the single source of truth for
// metric names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "servicehub"

// ── Signup / OTP metrics ─────────────────────────────────────────────────────

// SignupsStartedTotal counts signup submissions that produced a pending entry.
var SignupsStartedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_started_total",
		Help:      "Total number of signups cached pending OTP verification.",
	},
)

// OTPVerificationsTotal counts verification attempts.
// Label:
//   - result: "success", "expired", "mismatch", or "not_found"
var OTPVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_verifications_total",
		Help:      "Total number of OTP verification attempts, by result.",
	},
	[]string{"result"},
)

// OTPEmailsTotal counts OTP email dispatch outcomes.
// Label:
//   - result: "sent" or "failed"
var OTPEmailsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "otp_emails_total",
		Help:      "Total number of OTP emails handed to SMTP, by result.",
	},
	[]string{"result"},
)

// ── Booking metrics ──────────────────────────────────────────────────────────

// BookingsCreatedTotal counts newly created bookings by time slot.
var BookingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_created_total",
		Help:      "Total number of bookings created, by slot.",
	},
	[]string{"slot"},
)

// SlotConflictsTotal counts create attempts rejected because the slot was taken.
var SlotConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "slot_conflicts_total",
		Help:      "Total number of booking attempts rejected due to an occupied slot.",
	},
)

// BookingTransitionsTotal counts status transitions by target status.
var BookingTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_transitions_total",
		Help:      "Total number of booking status transitions, by new status.",
	},
	[]string{"status"},
)

// ── Chat metrics ─────────────────────────────────────────────────────────────

// ChatMessagesTotal counts posted messages by sender side.
var ChatMessagesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_messages_total",
		Help:      "Total number of chat messages posted, by sender.",
	},
	[]string{"sender"},
)

package metrics

import "github.com/prometheus/client_golang/prometheus"

// RequestMetrics counts purchase-request lifecycle events and notification
// dispatch failures.
type RequestMetrics struct {
	created              prometheus.Counter
	transitions          *prometheus.CounterVec
	conflicts            *prometheus.CounterVec
	notificationFailures *prometheus.CounterVec
}

func NewRequestMetrics(reg prometheus.Registerer) *RequestMetrics {
	if reg == nil {
		return &RequestMetrics{}
	}
	created := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "purchase_requests_created_total",
		Help: "Purchase requests created.",
	})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "purchase_request_transitions_total",
		Help: "Applied purchase request status transitions.",
	}, []string{"from", "to"})
	conflicts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "purchase_request_conflicts_total",
		Help: "Rejected purchase request status updates.",
	}, []string{"reason"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notification_dispatch_failures_total",
		Help: "Notifications that could not be recorded.",
	}, []string{"type"})
	reg.MustRegister(created, transitions, conflicts, failures)
	return &RequestMetrics{
		created:              created,
		transitions:          transitions,
		conflicts:            conflicts,
		notificationFailures: failures,
	}
}

func (m *RequestMetrics) IncCreated() {
	if m == nil || m.created == nil {
		return
	}
	m.created.Inc()
}

func (m *RequestMetrics) IncTransition(from, to string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(from), normalizeLabel(to)).Inc()
}

// IncConflict records a refused update; reason is "invalid_transition" or "lost_race".
func (m *RequestMetrics) IncConflict(reason string) {
	if m == nil || m.conflicts == nil {
		return
	}
	m.conflicts.WithLabelValues(normalizeLabel(reason)).Inc()
}

func (m *RequestMetrics) IncNotificationFailure(notificationType string) {
	if m == nil || m.notificationFailures == nil {
		return
	}
	m.notificationFailures.WithLabelValues(normalizeLabel(notificationType)).Inc()
}

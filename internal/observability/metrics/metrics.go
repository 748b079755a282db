package metrics

import "github.com/prometheus/client_golang/prometheus"

// ConversationMetrics exposes counters/gauges for the conversation engine.
type ConversationMetrics struct {
	turnsTotal     *prometheus.CounterVec
	bookingsTotal  *prometheus.CounterVec
	sessionsSwept  prometheus.Counter
	activeSessions prometheus.Gauge
}

func NewConversationMetrics(reg prometheus.Registerer) *ConversationMetrics {
	m := &ConversationMetrics{
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "conversation",
			Name:      "turns_total",
			Help:      "Total conversation turns processed",
		}, []string{"intent"}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "conversation",
			Name:      "bookings_total",
			Help:      "Total booking commits by outcome",
		}, []string{"outcome"}),
		sessionsSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "conversation",
			Name:      "sessions_swept_total",
			Help:      "Total sessions removed by TTL sweeps",
		}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "clinic",
			Subsystem: "conversation",
			Name:      "active_sessions",
			Help:      "Sessions currently held in memory",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.turnsTotal, m.bookingsTotal, m.sessionsSwept, m.activeSessions)
	return m
}

// ObserveTurn records one processed input. intent is the top-level intent for
// turns starting at the initial state, or "in_flow" mid-conversation.
func (m *ConversationMetrics) ObserveTurn(intent string) {
	if m == nil {
		return
	}
	m.turnsTotal.WithLabelValues(intent).Inc()
}

// ObserveBooking records a booking commit outcome ("success" or "failure").
func (m *ConversationMetrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(outcome).Inc()
}

// ObserveSweep records the result of a session sweep.
func (m *ConversationMetrics) ObserveSweep(removed, remaining int) {
	if m == nil {
		return
	}
	m.sessionsSwept.Add(float64(removed))
	m.activeSessions.Set(float64(remaining))
}

// SetActiveSessions updates the live session gauge.
func (m *ConversationMetrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.activeSessions.Set(float64(n))
}

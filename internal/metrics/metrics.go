package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Scheduler collects booking engine counters. A nil *Scheduler is valid and
// records nothing.
type Scheduler struct {
	bookings      *prometheus.CounterVec
	transitions   *prometheus.CounterVec
	availability  *prometheus.CounterVec
	waitlistMatch prometheus.Counter
	notifications *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Scheduler {
	m := &Scheduler{
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barber_booking",
			Name:      "bookings_total",
			Help:      "Booking attempts by result.",
		}, []string{"result"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barber_booking",
			Name:      "status_transitions_total",
			Help:      "Appointment status transitions by action and result.",
		}, []string{"action", "result"}),
		availability: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barber_booking",
			Name:      "availability_requests_total",
			Help:      "Slot computations by outcome.",
		}, []string{"outcome"}),
		waitlistMatch: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "barber_booking",
			Name:      "waitlist_matches_total",
			Help:      "Waitlist entries matched to freed slots.",
		}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "barber_booking",
			Name:      "notification_intents_total",
			Help:      "Notification intents by template.",
		}, []string{"template"}),
	}

	reg.MustRegister(m.bookings, m.transitions, m.availability, m.waitlistMatch, m.notifications)
	return m
}

func (m *Scheduler) Booking(result string) {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues(result).Inc()
}

func (m *Scheduler) Transition(action, result string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(action, result).Inc()
}

func (m *Scheduler) Availability(outcome string) {
	if m == nil {
		return
	}
	m.availability.WithLabelValues(outcome).Inc()
}

func (m *Scheduler) WaitlistMatched(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.waitlistMatch.Add(float64(n))
}

func (m *Scheduler) Intent(template string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(template).Inc()
}

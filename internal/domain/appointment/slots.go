package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// GenerateSlots lists bookable start times for one barber and day, ascending.
// busy holds the barber's active appointments. The caller handles a closed
// window before calling; a closed window yields no candidates.
func GenerateSlots(
	w DayWindow,
	duration time.Duration,
	busy []Interval,
	policy Policy,
	now time.Time,
) []TimeSlot {

	slots := []TimeSlot{}
	if w.Closed || duration <= 0 || policy.Step <= 0 {
		return slots
	}

	earliest := now.Add(policy.MinLead)

	for cur := w.Start; !cur.Add(duration).After(w.End); cur = cur.Add(policy.Step) {
		candidate := Interval{Start: cur, End: cur.Add(duration)}

		if overlapsAny(candidate, w.Breaks) {
			continue
		}
		if overlapsAny(candidate, busy) {
			continue
		}
		if cur.Before(earliest) {
			continue
		}

		slots = append(slots, TimeSlot{
			Start:    candidate.Start.Format(timezone.TimeLayout),
			End:      candidate.End.Format(timezone.TimeLayout),
			StartsAt: candidate.Start,
		})
	}

	return slots
}

// ValidateStart checks that start is a candidate GenerateSlots would produce
// on an otherwise empty day. Overlap with other appointments is left to the
// write-time guard.
func ValidateStart(
	w DayWindow,
	start time.Time,
	duration time.Duration,
	policy Policy,
	now time.Time,
) error {

	if duration <= 0 {
		return invalid("invalid_duration", "service_id")
	}
	if start.Before(now) {
		return invalid("start_in_past", "start_time")
	}
	if start.Before(now.Add(policy.MinLead)) {
		return invalid("too_soon", "start_time")
	}
	if w.Closed {
		return invalid("outside_working_hours", "start_time")
	}

	candidate := Interval{Start: start, End: start.Add(duration)}
	if !w.Interval().Contains(candidate) {
		return invalid("outside_working_hours", "start_time")
	}
	if policy.Step > 0 && start.Sub(w.Start)%policy.Step != 0 {
		return invalid("off_slot_grid", "start_time")
	}
	if overlapsAny(candidate, w.Breaks) {
		return invalid("overlaps_break", "start_time")
	}

	return nil
}

func overlapsAny(i Interval, others []Interval) bool {
	for _, o := range others {
		if i.Overlaps(o) {
			return true
		}
	}
	return false
}

// BusyIntervals keeps only appointments that occupy the barber's time.
func BusyIntervals(appointments []models.Appointment) []Interval {
	out := make([]Interval, 0, len(appointments))
	for _, ap := range appointments {
		if !Status(ap.Status).IsActive() {
			continue
		}
		out = append(out, Interval{Start: ap.StartTime, End: ap.EndTime})
	}
	return out
}

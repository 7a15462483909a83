package appointment

import (
	"fmt"
	"sort"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// Interval is half-open: [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

// Contains reports whether o lies fully inside i.
func (i Interval) Contains(o Interval) bool {
	return !o.Start.Before(i.Start) && !o.End.After(i.End)
}

// DayWindow is a barber's working time on one calendar day, anchored to the
// barbershop's time zone. Breaks are sorted by start.
type DayWindow struct {
	Date   time.Time
	Closed bool
	Start  time.Time
	End    time.Time
	Breaks []Interval
}

func (w DayWindow) Interval() Interval {
	return Interval{Start: w.Start, End: w.End}
}

// ResolveDay maps a date to the barber's window. A date override wins over the
// weekly rule; a missing or inactive rule means the day is closed. day must
// already be in the barbershop's location.
func ResolveDay(
	day time.Time,
	rule *models.WorkingHours,
	override *models.WorkingHoursOverride,
) (DayWindow, error) {

	day = timezone.DayStart(day, day.Location())

	var (
		active     bool
		start, end string
		breaks     []models.WorkingBreak
	)

	switch {
	case override != nil:
		active, start, end, breaks = override.Active, override.StartTime, override.EndTime, override.Breaks
	case rule != nil:
		active, start, end, breaks = rule.Active, rule.StartTime, rule.EndTime, rule.Breaks
	}

	if !active || start == "" || end == "" {
		return DayWindow{Date: day, Closed: true}, nil
	}

	w, err := buildWindow(day, start, end, breaks)
	if err != nil {
		return DayWindow{}, err
	}
	return w, nil
}

func buildWindow(day time.Time, start, end string, breaks []models.WorkingBreak) (DayWindow, error) {
	ws, err := timezone.At(day, start)
	if err != nil {
		return DayWindow{}, fmt.Errorf("working hours start %q: %w", start, err)
	}
	we, err := timezone.At(day, end)
	if err != nil {
		return DayWindow{}, fmt.Errorf("working hours end %q: %w", end, err)
	}

	w := DayWindow{Date: day, Start: ws, End: we}
	for _, b := range breaks {
		bs, err := timezone.At(day, b.StartTime)
		if err != nil {
			return DayWindow{}, fmt.Errorf("break start %q: %w", b.StartTime, err)
		}
		be, err := timezone.At(day, b.EndTime)
		if err != nil {
			return DayWindow{}, fmt.Errorf("break end %q: %w", b.EndTime, err)
		}
		w.Breaks = append(w.Breaks, Interval{Start: bs, End: be})
	}

	sort.Slice(w.Breaks, func(i, j int) bool {
		return w.Breaks[i].Start.Before(w.Breaks[j].Start)
	})

	return w, nil
}

// ValidateDayConfig checks one configured day: start before end, every break
// inside the window, breaks not overlapping each other. Inactive days are
// accepted as-is.
func ValidateDayConfig(active bool, start, end string, breaks []models.WorkingBreak) error {
	if !active {
		return nil
	}
	if start == "" || end == "" {
		return invalid("missing_hours", "start_time")
	}

	ref := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	w, err := buildWindow(ref, start, end, breaks)
	if err != nil {
		return invalid("invalid_time_format", "start_time")
	}
	if !w.Start.Before(w.End) {
		return invalid("start_after_end", "end_time")
	}

	for i, b := range w.Breaks {
		if !b.Start.Before(b.End) {
			return invalid("invalid_break", "breaks")
		}
		if !w.Interval().Contains(b) {
			return invalid("break_outside_hours", "breaks")
		}
		if i > 0 && w.Breaks[i-1].Overlaps(b) {
			return invalid("overlapping_breaks", "breaks")
		}
	}

	return nil
}

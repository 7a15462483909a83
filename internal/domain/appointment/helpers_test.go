package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var saoPaulo = time.FixedZone("BRT", -3*3600)

// 2026-10-14 is a Wednesday.
func day() time.Time {
	return time.Date(2026, 10, 14, 0, 0, 0, 0, saoPaulo)
}

func at(hour, min int) time.Time {
	d := day()
	return time.Date(d.Year(), d.Month(), d.Day(), hour, min, 0, 0, saoPaulo)
}

func standardRule() *models.WorkingHours {
	return &models.WorkingHours{
		BarberID:  1,
		Weekday:   int(time.Wednesday),
		Active:    true,
		StartTime: "09:00",
		EndTime:   "18:00",
		Breaks:    []models.WorkingBreak{{StartTime: "12:00", EndTime: "13:00"}},
	}
}

func mustWindow(t *testing.T, rule *models.WorkingHours) DayWindow {
	t.Helper()
	w, err := ResolveDay(day(), rule, nil)
	require.NoError(t, err)
	return w
}

func starts(slots []TimeSlot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Start
	}
	return out
}

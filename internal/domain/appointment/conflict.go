package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Guard is the write-time enforcement of the no-overlap rule. Reserve must
// re-check and insert atomically and return ConflictError naming the
// colliding appointment when the barber is already busy.
type Guard interface {
	Reserve(ctx context.Context, ap *models.Appointment) error
}

// FindConflict returns the earliest active appointment of barberID that
// overlaps [start, end), or nil.
func FindConflict(
	existing []models.Appointment,
	barberID uint,
	start time.Time,
	end time.Time,
) *models.Appointment {

	want := Interval{Start: start, End: end}

	var found *models.Appointment
	for i := range existing {
		ap := &existing[i]
		if ap.BarberID != barberID || !Status(ap.Status).IsActive() {
			continue
		}
		if !want.Overlaps(Interval{Start: ap.StartTime, End: ap.EndTime}) {
			continue
		}
		if found == nil || ap.StartTime.Before(found.StartTime) {
			found = ap
		}
	}
	return found
}

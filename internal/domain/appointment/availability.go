package appointment

import "time"

type AvailabilityInput struct {
	BarbershopID uint
	BarberID     uint
	ServiceID    uint
	Date         string // YYYY-MM-DD, barbershop time zone
}

type TimeSlot struct {
	Start    string    `json:"start"`
	End      string    `json:"end"`
	StartsAt time.Time `json:"starts_at"`
}

// Availability is advisory. It is stale as soon as another booking is written.
type Availability struct {
	Date  string     `json:"date"`
	Slots []TimeSlot `json:"slots"`
}

// Policy is the booking grid: candidates every Step from the window start,
// none starting before now+MinLead.
type Policy struct {
	Step    time.Duration
	MinLead time.Duration
}

func NewPolicy(stepMinutes, minLeadMinutes int) Policy {
	return Policy{
		Step:    time.Duration(stepMinutes) * time.Minute,
		MinLead: time.Duration(minLeadMinutes) * time.Minute,
	}
}

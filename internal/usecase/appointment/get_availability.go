package appointment

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type GetAvailability struct {
	repo    domain.Repository
	policy  domain.Policy
	clock   timezone.Clock
	metrics *metrics.Scheduler
}

func NewGetAvailability(
	repo domain.Repository,
	policy domain.Policy,
	clock timezone.Clock,
	m *metrics.Scheduler,
) *GetAvailability {
	return &GetAvailability{
		repo:    repo,
		policy:  policy,
		clock:   clock,
		metrics: m,
	}
}

// Execute returns ResolverError{closed} when the barber does not work that
// day, and an Availability with no slots when the day is open but full.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (*domain.Availability, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)

	day, err := timezone.ParseDate(in.Date, loc)
	if err != nil {
		return nil, domain.ValidationError{Code: "invalid_date", Field: "date"}
	}

	if _, err := uc.repo.GetBarber(ctx, in.BarbershopID, in.BarberID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ResolverError{Code: domain.ResolverUnknownBarber}
		}
		return nil, err
	}

	svc, err := activeService(ctx, uc.repo, in.BarbershopID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	w, err := loadDayWindow(ctx, uc.repo, in.BarberID, day)
	if err != nil {
		return nil, err
	}
	if w.Closed {
		uc.metrics.Availability("closed")
		return nil, domain.ResolverError{Code: domain.ResolverClosed}
	}

	booked, err := uc.repo.ListActiveAppointments(ctx, in.BarberID, w.Start, w.End)
	if err != nil {
		return nil, err
	}

	slots := domain.GenerateSlots(
		w,
		serviceDuration(svc),
		domain.BusyIntervals(booked),
		policyFor(shop, uc.policy),
		uc.clock.Now().In(loc),
	)

	if len(slots) == 0 {
		uc.metrics.Availability("full")
	} else {
		uc.metrics.Availability("open")
	}

	return &domain.Availability{
		Date:  day.Format(timezone.DateLayout),
		Slots: slots,
	}, nil
}

package appointment

import (
	"context"
	"errors"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// policyFor applies the barbershop's own grid settings over the global
// policy. Zero columns keep the global value.
func policyFor(shop *models.Barbershop, global domain.Policy) domain.Policy {
	p := global
	if shop.SlotStepMinutes > 0 {
		p.Step = time.Duration(shop.SlotStepMinutes) * time.Minute
	}
	if shop.MinAdvanceMinutes > 0 {
		p.MinLead = time.Duration(shop.MinAdvanceMinutes) * time.Minute
	}
	return p
}

func loadDayWindow(
	ctx context.Context,
	repo domain.Repository,
	barberID uint,
	day time.Time,
) (domain.DayWindow, error) {

	rule, err := repo.GetWorkingHours(ctx, barberID, int(day.Weekday()))
	if err != nil {
		return domain.DayWindow{}, err
	}

	override, err := repo.GetWorkingHoursOverride(ctx, barberID, day.Format(timezone.DateLayout))
	if err != nil {
		return domain.DayWindow{}, err
	}

	return domain.ResolveDay(day, rule, override)
}

// activeService loads a bookable service of the tenant.
func activeService(
	ctx context.Context,
	repo domain.Repository,
	barbershopID uint,
	serviceID uint,
) (*models.Service, error) {

	svc, err := repo.GetService(ctx, barbershopID, serviceID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ValidationError{Code: "unknown_service", Field: "service_id"}
	}
	if err != nil {
		return nil, err
	}
	if !svc.Active || svc.DurationMin <= 0 {
		return nil, domain.ValidationError{Code: "unknown_service", Field: "service_id"}
	}
	return svc, nil
}

// lostUpdate re-reads an appointment whose compare-and-set missed and
// reports what the stored status now forbids, such as ErrAlreadyTerminal.
// It returns ErrStatusChanged when the stored status would still allow the
// transition or cannot be read.
func lostUpdate(
	ctx context.Context,
	repo domain.Repository,
	barbershopID uint,
	appointmentID uint,
	allowed func(domain.Status) error,
) error {

	current, err := repo.GetAppointment(ctx, barbershopID, appointmentID)
	if err != nil {
		return domain.ErrStatusChanged
	}
	if err := allowed(domain.Status(current.Status)); err != nil {
		return err
	}
	return domain.ErrStatusChanged
}

func serviceDuration(svc *models.Service) time.Duration {
	return time.Duration(svc.DurationMin) * time.Minute
}

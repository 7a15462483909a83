package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// Agenda listings include every status, cancelled rows too.

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(repo domain.Repository) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{repo: repo}
}

// Execute reads only the calendar fields of date.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	barberID uint,
	barbershopID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	return listPeriod(ctx, uc.repo, barberID, barbershopID, func(loc *time.Location) time.Time {
		return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	}, func(start time.Time) time.Time {
		return start.AddDate(0, 0, 1)
	})
}

type ListAppointmentsByMonth struct {
	repo domain.Repository
}

func NewListAppointmentsByMonth(repo domain.Repository) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{repo: repo}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	barberID uint,
	barbershopID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	return listPeriod(ctx, uc.repo, barberID, barbershopID, func(loc *time.Location) time.Time {
		return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	}, func(start time.Time) time.Time {
		return start.AddDate(0, 1, 0)
	})
}

// listPeriod resolves the period in the barbershop's zone.
func listPeriod(
	ctx context.Context,
	repo domain.Repository,
	barberID uint,
	barbershopID uint,
	from func(*time.Location) time.Time,
	until func(time.Time) time.Time,
) ([]dto.AppointmentListDTO, error) {

	shop, err := repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(shop.Timezone)

	start := from(loc)
	appointments, err := repo.ListAppointmentsForPeriod(ctx, barberID, start, until(start))
	if err != nil {
		return nil, err
	}

	return toListDTO(appointments, loc), nil
}

func toListDTO(appointments []models.Appointment, loc *time.Location) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		start := ap.StartTime.In(loc)
		out = append(out, dto.AppointmentListDTO{
			ID:          ap.ID,
			Status:      ap.Status,
			SedeID:      ap.SedeID,
			StartTime:   start,
			EndTime:     ap.EndTime.In(loc),
			Date:        start.Format(timezone.DateLayout),
			Start:       start.Format(timezone.TimeLayout),
			ClientID:    ap.ClientID,
			ClientName:  ap.Client.Name,
			ClientPhone: ap.Client.Phone,
			ServiceID:   ap.ServiceID,
			ServiceName: ap.Service.Name,
			DurationMin: ap.Service.DurationMin,
			Notes:       ap.Notes,
		})
	}
	return out
}

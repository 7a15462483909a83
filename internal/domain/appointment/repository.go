package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Repository is the booking ledger contract the scheduler needs. Lookups
// scoped by barbershop return ErrNotFound when the row is missing or belongs
// to another tenant.
type Repository interface {
	Guard

	// -------- Tenant --------
	GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error)
	GetBarbershopBySlug(ctx context.Context, slug string) (*models.Barbershop, error)
	GetSede(ctx context.Context, barbershopID, sedeID uint) (*models.Sede, error)
	GetBarber(ctx context.Context, barbershopID, barberID uint) (*models.User, error)

	// -------- Catalog --------
	GetService(ctx context.Context, barbershopID, serviceID uint) (*models.Service, error)

	// -------- Client --------
	GetClient(ctx context.Context, barbershopID, clientID uint) (*models.Client, error)
	FindClientByPhone(ctx context.Context, barbershopID uint, phone string) (*models.Client, error)
	GetOrCreateClient(
		ctx context.Context,
		barbershopID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Availability --------
	// Both return nil, nil when nothing is configured.
	GetWorkingHours(ctx context.Context, barberID uint, weekday int) (*models.WorkingHours, error)
	GetWorkingHoursOverride(ctx context.Context, barberID uint, date string) (*models.WorkingHoursOverride, error)

	// ListActiveAppointments returns active appointments of the barber
	// overlapping [start, end), ordered by start.
	ListActiveAppointments(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// ListAppointmentsForPeriod returns every appointment starting in
	// [start, end), any status, with client and service loaded.
	ListAppointmentsForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment (state change) --------
	GetAppointment(ctx context.Context, barbershopID, appointmentID uint) (*models.Appointment, error)

	// UpdateStatus persists ap's status fields only if the stored status is
	// still from. Otherwise it returns ErrStatusChanged.
	UpdateStatus(ctx context.Context, ap *models.Appointment, from Status) error
}

// Transactor runs fn in one database transaction. Repositories called with
// the ctx passed to fn join that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

package appointment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type ClientInfo struct {
	Name  string
	Phone string
	Email string
}

type BookAppointmentInput struct {
	BarbershopID uint
	SedeID       uint
	BarberID     uint
	ServiceID    uint

	// Either an existing client or the contact data of a walk-in.
	ClientID  uint
	NewClient *ClientInfo

	// StartTime wins when set; otherwise Date + Time are read in the
	// barbershop's time zone.
	StartTime time.Time
	Date      string
	Time      string

	Notes   string
	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo    domain.Repository
	tx      domain.Transactor
	audit   *audit.Dispatcher
	policy  domain.Policy
	clock   timezone.Clock
	logger  *slog.Logger
	metrics *metrics.Scheduler
}

func NewBookAppointment(
	repo domain.Repository,
	tx domain.Transactor,
	audit *audit.Dispatcher,
	policy domain.Policy,
	clock timezone.Clock,
	logger *slog.Logger,
	m *metrics.Scheduler,
) *BookAppointment {
	if logger == nil {
		logger = slog.Default()
	}
	return &BookAppointment{
		repo:    repo,
		tx:      tx,
		audit:   audit,
		policy:  policy,
		clock:   clock,
		logger:  logger,
		metrics: m,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Barbearia
	// --------------------------------------------------
	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(shop.Timezone)

	// --------------------------------------------------
	// Data / hora no timezone da barbearia
	// --------------------------------------------------
	start := in.StartTime.In(loc)
	if in.StartTime.IsZero() {
		start, err = timezone.ParseDateTime(in.Date, in.Time, loc)
		if err != nil {
			return nil, uc.reject(domain.ValidationError{Code: "invalid_date_or_time", Field: "start_time"})
		}
	}

	// --------------------------------------------------
	// Barbeiro / sede / serviço / cliente
	// --------------------------------------------------
	barber, err := uc.repo.GetBarber(ctx, in.BarbershopID, in.BarberID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, uc.reject(domain.ValidationError{Code: "unknown_barber", Field: "barber_id"})
	}
	if err != nil {
		return nil, err
	}

	sedeID, err := uc.resolveSede(ctx, in, barber)
	if err != nil {
		return nil, uc.reject(err)
	}

	svc, err := activeService(ctx, uc.repo, in.BarbershopID, in.ServiceID)
	if err != nil {
		return nil, uc.reject(err)
	}

	client, err := uc.resolveClient(ctx, in)
	if err != nil {
		return nil, uc.reject(err)
	}

	// --------------------------------------------------
	// Grade de horários
	// --------------------------------------------------
	w, err := loadDayWindow(ctx, uc.repo, barber.ID, timezone.DayStart(start, loc))
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now().In(loc)
	duration := serviceDuration(svc)

	if err := domain.ValidateStart(w, start, duration, policyFor(shop, uc.policy), now); err != nil {
		return nil, uc.reject(err)
	}

	// --------------------------------------------------
	// Reserva (verificação de conflito atômica)
	// --------------------------------------------------
	ap := &models.Appointment{
		BarbershopID: in.BarbershopID,
		SedeID:       sedeID,
		BarberID:     barber.ID,
		ServiceID:    svc.ID,
		StartTime:    start,
		EndTime:      start.Add(duration),
		Status:       string(domain.InitialStatus(svc.RequiresPrepayment)),
		Notes:        in.Notes,
	}

	err = uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// Walk-ins are registered with the reservation so a rejected or
		// conflicting booking leaves no client row behind.
		if client == nil {
			created, err := uc.repo.GetOrCreateClient(
				ctx,
				in.BarbershopID,
				in.NewClient.Name,
				in.NewClient.Phone,
				in.NewClient.Email,
			)
			if err != nil {
				return err
			}
			client = created
		}
		ap.ClientID = client.ID
		return uc.repo.Reserve(ctx, ap)
	})
	if err != nil {
		if ce, ok := domain.AsConflict(err); ok {
			uc.metrics.Booking("conflict")
			uc.logger.Warn("booking conflict",
				"barbershop_id", in.BarbershopID,
				"barber_id", barber.ID,
				"start", start,
				"conflicting_appointment_id", ce.AppointmentID,
			)
			uc.audit.Dispatch(audit.Event{
				BarbershopID: in.BarbershopID,
				UserID:       in.ActorID,
				Action:       "appointment_conflict",
				Entity:       "appointment",
				EntityID:     &ce.AppointmentID,
				Metadata: map[string]any{
					"barber_id":  barber.ID,
					"start_time": start,
				},
			})
			return nil, err
		}
		uc.metrics.Booking("error")
		return nil, err
	}

	ap.Client = *client
	ap.Service = *svc

	uc.metrics.Booking("created")

	// --------------------------------------------------
	// Auditoria
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       in.ActorID,
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     &ap.ID,
		Metadata: map[string]any{
			"barber_id": barber.ID,
			"status":    ap.Status,
		},
	})

	return ap, nil
}

func (uc *BookAppointment) reject(err error) error {
	if _, ok := domain.AsValidation(err); ok {
		uc.metrics.Booking("rejected")
	} else {
		uc.metrics.Booking("error")
	}
	return err
}

func (uc *BookAppointment) resolveSede(
	ctx context.Context,
	in BookAppointmentInput,
	barber *models.User,
) (uint, error) {

	sedeID := in.SedeID
	if sedeID == 0 && barber.SedeID != nil {
		sedeID = *barber.SedeID
	}
	if sedeID == 0 {
		return 0, nil
	}

	sede, err := uc.repo.GetSede(ctx, in.BarbershopID, sedeID)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, domain.ValidationError{Code: "unknown_sede", Field: "sede_id"}
	}
	if err != nil {
		return 0, err
	}
	if !sede.Active {
		return 0, domain.ValidationError{Code: "unknown_sede", Field: "sede_id"}
	}
	return sede.ID, nil
}

// resolveClient returns nil, nil for a walk-in whose phone is new to the
// barbershop; the row is created only once the start has been validated.
func (uc *BookAppointment) resolveClient(
	ctx context.Context,
	in BookAppointmentInput,
) (*models.Client, error) {

	if in.ClientID != 0 {
		client, err := uc.repo.GetClient(ctx, in.BarbershopID, in.ClientID)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ValidationError{Code: "unknown_client", Field: "client_id"}
		}
		return client, err
	}

	if in.NewClient == nil || in.NewClient.Phone == "" || in.NewClient.Name == "" {
		return nil, domain.ValidationError{Code: "missing_client", Field: "client"}
	}

	client, err := uc.repo.FindClientByPhone(ctx, in.BarbershopID, in.NewClient.Phone)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return client, err
}

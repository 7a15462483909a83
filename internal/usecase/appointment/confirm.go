package appointment

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/notification"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ConfirmAppointment is called once the payment collaborator has captured
// the prepayment.
type ConfirmAppointment struct {
	repo       domain.Repository
	tx         domain.Transactor
	outbox     notification.Outbox
	dispatcher *notification.Dispatcher
	audit      *audit.Dispatcher
	clock      timezone.Clock
	logger     *slog.Logger
	metrics    *metrics.Scheduler
}

func NewConfirmAppointment(
	repo domain.Repository,
	tx domain.Transactor,
	outbox notification.Outbox,
	dispatcher *notification.Dispatcher,
	audit *audit.Dispatcher,
	clock timezone.Clock,
	logger *slog.Logger,
	m *metrics.Scheduler,
) *ConfirmAppointment {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConfirmAppointment{
		repo:       repo,
		tx:         tx,
		outbox:     outbox,
		dispatcher: dispatcher,
		audit:      audit,
		clock:      clock,
		logger:     logger,
		metrics:    m,
	}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(shop.Timezone)

	ap, err := findOwnedAppointment(ctx, uc.repo, barbershopID, appointmentID, barberID)
	if err != nil {
		return nil, err
	}

	prev := domain.Status(ap.Status)
	now := uc.clock.Now().In(loc)
	if err := domain.Confirm(ap, now); err != nil {
		uc.metrics.Transition("confirm", "rejected")
		return nil, err
	}

	start := ap.StartTime.In(loc)
	intent := notification.NewIntent(
		barbershopID,
		ap.Client,
		notification.TemplateAppointmentConfirmed,
		map[string]string{
			"appointment_id": strconv.FormatUint(uint64(ap.ID), 10),
			"date":           start.Format(timezone.DateLayout),
			"start":          start.Format(timezone.TimeLayout),
		},
		now,
	)

	err = uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.repo.UpdateStatus(ctx, ap, prev); err != nil {
			return err
		}
		return uc.outbox.Enqueue(ctx, []notification.Intent{intent})
	})
	if errors.Is(err, domain.ErrStatusChanged) {
		uc.metrics.Transition("confirm", "rejected")
		return nil, lostUpdate(ctx, uc.repo, barbershopID, ap.ID, domain.CanConfirm)
	}
	if err != nil {
		uc.metrics.Transition("confirm", "error")
		return nil, err
	}

	if uc.dispatcher != nil {
		if _, err := uc.dispatcher.Flush(ctx); err != nil {
			uc.logger.Error("notification flush failed", "error", err)
		}
	}

	uc.metrics.Transition("confirm", "ok")
	uc.metrics.Intent(string(intent.Template))

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &barberID,
		Action:       "appointment_confirmed",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}

package appointment

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/notification"
	"github.com/BruksfildServices01/barber-booking/internal/domain/waitlist"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

const CancelledMessage = "Agendamento cancelado com sucesso"

type CancelAppointmentInput struct {
	BarbershopID  uint
	AppointmentID uint

	// Staff cancellations are scoped to the barber's own agenda.
	BarberID uint
	// Public cancellations must present the phone used to book.
	ClientPhone string

	ActorID *uint
}

type CancelResult struct {
	Appointment *models.Appointment
	Message     string
	Waitlist    []models.WaitlistEntry
	Intents     []notification.Intent
}

// CancelAppointment frees the slot, tells the waitlist and the affected
// client, and never touches money: a cancelled appointment was never booked
// as revenue.
type CancelAppointment struct {
	repo       domain.Repository
	tx         domain.Transactor
	matcher    *waitlist.Matcher
	waitlist   waitlist.Repository
	outbox     notification.Outbox
	dispatcher *notification.Dispatcher
	audit      *audit.Dispatcher
	clock      timezone.Clock
	logger     *slog.Logger
	metrics    *metrics.Scheduler
}

func NewCancelAppointment(
	repo domain.Repository,
	tx domain.Transactor,
	waitlistRepo waitlist.Repository,
	outbox notification.Outbox,
	dispatcher *notification.Dispatcher,
	audit *audit.Dispatcher,
	clock timezone.Clock,
	logger *slog.Logger,
	m *metrics.Scheduler,
) *CancelAppointment {
	if logger == nil {
		logger = slog.Default()
	}
	return &CancelAppointment{
		repo:       repo,
		tx:         tx,
		matcher:    waitlist.NewMatcher(waitlistRepo),
		waitlist:   waitlistRepo,
		outbox:     outbox,
		dispatcher: dispatcher,
		audit:      audit,
		clock:      clock,
		logger:     logger,
		metrics:    m,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	in CancelAppointmentInput,
) (*CancelResult, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(shop.Timezone)

	ap, err := findOwnedAppointment(ctx, uc.repo, in.BarbershopID, in.AppointmentID, in.BarberID)
	if err != nil {
		return nil, err
	}
	if in.ClientPhone != "" && ap.Client.Phone != in.ClientPhone {
		return nil, domain.ErrAppointmentNotFound
	}

	now := uc.clock.Now().In(loc)
	prev := domain.Status(ap.Status)

	if err := domain.Cancel(ap, now); err != nil {
		uc.metrics.Transition("cancel", "rejected")
		return nil, err
	}

	res := &CancelResult{Appointment: ap, Message: CancelledMessage}
	date := ap.StartTime.In(loc).Format(timezone.DateLayout)

	err = uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.repo.UpdateStatus(ctx, ap, prev); err != nil {
			return err
		}

		entries, err := uc.matcher.OnSlotFreed(ctx, in.BarbershopID, ap.BarberID, date)
		if err != nil {
			return err
		}

		intents := cancellationIntents(ap, entries, loc, now)
		if err := uc.outbox.Enqueue(ctx, intents); err != nil {
			return err
		}

		ids := make([]uint, 0, len(entries))
		for _, e := range entries {
			ids = append(ids, e.ID)
		}
		if err := uc.waitlist.MarkNotified(ctx, ids, now); err != nil {
			return err
		}

		res.Waitlist = entries
		res.Intents = intents
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrStatusChanged) {
			uc.metrics.Transition("cancel", "rejected")
			return nil, lostUpdate(ctx, uc.repo, in.BarbershopID, ap.ID, func(s domain.Status) error {
				return domain.CanCancel(s, ap.StartTime, now)
			})
		}
		uc.metrics.Transition("cancel", "error")
		return nil, err
	}

	uc.flush(ctx)

	uc.metrics.Transition("cancel", "ok")
	uc.metrics.WaitlistMatched(len(res.Waitlist))
	for _, intent := range res.Intents {
		uc.metrics.Intent(string(intent.Template))
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       in.ActorID,
		Action:       "appointment_cancelled",
		Entity:       "appointment",
		EntityID:     &ap.ID,
		Metadata: map[string]any{
			"previous_status":  string(prev),
			"waitlist_matched": len(res.Waitlist),
		},
	})

	return res, nil
}

// flush runs after commit. Whatever fails stays in the outbox.
func (uc *CancelAppointment) flush(ctx context.Context) {
	if uc.dispatcher == nil {
		return
	}
	if _, err := uc.dispatcher.Flush(ctx); err != nil {
		uc.logger.Error("notification flush failed", "error", err)
	}
}

func cancellationIntents(
	ap *models.Appointment,
	entries []models.WaitlistEntry,
	loc *time.Location,
	now time.Time,
) []notification.Intent {

	start := ap.StartTime.In(loc)
	end := ap.EndTime.In(loc)

	freed := map[string]string{
		"appointment_id": strconv.FormatUint(uint64(ap.ID), 10),
		"barber_id":      strconv.FormatUint(uint64(ap.BarberID), 10),
		"date":           start.Format(timezone.DateLayout),
		"start":          start.Format(timezone.TimeLayout),
		"end":            end.Format(timezone.TimeLayout),
	}

	intents := make([]notification.Intent, 0, len(entries)+1)
	for _, e := range entries {
		payload := copyPayload(freed)
		payload["service_id"] = strconv.FormatUint(uint64(e.ServiceID), 10)
		intents = append(intents, notification.NewIntent(
			ap.BarbershopID, e.Client, notification.TemplateWaitlistSlotFreed, payload, now,
		))
	}

	intents = append(intents, notification.NewIntent(
		ap.BarbershopID, ap.Client, notification.TemplateAppointmentCancelled, copyPayload(freed), now,
	))

	return intents
}

func copyPayload(src map[string]string) map[string]string {
	out := make(map[string]string, len(src)+1)
	for k, v := range src {
		out[k] = v
	}
	return out
}

func findOwnedAppointment(
	ctx context.Context,
	repo domain.Repository,
	barbershopID uint,
	appointmentID uint,
	barberID uint,
) (*models.Appointment, error) {

	ap, err := repo.GetAppointment(ctx, barbershopID, appointmentID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, err
	}
	if barberID != 0 && ap.BarberID != barberID {
		return nil, domain.ErrAppointmentNotFound
	}
	return ap, nil
}

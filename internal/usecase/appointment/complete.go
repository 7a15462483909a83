package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/finance"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type CompleteAppointment struct {
	repo    domain.Repository
	tx      domain.Transactor
	finance finance.Recorder
	audit   *audit.Dispatcher
	clock   timezone.Clock
	metrics *metrics.Scheduler
}

func NewCompleteAppointment(
	repo domain.Repository,
	tx domain.Transactor,
	recorder finance.Recorder,
	audit *audit.Dispatcher,
	clock timezone.Clock,
	m *metrics.Scheduler,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:    repo,
		tx:      tx,
		finance: recorder,
		audit:   audit,
		clock:   clock,
		metrics: m,
	}
}

// Execute marks a confirmed appointment as rendered and books its revenue in
// the same transaction. There is no time restriction.
func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	ap, err := findOwnedAppointment(ctx, uc.repo, barbershopID, appointmentID, barberID)
	if err != nil {
		return nil, err
	}

	prev := domain.Status(ap.Status)
	now := timezone.NowIn(uc.clock, shop.Timezone)
	if err := domain.Complete(ap, now); err != nil {
		uc.metrics.Transition("complete", "rejected")
		return nil, err
	}

	err = uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.repo.UpdateStatus(ctx, ap, prev); err != nil {
			return err
		}
		return uc.finance.RecordCompletion(ctx, finance.RevenueEntry(ap, &ap.Service))
	})
	if errors.Is(err, domain.ErrStatusChanged) {
		uc.metrics.Transition("complete", "rejected")
		return nil, lostUpdate(ctx, uc.repo, barbershopID, ap.ID, domain.CanComplete)
	}
	if err != nil {
		uc.metrics.Transition("complete", "error")
		return nil, err
	}

	uc.metrics.Transition("complete", "ok")

	uc.audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		UserID:       &barberID,
		Action:       "appointment_completed",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}

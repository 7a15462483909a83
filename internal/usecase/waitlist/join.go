package waitlist

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	wl "github.com/BruksfildServices01/barber-booking/internal/domain/waitlist"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// ErrSlotsAvailable rejects a join while the day still has free slots.
var ErrSlotsAvailable = httperr.ErrBusiness("slots_available")

type JoinInput struct {
	BarbershopID uint
	BarberID     uint
	ServiceID    uint
	Date         string

	ClientName  string
	ClientPhone string
	ClientEmail string
}

type JoinResult struct {
	Entry   *models.WaitlistEntry
	Created bool
}

// Join puts a client on the waitlist for a barber's day. It is only allowed
// when the day is open and has no free slot for the service; joining twice
// returns the existing entry.
type Join struct {
	repo         domain.Repository
	waitlist     wl.Repository
	availability *ucAppointment.GetAvailability
	audit        *audit.Dispatcher
}

func NewJoin(
	repo domain.Repository,
	waitlistRepo wl.Repository,
	availability *ucAppointment.GetAvailability,
	audit *audit.Dispatcher,
) *Join {
	return &Join{
		repo:         repo,
		waitlist:     waitlistRepo,
		availability: availability,
		audit:        audit,
	}
}

func (uc *Join) Execute(ctx context.Context, in JoinInput) (*JoinResult, error) {
	if in.ClientName == "" || in.ClientPhone == "" {
		return nil, domain.ValidationError{Code: "missing_client", Field: "client"}
	}

	avail, err := uc.availability.Execute(ctx, domain.AvailabilityInput{
		BarbershopID: in.BarbershopID,
		BarberID:     in.BarberID,
		ServiceID:    in.ServiceID,
		Date:         in.Date,
	})
	if err != nil {
		return nil, err
	}
	if len(avail.Slots) > 0 {
		return nil, ErrSlotsAvailable
	}

	client, err := uc.repo.GetOrCreateClient(ctx, in.BarbershopID, in.ClientName, in.ClientPhone, in.ClientEmail)
	if err != nil {
		return nil, err
	}

	existing, err := uc.waitlist.FindEntry(ctx, in.BarbershopID, client.ID, in.BarberID, avail.Date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &JoinResult{Entry: existing}, nil
	}

	entry := &models.WaitlistEntry{
		BarbershopID: in.BarbershopID,
		ClientID:     client.ID,
		BarberID:     in.BarberID,
		ServiceID:    in.ServiceID,
		Date:         avail.Date,
	}
	if err := uc.waitlist.Create(ctx, entry); err != nil {
		if !errors.Is(err, wl.ErrEntryExists) {
			return nil, err
		}
		// A concurrent join for the same client won.
		existing, err := uc.waitlist.FindEntry(ctx, in.BarbershopID, client.ID, in.BarberID, avail.Date)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, wl.ErrEntryExists
		}
		return &JoinResult{Entry: existing}, nil
	}
	entry.Client = *client

	uc.audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		Action:       "waitlist_joined",
		Entity:       "waitlist_entry",
		EntityID:     &entry.ID,
		Metadata:     map[string]any{"barber_id": in.BarberID, "date": avail.Date},
	})

	return &JoinResult{Entry: entry, Created: true}, nil
}

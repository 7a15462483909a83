package waitlist

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ErrEntryExists is returned by Create when the client already waits for
// that barber and day.
var ErrEntryExists = errors.New("waitlist entry exists")

type Repository interface {
	// ListForDay returns entries with the client loaded.
	ListForDay(ctx context.Context, barbershopID, barberID uint, date string) ([]models.WaitlistEntry, error)
	FindEntry(ctx context.Context, barbershopID, clientID, barberID uint, date string) (*models.WaitlistEntry, error)
	Create(ctx context.Context, entry *models.WaitlistEntry) error
	MarkNotified(ctx context.Context, ids []uint, at time.Time) error
}

// Matcher picks the waiting clients to tell about a freed slot. The match is
// day and barber only: every entry for that day is returned, whether or not
// it was notified before and whether or not its service fits the freed time.
type Matcher struct {
	repo Repository
}

func NewMatcher(repo Repository) *Matcher {
	return &Matcher{repo: repo}
}

func (m *Matcher) OnSlotFreed(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
	date string,
) ([]models.WaitlistEntry, error) {

	entries, err := m.repo.ListForDay(ctx, barbershopID, barberID, date)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		}
		return entries[i].ID < entries[j].ID
	})

	return entries, nil
}

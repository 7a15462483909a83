package waitlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type memoryRepo struct {
	entries []models.WaitlistEntry
	err     error
}

func (r *memoryRepo) ListForDay(_ context.Context, barbershopID, barberID uint, date string) ([]models.WaitlistEntry, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []models.WaitlistEntry
	for _, e := range r.entries {
		if e.BarbershopID == barbershopID && e.BarberID == barberID && e.Date == date {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memoryRepo) FindEntry(context.Context, uint, uint, uint, string) (*models.WaitlistEntry, error) {
	return nil, nil
}

func (r *memoryRepo) Create(_ context.Context, e *models.WaitlistEntry) error {
	r.entries = append(r.entries, *e)
	return nil
}

func (r *memoryRepo) MarkNotified(context.Context, []uint, time.Time) error { return nil }

func TestMatcher_ReturnsEveryEntryForDayInOrder(t *testing.T) {
	t0 := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	notified := t0.Add(time.Hour)

	repo := &memoryRepo{entries: []models.WaitlistEntry{
		{ID: 3, BarbershopID: 1, BarberID: 5, Date: "2026-10-20", CreatedAt: t0.Add(2 * time.Minute)},
		{ID: 1, BarbershopID: 1, BarberID: 5, Date: "2026-10-20", CreatedAt: t0, NotifiedAt: &notified},
		{ID: 2, BarbershopID: 1, BarberID: 5, Date: "2026-10-20", CreatedAt: t0},
		{ID: 4, BarbershopID: 1, BarberID: 6, Date: "2026-10-20", CreatedAt: t0},
		{ID: 5, BarbershopID: 1, BarberID: 5, Date: "2026-10-21", CreatedAt: t0},
		{ID: 6, BarbershopID: 2, BarberID: 5, Date: "2026-10-20", CreatedAt: t0},
	}}

	m := NewMatcher(repo)

	first, err := m.OnSlotFreed(context.Background(), 1, 5, "2026-10-20")
	require.NoError(t, err)

	ids := make([]uint, len(first))
	for i, e := range first {
		ids[i] = e.ID
	}
	assert.Equal(t, []uint{1, 2, 3}, ids)

	second, err := m.OnSlotFreed(context.Background(), 1, 5, "2026-10-20")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMatcher_EmptyAndError(t *testing.T) {
	m := NewMatcher(&memoryRepo{})
	got, err := m.OnSlotFreed(context.Background(), 1, 5, "2026-10-20")
	require.NoError(t, err)
	assert.Empty(t, got)

	boom := errors.New("db down")
	_, err = NewMatcher(&memoryRepo{err: boom}).OnSlotFreed(context.Background(), 1, 5, "2026-10-20")
	assert.ErrorIs(t, err, boom)
}

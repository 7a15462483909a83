package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/notification"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestComplete_RecordsRevenue(t *testing.T) {
	repo := newMemRepo()
	fin := &memFinance{}
	ap := repo.addAppointment(at(9, 0), 30, domain.StatusConfirmed)

	// Completion has no time restriction.
	uc := NewCompleteAppointment(repo, &passTx{}, fin, nil, clockAt(at(7, 0)), nil)
	got, err := uc.Execute(context.Background(), 1, 10, ap.ID)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCompleted), got.Status)
	assert.NotNil(t, got.CompletedAt)
	assert.Equal(t, string(domain.StatusCompleted), repo.status(ap.ID))

	require.Len(t, fin.entries, 1)
	assert.Equal(t, models.FinanceRevenue, fin.entries[0].Type)
	assert.Equal(t, float64(50), fin.entries[0].Amount)
	assert.Equal(t, ap.ID, fin.entries[0].AppointmentID)
}

func TestComplete_Rejections(t *testing.T) {
	cases := []struct {
		status domain.Status
		want   error
	}{
		{domain.StatusPendingPayment, domain.ErrInvalidTransition},
		{domain.StatusCancelled, domain.ErrAlreadyTerminal},
		{domain.StatusCompleted, domain.ErrAlreadyTerminal},
	}

	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			repo := newMemRepo()
			fin := &memFinance{}
			ap := repo.addAppointment(at(9, 0), 30, tc.status)

			_, err := NewCompleteAppointment(repo, &passTx{}, fin, nil, clockAt(at(10, 0)), nil).
				Execute(context.Background(), 1, 10, ap.ID)
			assert.ErrorIs(t, err, tc.want)
			assert.Empty(t, fin.entries)
		})
	}
}

func TestConfirm_PendingPaymentBecomesConfirmed(t *testing.T) {
	repo := newMemRepo()
	outbox := newMemOutbox()
	notifier := &recordingNotifier{}
	ap := repo.addAppointment(at(15, 0), 60, domain.StatusPendingPayment)

	uc := NewConfirmAppointment(
		repo, &passTx{}, outbox, notification.NewDispatcher(outbox, notifier, nil),
		nil, clockAt(at(7, 0)), nil, nil,
	)
	got, err := uc.Execute(context.Background(), 1, 10, ap.ID)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), got.Status)
	assert.Equal(t, string(domain.StatusConfirmed), repo.status(ap.ID))
	require.Len(t, notifier.got, 1)
	assert.Equal(t, notification.TemplateAppointmentConfirmed, notifier.got[0].Template)
	assert.Equal(t, "15:00", notifier.got[0].Payload["start"])

	_, err = uc.Execute(context.Background(), 1, 10, ap.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateStatus_StaleReadIsRejected(t *testing.T) {
	repo := newMemRepo()
	ap := repo.addAppointment(at(15, 0), 30, domain.StatusConfirmed)

	stale := *ap
	require.NoError(t, domain.Cancel(&stale, at(7, 0)))

	// Someone else completed it in between.
	repo.apps[ap.ID].Status = string(domain.StatusCompleted)

	err := repo.UpdateStatus(context.Background(), &stale, domain.StatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrStatusChanged)
}

func TestTransitions_LostRaceReportsStoredStatus(t *testing.T) {
	race := func(initial, winner domain.Status) (*staleRepo, *models.Appointment) {
		repo := newMemRepo()
		ap := repo.addAppointment(at(15, 0), 30, initial)
		snapshot, err := repo.GetAppointment(context.Background(), 1, ap.ID)
		require.NoError(t, err)
		repo.apps[ap.ID].Status = string(winner)
		return &staleRepo{memRepo: repo, snapshot: snapshot}, ap
	}

	t.Run("cancel after cancel", func(t *testing.T) {
		repo, ap := race(domain.StatusConfirmed, domain.StatusCancelled)
		outbox := newMemOutbox()
		uc := NewCancelAppointment(repo, &passTx{}, &memWaitlist{}, outbox, nil, nil, clockAt(at(7, 0)), nil, nil)

		_, err := uc.Execute(context.Background(), CancelAppointmentInput{BarbershopID: 1, AppointmentID: ap.ID})
		assert.ErrorIs(t, err, domain.ErrAlreadyTerminal)
		assert.Empty(t, outbox.intents)
	})

	t.Run("complete after cancel", func(t *testing.T) {
		repo, ap := race(domain.StatusConfirmed, domain.StatusCancelled)
		fin := &memFinance{}

		_, err := NewCompleteAppointment(repo, &passTx{}, fin, nil, clockAt(at(16, 0)), nil).
			Execute(context.Background(), 1, 10, ap.ID)
		assert.ErrorIs(t, err, domain.ErrAlreadyTerminal)
		assert.Empty(t, fin.entries)
	})

	t.Run("confirm after confirm", func(t *testing.T) {
		repo, ap := race(domain.StatusPendingPayment, domain.StatusConfirmed)
		outbox := newMemOutbox()

		_, err := NewConfirmAppointment(repo, &passTx{}, outbox, nil, nil, clockAt(at(7, 0)), nil, nil).
			Execute(context.Background(), 1, 10, ap.ID)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.Empty(t, outbox.intents)
	})

	t.Run("still allowed falls back to status changed", func(t *testing.T) {
		// The stored row moved pending -> confirmado; cancelling is still
		// allowed, so the caller is told to retry.
		repo, ap := race(domain.StatusPendingPayment, domain.StatusConfirmed)

		_, err := NewCancelAppointment(repo, &passTx{}, &memWaitlist{}, newMemOutbox(), nil, nil, clockAt(at(7, 0)), nil, nil).
			Execute(context.Background(), CancelAppointmentInput{BarbershopID: 1, AppointmentID: ap.ID})
		assert.ErrorIs(t, err, domain.ErrStatusChanged)
	})
}

func TestListAppointments(t *testing.T) {
	repo := newMemRepo()
	repo.addAppointment(at(15, 0), 30, domain.StatusConfirmed)
	repo.addAppointment(at(9, 0), 30, domain.StatusCancelled)
	repo.addAppointment(at(9, 0).AddDate(0, 0, 1), 30, domain.StatusConfirmed)
	repo.addAppointment(at(9, 0).AddDate(0, 1, 0), 30, domain.StatusConfirmed)

	byDate, err := NewListAppointmentsByDate(repo).Execute(context.Background(), 10, 1, at(0, 0))
	require.NoError(t, err)

	require.Len(t, byDate, 2)
	assert.True(t, byDate[0].StartTime.Equal(at(9, 0)))
	assert.Equal(t, string(domain.StatusCancelled), byDate[0].Status)
	assert.True(t, byDate[1].StartTime.Equal(at(15, 0)))
	assert.Equal(t, "Ana", byDate[1].ClientName)
	assert.Equal(t, "Corte", byDate[1].ServiceName)
	assert.Equal(t, "15:00", byDate[1].Start)
	assert.Equal(t, testDate, byDate[1].Date)
	assert.Equal(t, "America/Sao_Paulo", byDate[1].StartTime.Location().String())

	byMonth, err := NewListAppointmentsByMonth(repo).Execute(context.Background(), 10, 1, 2026, 10)
	require.NoError(t, err)
	assert.Len(t, byMonth, 3)
}

package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestFindConflict(t *testing.T) {
	existing := []models.Appointment{
		{ID: 1, BarberID: 7, StartTime: at(10, 0), EndTime: at(10, 30), Status: string(StatusConfirmed)},
		{ID: 2, BarberID: 7, StartTime: at(9, 30), EndTime: at(10, 15), Status: string(StatusPendingPayment)},
		{ID: 3, BarberID: 7, StartTime: at(14, 0), EndTime: at(14, 30), Status: string(StatusCancelled)},
		{ID: 4, BarberID: 8, StartTime: at(15, 0), EndTime: at(15, 30), Status: string(StatusConfirmed)},
	}

	got := FindConflict(existing, 7, at(10, 0), at(10, 30))
	require.NotNil(t, got)
	assert.Equal(t, uint(2), got.ID, "earliest overlapping appointment wins")

	assert.Nil(t, FindConflict(existing, 7, at(10, 30), at(11, 0)), "touching is not overlapping")
	assert.Nil(t, FindConflict(existing, 7, at(14, 0), at(14, 30)), "cancelled appointments free the slot")
	assert.Nil(t, FindConflict(existing, 7, at(15, 0), at(15, 30)), "other barbers never conflict")
}

func TestConflictError(t *testing.T) {
	var err error = ConflictError{AppointmentID: 42}

	ce, ok := AsConflict(err)
	require.True(t, ok)
	assert.Equal(t, uint(42), ce.AppointmentID)
	assert.Contains(t, err.Error(), "42")

	_, ok = AsConflict(ErrAlreadyTerminal)
	assert.False(t, ok)

	unknown := ConflictError{}
	assert.NotContains(t, unknown.Error(), " 0")
	assert.Contains(t, unknown.Error(), "no longer active")
}

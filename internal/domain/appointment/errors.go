package appointment

import (
	"errors"
	"fmt"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// ErrNotFound is returned by repositories when a scoped lookup finds no row.
var ErrNotFound = errors.New("record not found")

var (
	ErrAlreadyTerminal        = httperr.ErrBusiness("already_terminal")
	ErrPastCancellationWindow = httperr.ErrBusiness("past_cancellation_window")
	ErrInvalidTransition      = httperr.ErrBusiness("invalid_state")
	ErrStatusChanged          = httperr.ErrBusiness("status_changed")
	ErrAppointmentNotFound    = httperr.ErrBusiness("appointment_not_found")
)

// ConflictError is returned when a write would overlap an active appointment
// of the same barber. Callers re-query slots; the write is never retried.
//
// AppointmentID is zero when the database rejected the overlap but the
// colliding row was gone by the time it was looked up.
type ConflictError struct {
	AppointmentID uint
}

func (e ConflictError) Error() string {
	if e.AppointmentID == 0 {
		return "time_conflict: overlaps an appointment that is no longer active"
	}
	return fmt.Sprintf("time_conflict: overlaps appointment %d", e.AppointmentID)
}

const (
	ResolverClosed        = "closed"
	ResolverUnknownBarber = "unknown_barber"
)

// ResolverError means there is no bookable day: the barber does not work on
// that date, or the barber does not exist in the tenant.
type ResolverError struct {
	Code string
}

func (e ResolverError) Error() string {
	return "resolver: " + e.Code
}

// ValidationError rejects a malformed request before anything is written.
type ValidationError struct {
	Code  string
	Field string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Code
	}
	return fmt.Sprintf("validation: %s (%s)", e.Code, e.Field)
}

func invalid(code, field string) error {
	return ValidationError{Code: code, Field: field}
}

func AsConflict(err error) (ConflictError, bool) {
	var ce ConflictError
	ok := errors.As(err, &ce)
	return ce, ok
}

func AsValidation(err error) (ValidationError, bool) {
	var ve ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

func AsResolver(err error) (ResolverError, bool) {
	var re ResolverError
	ok := errors.As(err, &re)
	return re, ok
}

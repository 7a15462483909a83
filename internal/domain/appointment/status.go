package appointment

import "time"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPendingPayment Status = "pending_payment"
	StatusConfirmed      Status = "confirmado"
	StatusCompleted      Status = "concluido"
	StatusCancelled      Status = "cancelado"
)

// ActiveStatuses occupy the barber's time. Only these take part in conflicts.
var ActiveStatuses = []Status{StatusPendingPayment, StatusConfirmed, StatusCompleted}

func ActiveStatusStrings() []string {
	out := make([]string, len(ActiveStatuses))
	for i, s := range ActiveStatuses {
		out[i] = string(s)
	}
	return out
}

func (s Status) IsActive() bool {
	return s == StatusPendingPayment || s == StatusConfirmed || s == StatusCompleted
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ===============================
// Transitions
// ===============================

// CanCancel: pending_payment and confirmado may be cancelled until the
// appointment starts.
func CanCancel(current Status, start time.Time, now time.Time) error {
	switch current {
	case StatusCompleted, StatusCancelled:
		return ErrAlreadyTerminal
	case StatusPendingPayment, StatusConfirmed:
		if !now.Before(start) {
			return ErrPastCancellationWindow
		}
		return nil
	default:
		return ErrInvalidTransition
	}
}

// CanComplete: only a confirmed appointment can be marked as rendered.
func CanComplete(current Status) error {
	switch current {
	case StatusCompleted, StatusCancelled:
		return ErrAlreadyTerminal
	case StatusConfirmed:
		return nil
	default:
		return ErrInvalidTransition
	}
}

// CanConfirm: payment capture moves pending_payment to confirmado.
func CanConfirm(current Status) error {
	switch current {
	case StatusCompleted, StatusCancelled:
		return ErrAlreadyTerminal
	case StatusPendingPayment:
		return nil
	default:
		return ErrInvalidTransition
	}
}

func InitialStatus(requiresPrepayment bool) Status {
	if requiresPrepayment {
		return StatusPendingPayment
	}
	return StatusConfirmed
}

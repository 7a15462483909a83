package notification

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Template string

const (
	TemplateWaitlistSlotFreed    Template = "waitlist_slot_freed"
	TemplateAppointmentCancelled Template = "appointment_cancelled"
	TemplateAppointmentConfirmed Template = "appointment_confirmed"
)

type Recipient struct {
	ClientID uint   `json:"client_id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// Intent says that a message is owed to someone. How it is delivered
// (WhatsApp, email) is up to the messaging collaborator.
type Intent struct {
	ID           string            `json:"id"`
	BarbershopID uint              `json:"barbershop_id"`
	Recipient    Recipient         `json:"recipient"`
	Template     Template          `json:"template"`
	Payload      map[string]string `json:"payload"`
	CreatedAt    time.Time         `json:"created_at"`
}

func NewIntent(
	barbershopID uint,
	client models.Client,
	template Template,
	payload map[string]string,
	now time.Time,
) Intent {
	return Intent{
		ID:           uuid.NewString(),
		BarbershopID: barbershopID,
		Recipient: Recipient{
			ClientID: client.ID,
			Name:     client.Name,
			Phone:    client.Phone,
			Email:    client.Email,
		},
		Template:  template,
		Payload:   payload,
		CreatedAt: now,
	}
}

// Notifier hands an intent to the messaging collaborator. Delivery is
// at-least-once, so receivers must tolerate duplicates by Intent.ID.
type Notifier interface {
	Notify(ctx context.Context, intent Intent) error
}

// Outbox stores intents in the same transaction as the state change that
// produced them.
type Outbox interface {
	Enqueue(ctx context.Context, intents []Intent) error
	Pending(ctx context.Context, limit int) ([]Intent, error)
	MarkSent(ctx context.Context, intentID string, at time.Time) error
	MarkFailed(ctx context.Context, intentID string, cause error) error
}

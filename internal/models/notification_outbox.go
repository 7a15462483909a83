package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	OutboxPending = "pending"
	OutboxSent    = "sent"
)

// NotificationOutbox holds notification intents until the messaging
// collaborator has accepted them.
type NotificationOutbox struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	IntentID     string `gorm:"size:36;uniqueIndex;not null" json:"intent_id"`
	BarbershopID uint   `gorm:"index" json:"barbershop_id"`

	ClientID uint                                  `json:"client_id"`
	Name     string                                `gorm:"size:100" json:"name"`
	Phone    string                                `gorm:"size:20" json:"phone"`
	Email    string                                `gorm:"size:100" json:"email"`
	Template string                                `gorm:"size:50;not null" json:"template"`
	Payload  datatypes.JSONType[map[string]string] `json:"payload"`

	Status    string     `gorm:"size:10;index;default:'pending'" json:"status"`
	Attempts  int        `json:"attempts"`
	LastError string     `gorm:"size:255" json:"last_error"`
	SentAt    *time.Time `json:"sent_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

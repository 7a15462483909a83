package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID uint `gorm:"index" json:"barbershop_id"`
	SedeID       uint `json:"sede_id"`
	BarberID     uint `gorm:"index:idx_appointments_barber_start" json:"barber_id"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	StartTime time.Time `gorm:"index:idx_appointments_barber_start" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;not null;default:'confirmado'" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`
	ConfirmedAt *time.Time `json:"confirmed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

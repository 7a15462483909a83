package dto

import "time"

// AppointmentListDTO is one row of a barber's agenda. Times are in the
// barbershop's zone; Date and Start repeat them as calendar strings.
type AppointmentListDTO struct {
	ID     uint   `json:"id"`
	Status string `json:"status"`
	SedeID uint   `json:"sede_id"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Date      string    `json:"date"`
	Start     string    `json:"start"`

	ClientID    uint   `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`

	ServiceID   uint   `json:"service_id"`
	ServiceName string `json:"service_name"`
	DurationMin int    `json:"duration_min"`

	Notes string `json:"notes,omitempty"`
}

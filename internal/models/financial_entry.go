package models

import "time"

const FinanceRevenue = "revenue"

type FinancialEntry struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	BarbershopID  uint    `gorm:"index" json:"barbershop_id"`
	SedeID        uint    `json:"sede_id"`
	AppointmentID uint    `gorm:"uniqueIndex" json:"appointment_id"`
	Type          string  `gorm:"size:20;not null" json:"type"`
	Amount        float64 `json:"amount"`
	Description   string  `gorm:"size:255" json:"description"`

	CreatedAt time.Time `json:"created_at"`
}

package models

import "time"

// Um cliente espera no máximo uma vez por barbeiro e dia.
type WaitlistEntry struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	BarbershopID uint   `gorm:"index:idx_waitlist_lookup;uniqueIndex:idx_waitlist_client_day" json:"barbershop_id"`
	ClientID     uint   `gorm:"uniqueIndex:idx_waitlist_client_day" json:"client_id"`
	Client       Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"client"`
	BarberID     uint   `gorm:"index:idx_waitlist_lookup;uniqueIndex:idx_waitlist_client_day" json:"barber_id"`
	ServiceID    uint   `json:"service_id"`

	// Day granularity, YYYY-MM-DD in the barbershop's time zone.
	Date string `gorm:"size:10;index:idx_waitlist_lookup;uniqueIndex:idx_waitlist_client_day" json:"date"`

	NotifiedAt *time.Time `json:"notified_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

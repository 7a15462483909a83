package models

import "time"

const (
	RoleOwner  = "owner"
	RoleBarber = "barber"
)

// User is a staff member. Barbers are the unit of mutual exclusion for bookings.
type User struct {
	ID           uint  `gorm:"primaryKey" json:"id"`
	BarbershopID uint  `gorm:"index" json:"barbershop_id"`
	SedeID       *uint `json:"sede_id"`

	Name   string `gorm:"size:100;not null" json:"name"`
	Email  string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone  string `gorm:"size:20" json:"phone"`
	Role   string `gorm:"size:20;default:'owner'" json:"role"`
	Active bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

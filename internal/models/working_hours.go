package models

import "time"

// WorkingHours is a barber's weekly rule for one weekday (0 = Sunday).
type WorkingHours struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"uniqueIndex:idx_working_hours_barber_weekday" json:"barber_id"`

	Weekday int `gorm:"uniqueIndex:idx_working_hours_barber_weekday" json:"weekday"`

	StartTime string         `gorm:"size:5" json:"start_time"`
	EndTime   string         `gorm:"size:5" json:"end_time"`
	Active    bool           `json:"active"`
	Breaks    []WorkingBreak `gorm:"foreignKey:WorkingHoursID;constraint:OnDelete:CASCADE;" json:"breaks"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WorkingBreak belongs either to a weekly rule or to a date override.
type WorkingBreak struct {
	ID             uint  `gorm:"primaryKey" json:"-"`
	WorkingHoursID *uint `gorm:"index" json:"-"`
	OverrideID     *uint `gorm:"index" json:"-"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
}

// WorkingHoursOverride replaces the weekly rule on one calendar date.
type WorkingHoursOverride struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BarberID uint   `gorm:"uniqueIndex:idx_override_barber_date" json:"barber_id"`
	Date     string `gorm:"size:10;uniqueIndex:idx_override_barber_date" json:"date"`

	StartTime string         `gorm:"size:5" json:"start_time"`
	EndTime   string         `gorm:"size:5" json:"end_time"`
	Active    bool           `json:"active"`
	Breaks    []WorkingBreak `gorm:"foreignKey:OverrideID;constraint:OnDelete:CASCADE;" json:"breaks"`
	Reason    string         `gorm:"size:100" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import "time"

// Booking is one scheduled appointment. Date and Time are stored as plain
// strings (YYYY-MM-DD / HH:MM) to match how the booking form submits them;
// DurationMin is fixed at creation from the service catalog so that slot
// conflict checks against historical bookings never recompute durations.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Phone   string `gorm:"size:20;not null" json:"phone"`
	Email   string `gorm:"size:100" json:"email"`
	Eircode string `gorm:"size:10" json:"eircode"`

	Service string `gorm:"size:50;not null" json:"service"`
	Date    string `gorm:"size:10;not null;index" json:"date"`
	Time    string `gorm:"size:5;not null" json:"time"`

	Message          string `gorm:"size:500" json:"message"`
	IronFalloutAddon bool   `gorm:"default:false" json:"iron_fallout_addon"`

	DurationMin int `json:"duration_min"`

	CustomPrice *float64 `json:"custom_price"`

	Completed    bool `gorm:"default:false" json:"completed"`
	AdminCreated bool `gorm:"default:false" json:"admin_created"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import "time"

// Review is submitted by customers and hidden until an admin approves it.
type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerEmail string `gorm:"size:100" json:"customer_email"`

	Rating  int    `gorm:"not null" json:"rating"`
	Review  string `gorm:"size:500;not null" json:"review"`
	Service string `gorm:"size:50" json:"service"`

	Approved bool `gorm:"default:false" json:"approved"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

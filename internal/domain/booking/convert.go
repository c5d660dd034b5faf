package booking

import "github.com/jakescarcare/valet-api/internal/models"

// OccupiedFrom projects stored bookings onto the slot grid. The duration
// recorded at creation time wins; rows from before durations were stored
// fall back to the base catalog duration for their service.
func OccupiedFrom(bookings []models.Booking) []Occupied {
	out := make([]Occupied, 0, len(bookings))
	for _, b := range bookings {
		dur := b.DurationMin
		if dur <= 0 {
			dur = BaseDurationMin(b.Service)
		}
		out = append(out, Occupied{Time: b.Time, DurationMin: dur})
	}
	return out
}

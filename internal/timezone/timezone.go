package timezone

import "time"

// The business operates in Ireland; all booking dates and slot times are
// interpreted in this zone.
const BusinessTimezone = "Europe/Dublin"

func Location() *time.Location {
	loc, err := time.LoadLocation(BusinessTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location())
}

// Today returns the current calendar date in the business timezone as
// YYYY-MM-DD.
func Today() string {
	return Now().Format("2006-01-02")
}

// Tomorrow returns the earliest bookable date: bookings must be made at
// least one day in advance.
func Tomorrow() string {
	return Now().AddDate(0, 0, 1).Format("2006-01-02")
}

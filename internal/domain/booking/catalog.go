package booking

import "math"

// Bookable services. Names double as the stored enum values so that rows
// written by the old site remain readable.
const (
	ServiceFullValet    = "Full Valet"
	ServiceExteriorOnly = "Exterior Only"
	ServiceInteriorOnly = "Interior Only"

	// AddonIronFallout is not bookable on its own; it attaches to
	// Full Valet or Exterior Only.
	AddonIronFallout = "Iron Fallout & Tar Remover"
)

var Services = []string{ServiceFullValet, ServiceExteriorOnly, ServiceInteriorOnly}

// Base prices in euro.
var servicePrices = map[string]float64{
	ServiceFullValet:    95,
	ServiceExteriorOnly: 40,
	ServiceInteriorOnly: 60,
}

const AddonPrice float64 = 20

// Durations in minutes, travel time included.
var serviceDurations = map[string]int{
	ServiceFullValet:    240, // 3-4 hours service + 1 hour travel
	ServiceExteriorOnly: 120, // 1-2 hours service + 1 hour travel
	ServiceInteriorOnly: 180, // 2-3 hours service + 1 hour travel
}

const (
	AddonDurationMin = 90 // 30 min service + 1 hour travel

	// Historical rows may carry service names no longer in the catalog.
	defaultDurationMin = 180
)

func IsValidService(service string) bool {
	_, ok := serviceDurations[service]
	return ok
}

// AddonAllowed reports whether the iron fallout treatment may be attached
// to the given service.
func AddonAllowed(service string) bool {
	return service == ServiceFullValet || service == ServiceExteriorOnly
}

// BaseDurationMin returns the catalog duration for a service, falling back
// to the default for unknown kinds.
func BaseDurationMin(service string) int {
	if d, ok := serviceDurations[service]; ok {
		return d
	}
	return defaultDurationMin
}

// TotalDurationMin is the duration consumed by a candidate booking.
func TotalDurationMin(service string, ironFallout bool) int {
	d := BaseDurationMin(service)
	if ironFallout {
		d += AddonDurationMin
	}
	return d
}

// BasePrice returns the catalog price for a service; unknown kinds price
// at zero, matching how legacy rows were totalled.
func BasePrice(service string) float64 {
	return servicePrices[service]
}

// Price is the effective price of a booking: the custom override when set,
// otherwise the base price plus the add-on surcharge.
func Price(service string, ironFallout bool, customPrice *float64) float64 {
	if customPrice != nil {
		return *customPrice
	}
	p := servicePrices[service]
	if ironFallout {
		p += AddonPrice
	}
	return p
}

// MinSelectableSlots is the free-slot count a date needs to stay selectable
// in the calendar: the ceiling of the shortest duration in the catalog
// (the add-on entry, 1.5h).
var MinSelectableSlots = func() int {
	shortest := float64(AddonDurationMin)
	for _, d := range serviceDurations {
		if float64(d) < shortest {
			shortest = float64(d)
		}
	}
	return int(math.Ceil(shortest / 60))
}()

package booking

import (
	"context"
	"time"

	"github.com/jakescarcare/valet-api/internal/cache"
	domain "github.com/jakescarcare/valet-api/internal/domain/booking"
	"github.com/jakescarcare/valet-api/internal/httperr"
)

// GetAvailability lists the start times on which a candidate service
// (optionally with the iron fallout add-on) can be booked on a date.
// Reads go through the day cache when one is configured; submissions
// never do.
type GetAvailability struct {
	repo  domain.Repository
	cache *cache.DayCache
}

func NewGetAvailability(repo domain.Repository, dayCache *cache.DayCache) *GetAvailability {
	return &GetAvailability{repo: repo, cache: dayCache}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	date string,
	service string,
	ironFallout bool,
) ([]string, error) {

	if !domain.IsValidService(service) {
		return nil, httperr.ErrBusiness("invalid_service")
	}
	if ironFallout && !domain.AddonAllowed(service) {
		return nil, httperr.ErrBusiness("addon_not_allowed")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	bookings, ok := uc.cache.GetDay(ctx, date)
	if !ok {
		var err error
		bookings, err = uc.repo.ListByDate(ctx, date)
		if err != nil {
			return nil, err
		}
		uc.cache.SetDay(ctx, date, bookings)
	}

	dur := domain.TotalDurationMin(service, ironFallout)
	return domain.AvailableStartTimes(domain.OccupiedFrom(bookings), dur), nil
}

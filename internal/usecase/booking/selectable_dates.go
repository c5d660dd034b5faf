package booking

import (
	"context"
	"time"

	domain "github.com/jakescarcare/valet-api/internal/domain/booking"
	"github.com/jakescarcare/valet-api/internal/httperr"
	"github.com/jakescarcare/valet-api/internal/models"
	"github.com/jakescarcare/valet-api/internal/timezone"
)

// Calendar requests are capped to this many days.
const maxDateRangeDays = 90

// ListSelectableDates is the coarse calendar filter: which dates in a
// range still have enough free slots to be worth offering, independent of
// the service eventually chosen.
type ListSelectableDates struct {
	repo domain.Repository
}

func NewListSelectableDates(repo domain.Repository) *ListSelectableDates {
	return &ListSelectableDates{repo: repo}
}

func (uc *ListSelectableDates) Execute(
	ctx context.Context,
	from string,
	to string,
) ([]string, error) {

	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	end, err := time.Parse("2006-01-02", to)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	if end.Before(start) || end.Sub(start) > maxDateRangeDays*24*time.Hour {
		return nil, httperr.ErrBusiness("invalid_date_range")
	}

	// Dates before tomorrow are never selectable.
	if tomorrow := timezone.Tomorrow(); from < tomorrow {
		from = tomorrow
		start, _ = time.Parse("2006-01-02", from)
	}

	bookings, err := uc.repo.ListFromDate(ctx, from)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string][]models.Booking)
	for _, b := range bookings {
		byDate[b.Date] = append(byDate[b.Date], b)
	}

	var out []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")
		if domain.DateSelectable(domain.OccupiedFrom(byDate[date])) {
			out = append(out, date)
		}
	}
	return out, nil
}

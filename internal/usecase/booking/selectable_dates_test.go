package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	domain "github.com/jakescarcare/valet-api/internal/domain/booking"
	"github.com/jakescarcare/valet-api/internal/httperr"
	"github.com/jakescarcare/valet-api/internal/models"
	"github.com/jakescarcare/valet-api/internal/timezone"
)

func plusDays(n int) string {
	t, _ := time.Parse("2006-01-02", timezone.Tomorrow())
	return t.AddDate(0, 0, n).Format("2006-01-02")
}

func fillDay(repo *memRepo, date string) {
	for _, tm := range domain.AvailableTimes {
		repo.add(models.Booking{
			Service:     domain.ServiceExteriorOnly,
			Date:        date,
			Time:        tm,
			DurationMin: 60,
		})
	}
}

func TestListSelectableDates(t *testing.T) {
	repo := newMemRepo()
	uc := NewListSelectableDates(repo)

	// Day two is completely booked out; everything else is open.
	fillDay(repo, plusDays(1))

	dates, err := uc.Execute(context.Background(), plusDays(0), plusDays(3))
	assert.NoError(t, err)
	assert.Equal(t, []string{plusDays(0), plusDays(2), plusDays(3)}, dates)
}

func TestListSelectableDatesNearlyFullDay(t *testing.T) {
	repo := newMemRepo()
	uc := NewListSelectableDates(repo)

	// Seven of eight slots taken leaves one free slot, which is below the
	// floor for the shortest catalog duration.
	date := plusDays(0)
	for _, tm := range domain.AvailableTimes[:7] {
		repo.add(models.Booking{
			Service:     domain.ServiceExteriorOnly,
			Date:        date,
			Time:        tm,
			DurationMin: 60,
		})
	}

	dates, err := uc.Execute(context.Background(), date, date)
	assert.NoError(t, err)
	assert.Empty(t, dates)
}

func TestListSelectableDatesClampsToTomorrow(t *testing.T) {
	repo := newMemRepo()
	uc := NewListSelectableDates(repo)

	// Asking from today still only offers dates from tomorrow on.
	dates, err := uc.Execute(context.Background(), timezone.Today(), plusDays(1))
	assert.NoError(t, err)
	assert.Equal(t, []string{plusDays(0), plusDays(1)}, dates)
}

func TestListSelectableDatesRangeValidation(t *testing.T) {
	repo := newMemRepo()
	uc := NewListSelectableDates(repo)

	_, err := uc.Execute(context.Background(), "not-a-date", plusDays(1))
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))

	_, err = uc.Execute(context.Background(), plusDays(5), plusDays(1))
	assert.True(t, httperr.IsBusiness(err, "invalid_date_range"))

	_, err = uc.Execute(context.Background(), plusDays(0), plusDays(200))
	assert.True(t, httperr.IsBusiness(err, "invalid_date_range"))
}

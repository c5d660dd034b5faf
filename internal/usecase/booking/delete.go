package booking

import (
	"context"

	"github.com/jakescarcare/valet-api/internal/audit"
	"github.com/jakescarcare/valet-api/internal/cache"
	domain "github.com/jakescarcare/valet-api/internal/domain/booking"
	"github.com/jakescarcare/valet-api/internal/httperr"
)

type DeleteBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.DayCache
}

func NewDeleteBooking(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	dayCache *cache.DayCache,
) *DeleteBooking {
	return &DeleteBooking{repo: repo, audit: auditDisp, cache: dayCache}
}

func (uc *DeleteBooking) Execute(
	ctx context.Context,
	adminID uint,
	bookingID uint,
) error {

	b, err := uc.repo.GetByID(ctx, bookingID)
	if err != nil {
		return httperr.ErrBusiness("booking_not_found")
	}

	if err := uc.repo.Delete(ctx, bookingID); err != nil {
		return err
	}

	// The freed slots become bookable again immediately.
	uc.cache.InvalidateDay(ctx, b.Date)

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: &bookingID,
	})

	return nil
}

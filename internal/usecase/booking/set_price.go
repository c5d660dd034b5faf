package booking

import (
	"context"

	"github.com/jakescarcare/valet-api/internal/audit"
	domain "github.com/jakescarcare/valet-api/internal/domain/booking"
	"github.com/jakescarcare/valet-api/internal/httperr"
	"github.com/jakescarcare/valet-api/internal/models"
)

// SetPrice stores or clears a manual price override. A nil price returns
// the booking to catalog pricing.
type SetPrice struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSetPrice(repo domain.Repository, auditDisp *audit.Dispatcher) *SetPrice {
	return &SetPrice{repo: repo, audit: auditDisp}
}

func (uc *SetPrice) Execute(
	ctx context.Context,
	adminID uint,
	bookingID uint,
	price *float64,
) (*models.Booking, error) {

	if price != nil && *price < 0 {
		return nil, httperr.ErrBusiness("invalid_price")
	}

	b, err := uc.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if err := uc.repo.UpdateFields(ctx, bookingID, map[string]any{
		"custom_price": price,
	}); err != nil {
		return nil, err
	}
	b.CustomPrice = price

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "booking_price_set",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"custom_price": price},
	})

	return b, nil
}

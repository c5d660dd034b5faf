package booking

import (
	"context"

	"github.com/jakescarcare/valet-api/internal/audit"
	domain "github.com/jakescarcare/valet-api/internal/domain/booking"
	"github.com/jakescarcare/valet-api/internal/httperr"
	"github.com/jakescarcare/valet-api/internal/models"
)

// SetCompleted flips the completed flag, which moves the booking from the
// estimated total into the actual-earned total.
type SetCompleted struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSetCompleted(repo domain.Repository, auditDisp *audit.Dispatcher) *SetCompleted {
	return &SetCompleted{repo: repo, audit: auditDisp}
}

func (uc *SetCompleted) Execute(
	ctx context.Context,
	adminID uint,
	bookingID uint,
	completed bool,
) (*models.Booking, error) {

	b, err := uc.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if err := uc.repo.UpdateFields(ctx, bookingID, map[string]any{
		"completed": completed,
	}); err != nil {
		return nil, err
	}
	b.Completed = completed

	action := "booking_completed"
	if !completed {
		action = "booking_reopened"
	}
	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   action,
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}

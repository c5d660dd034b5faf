package booking

import (
	"context"
	"time"

	"github.com/jakescarcare/valet-api/internal/audit"
	"github.com/jakescarcare/valet-api/internal/cache"
	domain "github.com/jakescarcare/valet-api/internal/domain/booking"
	"github.com/jakescarcare/valet-api/internal/httperr"
	"github.com/jakescarcare/valet-api/internal/models"
	"github.com/jakescarcare/valet-api/internal/notify"
)

type CreateAdminBookingInput struct {
	Name    string
	Phone   string
	Email   string
	Eircode string

	Service          string
	Date             string
	Time             string
	IronFalloutAddon bool

	Message string
}

// CreateAdminBooking records a booking taken over the phone. It skips the
// availability protocol on purpose: the admin panel has always been able
// to double-book deliberately (squeezing in a job, backfilling history).
type CreateAdminBooking struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	notify *notify.Dispatcher
	cache  *cache.DayCache
}

func NewCreateAdminBooking(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	notifyDisp *notify.Dispatcher,
	dayCache *cache.DayCache,
) *CreateAdminBooking {
	return &CreateAdminBooking{
		repo:   repo,
		audit:  auditDisp,
		notify: notifyDisp,
		cache:  dayCache,
	}
}

func (uc *CreateAdminBooking) Execute(
	ctx context.Context,
	adminID uint,
	in CreateAdminBookingInput,
) (*models.Booking, error) {

	if in.Name == "" || in.Phone == "" {
		return nil, httperr.ErrBusiness("missing_required_field")
	}
	if !domain.IsValidService(in.Service) {
		return nil, httperr.ErrBusiness("invalid_service")
	}
	if !domain.IsSlotTime(in.Time) {
		return nil, httperr.ErrBusiness("invalid_time")
	}
	if in.IronFalloutAddon && !domain.AddonAllowed(in.Service) {
		return nil, httperr.ErrBusiness("addon_not_allowed")
	}
	// Past dates are fine here (backfilling), but a typo'd shape would
	// silently vanish from the calendar.
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	b := &models.Booking{
		Name:             in.Name,
		Phone:            in.Phone,
		Email:            in.Email,
		Eircode:          in.Eircode,
		Service:          in.Service,
		Date:             in.Date,
		Time:             in.Time,
		Message:          in.Message,
		IronFalloutAddon: in.IronFalloutAddon,
		DurationMin:      domain.TotalDurationMin(in.Service, in.IronFalloutAddon),
		AdminCreated:     true,
	}

	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	uc.cache.InvalidateDay(ctx, b.Date)

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "booking_created_admin",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	uc.notify.BookingCreated(b)

	return b, nil
}

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
	"github.com/jakescarcare/valet-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	Name    string
	Phone   string
	Email   string
	Eircode string

	Service          string
	Date             string // YYYY-MM-DD
	Time             string // HH:MM
	IronFalloutAddon bool

	Message string
}

// ======================================================
// USE CASE
// ======================================================

// CreateBooking runs the full submission protocol: validate, re-check
// availability against fresh data, then commit inside a transaction that
// re-derives the blocked slots one more time. Only the transactional check
// actually prevents two concurrent submissions from double-booking; the
// earlier pass exists to reject cheaply with a friendly error.
type CreateBooking struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	notify *notify.Dispatcher
	cache  *cache.DayCache
}

func NewCreateBooking(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	notifyDisp *notify.Dispatcher,
	dayCache *cache.DayCache,
) *CreateBooking {
	return &CreateBooking{
		repo:   repo,
		audit:  auditDisp,
		notify: notifyDisp,
		cache:  dayCache,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	if err := validateInput(in); err != nil {
		return nil, err
	}

	totalDur := domain.TotalDurationMin(in.Service, in.IronFalloutAddon)

	// Optimistic pre-check against the latest store data; never the cache.
	existing, err := uc.repo.ListByDate(ctx, in.Date)
	if err != nil {
		return nil, err
	}
	if err := checkAvailable(existing, in, totalDur); err != nil {
		return nil, err
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
		DurationMin:      totalDur,
	}

	// The transaction re-reads the day's bookings under lock and runs the
	// same check; a conflict that slipped in since the pre-check aborts
	// the whole operation.
	err = uc.repo.CreateContended(ctx, b, func(current []models.Booking) error {
		return checkAvailable(current, in, totalDur)
	})
	if err != nil {
		return nil, err
	}

	uc.cache.InvalidateDay(ctx, b.Date)

	uc.audit.Dispatch(audit.Event{
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	uc.notify.BookingCreated(b)

	return b, nil
}

// ======================================================
// CHECKS
// ======================================================

func validateInput(in CreateBookingInput) error {
	if in.Name == "" || in.Phone == "" || in.Email == "" || in.Eircode == "" {
		return httperr.ErrBusiness("missing_required_field")
	}
	if !domain.IsValidService(in.Service) {
		return httperr.ErrBusiness("invalid_service")
	}
	if !domain.IsSlotTime(in.Time) {
		return httperr.ErrBusiness("invalid_time")
	}
	if in.IronFalloutAddon && !domain.AddonAllowed(in.Service) {
		return httperr.ErrBusiness("addon_not_allowed")
	}

	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return httperr.ErrBusiness("invalid_date")
	}
	// Same-day and past bookings are never accepted.
	if in.Date < timezone.Tomorrow() {
		return httperr.ErrBusiness("date_too_soon")
	}
	return nil
}

// checkAvailable enforces the availability rules against a booking list:
// exact-duplicate guard first, then the blocked-slot walk over the
// candidate's whole interval.
func checkAvailable(existing []models.Booking, in CreateBookingInput, totalDur int) error {
	for _, b := range existing {
		if b.Date == in.Date && b.Time == in.Time && b.Service == in.Service {
			return httperr.ErrBusiness("duplicate_booking")
		}
	}

	blocked := domain.BlockedTimes(domain.OccupiedFrom(existing))
	switch domain.CheckCandidate(blocked, in.Time, totalDur) {
	case domain.ConflictBlocked:
		return httperr.ErrBusiness("slot_unavailable")
	case domain.ConflictOverlap:
		return httperr.ErrBusiness("slot_conflict")
	case domain.ConflictDayEnd:
		return httperr.ErrBusiness("past_day_end")
	}
	return nil
}

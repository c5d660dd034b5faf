package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jakescarcare/valet-api/internal/audit"
	domain "github.com/jakescarcare/valet-api/internal/domain/booking"
	"github.com/jakescarcare/valet-api/internal/httperr"
	"github.com/jakescarcare/valet-api/internal/models"
	"github.com/jakescarcare/valet-api/internal/notify"
	"github.com/jakescarcare/valet-api/internal/timezone"
)

// ------------------------------------------------------
// Test doubles
// ------------------------------------------------------

type fakeMailer struct {
	owner    chan models.Booking
	customer chan models.Booking
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{
		owner:    make(chan models.Booking, 10),
		customer: make(chan models.Booking, 10),
	}
}

func (f *fakeMailer) SendOwnerNotification(b *models.Booking) error {
	f.owner <- *b
	return nil
}

func (f *fakeMailer) SendCustomerConfirmation(b *models.Booking) error {
	f.customer <- *b
	return nil
}

func (f *fakeMailer) SendOwnerSummary(subject, body string) error { return nil }

func newTestAudit(t *testing.T) *audit.Dispatcher {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&models.AuditLog{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return audit.NewDispatcher(audit.New(db))
}

func validInput() CreateBookingInput {
	return CreateBookingInput{
		Name:    "Aoife Byrne",
		Phone:   "0851234567",
		Email:   "aoife@example.com",
		Eircode: "D02X285",

		Service: domain.ServiceFullValet,
		Date:    timezone.Tomorrow(),
		Time:    "09:00",
	}
}

// ------------------------------------------------------
// Validation
// ------------------------------------------------------

func TestCreateBookingValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *CreateBookingInput)
		errCode string
	}{
		{
			name:    "missing name",
			mutate:  func(in *CreateBookingInput) { in.Name = "" },
			errCode: "missing_required_field",
		},
		{
			name:    "missing eircode",
			mutate:  func(in *CreateBookingInput) { in.Eircode = "" },
			errCode: "missing_required_field",
		},
		{
			name:    "unknown service",
			mutate:  func(in *CreateBookingInput) { in.Service = "Engine Bay Detail" },
			errCode: "invalid_service",
		},
		{
			name:    "off-grid time",
			mutate:  func(in *CreateBookingInput) { in.Time = "09:30" },
			errCode: "invalid_time",
		},
		{
			name: "add-on on interior only",
			mutate: func(in *CreateBookingInput) {
				in.Service = domain.ServiceInteriorOnly
				in.IronFalloutAddon = true
			},
			errCode: "addon_not_allowed",
		},
		{
			name:    "malformed date",
			mutate:  func(in *CreateBookingInput) { in.Date = "2026/01/01" },
			errCode: "invalid_date",
		},
		{
			name:    "same-day booking",
			mutate:  func(in *CreateBookingInput) { in.Date = timezone.Today() },
			errCode: "date_too_soon",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemRepo()
			uc := NewCreateBooking(repo, newTestAudit(t), notify.NewDispatcher(newFakeMailer()), nil)

			in := validInput()
			tt.mutate(&in)

			_, err := uc.Execute(context.Background(), in)
			assert.True(t, httperr.IsBusiness(err, tt.errCode), "got %v", err)
			assert.Equal(t, 0, repo.count())
		})
	}
}

// ------------------------------------------------------
// Happy path
// ------------------------------------------------------

func TestCreateBookingStoresDuration(t *testing.T) {
	repo := newMemRepo()
	mailer := newFakeMailer()
	uc := NewCreateBooking(repo, newTestAudit(t), notify.NewDispatcher(mailer), nil)

	in := validInput()
	in.IronFalloutAddon = true

	b, err := uc.Execute(context.Background(), in)
	assert.NoError(t, err)
	assert.NotZero(t, b.ID)
	assert.Equal(t, 330, b.DurationMin)
	assert.False(t, b.AdminCreated)
	assert.Equal(t, 1, repo.count())

	// Both emails go out for the committed booking.
	owner := <-mailer.owner
	customer := <-mailer.customer
	assert.Equal(t, b.ID, owner.ID)
	assert.Equal(t, b.ID, customer.ID)
}

// ------------------------------------------------------
// Conflicts
// ------------------------------------------------------

func TestCreateBookingConflicts(t *testing.T) {
	tomorrow := timezone.Tomorrow()

	seed := models.Booking{
		Name:        "Existing",
		Phone:       "0850000000",
		Service:     domain.ServiceFullValet,
		Date:        tomorrow,
		Time:        "09:00",
		DurationMin: 240,
	}

	tests := []struct {
		name    string
		mutate  func(in *CreateBookingInput)
		errCode string
	}{
		{
			name:    "exact duplicate",
			mutate:  func(in *CreateBookingInput) {},
			errCode: "duplicate_booking",
		},
		{
			name: "start inside the occupied interval",
			mutate: func(in *CreateBookingInput) {
				in.Service = domain.ServiceExteriorOnly
				in.Time = "11:00"
			},
			errCode: "slot_unavailable",
		},
		{
			name: "same slot different service",
			mutate: func(in *CreateBookingInput) {
				in.Service = domain.ServiceInteriorOnly
				in.Time = "09:00"
			},
			errCode: "slot_unavailable",
		},
		{
			name: "would run into the next day's close",
			mutate: func(in *CreateBookingInput) {
				in.Time = "15:00"
			},
			errCode: "past_day_end",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemRepo()
			repo.add(seed)
			uc := NewCreateBooking(repo, newTestAudit(t), notify.NewDispatcher(newFakeMailer()), nil)

			in := validInput()
			tt.mutate(&in)

			_, err := uc.Execute(context.Background(), in)
			assert.True(t, httperr.IsBusiness(err, tt.errCode), "got %v", err)
			assert.Equal(t, 1, repo.count())
		})
	}
}

func TestCreateBookingOverlapIntoLaterBooking(t *testing.T) {
	repo := newMemRepo()
	repo.add(models.Booking{
		Service:     domain.ServiceExteriorOnly,
		Date:        timezone.Tomorrow(),
		Time:        "13:00",
		DurationMin: 120,
	})
	uc := NewCreateBooking(repo, newTestAudit(t), notify.NewDispatcher(newFakeMailer()), nil)

	// A full valet from 11:00 would still be running at 13:00.
	in := validInput()
	in.Time = "11:00"

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "slot_conflict"), "got %v", err)
}

func TestCreateBookingBackToBackIsAllowed(t *testing.T) {
	repo := newMemRepo()
	repo.add(models.Booking{
		Service:     domain.ServiceFullValet,
		Date:        timezone.Tomorrow(),
		Time:        "09:00",
		DurationMin: 240,
	})
	uc := NewCreateBooking(repo, newTestAudit(t), notify.NewDispatcher(newFakeMailer()), nil)

	// The first valet ends at 13:00 sharp; the next may start right there.
	in := validInput()
	in.Time = "13:00"

	b, err := uc.Execute(context.Background(), in)
	assert.NoError(t, err)
	assert.Equal(t, "13:00", b.Time)
	assert.Equal(t, 2, repo.count())
}

// ------------------------------------------------------
// Race between pre-check and commit
// ------------------------------------------------------

func TestCreateBookingAbortsWhenSlotTakenDuringSubmit(t *testing.T) {
	repo := newMemRepo()

	// Another customer grabs 09:00 after the optimistic pre-check has
	// already passed; the transactional re-check must catch it.
	repo.beforeContended = func(r *memRepo) {
		r.beforeContended = nil
		r.add(models.Booking{
			Service:     domain.ServiceExteriorOnly,
			Date:        timezone.Tomorrow(),
			Time:        "09:00",
			DurationMin: 120,
		})
	}

	uc := NewCreateBooking(repo, newTestAudit(t), notify.NewDispatcher(newFakeMailer()), nil)

	_, err := uc.Execute(context.Background(), validInput())
	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"), "got %v", err)
	assert.Equal(t, 1, repo.count())
}

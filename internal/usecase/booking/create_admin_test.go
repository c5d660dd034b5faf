package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/jakescarcare/valet-api/internal/domain/booking"
	"github.com/jakescarcare/valet-api/internal/httperr"
	"github.com/jakescarcare/valet-api/internal/models"
	"github.com/jakescarcare/valet-api/internal/notify"
	"github.com/jakescarcare/valet-api/internal/timezone"
)

func validAdminInput() CreateAdminBookingInput {
	return CreateAdminBookingInput{
		Name:    "Phone Customer",
		Phone:   "0861234567",
		Service: domain.ServiceExteriorOnly,
		Date:    timezone.Tomorrow(),
		Time:    "10:00",
	}
}

func TestCreateAdminBookingValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *CreateAdminBookingInput)
		errCode string
	}{
		{
			name:    "missing name",
			mutate:  func(in *CreateAdminBookingInput) { in.Name = "" },
			errCode: "missing_required_field",
		},
		{
			name:    "unknown service",
			mutate:  func(in *CreateAdminBookingInput) { in.Service = "Engine Bay Detail" },
			errCode: "invalid_service",
		},
		{
			name:    "off-grid time",
			mutate:  func(in *CreateAdminBookingInput) { in.Time = "10:15" },
			errCode: "invalid_time",
		},
		{
			name: "add-on on interior only",
			mutate: func(in *CreateAdminBookingInput) {
				in.Service = domain.ServiceInteriorOnly
				in.IronFalloutAddon = true
			},
			errCode: "addon_not_allowed",
		},
		{
			name:    "typo'd date shape",
			mutate:  func(in *CreateAdminBookingInput) { in.Date = "12/07/2026" },
			errCode: "invalid_date",
		},
		{
			name:    "truncated date",
			mutate:  func(in *CreateAdminBookingInput) { in.Date = "2026-07" },
			errCode: "invalid_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemRepo()
			uc := NewCreateAdminBooking(repo, newTestAudit(t), notify.NewDispatcher(newFakeMailer()), nil)

			in := validAdminInput()
			tt.mutate(&in)

			_, err := uc.Execute(context.Background(), 1, in)
			assert.True(t, httperr.IsBusiness(err, tt.errCode), "got %v", err)
			assert.Equal(t, 0, repo.count())
		})
	}
}

func TestCreateAdminBookingSkipsAvailability(t *testing.T) {
	repo := newMemRepo()

	// The slot is already taken; the admin path books it anyway.
	repo.add(models.Booking{
		Service:     domain.ServiceExteriorOnly,
		Date:        timezone.Tomorrow(),
		Time:        "10:00",
		DurationMin: 120,
	})

	uc := NewCreateAdminBooking(repo, newTestAudit(t), notify.NewDispatcher(newFakeMailer()), nil)

	b, err := uc.Execute(context.Background(), 1, validAdminInput())
	assert.NoError(t, err)
	assert.True(t, b.AdminCreated)
	assert.Equal(t, 120, b.DurationMin)
	assert.Equal(t, 2, repo.count())
}

func TestCreateAdminBookingAllowsBackfill(t *testing.T) {
	repo := newMemRepo()
	uc := NewCreateAdminBooking(repo, newTestAudit(t), notify.NewDispatcher(newFakeMailer()), nil)

	// Past dates are allowed so old jobs can be entered for the books.
	in := validAdminInput()
	in.Date = "2024-03-18"

	b, err := uc.Execute(context.Background(), 1, in)
	assert.NoError(t, err)
	assert.Equal(t, "2024-03-18", b.Date)
}

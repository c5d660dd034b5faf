package booking

import (
	"context"

	"github.com/jakescarcare/valet-api/internal/models"
)

// Repository is the booking record store contract. The store must support
// query by date, query from a date bound, and an atomic conflict-checked
// create.
type Repository interface {
	// ListByDate returns every booking on the given calendar date.
	ListByDate(
		ctx context.Context,
		date string,
	) ([]models.Booking, error)

	// ListFromDate returns every booking dated on or after the bound.
	ListFromDate(
		ctx context.Context,
		date string,
	) ([]models.Booking, error)

	// ListAll returns all bookings, most recently created first.
	ListAll(
		ctx context.Context,
	) ([]models.Booking, error)

	// CreateContended inserts the booking inside a transaction that
	// re-reads the day's bookings under a write lock and runs check
	// against them. A non-nil check error aborts the transaction and is
	// returned unchanged.
	CreateContended(
		ctx context.Context,
		b *models.Booking,
		check func(existing []models.Booking) error,
	) error

	// Create inserts without the availability check (admin path).
	Create(
		ctx context.Context,
		b *models.Booking,
	) error

	GetByID(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	// UpdateFields patches an arbitrary subset of columns by identifier.
	UpdateFields(
		ctx context.Context,
		id uint,
		fields map[string]any,
	) error

	Delete(
		ctx context.Context,
		id uint,
	) error
}

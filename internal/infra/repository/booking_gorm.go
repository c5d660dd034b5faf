package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/jakescarcare/valet-api/internal/domain/booking"
	"github.com/jakescarcare/valet-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Queries
// --------------------------------------------------

func (r *BookingGormRepository) ListByDate(
	ctx context.Context,
	date string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Order("time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListFromDate(
	ctx context.Context,
	date string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Where("date >= ?", date).
		Order("date ASC, time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListAll(
	ctx context.Context,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// --------------------------------------------------
// Create
// --------------------------------------------------

// CreateContended is the only write that enforces availability. It takes
// a per-date advisory lock, re-reads the day's bookings, hands them to
// the domain check, and inserts only when the check passes; a check
// failure aborts the whole transaction so two racing submissions cannot
// both commit.
//
// Row locks alone cannot serialize this: an empty date has no rows to
// lock, and under READ COMMITTED a waiter's blocked SELECT keeps its
// statement snapshot, so it would never see the winner's insert. The
// advisory lock is held until commit, and the loser's read starts only
// after the winner's row is visible.
func (r *BookingGormRepository) CreateContended(
	ctx context.Context,
	b *models.Booking,
	check func(existing []models.Booking) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(hashtext(?))", b.Date,
		).Error; err != nil {
			return err
		}

		var existing []models.Booking
		if err := tx.
			Where("date = ?", b.Date).
			Find(&existing).Error; err != nil {
			return err
		}

		if err := check(existing); err != nil {
			return err
		}

		return tx.Create(b).Error
	})
}

func (r *BookingGormRepository) Create(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// --------------------------------------------------
// Mutations by identifier
// --------------------------------------------------

func (r *BookingGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateFields(
	ctx context.Context,
	id uint,
	fields map[string]any,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *BookingGormRepository) Delete(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).
		Delete(&models.Booking{}, id).Error
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)

package repository

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	domain "github.com/jakescarcare/valet-api/internal/domain/booking"
	"github.com/jakescarcare/valet-api/internal/httperr"
	"github.com/jakescarcare/valet-api/internal/models"
)

// These tests need a real Postgres: the advisory lock in CreateContended
// has no sqlite equivalent, and sqlite's whole-database write lock would
// serialize the race on its own and prove nothing.
func setupPostgresTestDB(t *testing.T) *gorm.DB {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping Postgres repository tests")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Booking{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// availabilityCheck mirrors the submission protocol's transactional
// re-check closure.
func availabilityCheck(candidate *models.Booking) func([]models.Booking) error {
	return func(existing []models.Booking) error {
		blocked := domain.BlockedTimes(domain.OccupiedFrom(existing))
		if domain.CheckCandidate(blocked, candidate.Time, candidate.DurationMin) != domain.ConflictNone {
			return httperr.ErrBusiness("slot_unavailable")
		}
		return nil
	}
}

func TestCreateContendedRaceOnEmptyDate(t *testing.T) {
	db := setupPostgresTestDB(t)
	repo := NewBookingGormRepository(db)

	// A date no other test run shares, so it starts with zero rows and
	// there is nothing for row locks to grab.
	date := fmt.Sprintf("2031-%02d-%02d", time.Now().Month(), time.Now().Day())
	t.Cleanup(func() {
		db.Where("date = ?", date).Delete(&models.Booking{})
	})

	const racers = 2
	errs := make([]error, racers)

	var start, done sync.WaitGroup
	start.Add(1)
	done.Add(racers)

	for i := 0; i < racers; i++ {
		go func(i int) {
			defer done.Done()

			b := &models.Booking{
				Name:        fmt.Sprintf("Racer %d", i),
				Phone:       "0850000000",
				Service:     domain.ServiceFullValet,
				Date:        date,
				Time:        "10:00",
				DurationMin: 240,
			}

			start.Wait()
			errs[i] = repo.CreateContended(context.Background(), b, availabilityCheck(b))
		}(i)
	}

	start.Done()
	done.Wait()

	var committed, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			committed++
		case httperr.IsBusiness(err, "slot_unavailable"):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, committed, "exactly one racer must commit")
	assert.Equal(t, 1, rejected, "the loser must get the retryable conflict")

	var count int64
	db.Model(&models.Booking{}).Where("date = ?", date).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateContendedSeesCommittedRows(t *testing.T) {
	db := setupPostgresTestDB(t)
	repo := NewBookingGormRepository(db)

	date := fmt.Sprintf("2032-%02d-%02d", time.Now().Month(), time.Now().Day())
	t.Cleanup(func() {
		db.Where("date = ?", date).Delete(&models.Booking{})
	})

	first := &models.Booking{
		Name:        "First",
		Phone:       "0850000000",
		Service:     domain.ServiceFullValet,
		Date:        date,
		Time:        "09:00",
		DurationMin: 240,
	}
	assert.NoError(t, repo.CreateContended(context.Background(), first, availabilityCheck(first)))

	// An overlapping follow-up is rejected by the in-transaction check.
	overlap := &models.Booking{
		Name:        "Second",
		Phone:       "0851111111",
		Service:     domain.ServiceExteriorOnly,
		Date:        date,
		Time:        "11:00",
		DurationMin: 120,
	}
	err := repo.CreateContended(context.Background(), overlap, availabilityCheck(overlap))
	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"), "got %v", err)

	// A back-to-back booking still fits.
	next := &models.Booking{
		Name:        "Third",
		Phone:       "0852222222",
		Service:     domain.ServiceExteriorOnly,
		Date:        date,
		Time:        "13:00",
		DurationMin: 120,
	}
	assert.NoError(t, repo.CreateContended(context.Background(), next, availabilityCheck(next)))
}

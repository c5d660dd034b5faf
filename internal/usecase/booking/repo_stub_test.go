package booking

import (
	"context"
	"fmt"
	"sort"
	"sync"

	domain "github.com/jakescarcare/valet-api/internal/domain/booking"
	"github.com/jakescarcare/valet-api/internal/models"
)

// memRepo is an in-memory Repository for use case tests. beforeContended,
// when set, runs at the start of CreateContended to simulate a booking
// that lands between the optimistic pre-check and the transaction.
type memRepo struct {
	mu     sync.Mutex
	rows   []models.Booking
	nextID uint

	beforeContended func(r *memRepo)
}

func newMemRepo() *memRepo {
	return &memRepo{nextID: 1}
}

func (r *memRepo) add(b models.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = r.nextID
	r.nextID++
	r.rows = append(r.rows, b)
}

func (r *memRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

func (r *memRepo) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, b := range r.rows {
		if b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memRepo) ListFromDate(ctx context.Context, date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, b := range r.rows {
		if b.Date >= date {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (r *memRepo) ListAll(ctx context.Context) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Booking(nil), r.rows...), nil
}

func (r *memRepo) CreateContended(
	ctx context.Context,
	b *models.Booking,
	check func(existing []models.Booking) error,
) error {

	if r.beforeContended != nil {
		r.beforeContended(r)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var existing []models.Booking
	for _, row := range r.rows {
		if row.Date == b.Date {
			existing = append(existing, row)
		}
	}

	if err := check(existing); err != nil {
		return err
	}

	b.ID = r.nextID
	r.nextID++
	r.rows = append(r.rows, *b)
	return nil
}

func (r *memRepo) Create(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b.ID = r.nextID
	r.nextID++
	r.rows = append(r.rows, *b)
	return nil
}

func (r *memRepo) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.rows {
		if b.ID == id {
			out := b
			return &out, nil
		}
	}
	return nil, fmt.Errorf("booking %d not found", id)
}

func (r *memRepo) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.rows {
		if r.rows[i].ID != id {
			continue
		}
		if v, ok := fields["completed"]; ok {
			r.rows[i].Completed = v.(bool)
		}
		if v, ok := fields["custom_price"]; ok {
			r.rows[i].CustomPrice = v.(*float64)
		}
		return nil
	}
	return fmt.Errorf("booking %d not found", id)
}

func (r *memRepo) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("booking %d not found", id)
}

var _ domain.Repository = (*memRepo)(nil)

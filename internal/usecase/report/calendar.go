package report

import (
	"context"
	"log"
	"sort"
	"time"

	domain "github.com/jakescarcare/valet-api/internal/domain/booking"
	"github.com/jakescarcare/valet-api/internal/models"
)

// ======================================================
// TYPES
// ======================================================

// CalendarWeek is one Monday-anchored row of the admin calendar. Days is
// indexed Monday=0 .. Sunday=6.
type CalendarWeek struct {
	WeekStart string              `json:"week_start"`
	Days      [7][]models.Booking `json:"days"`
	Total     float64             `json:"total"`
}

type CalendarReport struct {
	Weeks []CalendarWeek `json:"weeks"`

	// EstimatedTotal sums effective price over every booking; ActualTotal
	// only over completed ones. Both iterate the raw list, so bookings
	// dropped from the calendar for an unparseable date still count here.
	EstimatedTotal float64 `json:"estimated_total"`
	ActualTotal    float64 `json:"actual_total"`
}

// ======================================================
// USE CASE
// ======================================================

type EarningsReport struct {
	repo domain.Repository
}

func NewEarningsReport(repo domain.Repository) *EarningsReport {
	return &EarningsReport{repo: repo}
}

func (uc *EarningsReport) Execute(ctx context.Context) (*CalendarReport, error) {
	bookings, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	estimated, actual := Totals(bookings)
	return &CalendarReport{
		Weeks:          BuildWeeklyCalendar(bookings),
		EstimatedTotal: estimated,
		ActualTotal:    actual,
	}, nil
}

// ======================================================
// AGGREGATION
// ======================================================

// EffectivePrice is what a booking counts for: the manual override when
// set, otherwise catalog price plus add-on surcharge.
func EffectivePrice(b models.Booking) float64 {
	return domain.Price(b.Service, b.IronFalloutAddon, b.CustomPrice)
}

// Totals recomputes both running sums from scratch over the raw list.
func Totals(bookings []models.Booking) (estimated, actual float64) {
	for _, b := range bookings {
		p := EffectivePrice(b)
		estimated += p
		if b.Completed {
			actual += p
		}
	}
	return estimated, actual
}

// normalizeDate reduces the stored date to a plain YYYY-MM-DD, tolerating
// timestamp-shaped values written by older tooling.
func normalizeDate(raw string) (time.Time, bool) {
	if len(raw) >= 10 {
		if d, err := time.Parse("2006-01-02", raw[:10]); err == nil {
			return d, true
		}
	}
	if d, err := time.Parse(time.RFC3339, raw); err == nil {
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// BuildWeeklyCalendar sorts the bookings by date and walks them into
// Monday-anchored 7-day buckets. A booking whose date cannot be parsed is
// logged and left out of the calendar; the totals above still include it.
func BuildWeeklyCalendar(bookings []models.Booking) []CalendarWeek {
	type dated struct {
		b models.Booking
		d time.Time
	}

	normalized := make([]dated, 0, len(bookings))
	for _, b := range bookings {
		d, ok := normalizeDate(b.Date)
		if !ok {
			log.Printf("calendar: skipping booking %d with unparseable date %q", b.ID, b.Date)
			continue
		}
		normalized = append(normalized, dated{b: b, d: d})
	}

	sort.SliceStable(normalized, func(i, j int) bool {
		return normalized[i].d.Before(normalized[j].d)
	})

	var weeks []CalendarWeek
	var weekStart time.Time

	for _, nb := range normalized {
		dayOfWeek := (int(nb.d.Weekday()) + 6) % 7 // Monday = 0, Sunday = 6

		if weekStart.IsZero() || nb.d.Before(weekStart) || !nb.d.Before(weekStart.AddDate(0, 0, 7)) {
			weekStart = nb.d.AddDate(0, 0, -dayOfWeek)
			weeks = append(weeks, CalendarWeek{
				WeekStart: weekStart.Format("2006-01-02"),
			})
		}

		w := &weeks[len(weeks)-1]
		w.Days[dayOfWeek] = append(w.Days[dayOfWeek], nb.b)
		w.Total += EffectivePrice(nb.b)
	}

	return weeks
}

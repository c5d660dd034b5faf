package reminder

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/robfig/cron/v3"

	domain "github.com/jakescarcare/valet-api/internal/domain/booking"
	"github.com/jakescarcare/valet-api/internal/notify"
	"github.com/jakescarcare/valet-api/internal/timezone"
)

// Scheduler emails the owner each morning with the next day's bookings so
// the van can be loaded before leaving. It runs in business time, not UTC.
type Scheduler struct {
	cron   *cron.Cron
	repo   domain.Repository
	mailer notify.Mailer
}

func New(repo domain.Repository, mailer notify.Mailer) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(cron.WithLocation(timezone.Location())),
		repo:   repo,
		mailer: mailer,
	}

	if _, err := s.cron.AddFunc("0 8 * * *", s.sendTomorrowSummary); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() { s.cron.Start() }

func (s *Scheduler) Stop() { s.cron.Stop() }

func (s *Scheduler) sendTomorrowSummary() {
	ctx := context.Background()
	date := timezone.Tomorrow()

	bookings, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		log.Printf("reminder: failed to list bookings for %s: %v", date, err)
		return
	}
	if len(bookings) == 0 {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You have %d booking(s) tomorrow (%s):\n\n", len(bookings), date)
	for _, b := range bookings {
		fmt.Fprintf(&sb, "- %s  %s  %s (%s)\n", b.Time, b.Service, b.Name, b.Eircode)
	}

	subject := fmt.Sprintf("Bookings for %s", date)
	if err := s.mailer.SendOwnerSummary(subject, sb.String()); err != nil {
		log.Printf("reminder: failed to send summary for %s: %v", date, err)
	}
}

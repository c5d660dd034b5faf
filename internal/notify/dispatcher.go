package notify

import (
	"log"

	"github.com/jakescarcare/valet-api/internal/models"
)

// Dispatcher sends booking emails off the request path. A committed booking
// must never be rolled back because a mail failed, so errors are only
// logged.
type Dispatcher struct {
	mailer Mailer
	queue  chan models.Booking
}

func NewDispatcher(mailer Mailer) *Dispatcher {
	d := &Dispatcher{
		mailer: mailer,
		queue:  make(chan models.Booking, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for b := range d.queue {
		if err := d.mailer.SendOwnerNotification(&b); err != nil {
			log.Println("owner notification error:", err)
		}
		if err := d.mailer.SendCustomerConfirmation(&b); err != nil {
			log.Println("customer confirmation error:", err)
		}
	}
}

// BookingCreated queues the two emails for a freshly committed booking.
// Never blocks; when the queue is full the notification is dropped.
func (d *Dispatcher) BookingCreated(b *models.Booking) {
	select {
	case d.queue <- *b:
	default:
		log.Println("notify queue full, dropping booking emails")
	}
}

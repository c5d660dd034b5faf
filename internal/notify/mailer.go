package notify

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jakescarcare/valet-api/internal/config"
	domain "github.com/jakescarcare/valet-api/internal/domain/booking"
	"github.com/jakescarcare/valet-api/internal/models"
)

// Mailer sends the booking emails. Swapped for a fake in tests.
type Mailer interface {
	SendOwnerNotification(b *models.Booking) error
	SendCustomerConfirmation(b *models.Booking) error
	SendOwnerSummary(subject, body string) error
}

type SMTPMailer struct {
	host       string
	port       string
	user       string
	pass       string
	ownerEmail string
	ownerPhone string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host:       cfg.SMTPHost,
		port:       cfg.SMTPPort,
		user:       cfg.SMTPUser,
		pass:       cfg.SMTPPass,
		ownerEmail: cfg.OwnerEmail,
		ownerPhone: cfg.OwnerPhone,
	}
}

func (m *SMTPMailer) send(to, subject, body string) error {
	if m.user == "" || to == "" {
		return fmt.Errorf("mailer not configured or recipient missing")
	}

	msg := strings.Join([]string{
		"From: " + m.user,
		"To: " + to,
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	return smtp.SendMail(m.host+":"+m.port, auth, m.user, []string{to}, []byte(msg))
}

func (m *SMTPMailer) SendOwnerNotification(b *models.Booking) error {
	body := fmt.Sprintf(
		"A new booking was made!\n\n"+
			"Name: %s\n"+
			"Phone: %s\n"+
			"Email: %s\n"+
			"Service: %s\n"+
			"Date: %s\n"+
			"Time: %s\n"+
			"Eircode: %s\n",
		orNA(b.Name), orNA(b.Phone), orNA(b.Email),
		serviceLine(b), orNA(b.Date), orNA(b.Time), orNA(b.Eircode),
	)
	if b.Message != "" {
		body += "Message: " + b.Message + "\n"
	}
	if b.AdminCreated {
		body += "\n(Created from the admin panel.)\n"
	}
	return m.send(m.ownerEmail, "New Booking Received!", body)
}

func (m *SMTPMailer) SendCustomerConfirmation(b *models.Booking) error {
	if b.Email == "" {
		return nil
	}

	name := b.Name
	if name == "" {
		name = "Customer"
	}

	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Thank you for booking with Jake's Car Care!\n\n"+
			"We've received your booking for %s on %s at %s (Eircode: %s).\n"+
			"We'll be in touch soon to confirm the details and answer any questions.\n\n"+
			"If you need to change or cancel your booking, just text %s.\n\n"+
			"Looking forward to making your car shine!\n\n"+
			"Best regards,\nJake's Car Care Team",
		name, serviceLine(b), b.Date, b.Time, orNA(b.Eircode), m.ownerPhone,
	)
	return m.send(b.Email, "Your Booking with Jake's Car Care is Confirmed!", body)
}

func (m *SMTPMailer) SendOwnerSummary(subject, body string) error {
	return m.send(m.ownerEmail, subject, body)
}

func serviceLine(b *models.Booking) string {
	if b.IronFalloutAddon {
		return b.Service + " + " + domain.AddonIronFallout
	}
	return orNA(b.Service)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

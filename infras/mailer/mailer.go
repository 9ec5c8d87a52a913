package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"homestay/config"
	"homestay/infras/otel"
	"homestay/shared/constant"
)

// BookingEmail is the payload for every booking-related email.
type BookingEmail struct {
	FullName           string
	Email              string
	PhoneNumber        string
	BookingReference   string
	AccommodationType  string
	CheckInDate        string
	CheckOutDate       string
	NumberOfNights     int
	NumberOfGuests     int
	AccommodationPrice float64
	TotalAmount        float64
	SpecialRequests    string
	Status             string
}

// ContactEmail is the payload for the contact-message confirmation email.
type ContactEmail struct {
	FullName string
	Email    string
	Subject  string
	Message  string
}

// Mailer dispatches transactional emails. Failures are returned to the
// caller, which logs and continues; a mail failure never fails the
// triggering request.
type Mailer interface {
	SendBookingReceived(ctx context.Context, payload BookingEmail) error
	SendBookingConfirmation(ctx context.Context, payload BookingEmail) error
	SendAdminBookingAlert(ctx context.Context, payload BookingEmail) error
	SendContactConfirmation(ctx context.Context, payload ContactEmail) error
}

type mailerImpl struct {
	cfg  *config.Config
	otel otel.Otel
	send func(m ...*gomail.Message) error
}

func New(cfg *config.Config, ot otel.Otel) Mailer {
	dialer := gomail.NewDialer(cfg.Mail.SMTPHost, cfg.Mail.SMTPPort, cfg.Mail.SMTPUser, cfg.Mail.SMTPPass)

	return &mailerImpl{
		cfg:  cfg,
		otel: ot,
		send: dialer.DialAndSend,
	}
}

func (m *mailerImpl) deliver(ctx context.Context, to, subject, body string) error {
	_, scope := m.otel.NewScope(ctx, constant.OtelMailerScopeName, constant.OtelMailerScopeName+".deliver")
	defer scope.End()

	scope.SetAttribute("mail.subject", subject)

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.Mail.SMTPUser, m.cfg.Mail.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.send(msg); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("subject", subject).Msg("failed to send email")

		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Info().Str("subject", subject).Msg("email sent")

	return nil
}

func (m *mailerImpl) render(tmpl *template.Template, payload any) (string, error) {
	var buf bytes.Buffer

	if err := tmpl.Execute(&buf, payload); err != nil {
		return "", fmt.Errorf("failed to render email template: %w", err)
	}

	return buf.String(), nil
}

func (m *mailerImpl) SendBookingReceived(ctx context.Context, payload BookingEmail) error {
	body, err := m.render(bookingReceivedTemplate, payload)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Booking Received - %s", payload.BookingReference)

	return m.deliver(ctx, payload.Email, subject, body)
}

func (m *mailerImpl) SendBookingConfirmation(ctx context.Context, payload BookingEmail) error {
	body, err := m.render(bookingConfirmationTemplate, payload)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Booking Confirmed - %s", payload.BookingReference)

	return m.deliver(ctx, payload.Email, subject, body)
}

// SendAdminBookingAlert notifies the configured admin address of a new
// booking. Callers must skip it entirely when no address is configured.
func (m *mailerImpl) SendAdminBookingAlert(ctx context.Context, payload BookingEmail) error {
	if m.cfg.Mail.AdminEmail == "" {
		return nil
	}

	body, err := m.render(adminBookingAlertTemplate, payload)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("New Booking - %s", payload.BookingReference)

	return m.deliver(ctx, m.cfg.Mail.AdminEmail, subject, body)
}

func (m *mailerImpl) SendContactConfirmation(ctx context.Context, payload ContactEmail) error {
	body, err := m.render(contactConfirmationTemplate, payload)
	if err != nil {
		return err
	}

	return m.deliver(ctx, payload.Email, "We received your message", body)
}

package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/gomail.v2"

	"homestay/config"
	"homestay/infras/otel/mocks"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Mail.SMTPUser = "noreply@homestay.test"
	cfg.Mail.FromName = "Homestay Bookings"
	cfg.Mail.AdminEmail = "owner@homestay.test"

	return cfg
}

func capturingMailer(cfg *config.Config, sent *[]*gomail.Message, sendErr error) *mailerImpl {
	return &mailerImpl{
		cfg:  cfg,
		otel: mocks.NewOtel(),
		send: func(m ...*gomail.Message) error {
			if sendErr != nil {
				return sendErr
			}

			*sent = append(*sent, m...)

			return nil
		},
	}
}

func bookingPayload() BookingEmail {
	return BookingEmail{
		FullName:          "Jane Guest",
		Email:             "jane@example.com",
		BookingReference:  "BK202608301234",
		AccommodationType: "Authentic Homestay",
		CheckInDate:       "2026-09-15",
		CheckOutDate:      "2026-09-18",
		NumberOfNights:    3,
		NumberOfGuests:    2,
		TotalAmount:       10500,
		Status:            "pending",
	}
}

func TestMailer_New(t *testing.T) {
	t.Run("wires the dialer send function", func(t *testing.T) {
		m, ok := New(testConfig(), mocks.NewOtel()).(*mailerImpl)

		assert.True(t, ok)
		assert.NotNil(t, m.send)
	})
}

func TestMailer_SendBookingReceived(t *testing.T) {
	t.Run("delivers to the guest with the booking reference in the subject", func(t *testing.T) {
		var sent []*gomail.Message
		m := capturingMailer(testConfig(), &sent, nil)

		err := m.SendBookingReceived(context.Background(), bookingPayload())

		assert.NoError(t, err)
		assert.Len(t, sent, 1)
		assert.Equal(t, []string{"jane@example.com"}, sent[0].GetHeader("To"))
		assert.Contains(t, sent[0].GetHeader("Subject")[0], "BK202608301234")
	})

	t.Run("returns the delivery error", func(t *testing.T) {
		var sent []*gomail.Message
		m := capturingMailer(testConfig(), &sent, errors.New("dial tcp: connection refused"))

		err := m.SendBookingReceived(context.Background(), bookingPayload())

		assert.Error(t, err)
		assert.Empty(t, sent)
	})
}

func TestMailer_SendAdminBookingAlert(t *testing.T) {
	t.Run("delivers to the configured admin address", func(t *testing.T) {
		var sent []*gomail.Message
		m := capturingMailer(testConfig(), &sent, nil)

		err := m.SendAdminBookingAlert(context.Background(), bookingPayload())

		assert.NoError(t, err)
		assert.Len(t, sent, 1)
		assert.Equal(t, []string{"owner@homestay.test"}, sent[0].GetHeader("To"))
	})

	t.Run("skips delivery when no admin address is configured", func(t *testing.T) {
		cfg := testConfig()
		cfg.Mail.AdminEmail = ""

		var sent []*gomail.Message
		m := capturingMailer(cfg, &sent, nil)

		err := m.SendAdminBookingAlert(context.Background(), bookingPayload())

		assert.NoError(t, err)
		assert.Empty(t, sent)
	})
}

func TestMailer_SendContactConfirmation(t *testing.T) {
	var sent []*gomail.Message
	m := capturingMailer(testConfig(), &sent, nil)

	err := m.SendContactConfirmation(context.Background(), ContactEmail{
		FullName: "Jane Guest",
		Email:    "jane@example.com",
		Subject:  "Availability in October",
		Message:  "Is the homestay available over Diwali?",
	})

	assert.NoError(t, err)
	assert.Len(t, sent, 1)
	assert.Equal(t, []string{"jane@example.com"}, sent[0].GetHeader("To"))
}

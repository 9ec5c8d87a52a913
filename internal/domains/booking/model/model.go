package model

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"homestay/shared/model"
	"homestay/shared/timezone"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                = "id"
	FieldName              = "name"
	FieldEmail             = "email"
	FieldPhone             = "phone"
	FieldCheckIn           = "check_in"
	FieldCheckOut          = "check_out"
	FieldGuests            = "guests"
	FieldAccommodationType = "accommodation_type"
	FieldNights            = "nights"
	FieldTotalPrice        = "total_price"
	FieldSpecialRequests   = "special_requests"
	FieldStatus            = "status"
	FieldReference         = "reference"
	FieldEmailSent         = "email_sent"

	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"

	AccommodationLuxuryGlampingTent  = "Luxury Glamping Tent"
	AccommodationAuthenticHomestay   = "Authentic Homestay"
	AccommodationMountainWellnessPod = "Mountain Wellness Pod"

	millisPerDay = 86_400_000
)

var nightlyRates = map[string]float64{
	AccommodationLuxuryGlampingTent:  6500,
	AccommodationAuthenticHomestay:   3500,
	AccommodationMountainWellnessPod: 5000,
}

// NightlyRate returns 0 for unknown accommodation types rather than failing.
func NightlyRate(accommodationType string) float64 {
	return nightlyRates[accommodationType]
}

// CalculateNights rounds partial days up and uses the absolute difference so
// the result can never go negative.
func CalculateNights(checkIn, checkOut time.Time) int {
	diff := math.Abs(float64(checkOut.Sub(checkIn).Milliseconds()))

	return int(math.Ceil(diff / millisPerDay))
}

// GenerateReference builds a code of the form BK + last 8 digits of a
// millisecond timestamp + 4-digit zero-padded random suffix.
func GenerateReference() string {
	millis := timezone.Now().UnixMilli() % 100_000_000

	return fmt.Sprintf("BK%08d%04d", millis, rand.IntN(10_000))
}

type Booking struct {
	ID                string    `db:"id"`
	Name              string    `db:"name"`
	Email             string    `db:"email"`
	Phone             string    `db:"phone"`
	CheckIn           time.Time `db:"check_in"`
	CheckOut          time.Time `db:"check_out"`
	Guests            int       `db:"guests"`
	AccommodationType string    `db:"accommodation_type"`
	Nights            int       `db:"nights"`
	TotalPrice        float64   `db:"total_price"`
	SpecialRequests   string    `db:"special_requests"`
	Status            string    `db:"status"`
	Reference         string    `db:"reference"`
	EmailSent         bool      `db:"email_sent"`
	model.Metadata
}

// EnsureReference assigns a reference only when the field is unset, keeping
// the code stable across re-saves.
func (b *Booking) EnsureReference() {
	if b.Reference == "" {
		b.Reference = GenerateReference()
	}
}

// Recompute refreshes the derived nights and total price from the current
// dates and accommodation type.
func (b *Booking) Recompute() {
	b.Nights = CalculateNights(b.CheckIn, b.CheckOut)
	b.TotalPrice = NightlyRate(b.AccommodationType) * float64(b.Nights)
}

package model_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"homestay/internal/domains/booking/model"
)

func TestCalculateNights(t *testing.T) {
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{
			name:     "single night",
			checkIn:  base,
			checkOut: base.AddDate(0, 0, 1),
			want:     1,
		},
		{
			name:     "three nights",
			checkIn:  base,
			checkOut: base.AddDate(0, 0, 3),
			want:     3,
		},
		{
			name:     "partial day rounds up",
			checkIn:  base,
			checkOut: base.AddDate(0, 0, 1).Add(6 * time.Hour),
			want:     2,
		},
		{
			name:     "same instant",
			checkIn:  base,
			checkOut: base,
			want:     0,
		},
		{
			name:     "reversed dates cannot go negative",
			checkIn:  base.AddDate(0, 0, 3),
			checkOut: base,
			want:     3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.CalculateNights(tt.checkIn, tt.checkOut))
		})
	}
}

func TestNightlyRate(t *testing.T) {
	assert.Equal(t, float64(6500), model.NightlyRate(model.AccommodationLuxuryGlampingTent))
	assert.Equal(t, float64(3500), model.NightlyRate(model.AccommodationAuthenticHomestay))
	assert.Equal(t, float64(5000), model.NightlyRate(model.AccommodationMountainWellnessPod))

	// Unknown types resolve to 0 instead of failing.
	assert.Equal(t, float64(0), model.NightlyRate("Treehouse"))
}

func TestGenerateReference(t *testing.T) {
	pattern := regexp.MustCompile(`^BK\d{8}\d{4}$`)

	for range 10_000 {
		assert.Regexp(t, pattern, model.GenerateReference())
	}
}

func TestEnsureReference(t *testing.T) {
	booking := model.Booking{}
	booking.EnsureReference()

	assigned := booking.Reference
	assert.NotEmpty(t, assigned)

	booking.EnsureReference()
	assert.Equal(t, assigned, booking.Reference, "reference is immutable once assigned")
}

func TestRecompute(t *testing.T) {
	booking := model.Booking{
		CheckIn:           time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:          time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC),
		AccommodationType: model.AccommodationAuthenticHomestay,
	}

	booking.Recompute()

	assert.Equal(t, 3, booking.Nights)
	assert.Equal(t, float64(10500), booking.TotalPrice)
}

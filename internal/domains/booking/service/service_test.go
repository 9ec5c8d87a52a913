package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"homestay/config"
	mailerMocks "homestay/infras/mailer/mocks"
	"homestay/infras/otel/mocks"
	bookingMocks "homestay/internal/domains/booking/mocks"
	"homestay/internal/domains/booking/model"
	"homestay/internal/domains/booking/model/dto"
	"homestay/internal/domains/booking/service"
	cacheMocks "homestay/shared/cache/mocks"
	"homestay/shared/constant"
	"homestay/shared/failure"
	gModel "homestay/shared/model"
	"homestay/shared/timezone"
)

type fixture struct {
	repo   *bookingMocks.MockBooking
	mailer *mailerMocks.MockMailer
	cache  *cacheMocks.MockRedisCache
	svc    service.Booking
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	repo := bookingMocks.NewMockBooking(ctrl)
	mail := mailerMocks.NewMockMailer(ctrl)
	cch := cacheMocks.NewMockRedisCache(ctrl)

	// Cache writes and invalidations run on detached goroutines; they are
	// not the behavior under test.
	cch.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	cch.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cch.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cch.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return fixture{
		repo:   repo,
		mailer: mail,
		cache:  cch,
		svc:    service.New(repo, &config.Config{}, cch, mocks.NewOtel(), mail),
	}
}

func dateFromToday(days int) string {
	return timezone.Now().AddDate(0, 0, days).Format(constant.DateOnlyFormat)
}

func storedBooking() model.Booking {
	booking := model.Booking{
		ID:                "booking-id-123",
		Name:              "Jane Guest",
		Email:             "jane@example.com",
		Phone:             "+6281234567890",
		Guests:            2,
		AccommodationType: model.AccommodationAuthenticHomestay,
		Status:            model.StatusPending,
		Reference:         "BK123456780001",
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  constant.ActorGuest,
			ModifiedBy: constant.ActorGuest,
		},
	}
	booking.CheckIn = timezone.Now().AddDate(0, 0, 7)
	booking.CheckOut = timezone.Now().AddDate(0, 0, 10)
	booking.Recompute()

	return booking
}

func TestBookingService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func(f fixture)
		wantErr   bool
		wantCode  int
		check     func(t *testing.T, res dto.BookingResponse)
	}{
		{
			name: "three nights authentic homestay",
			req: dto.CreateBookingRequest{
				Name:              "Jane Guest",
				Email:             "jane@example.com",
				Phone:             "+6281234567890",
				CheckIn:           dateFromToday(7),
				CheckOut:          dateFromToday(10),
				Guests:            2,
				AccommodationType: model.AccommodationAuthenticHomestay,
			},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				f.mailer.EXPECT().SendBookingReceived(gomock.Any(), gomock.Any()).Return(nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.mailer.EXPECT().SendAdminBookingAlert(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			check: func(t *testing.T, res dto.BookingResponse) {
				assert.Equal(t, 3, res.Nights)
				assert.Equal(t, float64(10500), res.TotalPrice)
				assert.Equal(t, model.StatusPending, res.Status)
				assert.Regexp(t, `^BK\d{12}$`, res.Reference)
				assert.True(t, res.EmailSent)
			},
		},
		{
			name: "check-in today with one night",
			req: dto.CreateBookingRequest{
				Name:              "Jane Guest",
				Email:             "jane@example.com",
				Phone:             "+6281234567890",
				CheckIn:           dateFromToday(0),
				CheckOut:          dateFromToday(1),
				Guests:            1,
				AccommodationType: model.AccommodationLuxuryGlampingTent,
			},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				f.mailer.EXPECT().SendBookingReceived(gomock.Any(), gomock.Any()).Return(nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.mailer.EXPECT().SendAdminBookingAlert(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			check: func(t *testing.T, res dto.BookingResponse) {
				assert.Equal(t, 1, res.Nights)
				assert.Equal(t, float64(6500), res.TotalPrice)
			},
		},
		{
			name: "unknown accommodation type prices at zero",
			req: dto.CreateBookingRequest{
				Name:              "Jane Guest",
				Email:             "jane@example.com",
				Phone:             "+6281234567890",
				CheckIn:           dateFromToday(7),
				CheckOut:          dateFromToday(9),
				Guests:            2,
				AccommodationType: "Treehouse",
			},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				f.mailer.EXPECT().SendBookingReceived(gomock.Any(), gomock.Any()).Return(nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.mailer.EXPECT().SendAdminBookingAlert(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			check: func(t *testing.T, res dto.BookingResponse) {
				assert.Equal(t, 2, res.Nights)
				assert.Equal(t, float64(0), res.TotalPrice)
			},
		},
		{
			name: "past check-in rejected",
			req: dto.CreateBookingRequest{
				Name:              "Jane Guest",
				Email:             "jane@example.com",
				Phone:             "+6281234567890",
				CheckIn:           dateFromToday(-1),
				CheckOut:          dateFromToday(2),
				Guests:            2,
				AccommodationType: model.AccommodationAuthenticHomestay,
			},
			setupMock: func(f fixture) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "check-out equal to check-in rejected",
			req: dto.CreateBookingRequest{
				Name:              "Jane Guest",
				Email:             "jane@example.com",
				Phone:             "+6281234567890",
				CheckIn:           dateFromToday(7),
				CheckOut:          dateFromToday(7),
				Guests:            2,
				AccommodationType: model.AccommodationAuthenticHomestay,
			},
			setupMock: func(f fixture) {},
			wantErr:   true,
			wantCode:  400,
		},
		{
			name: "email failure does not fail the booking",
			req: dto.CreateBookingRequest{
				Name:              "Jane Guest",
				Email:             "jane@example.com",
				Phone:             "+6281234567890",
				CheckIn:           dateFromToday(7),
				CheckOut:          dateFromToday(10),
				Guests:            2,
				AccommodationType: model.AccommodationAuthenticHomestay,
			},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				f.mailer.EXPECT().SendBookingReceived(gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))
				f.mailer.EXPECT().SendAdminBookingAlert(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			check: func(t *testing.T, res dto.BookingResponse) {
				assert.False(t, res.EmailSent)
			},
		},
		{
			name: "insert error",
			req: dto.CreateBookingRequest{
				Name:              "Jane Guest",
				Email:             "jane@example.com",
				Phone:             "+6281234567890",
				CheckIn:           dateFromToday(7),
				CheckOut:          dateFromToday(10),
				Guests:            2,
				AccommodationType: model.AccommodationAuthenticHomestay,
			},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("insert error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)

			if tt.check != nil {
				tt.check(t, res)
			}
		})
	}
}

func TestBookingService_CreateReferenceCollision(t *testing.T) {
	req := dto.CreateBookingRequest{
		Name:              "Jane Guest",
		Email:             "jane@example.com",
		Phone:             "+6281234567890",
		CheckIn:           dateFromToday(7),
		CheckOut:          dateFromToday(10),
		Guests:            2,
		AccommodationType: model.AccommodationAuthenticHomestay,
	}

	duplicateRef := &pq.Error{Code: "23505", Constraint: "bookings_reference_key"}

	t.Run("regenerates the reference and retries", func(t *testing.T) {
		f := newFixture(t)

		var references []string

		captureRef := func(_ context.Context, booking model.Booking) {
			references = append(references, booking.Reference)
		}

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Do(captureRef).Return(duplicateRef)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Do(captureRef).Return(nil)
		f.mailer.EXPECT().SendBookingReceived(gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.mailer.EXPECT().SendAdminBookingAlert(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := f.svc.Create(context.Background(), req)

		assert.NoError(t, err)
		assert.Len(t, references, 2)
		assert.NotEqual(t, references[0], references[1])
		assert.Regexp(t, `^BK\d{12}$`, res.Reference)
		assert.Equal(t, references[1], res.Reference)
	})

	t.Run("gives up after bounded attempts", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(duplicateRef).Times(3)

		_, err := f.svc.Create(context.Background(), req)

		assert.Error(t, err)
	})

	t.Run("does not retry other unique violations", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23505", Constraint: "bookings_email_key"})

		_, err := f.svc.Create(context.Background(), req)

		assert.Error(t, err)
	})
}

func TestBookingService_Get(t *testing.T) {
	booking := storedBooking()

	tests := []struct {
		name      string
		email     string
		isAdmin   bool
		setupMock func(f fixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name:    "admin access",
			isAdmin: true,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
			},
		},
		{
			name: "guest without email parameter",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
			},
		},
		{
			name:  "guest with matching email",
			email: "JANE@example.com",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
			},
		},
		{
			name:  "guest with mismatched email",
			email: "other@example.com",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
			},
			wantErr:  true,
			wantCode: 403,
		},
		{
			name:    "not found",
			isAdmin: true,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Get(context.Background(), booking.ID, tt.email, tt.isAdmin)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, booking.ID, res.ID)
			}
		})
	}
}

func TestBookingService_GetByReference(t *testing.T) {
	booking := storedBooking()

	tests := []struct {
		name      string
		reference string
		email     string
		setupMock func(f fixture)
		wantErr   bool
		wantCode  int
	}{
		{
			name:      "absent email parameter",
			reference: "bk123456780001",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
			},
		},
		{
			name:      "matching email parameter",
			reference: booking.Reference,
			email:     "jane@EXAMPLE.com",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
			},
		},
		{
			name:      "mismatched email parameter",
			reference: booking.Reference,
			email:     "other@example.com",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
			},
			wantErr:  true,
			wantCode: 403,
		},
		{
			name:      "unknown reference",
			reference: "BK000000000000",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.GetByReference(context.Background(), tt.reference, tt.email)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, booking.Reference, res.Reference)
			}
		})
	}
}

func TestBookingService_Update(t *testing.T) {
	stringPtr := func(s string) *string { return &s }

	t.Run("date change recomputes nights and total", func(t *testing.T) {
		f := newFixture(t)
		booking := storedBooking()

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Equal(t, 5, fields[model.FieldNights])
				assert.Equal(t, float64(17500), fields[model.FieldTotalPrice])

				return nil
			})

		req := dto.UpdateBookingRequest{
			CheckOut: stringPtr(timezone.Now().AddDate(0, 0, 12).Format(constant.DateOnlyFormat)),
		}

		res, confirmationSent, err := f.svc.Update(context.Background(), req, booking.ID)

		assert.NoError(t, err)
		assert.False(t, confirmationSent)
		assert.Equal(t, 5, res.Nights)
		assert.Equal(t, float64(17500), res.TotalPrice)
	})

	t.Run("accommodation change recomputes total", func(t *testing.T) {
		f := newFixture(t)
		booking := storedBooking()

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		req := dto.UpdateBookingRequest{
			AccommodationType: stringPtr(model.AccommodationMountainWellnessPod),
		}

		res, _, err := f.svc.Update(context.Background(), req, booking.ID)

		assert.NoError(t, err)
		assert.Equal(t, 3, res.Nights)
		assert.Equal(t, float64(15000), res.TotalPrice)
	})

	t.Run("transition to confirmed sends confirmation", func(t *testing.T) {
		f := newFixture(t)
		booking := storedBooking()

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.mailer.EXPECT().SendBookingConfirmation(gomock.Any(), gomock.Any()).Return(nil)

		req := dto.UpdateBookingRequest{Status: stringPtr(model.StatusConfirmed)}

		res, confirmationSent, err := f.svc.Update(context.Background(), req, booking.ID)

		assert.NoError(t, err)
		assert.True(t, confirmationSent)
		assert.Equal(t, model.StatusConfirmed, res.Status)
	})

	t.Run("already confirmed booking does not re-send on update", func(t *testing.T) {
		f := newFixture(t)
		booking := storedBooking()
		booking.Status = model.StatusConfirmed

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		req := dto.UpdateBookingRequest{Status: stringPtr(model.StatusConfirmed)}

		_, confirmationSent, err := f.svc.Update(context.Background(), req, booking.ID)

		assert.NoError(t, err)
		assert.False(t, confirmationSent)
	})

	t.Run("confirmation failure is logged not propagated", func(t *testing.T) {
		f := newFixture(t)
		booking := storedBooking()

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.mailer.EXPECT().SendBookingConfirmation(gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))

		req := dto.UpdateBookingRequest{Status: stringPtr(model.StatusConfirmed)}

		_, confirmationSent, err := f.svc.Update(context.Background(), req, booking.ID)

		assert.NoError(t, err)
		assert.False(t, confirmationSent)
	})

	t.Run("empty request rejected", func(t *testing.T) {
		f := newFixture(t)

		_, _, err := f.svc.Update(context.Background(), dto.UpdateBookingRequest{}, "booking-id-123")

		assert.Error(t, err)
		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		req := dto.UpdateBookingRequest{Status: stringPtr(model.StatusCancelled)}

		_, _, err := f.svc.Update(context.Background(), req, "missing-id")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

// Confirming twice re-sends the confirmation both times and always updates
// the email-sent flag on success.
func TestBookingService_ConfirmResends(t *testing.T) {
	f := newFixture(t)
	booking := storedBooking()

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil).Times(2)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(4)
	f.mailer.EXPECT().SendBookingConfirmation(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	for range 2 {
		res, err := f.svc.Confirm(context.Background(), booking.ID)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusConfirmed, res.Status)
		assert.True(t, res.EmailSent)
	}
}

func TestBookingService_Cancel(t *testing.T) {
	f := newFixture(t)
	booking := storedBooking()

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.svc.Cancel(context.Background(), booking.ID)

	assert.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, res.Status)
}

func TestBookingService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantErr   bool
	}{
		{
			name: "successful delete",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "not found",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Delete(context.Background(), "booking-id-123")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

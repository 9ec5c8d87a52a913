package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"homestay/config"
	"homestay/infras/otel/mocks"
	bookingMocks "homestay/internal/domains/booking/mocks"
	bookingModel "homestay/internal/domains/booking/model"
	paymentMocks "homestay/internal/domains/payment/mocks"
	"homestay/internal/domains/payment/model"
	"homestay/internal/domains/payment/model/dto"
	"homestay/internal/domains/payment/service"
	cacheMocks "homestay/shared/cache/mocks"
	"homestay/shared/constant"
	gDto "homestay/shared/dto"
	"homestay/shared/failure"
	"homestay/shared/timezone"
)

type fixture struct {
	repo     *paymentMocks.MockPayment
	bookings *bookingMocks.MockBooking
	svc      service.Payment
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	repo := paymentMocks.NewMockPayment(ctrl)
	bookings := bookingMocks.NewMockBooking(ctrl)
	cch := cacheMocks.NewMockRedisCache(ctrl)

	// Cache writes and invalidations run on detached goroutines; they are
	// not the behavior under test.
	cch.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	cch.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cch.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cch.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return fixture{
		repo:     repo,
		bookings: bookings,
		svc:      service.New(repo, bookings, &config.Config{}, cch, mocks.NewOtel()),
	}
}

func storedBooking() bookingModel.Booking {
	booking := bookingModel.Booking{
		ID:                "b3f1c6ce-5a1f-4d55-93f1-0d8f45f1a001",
		Name:              "Jane Guest",
		Email:             "jane@example.com",
		AccommodationType: bookingModel.AccommodationAuthenticHomestay,
		Status:            bookingModel.StatusConfirmed,
		Reference:         "BK123456780001",
	}
	booking.CheckIn = timezone.Now().AddDate(0, 0, 7)
	booking.CheckOut = timezone.Now().AddDate(0, 0, 10)
	booking.Recompute()

	return booking
}

func storedPayment(amount float64, status string) model.Payment {
	return model.Payment{
		ID:            "payment-id-123",
		BookingID:     "b3f1c6ce-5a1f-4d55-93f1-0d8f45f1a001",
		GuestName:     "Jane Guest",
		Amount:        amount,
		PaymentDate:   timezone.Now(),
		PaymentMethod: model.MethodBankTransfer,
		Status:        status,
	}
}

func TestPaymentService_Create(t *testing.T) {
	req := dto.CreatePaymentRequest{
		BookingID:     "b3f1c6ce-5a1f-4d55-93f1-0d8f45f1a001",
		GuestName:     "Jane Guest",
		Amount:        3500,
		PaymentMethod: model.MethodUPI,
	}

	t.Run("defaults to completed and records the payment", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, payment model.Payment) error {
				assert.Equal(t, model.StatusCompleted, payment.Status)
				assert.NotEmpty(t, payment.ID)
				assert.False(t, payment.PaymentDate.IsZero())

				return nil
			})

		res, err := f.svc.Create(context.Background(), req)

		assert.NoError(t, err)
		assert.Equal(t, req.BookingID, res.BookingID)
		assert.InDelta(t, 3500, res.Amount, 0.001)
		assert.Equal(t, model.StatusCompleted, res.Status)
	})

	t.Run("rejects payments for unknown bookings", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.Create(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("keeps an explicit status and date", func(t *testing.T) {
		f := newFixture(t)

		dated := req
		dated.Status = model.StatusPending
		dated.PaymentDate = "2026-08-15"

		f.bookings.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, payment model.Payment) error {
				assert.Equal(t, model.StatusPending, payment.Status)
				assert.Equal(t, "2026-08-15", payment.PaymentDate.Format(constant.DateOnlyFormat))

				return nil
			})

		res, err := f.svc.Create(context.Background(), dated)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusPending, res.Status)
	})

	t.Run("propagates insert failures", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))

		_, err := f.svc.Create(context.Background(), req)

		assert.Error(t, err)
	})
}

func TestPaymentService_Update(t *testing.T) {
	id := "payment-id-123"

	t.Run("rejects an empty request", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Update(context.Background(), dto.UpdatePaymentRequest{}, id)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("returns not found for unknown payments", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.Update(context.Background(), dto.UpdatePaymentRequest{Amount: 500}, id)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("validates a reassigned booking", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.bookings.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.Update(context.Background(), dto.UpdatePaymentRequest{
			BookingID: "1f0ce5a4-9c3c-4f89-8f58-0d8f45f1a002",
		}, id)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("parses the payment date into the update", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Contains(t, fields, model.FieldPaymentDate)
				assert.InDelta(t, 500, fields[model.FieldAmount], 0.001)

				return nil
			})
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedPayment(500, model.StatusCompleted), nil)

		_, err := f.svc.Update(context.Background(), dto.UpdatePaymentRequest{
			Amount:      500,
			PaymentDate: "2026-08-20",
		}, id)

		assert.NoError(t, err)
	})
}

func TestPaymentService_Ledger(t *testing.T) {
	booking := storedBooking()

	t.Run("reports paid and outstanding amounts", func(t *testing.T) {
		f := newFixture(t)

		payments := []model.Payment{
			storedPayment(5000, model.StatusCompleted),
			storedPayment(2000, model.StatusCompleted),
			storedPayment(1500, model.StatusPending),
		}

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Payment, error) {
				assert.Equal(t, model.FieldPaymentDate, params.SortBy)
				assert.Equal(t, "desc", params.SortDir)

				return payments, nil
			})
		f.repo.EXPECT().SumAmount(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, filter gDto.FilterGroup) (float64, error) {
				assert.Equal(t, gDto.FilterGroupOperatorAnd, filter.Operator)
				assert.Len(t, filter.Filters, 2)

				return 7000, nil
			})

		res, err := f.svc.Ledger(context.Background(), booking.ID)

		assert.NoError(t, err)
		assert.Equal(t, booking.Reference, res.Booking.Reference)
		assert.InDelta(t, booking.TotalPrice, res.Booking.TotalAmount, 0.001)
		assert.InDelta(t, 7000, res.Booking.TotalPaid, 0.001)
		assert.InDelta(t, booking.TotalPrice-7000, res.Booking.RemainingAmount, 0.001)
		assert.Len(t, res.Payments, 3)
	})

	t.Run("returns not found for unknown bookings", func(t *testing.T) {
		f := newFixture(t)

		f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingModel.Booking{}, nil)

		_, err := f.svc.Ledger(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestPaymentService_Statistics(t *testing.T) {
	t.Run("aggregates totals, groups, and monthly breakdown", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(12, nil)
		f.repo.EXPECT().SumAmount(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, filter gDto.FilterGroup) (float64, error) {
				assert.NotEmpty(t, filter.Filters)

				return 45000, nil
			})
		f.repo.EXPECT().GroupTotals(gomock.Any(), model.FieldPaymentMethod, gomock.Any()).Return(
			[]model.GroupTotal{
				{Key: model.MethodUPI, Count: 7, TotalAmount: 30000},
				{Key: model.MethodCash, Count: 3, TotalAmount: 15000},
			}, nil)
		f.repo.EXPECT().GroupTotals(gomock.Any(), model.FieldStatus, gomock.Any()).Return(
			[]model.GroupTotal{
				{Key: model.StatusCompleted, Count: 10, TotalAmount: 45000},
				{Key: model.StatusPending, Count: 2, TotalAmount: 2500},
			}, nil)
		f.repo.EXPECT().MonthlyTotals(gomock.Any(), gomock.Any(), 12).Return(
			[]model.MonthlyTotal{
				{Year: 2026, Month: 8, Count: 6, TotalAmount: 25000},
				{Year: 2026, Month: 7, Count: 4, TotalAmount: 20000},
			}, nil)

		res, err := f.svc.Statistics(context.Background(), "", "")

		assert.NoError(t, err)
		assert.Equal(t, 12, res.Total)
		assert.InDelta(t, 45000, res.TotalAmount, 0.001)
		assert.Equal(t, 7, res.ByMethod[model.MethodUPI].Count)
		assert.InDelta(t, 15000, res.ByMethod[model.MethodCash].TotalAmount, 0.001)
		assert.Equal(t, 2, res.ByStatus[model.StatusPending].Count)
		assert.Len(t, res.Monthly, 2)
		assert.Equal(t, 8, res.Monthly[0].Month)
	})

	t.Run("applies the date range to every aggregation", func(t *testing.T) {
		f := newFixture(t)

		assertRange := func(filter gDto.FilterGroup, expectedLen int) {
			assert.Len(t, filter.Filters, expectedLen)
			assert.Equal(t, gDto.FilterGroupOperatorAnd, filter.Operator)
		}

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				assertRange(filter, 2)

				return 4, nil
			})
		f.repo.EXPECT().SumAmount(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, filter gDto.FilterGroup) (float64, error) {
				assertRange(filter, 3)

				return 9000, nil
			})
		f.repo.EXPECT().GroupTotals(gomock.Any(), model.FieldPaymentMethod, gomock.Any()).Return(nil, nil)
		f.repo.EXPECT().GroupTotals(gomock.Any(), model.FieldStatus, gomock.Any()).Return(nil, nil)
		f.repo.EXPECT().MonthlyTotals(gomock.Any(), gomock.Any(), 12).Return(nil, nil)

		res, err := f.svc.Statistics(context.Background(), "2026-01-01", "2026-06-30")

		assert.NoError(t, err)
		assert.Equal(t, 4, res.Total)
	})

	t.Run("rejects a malformed date range", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Statistics(context.Background(), "01-01-2026", "")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestPaymentService_Delete(t *testing.T) {
	t.Run("deletes an existing payment", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.Delete(context.Background(), "payment-id-123"))
	})

	t.Run("returns not found for unknown payments", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Delete(context.Background(), "missing")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

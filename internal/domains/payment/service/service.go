package service

import (
	"context"
	"fmt"
	"time"

	"homestay/config"
	"homestay/infras/otel"
	bookingModel "homestay/internal/domains/booking/model"
	bookingRepo "homestay/internal/domains/booking/repository"
	"homestay/internal/domains/payment/model"
	"homestay/internal/domains/payment/model/dto"
	"homestay/internal/domains/payment/repository"
	"homestay/shared"
	"homestay/shared/cache"
	"homestay/shared/constant"
	gDto "homestay/shared/dto"
	"homestay/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetPayment    = "payment:get"
	cacheGetAllPayment = "payment:gets"
	cacheCountPayment  = "payment:count"

	monthlyBreakdownMonths = 12
)

type Payment interface {
	Create(ctx context.Context, req dto.CreatePaymentRequest) (dto.PaymentResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPaymentsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PaymentResponse, error)
	Update(ctx context.Context, req dto.UpdatePaymentRequest, id string) (dto.PaymentResponse, error)
	Delete(ctx context.Context, id string) error
	Ledger(ctx context.Context, bookingID string) (dto.BookingLedgerResponse, error)
	Statistics(ctx context.Context, startDate, endDate string) (dto.PaymentStatisticsResponse, error)
}

type serviceImpl struct {
	repo     repository.Payment
	bookings bookingRepo.Booking
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Payment, bookings bookingRepo.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Payment {
	return &serviceImpl{
		repo:     repo,
		bookings: bookings,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePaymentRequest) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, _ := ctx.Value(constant.ContextKeyAdminID).(string)

	payment, err := req.ToModel(admin)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse payment request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if err = s.ensureBookingExists(ctx, payment.BookingID); err != nil {
		return res, err
	}

	if err = s.repo.Insert(ctx, payment); err != nil {
		log.Error().Err(err).Msg("failed to create payment")

		return res, fmt.Errorf("failed to create payment: %w", err)
	}

	s.invalidate(ctx, payment.ID)

	res.FromModel(payment)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPaymentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPayment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for payments")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count payments")

		return res, fmt.Errorf("failed to count payments: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payments")

		return res, fmt.Errorf("failed to get payments: %w", err)
	}

	res.FromModels(models, req, total)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save payments to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountPayment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count payments")

		return res, fmt.Errorf("failed to count payments: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save payment count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	payment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment")

		return res, fmt.Errorf("failed to get payment: %w", err)
	}

	if payment.ID == constant.Empty {
		return res, failure.NotFound("payment") // nolint:wrapcheck
	}

	res.FromModel(payment)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePaymentRequest, id string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdatePaymentRequest{}) {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	admin, _ := ctx.Value(constant.ContextKeyAdminID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if payment exists")

		return res, fmt.Errorf("failed to check if payment exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("payment") // nolint:wrapcheck
	}

	if req.BookingID != "" {
		if err = s.ensureBookingExists(ctx, req.BookingID); err != nil {
			return res, err
		}
	}

	updatedFields := shared.TransformFields(req, admin)

	if req.PaymentDate != "" {
		paymentDate, parseErr := time.Parse(constant.DateOnlyFormat, req.PaymentDate)
		if parseErr != nil {
			log.Error().Err(parseErr).Msg("failed to parse payment date")

			return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", parseErr)) // nolint:wrapcheck
		}

		updatedFields[model.FieldPaymentDate] = paymentDate
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update payment")

		return res, fmt.Errorf("failed to update payment: %w", err)
	}

	s.invalidate(ctx, id)

	return s.Get(ctx, id)
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(nil)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if payment exists")

		return fmt.Errorf("failed to check if payment exists: %w", err)
	}

	if !exist {
		return failure.NotFound("payment") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete payment")

		return fmt.Errorf("failed to delete payment: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Ledger reports every payment against a booking together with the paid and
// outstanding amounts. Only completed payments count toward the paid total.
func (s *serviceImpl) Ledger(ctx context.Context, bookingID string) (res dto.BookingLedgerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Ledger")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.bookings.Get(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking") // nolint:wrapcheck
	}

	params := gDto.QueryParams{
		SortBy:  model.FieldPaymentDate,
		SortDir: "desc",
	}

	payments, err := s.repo.GetAll(ctx, params, bookingFilter(bookingID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get payments for booking")

		return res, fmt.Errorf("failed to get payments for booking: %w", err)
	}

	totalPaid, err := s.repo.SumAmount(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBookingID,
				Operator: gDto.FilterOperatorEq,
				Value:    bookingID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    model.StatusCompleted,
				Table:    model.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to sum payments for booking")

		return res, fmt.Errorf("failed to sum payments for booking: %w", err)
	}

	res.FromModels(booking, payments, totalPaid)

	return res, nil
}

// Statistics aggregates payments overall and per method, status, and month.
// Amount totals only include completed payments. The optional date range
// bounds payment_date on both ends.
func (s *serviceImpl) Statistics(ctx context.Context, startDate, endDate string) (res dto.PaymentStatisticsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Statistics")
	defer scope.End()
	defer scope.TraceIfError(err)

	dateFilters, err := dateRangeFilters(startDate, endDate)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse statistics date range")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	completedFilters := append([]any{gDto.Filter{
		Field:    model.FieldStatus,
		Operator: gDto.FilterOperatorEq,
		Value:    model.StatusCompleted,
		Table:    model.TableName,
	}}, dateFilters...)

	total, err := s.repo.Count(ctx, buildFilter(dateFilters...))
	if err != nil {
		log.Error().Err(err).Msg("failed to count payments")

		return res, fmt.Errorf("failed to count payments: %w", err)
	}

	totalAmount, err := s.repo.SumAmount(ctx, buildFilter(completedFilters...))
	if err != nil {
		log.Error().Err(err).Msg("failed to sum payments")

		return res, fmt.Errorf("failed to sum payments: %w", err)
	}

	byMethod, err := s.repo.GroupTotals(ctx, model.FieldPaymentMethod, buildFilter(completedFilters...))
	if err != nil {
		log.Error().Err(err).Msg("failed to group payments by method")

		return res, fmt.Errorf("failed to group payments by method: %w", err)
	}

	byStatus, err := s.repo.GroupTotals(ctx, model.FieldStatus, buildFilter(dateFilters...))
	if err != nil {
		log.Error().Err(err).Msg("failed to group payments by status")

		return res, fmt.Errorf("failed to group payments by status: %w", err)
	}

	monthly, err := s.repo.MonthlyTotals(ctx, buildFilter(completedFilters...), monthlyBreakdownMonths)
	if err != nil {
		log.Error().Err(err).Msg("failed to get monthly payment totals")

		return res, fmt.Errorf("failed to get monthly payment totals: %w", err)
	}

	res.Total = total
	res.TotalAmount = totalAmount

	res.ByMethod = make(map[string]dto.GroupStat, len(byMethod))
	for _, row := range byMethod {
		res.ByMethod[row.Key] = dto.GroupStat{Count: row.Count, TotalAmount: row.TotalAmount}
	}

	res.ByStatus = make(map[string]dto.GroupStat, len(byStatus))
	for _, row := range byStatus {
		res.ByStatus[row.Key] = dto.GroupStat{Count: row.Count, TotalAmount: row.TotalAmount}
	}

	res.Monthly = make([]dto.MonthlyStat, len(monthly))
	for i, row := range monthly {
		res.Monthly[i] = dto.MonthlyStat{
			Year:        row.Year,
			Month:       row.Month,
			Count:       row.Count,
			TotalAmount: row.TotalAmount,
		}
	}

	return res, nil
}

func (s *serviceImpl) ensureBookingExists(ctx context.Context, bookingID string) error {
	exist, err := s.bookings.Exist(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return failure.NotFound("booking") // nolint:wrapcheck
	}

	return nil
}

func bookingFilter(bookingID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldBookingID,
				Operator: gDto.FilterOperatorEq,
				Value:    bookingID,
				Table:    model.TableName,
			},
		},
	}
}

func dateRangeFilters(startDate, endDate string) ([]any, error) {
	var filters []any

	if startDate != "" {
		parsed, err := time.Parse(constant.DateOnlyFormat, startDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse start date: %w", err)
		}

		filters = append(filters, gDto.Filter{
			Field:    model.FieldPaymentDate,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    parsed,
			Table:    model.TableName,
		})
	}

	if endDate != "" {
		parsed, err := time.Parse(constant.DateOnlyFormat, endDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse end date: %w", err)
		}

		filters = append(filters, gDto.Filter{
			Field:    model.FieldPaymentDate,
			Operator: gDto.FilterOperatorLessEq,
			Value:    parsed,
			Table:    model.TableName,
		})
	}

	return filters, nil
}

func buildFilter(filters ...any) gDto.FilterGroup {
	group := gDto.FilterGroup{Filters: filters}

	if len(filters) > 1 {
		group.Operator = gDto.FilterGroupOperatorAnd
	}

	return group
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPayment, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete payment from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllPayment)
		shared.InvalidateCaches(c, s.cache, cacheCountPayment)
	}()
}

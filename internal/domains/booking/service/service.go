package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"homestay/config"
	"homestay/infras/mailer"
	"homestay/infras/otel"
	"homestay/internal/domains/booking/model"
	"homestay/internal/domains/booking/model/dto"
	"homestay/internal/domains/booking/repository"
	"homestay/shared"
	"homestay/shared/cache"
	"homestay/shared/constant"
	gDto "homestay/shared/dto"
	"homestay/shared/failure"
	"homestay/shared/timezone"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	pgUniqueViolation = "23505"

	// referenceInsertAttempts bounds the regenerate-and-retry loop when a
	// generated reference collides with an existing one.
	referenceInsertAttempts = 3
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id, email string, isAdmin bool) (dto.BookingResponse, error)
	GetByReference(ctx context.Context, reference, email string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (dto.BookingResponse, bool, error)
	Confirm(ctx context.Context, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo   repository.Booking
	cfg    *config.Config
	cache  cache.RedisCache
	otel   otel.Otel
	mailer mailer.Mailer
}

func New(repo repository.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, mailer mailer.Mailer) Booking {
	return &serviceImpl{
		repo:   repo,
		cfg:    cfg,
		cache:  cache,
		otel:   otel,
		mailer: mailer,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyAdminID).(string)
	if actor == "" {
		actor = constant.ActorGuest
	}

	booking, err := req.ToModel(actor)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if err = validateStayWindow(booking.CheckIn, booking.CheckOut); err != nil {
		return res, err
	}

	// References can collide within a single millisecond; the unique
	// constraint is the authority, so regenerate and retry on a duplicate.
	for attempt := 1; ; attempt++ {
		err = s.repo.Insert(ctx, booking)
		if err == nil {
			break
		}

		if isDuplicateReference(err) && attempt < referenceInsertAttempts {
			booking.Reference = model.GenerateReference()

			continue
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	payload := dto.ToEmailPayload(booking)

	// Guest notification is awaited; a send failure is logged, never
	// surfaced. The email-sent flag is a separate write.
	if mailErr := s.mailer.SendBookingReceived(ctx, payload); mailErr != nil {
		log.Error().Err(mailErr).Str("reference", booking.Reference).Msg("failed to send booking received email")
	} else if flagErr := s.markEmailSent(ctx, booking.ID, actor); flagErr == nil {
		booking.EmailSent = true
	}

	// Admin alert is fire-and-forget.
	go func() {
		c := context.WithoutCancel(ctx)

		if alertErr := s.mailer.SendAdminBookingAlert(c, payload); alertErr != nil {
			log.Error().Err(alertErr).Str("reference", booking.Reference).Msg("failed to send admin booking alert")
		}
	}()

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, req, total)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id, email string, isAdmin bool) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking") // nolint:wrapcheck
	}

	// Non-admin lookups are rejected only when an email is supplied and it
	// does not match the booking.
	if !isAdmin && email != "" && !strings.EqualFold(email, booking.Email) {
		return res, failure.Forbidden("access to this booking is not allowed") // nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetByReference(ctx context.Context, reference, email string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByReference")
	defer scope.End()
	defer scope.TraceIfError(err)

	reference = strings.ToUpper(strings.TrimSpace(reference))

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldReference,
				Operator: gDto.FilterOperatorEq,
				Value:    reference,
				Table:    model.TableName,
			},
		},
	}

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking by reference")

		return res, fmt.Errorf("failed to get booking by reference: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking") // nolint:wrapcheck
	}

	if email != "" && !strings.EqualFold(email, booking.Email) {
		return res, failure.Forbidden("access to this booking is not allowed") // nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (res dto.BookingResponse, confirmationSent bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.IsEmpty() {
		return res, false, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	admin, _ := ctx.Value(constant.ContextKeyAdminID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, false, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, false, failure.NotFound("booking") // nolint:wrapcheck
	}

	previousStatus := booking.Status

	recompute, err := req.ApplyTo(&booking)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking update")

		return res, false, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if recompute {
		booking.Recompute()
	}

	updatedFields := shared.TransformFields(dto.UpdateFieldsFromModel(booking), admin)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return res, false, fmt.Errorf("failed to update booking: %w", err)
	}

	if previousStatus != model.StatusConfirmed && booking.Status == model.StatusConfirmed {
		if mailErr := s.mailer.SendBookingConfirmation(ctx, dto.ToEmailPayload(booking)); mailErr != nil {
			log.Error().Err(mailErr).Str("reference", booking.Reference).Msg("failed to send booking confirmation email")
		} else {
			confirmationSent = true
		}
	}

	s.invalidate(ctx, id)

	res.FromModel(booking)

	return res, confirmationSent, nil
}

func (s *serviceImpl) Confirm(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, _ := ctx.Value(constant.ContextKeyAdminID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(dto.UpdateStatusRequest{Status: model.StatusConfirmed}, admin)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to confirm booking")

		return res, fmt.Errorf("failed to confirm booking: %w", err)
	}

	booking.Status = model.StatusConfirmed

	// Confirmation is re-sent on every confirm, even when the booking was
	// already confirmed.
	if mailErr := s.mailer.SendBookingConfirmation(ctx, dto.ToEmailPayload(booking)); mailErr != nil {
		log.Error().Err(mailErr).Str("reference", booking.Reference).Msg("failed to send booking confirmation email")
	} else if flagErr := s.markEmailSent(ctx, booking.ID, admin); flagErr == nil {
		booking.EmailSent = true
	}

	s.invalidate(ctx, id)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	admin, _ := ctx.Value(constant.ContextKeyAdminID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(dto.UpdateStatusRequest{Status: model.StatusCancelled}, admin)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return res, fmt.Errorf("failed to cancel booking: %w", err)
	}

	booking.Status = model.StatusCancelled

	s.invalidate(ctx, id)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(nil)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return failure.NotFound("booking") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// validateStayWindow enforces the date invariants checked on creation:
// check-in not before today (date-only comparison) and check-out strictly
// after check-in.
func validateStayWindow(checkIn, checkOut time.Time) error {
	now := timezone.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if checkIn.Before(today) {
		return failure.BadRequestFromString("check-in date cannot be in the past") // nolint:wrapcheck
	}

	if !checkOut.After(checkIn) {
		return failure.BadRequestFromString("check-out date must be after check-in date") // nolint:wrapcheck
	}

	return nil
}

func isDuplicateReference(err error) bool {
	var pqErr *pq.Error

	return errors.As(err, &pqErr) &&
		string(pqErr.Code) == pgUniqueViolation &&
		strings.Contains(pqErr.Constraint, model.FieldReference)
}

func (s *serviceImpl) markEmailSent(ctx context.Context, id, actor string) error {
	filter := shared.FilterByID(id, model.FieldID, model.TableName)
	updatedFields := shared.TransformFields(dto.EmailSentUpdate{EmailSent: true}, actor)

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("failed to mark booking email as sent")

		return fmt.Errorf("failed to mark booking email as sent: %w", err)
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

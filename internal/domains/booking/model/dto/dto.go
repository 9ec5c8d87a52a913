package dto

import (
	"strings"
	"time"

	"homestay/infras/mailer"
	"homestay/internal/domains/booking/model"
	"homestay/shared"
	"homestay/shared/constant"
	gDto "homestay/shared/dto"
	gModel "homestay/shared/model"
	"homestay/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	Name              string `json:"name"               validate:"required,min=2,max=100"`
	Email             string `json:"email"              validate:"required,email,max=100"`
	Phone             string `json:"phone"              validate:"required,max=20"`
	CheckIn           string `json:"check_in"           validate:"required,datetime=2006-01-02"`
	CheckOut          string `json:"check_out"          validate:"required,datetime=2006-01-02"`
	Guests            int    `json:"guests"             validate:"required,min=1,max=10"`
	AccommodationType string `json:"accommodation_type" validate:"required,max=100"`
	SpecialRequests   string `json:"special_requests"   validate:"omitempty,max=1000"`
}

func (c *CreateBookingRequest) ToModel(createdBy string) (model.Booking, error) {
	checkIn, err := time.Parse(constant.DateOnlyFormat, c.CheckIn)
	if err != nil {
		return model.Booking{}, err
	}

	checkOut, err := time.Parse(constant.DateOnlyFormat, c.CheckOut)
	if err != nil {
		return model.Booking{}, err
	}

	booking := model.Booking{
		ID:                uuid.NewString(),
		Name:              c.Name,
		Email:             strings.ToLower(strings.TrimSpace(c.Email)),
		Phone:             c.Phone,
		CheckIn:           checkIn,
		CheckOut:          checkOut,
		Guests:            c.Guests,
		AccommodationType: c.AccommodationType,
		SpecialRequests:   c.SpecialRequests,
		Status:            model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  createdBy,
			ModifiedBy: createdBy,
		},
	}

	booking.EnsureReference()
	booking.Recompute()

	return booking, nil
}

type UpdateBookingRequest struct {
	Name              *string `json:"name"               validate:"omitempty,min=2,max=100"`
	Email             *string `json:"email"              validate:"omitempty,email,max=100"`
	Phone             *string `json:"phone"              validate:"omitempty,max=20"`
	CheckIn           *string `json:"check_in"           validate:"omitempty,datetime=2006-01-02"`
	CheckOut          *string `json:"check_out"          validate:"omitempty,datetime=2006-01-02"`
	Guests            *int    `json:"guests"             validate:"omitempty,min=1,max=10"`
	AccommodationType *string `json:"accommodation_type" validate:"omitempty,max=100"`
	SpecialRequests   *string `json:"special_requests"   validate:"omitempty,max=1000"`
	Status            *string `json:"status"             validate:"omitempty,oneof=pending confirmed cancelled completed"`
}

func (u *UpdateBookingRequest) IsEmpty() bool {
	return *u == (UpdateBookingRequest{})
}

// ApplyTo overlays the provided fields on an existing booking and reports
// whether any field feeding the derived nights/total changed.
func (u *UpdateBookingRequest) ApplyTo(booking *model.Booking) (recompute bool, err error) {
	if u.Name != nil {
		booking.Name = *u.Name
	}

	if u.Email != nil {
		booking.Email = strings.ToLower(strings.TrimSpace(*u.Email))
	}

	if u.Phone != nil {
		booking.Phone = *u.Phone
	}

	if u.CheckIn != nil {
		checkIn, parseErr := time.Parse(constant.DateOnlyFormat, *u.CheckIn)
		if parseErr != nil {
			return false, parseErr
		}

		booking.CheckIn = checkIn
		recompute = true
	}

	if u.CheckOut != nil {
		checkOut, parseErr := time.Parse(constant.DateOnlyFormat, *u.CheckOut)
		if parseErr != nil {
			return false, parseErr
		}

		booking.CheckOut = checkOut
		recompute = true
	}

	if u.Guests != nil {
		booking.Guests = *u.Guests
	}

	if u.AccommodationType != nil {
		booking.AccommodationType = *u.AccommodationType
		recompute = true
	}

	if u.SpecialRequests != nil {
		booking.SpecialRequests = *u.SpecialRequests
	}

	if u.Status != nil {
		booking.Status = *u.Status
	}

	return recompute, nil
}

// UpdateBookingFields carries the effective row state for a partial update
// write.
type UpdateBookingFields struct {
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
}

func UpdateFieldsFromModel(booking model.Booking) UpdateBookingFields {
	return UpdateBookingFields{
		Name:              booking.Name,
		Email:             booking.Email,
		Phone:             booking.Phone,
		CheckIn:           booking.CheckIn,
		CheckOut:          booking.CheckOut,
		Guests:            booking.Guests,
		AccommodationType: booking.AccommodationType,
		Nights:            booking.Nights,
		TotalPrice:        booking.TotalPrice,
		SpecialRequests:   booking.SpecialRequests,
		Status:            booking.Status,
	}
}

type UpdateStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

type EmailSentUpdate struct {
	EmailSent bool `db:"email_sent"`
}

type BookingResponse struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Email             string  `json:"email"`
	Phone             string  `json:"phone"`
	CheckIn           string  `json:"check_in"`
	CheckOut          string  `json:"check_out"`
	Guests            int     `json:"guests"`
	AccommodationType string  `json:"accommodation_type"`
	Nights            int     `json:"nights"`
	TotalPrice        float64 `json:"total_price"`
	SpecialRequests   string  `json:"special_requests,omitempty"`
	Status            string  `json:"status"`
	Reference         string  `json:"reference"`
	EmailSent         bool    `json:"email_sent"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(booking model.Booking) {
	r.ID = booking.ID
	r.Name = booking.Name
	r.Email = booking.Email
	r.Phone = booking.Phone
	r.CheckIn = booking.CheckIn.Format(constant.DateOnlyFormat)
	r.CheckOut = booking.CheckOut.Format(constant.DateOnlyFormat)
	r.Guests = booking.Guests
	r.AccommodationType = booking.AccommodationType
	r.Nights = booking.Nights
	r.TotalPrice = booking.TotalPrice
	r.SpecialRequests = booking.SpecialRequests
	r.Status = booking.Status
	r.Reference = booking.Reference
	r.EmailSent = booking.EmailSent
	r.Metadata.FromModel(booking.Metadata)
}

type GetBookingsResponse struct {
	Items      []BookingResponse `json:"items"`
	Pagination gDto.Pagination   `json:"pagination"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, params gDto.QueryParams, total int) {
	r.Items = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Items[i].FromModel(mod)
	}

	r.Pagination = gDto.NewPagination(params, total, shared.CalculateTotalPage(total, params.Limit))
}

// ToEmailPayload shapes a booking for the transactional email templates.
func ToEmailPayload(booking model.Booking) mailer.BookingEmail {
	return mailer.BookingEmail{
		FullName:           booking.Name,
		Email:              booking.Email,
		PhoneNumber:        booking.Phone,
		BookingReference:   booking.Reference,
		AccommodationType:  booking.AccommodationType,
		CheckInDate:        booking.CheckIn.Format(constant.DateOnlyFormat),
		CheckOutDate:       booking.CheckOut.Format(constant.DateOnlyFormat),
		NumberOfNights:     booking.Nights,
		NumberOfGuests:     booking.Guests,
		AccommodationPrice: model.NightlyRate(booking.AccommodationType),
		TotalAmount:        booking.TotalPrice,
		SpecialRequests:    booking.SpecialRequests,
		Status:             booking.Status,
	}
}

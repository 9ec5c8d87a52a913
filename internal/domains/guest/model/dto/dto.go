package dto

import (
	"strings"
	"time"

	bookingModel "homestay/internal/domains/booking/model"
	"homestay/internal/domains/guest/model"
	"homestay/shared"
	"homestay/shared/constant"
	gDto "homestay/shared/dto"
	gModel "homestay/shared/model"
	"homestay/shared/timezone"

	"github.com/google/uuid"
)

type CreateGuestRequest struct {
	FullName          string `json:"full_name"          validate:"required,min=2,max=100"`
	Email             string `json:"email"              validate:"required,email,max=100"`
	Phone             string `json:"phone"              validate:"required,max=20"`
	Address           string `json:"address"            validate:"omitempty,max=500"`
	VisitDate         string `json:"visit_date"         validate:"required,datetime=2006-01-02"`
	AccommodationType string `json:"accommodation_type" validate:"required,oneof='Luxury Glamping Tent' 'Authentic Homestay' 'Mountain Wellness Pod'"`
	Status            string `json:"status"             validate:"omitempty,oneof=active inactive completed"`
	Notes             string `json:"notes"              validate:"omitempty,max=1000"`
}

func (c *CreateGuestRequest) ToModel(createdBy string) (model.Guest, error) {
	visitDate, err := time.Parse(constant.DateOnlyFormat, c.VisitDate)
	if err != nil {
		return model.Guest{}, err
	}

	status := c.Status
	if status == "" {
		status = model.StatusActive
	}

	return model.Guest{
		ID:                uuid.NewString(),
		FullName:          c.FullName,
		Email:             strings.ToLower(strings.TrimSpace(c.Email)),
		Phone:             c.Phone,
		Address:           c.Address,
		VisitDate:         visitDate,
		AccommodationType: c.AccommodationType,
		Status:            status,
		Notes:             c.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  createdBy,
			ModifiedBy: createdBy,
		},
	}, nil
}

type UpdateGuestRequest struct {
	FullName          string `db:"full_name"          json:"full_name"          validate:"omitempty,min=2,max=100"`
	Email             string `db:"email"              json:"email"              validate:"omitempty,email,max=100"`
	Phone             string `db:"phone"              json:"phone"              validate:"omitempty,max=20"`
	Address           string `db:"address"            json:"address"            validate:"omitempty,max=500"`
	VisitDate         string `json:"visit_date"                                 validate:"omitempty,datetime=2006-01-02"`
	AccommodationType string `db:"accommodation_type" json:"accommodation_type" validate:"omitempty,oneof='Luxury Glamping Tent' 'Authentic Homestay' 'Mountain Wellness Pod'"`
	Status            string `db:"status"             json:"status"             validate:"omitempty,oneof=active inactive completed"`
	Notes             string `db:"notes"              json:"notes"              validate:"omitempty,max=1000"`
}

type GuestResponse struct {
	ID                string `json:"id"`
	FullName          string `json:"full_name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Address           string `json:"address,omitempty"`
	VisitDate         string `json:"visit_date"`
	AccommodationType string `json:"accommodation_type"`
	Status            string `json:"status"`
	Notes             string `json:"notes,omitempty"`
	gDto.Metadata
}

func (r *GuestResponse) FromModel(guest model.Guest) {
	r.ID = guest.ID
	r.FullName = guest.FullName
	r.Email = guest.Email
	r.Phone = guest.Phone
	r.Address = guest.Address
	r.VisitDate = guest.VisitDate.Format(constant.DateOnlyFormat)
	r.AccommodationType = guest.AccommodationType
	r.Status = guest.Status
	r.Notes = guest.Notes
	r.Metadata.FromModel(guest.Metadata)
}

type GetGuestsResponse struct {
	Items      []GuestResponse `json:"items"`
	Pagination gDto.Pagination `json:"pagination"`
}

func (r *GetGuestsResponse) FromModels(models []model.Guest, params gDto.QueryParams, total int) {
	r.Items = make([]GuestResponse, len(models))
	for i, mod := range models {
		r.Items[i].FromModel(mod)
	}

	r.Pagination = gDto.NewPagination(params, total, shared.CalculateTotalPage(total, params.Limit))
}

type GuestStatisticsResponse struct {
	Total               int            `json:"total"`
	Active              int            `json:"active"`
	Completed           int            `json:"completed"`
	ByStatus            map[string]int `json:"by_status"`
	ByAccommodationType map[string]int `json:"by_accommodation_type"`
}

// AccommodationTypes reuses the booking rate table keys so both domains
// agree on the enumeration.
func AccommodationTypes() []string {
	return []string{
		bookingModel.AccommodationLuxuryGlampingTent,
		bookingModel.AccommodationAuthenticHomestay,
		bookingModel.AccommodationMountainWellnessPod,
	}
}

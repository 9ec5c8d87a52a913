package dto

import (
	"strings"

	"homestay/internal/domains/review/model"
	"homestay/shared"
	gDto "homestay/shared/dto"
	gModel "homestay/shared/model"
	"homestay/shared/timezone"

	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Email    string `json:"email"     validate:"required,email,max=100"`
	Location string `json:"location"  validate:"required,min=2,max=100"`
	Review   string `json:"review"    validate:"required,min=10,max=2000"`
	Rating   int    `json:"rating"    validate:"omitempty,min=1,max=5"`
}

func (c *CreateReviewRequest) ToModel(createdBy string) model.Review {
	rating := c.Rating
	if rating == 0 {
		rating = 5
	}

	return model.Review{
		ID:       uuid.NewString(),
		FullName: c.FullName,
		Email:    strings.ToLower(strings.TrimSpace(c.Email)),
		Location: c.Location,
		Review:   c.Review,
		Rating:   rating,
		Status:   model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  createdBy,
			ModifiedBy: createdBy,
		},
	}
}

// UpdateReviewRequest deliberately allows status and is_approved to be set
// independently; only the approve/reject transitions keep them in lockstep.
type UpdateReviewRequest struct {
	FullName   string `db:"full_name"   json:"full_name"   validate:"omitempty,min=2,max=100"`
	Email      string `db:"email"       json:"email"       validate:"omitempty,email,max=100"`
	Location   string `db:"location"    json:"location"    validate:"omitempty,min=2,max=100"`
	Review     string `db:"review"      json:"review"      validate:"omitempty,min=10,max=2000"`
	Rating     int    `db:"rating"      json:"rating"      validate:"omitempty,min=1,max=5"`
	Status     string `db:"status"      json:"status"      validate:"omitempty,oneof=pending approved rejected"`
	IsApproved *bool  `db:"is_approved" json:"is_approved" validate:"omitempty"`
}

// ModerationUpdate is the write applied by approve and reject; both fields
// always move together.
type ModerationUpdate struct {
	Status     string `db:"status"`
	IsApproved *bool  `db:"is_approved"`
}

type ReviewResponse struct {
	ID         string `json:"id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Location   string `json:"location"`
	Review     string `json:"review"`
	Rating     int    `json:"rating"`
	Status     string `json:"status"`
	IsApproved bool   `json:"is_approved"`
	gDto.Metadata
}

func (r *ReviewResponse) FromModel(review model.Review) {
	r.ID = review.ID
	r.FullName = review.FullName
	r.Email = review.Email
	r.Location = review.Location
	r.Review = review.Review
	r.Rating = review.Rating
	r.Status = review.Status
	r.IsApproved = review.IsApproved
	r.Metadata.FromModel(review.Metadata)
}

type GetReviewsResponse struct {
	Items      []ReviewResponse `json:"items"`
	Pagination gDto.Pagination  `json:"pagination"`
}

func (r *GetReviewsResponse) FromModels(models []model.Review, params gDto.QueryParams, total int) {
	r.Items = make([]ReviewResponse, len(models))
	for i, mod := range models {
		r.Items[i].FromModel(mod)
	}

	r.Pagination = gDto.NewPagination(params, total, shared.CalculateTotalPage(total, params.Limit))
}

type ReviewStatisticsResponse struct {
	Total    int            `json:"total"`
	Approved int            `json:"approved"`
	Pending  int            `json:"pending"`
	ByStatus map[string]int `json:"by_status"`
}

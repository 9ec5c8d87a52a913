package model

import (
	"homestay/shared/model"
)

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID         = "id"
	FieldFullName   = "full_name"
	FieldEmail      = "email"
	FieldLocation   = "location"
	FieldReview     = "review"
	FieldRating     = "rating"
	FieldStatus     = "status"
	FieldIsApproved = "is_approved"

	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

var Statuses = []string{StatusPending, StatusApproved, StatusRejected}

// Review keeps a status string and an approved flag side by side; the
// approve/reject transitions always write both so public listings can
// require them to agree.
type Review struct {
	ID         string `db:"id"`
	FullName   string `db:"full_name"`
	Email      string `db:"email"`
	Location   string `db:"location"`
	Review     string `db:"review"`
	Rating     int    `db:"rating"`
	Status     string `db:"status"`
	IsApproved bool   `db:"is_approved"`
	model.Metadata
}

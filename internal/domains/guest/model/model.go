package model

import (
	"time"

	"homestay/shared/model"
)

const (
	TableName  = "guests"
	EntityName = "guest"

	FieldID                = "id"
	FieldFullName          = "full_name"
	FieldEmail             = "email"
	FieldPhone             = "phone"
	FieldAddress           = "address"
	FieldVisitDate         = "visit_date"
	FieldAccommodationType = "accommodation_type"
	FieldStatus            = "status"
	FieldNotes             = "notes"

	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusCompleted = "completed"
)

// Statuses lists every guest status, for grouped statistics.
var Statuses = []string{StatusActive, StatusInactive, StatusCompleted}

type Guest struct {
	ID                string    `db:"id"`
	FullName          string    `db:"full_name"`
	Email             string    `db:"email"`
	Phone             string    `db:"phone"`
	Address           string    `db:"address"`
	VisitDate         time.Time `db:"visit_date"`
	AccommodationType string    `db:"accommodation_type"`
	Status            string    `db:"status"`
	Notes             string    `db:"notes"`
	model.Metadata
}

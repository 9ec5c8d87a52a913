package model

import (
	"homestay/shared/model"
)

const (
	TableName  = "contacts"
	EntityName = "contact"

	FieldID        = "id"
	FieldFullName  = "full_name"
	FieldEmail     = "email"
	FieldSubject   = "subject"
	FieldMessage   = "message"
	FieldStatus    = "status"
	FieldIsRead    = "is_read"
	FieldEmailSent = "email_sent"

	StatusNew     = "new"
	StatusRead    = "read"
	StatusReplied = "replied"
	StatusClosed  = "closed"
)

var Statuses = []string{StatusNew, StatusRead, StatusReplied, StatusClosed}

type Contact struct {
	ID        string `db:"id"`
	FullName  string `db:"full_name"`
	Email     string `db:"email"`
	Subject   string `db:"subject"`
	Message   string `db:"message"`
	Status    string `db:"status"`
	IsRead    bool   `db:"is_read"`
	EmailSent bool   `db:"email_sent"`
	model.Metadata
}

package dto

import (
	"strings"

	"homestay/infras/mailer"
	"homestay/internal/domains/contact/model"
	"homestay/shared"
	gDto "homestay/shared/dto"
	gModel "homestay/shared/model"
	"homestay/shared/timezone"

	"github.com/google/uuid"
)

type CreateContactRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Email    string `json:"email"     validate:"required,email,max=100"`
	Subject  string `json:"subject"   validate:"required,min=5,max=200"`
	Message  string `json:"message"   validate:"required,min=10,max=2000"`
}

func (c *CreateContactRequest) ToModel(createdBy string) model.Contact {
	return model.Contact{
		ID:       uuid.NewString(),
		FullName: c.FullName,
		Email:    strings.ToLower(strings.TrimSpace(c.Email)),
		Subject:  c.Subject,
		Message:  c.Message,
		Status:   model.StatusNew,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  createdBy,
			ModifiedBy: createdBy,
		},
	}
}

type UpdateContactRequest struct {
	FullName string `db:"full_name" json:"full_name" validate:"omitempty,min=2,max=100"`
	Email    string `db:"email"     json:"email"     validate:"omitempty,email,max=100"`
	Subject  string `db:"subject"   json:"subject"   validate:"omitempty,min=5,max=200"`
	Message  string `db:"message"   json:"message"   validate:"omitempty,min=10,max=2000"`
	Status   string `db:"status"    json:"status"    validate:"omitempty,oneof=new read replied closed"`
}

// ReadUpdate is the write applied by mark-as-read; the status and the flag
// always move together.
type ReadUpdate struct {
	Status string `db:"status"`
	IsRead bool   `db:"is_read"`
}

type EmailSentUpdate struct {
	EmailSent bool `db:"email_sent"`
}

type ContactResponse struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Status    string `json:"status"`
	IsRead    bool   `json:"is_read"`
	EmailSent bool   `json:"email_sent"`
	gDto.Metadata
}

func (r *ContactResponse) FromModel(contact model.Contact) {
	r.ID = contact.ID
	r.FullName = contact.FullName
	r.Email = contact.Email
	r.Subject = contact.Subject
	r.Message = contact.Message
	r.Status = contact.Status
	r.IsRead = contact.IsRead
	r.EmailSent = contact.EmailSent
	r.Metadata.FromModel(contact.Metadata)
}

type GetContactsResponse struct {
	Items      []ContactResponse `json:"items"`
	Pagination gDto.Pagination   `json:"pagination"`
}

func (r *GetContactsResponse) FromModels(models []model.Contact, params gDto.QueryParams, total int) {
	r.Items = make([]ContactResponse, len(models))
	for i, mod := range models {
		r.Items[i].FromModel(mod)
	}

	r.Pagination = gDto.NewPagination(params, total, shared.CalculateTotalPage(total, params.Limit))
}

type ContactStatisticsResponse struct {
	Total    int            `json:"total"`
	Unread   int            `json:"unread"`
	ByStatus map[string]int `json:"by_status"`
}

func ToEmailPayload(contact model.Contact) mailer.ContactEmail {
	return mailer.ContactEmail{
		FullName: contact.FullName,
		Email:    contact.Email,
		Subject:  contact.Subject,
		Message:  contact.Message,
	}
}

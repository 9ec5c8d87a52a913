package dto

import (
	"time"

	"homestay/internal/domains/admin/model"
)

type AdminResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (a *AdminResponse) FromModel(admin model.Admin) {
	a.ID = admin.ID
	a.Name = admin.Name
	a.Email = admin.Email
	a.Role = admin.Role
	a.LastLogin = admin.LastLogin
	a.CreatedAt = admin.CreatedAt
}

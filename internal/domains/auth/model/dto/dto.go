package dto

import (
	"strings"
	"time"

	"homestay/infras/jwt"
	adminDto "homestay/internal/domains/admin/model/dto"
	adminModel "homestay/internal/domains/admin/model"
	"homestay/shared/constant"
	gModel "homestay/shared/model"
	"homestay/shared/timezone"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// NormalizedEmail lower-cases the address so lookups stay case-insensitive.
func (r *RegisterRequest) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *RegisterRequest) ToAdminModel(hashedPassword string) adminModel.Admin {
	id := uuid.NewString()

	return adminModel.Admin{
		ID:       id,
		Name:     r.Name,
		Email:    r.NormalizedEmail(),
		Password: hashedPassword,
		Role:     constant.RoleAdmin,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  id,
			ModifiedBy: id,
		},
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (l *LoginRequest) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(l.Email))
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
}

type AuthResponse struct {
	Admin       adminDto.AdminResponse `json:"admin"`
	AccessToken string                 `json:"access_token"`
	TokenType   string                 `json:"token_type"`
	ExpiresIn   int64                  `json:"expires_in"`
}

func (a *AuthResponse) FromModel(admin adminModel.Admin, token *jwt.Token) {
	a.Admin.FromModel(admin)
	a.AccessToken = token.AccessToken
	a.TokenType = token.TokenType
	a.ExpiresIn = token.ExpiresIn
}

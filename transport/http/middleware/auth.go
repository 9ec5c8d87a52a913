package middleware

import (
	"context"
	"errors"
	"net/http"

	"homestay/infras/jwt"
	"homestay/infras/otel"
	adminModel "homestay/internal/domains/admin/model"
	adminRepository "homestay/internal/domains/admin/repository"
	"homestay/shared"
	"homestay/shared/constant"
	"homestay/shared/failure"
	"homestay/transport/http/response"

	"github.com/rs/zerolog/log"
)

// Auth gates admin-only routes and optionally attaches the admin identity
// to public routes that behave differently for authenticated callers.
type Auth interface {
	Auth(next http.Handler) http.Handler
	OptionalAuth(next http.Handler) http.Handler
}

type authImpl struct {
	jwtService jwt.JWT
	admins     adminRepository.Admin
	otel       otel.Otel
}

func NewAuthMiddleware(jwtService jwt.JWT, admins adminRepository.Admin, otel otel.Otel) Auth {
	return &authImpl{
		jwtService: jwtService,
		admins:     admins,
		otel:       otel,
	}
}

// Auth requires a valid bearer token bound to an existing administrator.
func (m *authImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")

		ctx, err := m.resolveIdentity(ctx, request)
		if err != nil {
			scope.TraceError(err)
			scope.End()

			response.WithError(writer, err)

			return
		}

		scope.End()

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// OptionalAuth attaches the admin identity when a valid token is present
// and continues anonymously otherwise.
func (m *authImpl) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.optional.middleware")

		if request.Header.Get(constant.RequestHeaderAuthorization) != "" {
			if resolved, err := m.resolveIdentity(ctx, request); err == nil {
				ctx = resolved
			}
		}

		scope.End()

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func (m *authImpl) resolveIdentity(ctx context.Context, request *http.Request) (context.Context, error) {
	authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
	if authHeader == "" {
		return ctx, failure.Unauthorized("missing authorization header") // nolint:wrapcheck
	}

	tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
	if err != nil {
		return ctx, failure.Unauthorized("invalid authorization header format") // nolint:wrapcheck
	}

	claims, err := m.jwtService.Validate(tokenString)
	if err != nil {
		var message string

		switch {
		case errors.Is(err, jwt.ErrExpiredToken):
			message = "token has expired"
		case errors.Is(err, jwt.ErrInvalidClaim):
			message = "invalid token claims"
		default:
			message = "invalid token"
		}

		return ctx, failure.Unauthorized(message) // nolint:wrapcheck
	}

	if claims.AdminID == "" || claims.Email == "" {
		return ctx, failure.Unauthorized("invalid token claims") // nolint:wrapcheck
	}

	// A token outliving its admin account is useless.
	admin, err := m.admins.Get(ctx, shared.FilterByID(claims.AdminID, adminModel.FieldID, adminModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve admin from token")

		return ctx, failure.Unauthorized("failed to verify token identity") // nolint:wrapcheck
	}

	if admin.ID == constant.Empty {
		return ctx, failure.Unauthorized("admin account no longer exists") // nolint:wrapcheck
	}

	ctx = context.WithValue(ctx, constant.ContextKeyAdminID, admin.ID)
	ctx = context.WithValue(ctx, constant.ContextKeyAdminEmail, admin.Email)
	ctx = context.WithValue(ctx, constant.ContextKeyAdminRole, admin.Role)
	ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)

	return ctx, nil
}

package auth

import (
	"net/http"

	"homestay/infras/otel"
	"homestay/internal/domains/auth/model/dto"
	"homestay/internal/domains/auth/service"
	"homestay/shared/constant"
	"homestay/shared/failure"
	"homestay/shared/validator"
	"homestay/transport/http/middleware"
	"homestay/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
	auth    middleware.Auth
	app     middleware.AppMiddleware
}

func New(service service.Auth, otel otel.Otel, auth middleware.Auth, app middleware.AppMiddleware) Handler {
	return Handler{
		service: service,
		otel:    otel,
		auth:    auth,
		app:     app,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/admin", func(routerGroup chi.Router) {
		routerGroup.With(handler.app.RateLimit()).Post("/register", handler.Register)
		routerGroup.With(handler.app.RateLimit()).Post("/login", handler.Login)
		routerGroup.With(handler.auth.Auth).Get("/profile", handler.Profile)
	})
}

// Register creates a new administrator account.
// @Summary Register an administrator
// @Description Register a new administrator and return a session token.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Register Request"
// @Success 201 {object} response.Body "Admin registered successfully"
// @Failure 400 {object} response.Body
// @Failure 500 {object} response.Body
// @Router /v1/admin/register [post]
func (handler *Handler) Register(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Register")
	defer scope.End()

	req := dto.RegisterRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Register(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to register admin")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Admin registered successfully")

	response.WithJSON(writer, http.StatusCreated, "Admin registered successfully", res)
}

// Login authenticates an administrator.
// @Summary Log in
// @Description Authenticate an administrator and return a session token.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Body "Login successful"
// @Failure 400 {object} response.Body
// @Failure 401 {object} response.Body
// @Failure 500 {object} response.Body
// @Router /v1/admin/login [post]
func (handler *Handler) Login(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	req := dto.LoginRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to login admin")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Admin logged in successfully")

	response.WithJSON(writer, http.StatusOK, "Login successful", res)
}

// Profile returns the authenticated administrator profile.
// @Summary Get admin profile
// @Description Retrieve the profile of the currently authenticated administrator.
// @Tags Admin
// @Accept json
// @Produce json
// @Success 200 {object} response.Body "Admin profile"
// @Failure 401 {object} response.Body
// @Failure 404 {object} response.Body
// @Failure 500 {object} response.Body
// @Router /v1/admin/profile [get]
// @Security BearerAuth
func (handler *Handler) Profile(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Profile")
	defer scope.End()

	adminID, ok := ctx.Value(constant.ContextKeyAdminID).(string)
	if !ok || adminID == "" {
		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Profile(ctx, adminID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get admin profile")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Admin profile retrieved successfully")

	response.WithJSON(writer, http.StatusOK, "Admin profile retrieved successfully", res)
}

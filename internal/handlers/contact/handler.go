package contact

import (
	"net/http"

	"homestay/infras/otel"
	"homestay/internal/domains/contact/model"
	"homestay/internal/domains/contact/model/dto"
	"homestay/internal/domains/contact/service"
	"homestay/shared/constant"
	gDto "homestay/shared/dto"
	"homestay/shared/failure"
	"homestay/shared/validator"
	"homestay/transport/http/middleware"
	"homestay/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Contact
	otel    otel.Otel
	auth    middleware.Auth
}

func New(service service.Contact, otel otel.Otel, auth middleware.Auth) Handler {
	return Handler{
		service: service,
		otel:    otel,
		auth:    auth,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/contacts", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateContact)

		routerGroup.Group(func(adminGroup chi.Router) {
			adminGroup.Use(handler.auth.Auth)
			adminGroup.Get("/", handler.GetContacts)
			adminGroup.Get("/statistics", handler.GetStatistics)
			adminGroup.Get("/{id}", handler.GetContactByID)
			adminGroup.Put("/{id}", handler.UpdateContact)
			adminGroup.Patch("/{id}/read", handler.MarkContactAsRead)
			adminGroup.Delete("/{id}", handler.DeleteContact)
		})
	})
}

// CreateContact submits a contact message.
// @Summary Submit a contact message
// @Description Submit a contact message; a confirmation email is sent to the sender.
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body dto.CreateContactRequest true "Create Contact Request"
// @Success 201 {object} response.Body "Contact message submitted successfully"
// @Failure 400 {object} response.Body
// @Failure 500 {object} response.Body
// @Router /v1/contacts [post]
func (handler *Handler) CreateContact(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateContact")
	defer scope.End()

	req := dto.CreateContactRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create contact")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Contact message submitted successfully")

	response.WithJSON(writer, http.StatusCreated, "Contact message submitted successfully", res)
}

// GetContacts retrieves all contact messages based on query parameters.
// @Summary Get all contact messages
// @Description Retrieve all contact messages with optional filtering and pagination.
// @Tags Contact
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (new, read, replied, closed)"
// @Success 200 {object} response.Body "List of contact messages"
// @Failure 400 {object} response.Body
// @Failure 500 {object} response.Body
// @Router /v1/contacts [get]
// @Security BearerAuth
func (handler *Handler) GetContacts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContacts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	status := r.URL.Query().Get(constant.RequestParamStatus)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	contacts, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contacts")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Contacts retrieved successfully")

	response.WithJSON(w, http.StatusOK, "Contacts retrieved successfully", contacts)
}

// GetStatistics summarizes contact messages by status.
// @Summary Get contact statistics
// @Description Retrieve contact message counts by status, including unread.
// @Tags Contact
// @Accept json
// @Produce json
// @Success 200 {object} response.Body "Contact statistics"
// @Failure 500 {object} response.Body
// @Router /v1/contacts/statistics [get]
// @Security BearerAuth
func (handler *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStatistics")
	defer scope.End()

	stats, err := handler.service.Statistics(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contact statistics")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Contact statistics retrieved successfully")

	response.WithJSON(w, http.StatusOK, "Contact statistics retrieved successfully", stats)
}

// GetContactByID retrieves a contact message by its ID.
// @Summary Get a contact message by ID
// @Description Retrieve a contact message by its unique identifier.
// @Tags Contact
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} response.Body "Contact details"
// @Failure 400 {object} response.Body
// @Failure 404 {object} response.Body
// @Failure 500 {object} response.Body
// @Router /v1/contacts/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetContactByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContactByID")
	defer scope.End()

	id, err := contactID(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	contact, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get contact by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Contact retrieved successfully")

	response.WithJSON(w, http.StatusOK, "Contact retrieved successfully", contact)
}

// UpdateContact updates an existing contact message by its ID.
// @Summary Update a contact message by ID
// @Description Update the details of an existing contact message.
// @Tags Contact
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Param request body dto.UpdateContactRequest true "Update Contact Request"
// @Success 200 {object} response.Body "Contact updated successfully"
// @Failure 400 {object} response.Body
// @Failure 404 {object} response.Body
// @Failure 500 {object} response.Body
// @Router /v1/contacts/{id} [put]
// @Security BearerAuth
func (handler *Handler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateContact")
	defer scope.End()

	id, err := contactID(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	req := dto.UpdateContactRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	contact, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update contact")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Contact updated successfully")

	response.WithJSON(w, http.StatusOK, "Contact updated successfully", contact)
}

// MarkContactAsRead marks a contact message as read.
// @Summary Mark a contact message as read
// @Description Set the contact message status to read.
// @Tags Contact
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} response.Body "Contact marked as read"
// @Failure 400 {object} response.Body
// @Failure 404 {object} response.Body
// @Failure 500 {object} response.Body
// @Router /v1/contacts/{id}/read [patch]
// @Security BearerAuth
func (handler *Handler) MarkContactAsRead(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkContactAsRead")
	defer scope.End()

	id, err := contactID(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	contact, err := handler.service.MarkAsRead(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to mark contact as read")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Contact marked as read")

	response.WithJSON(w, http.StatusOK, "Contact marked as read", contact)
}

// DeleteContact deletes a contact message by its ID.
// @Summary Delete a contact message by ID
// @Description Delete a contact message using its unique identifier.
// @Tags Contact
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} response.Body "Contact deleted successfully"
// @Failure 400 {object} response.Body
// @Failure 404 {object} response.Body
// @Failure 500 {object} response.Body
// @Router /v1/contacts/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteContact")
	defer scope.End()

	id, err := contactID(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete contact")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Contact deleted successfully")

	response.WithMessage(w, http.StatusOK, "Contact deleted successfully")
}

func contactID(r *http.Request) (string, error) {
	id := chi.URLParam(r, constant.RequestParamID)

	if err := validator.ValidateVar(id, "uuid4"); err != nil {
		return "", failure.BadRequestFromString("invalid contact ID") // nolint:wrapcheck
	}

	return id, nil
}

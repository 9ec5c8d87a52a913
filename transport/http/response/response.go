package response

import (
	"encoding/json"
	"net/http"

	"homestay/config"
	"homestay/shared/constant"
	"homestay/shared/failure"
	"homestay/shared/logger"
)

// Body is the envelope every endpoint responds with.
type Body struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// WithMessage sends a success response carrying only a message.
func WithMessage(writer http.ResponseWriter, code int, message string) {
	respond(writer, code, Body{Success: true, Message: message})
}

// WithJSON sends a success response carrying a message and a payload.
func WithJSON(writer http.ResponseWriter, code int, message string, payload any) {
	respond(writer, code, Body{Success: true, Message: message, Data: payload})
}

// WithError translates a failure into its HTTP status code. Internal error
// detail is only exposed in the development environment.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	message := err.Error()

	if code == http.StatusInternalServerError && config.Get().Server.Env != constant.ServerEnvDevelopment {
		message = "internal server error"
	}

	respond(writer, code, Body{Success: false, Message: message, Errors: failure.GetFields(err)})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	respond(writer, http.StatusTooManyRequests, Body{Success: false, Message: constant.ResponseErrorRequestLimitExceeded})
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	respond(writer, http.StatusServiceUnavailable, Body{Success: false, Message: constant.ResponseErrorPrepareShutdown})
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	respond(writer, http.StatusServiceUnavailable, Body{Success: false, Message: constant.ResponseErrorUnhealthy})
}

func respond(writer http.ResponseWriter, code int, payload Body) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}

package errors

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"retailpulse/internal/infrastructure"
)

// ErrorHandler provides centralized error handling for HTTP handlers: every
// error is logged with request context, converted to an APIError and rendered
// as the standard error envelope.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger.With(slog.String("component", "error_handler")),
	}
}

// HandleError converts any error to an APIError and responds with it.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	apiErr := toAPIError(err)

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("error_code", apiErr.ErrorCode),
		slog.Int("status", apiErr.StatusCode),
		slog.String("request_id", infrastructure.GetTraceID(r.Context())),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	render.Status(r, apiErr.StatusCode)
	render.JSON(w, r, NewErrorResponse(apiErr))
}

// toAPIError maps an arbitrary error onto the API error taxonomy. APIErrors
// pass through untouched (including anything wrapping one); everything else
// is an internal server error with the cause in the details.
func toAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return NewWithDetails(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR",
		"Internal server error", err.Error())
}

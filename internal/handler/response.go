package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sumire/bugs/internal/domain"
)

// APIError is the body of every error response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DeleteResponse confirms a deletion.
type DeleteResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// HTTPErrorHandler is the global error handler for echo.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, apiErr := mapError(err)
	if status >= http.StatusInternalServerError {
		attrs := []any{
			"error", err,
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
		}
		var storeErr *domain.StoreError
		if errors.As(err, &storeErr) {
			attrs = append(attrs, "op", storeErr.Op)
		}
		slog.ErrorContext(c.Request().Context(), "request failed", attrs...)
	}
	if jsonErr := c.JSON(status, apiErr); jsonErr != nil {
		slog.Error("failed to send error response", "error", jsonErr)
	}
}

func mapError(err error) (int, APIError) {
	// Handle echo's own HTTP errors (404, 405, 415, etc.)
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		msg, _ := echoErr.Message.(string)
		if msg == "" {
			msg = http.StatusText(echoErr.Code)
		}
		return echoErr.Code, APIError{
			Code:    http.StatusText(echoErr.Code),
			Message: msg,
		}
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, APIError{
			Code:    "validation_error",
			Message: validationErr.Message,
		}
	}

	var storeErr *domain.StoreError
	if errors.As(err, &storeErr) {
		return http.StatusInternalServerError, APIError{
			Code:    "store_error",
			Message: storeErr.Error(),
		}
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, APIError{
			Code:    "not_found",
			Message: "Bug not found",
		}
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, APIError{
			Code:    "invalid_input",
			Message: "The request body is invalid",
		}
	default:
		return http.StatusInternalServerError, APIError{
			Code:    "internal_error",
			Message: "An unexpected error occurred",
		}
	}
}

package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/sumire/bugs/internal/domain"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{
			name:    "validation",
			err:     &domain.ValidationError{Field: "Title", Message: "Title is required"},
			status:  http.StatusBadRequest,
			code:    "validation_error",
			message: "Title is required",
		},
		{
			name:    "wrapped not found",
			err:     fmt.Errorf("find bug: %w", domain.ErrNotFound),
			status:  http.StatusNotFound,
			code:    "not_found",
			message: "Bug not found",
		},
		{
			name:    "invalid input",
			err:     fmt.Errorf("%w: unexpected EOF", domain.ErrInvalidInput),
			status:  http.StatusBadRequest,
			code:    "invalid_input",
			message: "The request body is invalid",
		},
		{
			name:    "store error passes message through",
			err:     &domain.StoreError{Op: "list bugs", Err: errors.New("connection refused")},
			status:  http.StatusInternalServerError,
			code:    "store_error",
			message: "connection refused",
		},
		{
			name:    "echo http error",
			err:     echo.NewHTTPError(http.StatusTooManyRequests, "slow down"),
			status:  http.StatusTooManyRequests,
			code:    "Too Many Requests",
			message: "slow down",
		},
		{
			name:    "unknown",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			code:    "internal_error",
			message: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, apiErr := mapError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, apiErr.Code)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

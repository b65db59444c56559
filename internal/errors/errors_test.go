package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperror "gorecipes/internal/errors"
)

func TestMapToHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		category string
	}{
		{"validation", apperror.NewValidationError("bad"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"not found", apperror.NewNotFoundError("x"), http.StatusNotFound, "NOT_FOUND"},
		{"unauthorized", apperror.NewUnauthorizedError("login"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"api 404", apperror.NewHTTPError(404, nil, "HTTP error 404"), http.StatusNotFound, "API_ERROR"},
		{"network", apperror.NewNetworkError("down", errors.New("refused")), http.StatusBadGateway, "NETWORK_ERROR"},
		{"wrapped", fmt.Errorf("ctx: %w", apperror.NewValidationError("bad")), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"plain", errors.New("boom"), http.StatusInternalServerError, "UNKNOWN_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, category, _ := apperror.MapToHTTPStatus(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.category, category)
		})
	}
}

func TestAuthError_UnwrapsHTTPError(t *testing.T) {
	httpErr := apperror.NewHTTPError(401, []byte(`{"message":"Invalid credentials"}`), "Invalid credentials")
	err := apperror.NewAuthError(httpErr)

	assert.Equal(t, "Invalid credentials", err.Error())
	assert.Equal(t, 401, apperror.StatusOf(err))

	var target *apperror.HTTPError
	assert.True(t, errors.As(err, &target))
}

func TestStatusOf_NonHTTP(t *testing.T) {
	assert.Equal(t, 0, apperror.StatusOf(errors.New("x")))
}

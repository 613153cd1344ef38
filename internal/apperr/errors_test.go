package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"not found", NotFound("transaction not found"), http.StatusNotFound},
		{"validation", Validation("invalid date"), http.StatusBadRequest},
		{"unprocessable", Unprocessable("coupon has expired"), http.StatusUnprocessableEntity},
		{"conflict", Conflict("coupon already exists"), http.StatusConflict},
		{"wrapped", fmt.Errorf("creating transaction: %w", NotFound("x")), http.StatusNotFound},
		{"infrastructure", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestError_Messages(t *testing.T) {
	// Arrange
	err := Validation("name is required", "price must be a number")

	// Act
	wrapped := fmt.Errorf("create product: %w", err)

	// Assert
	assert.Equal(t, "name is required; price must be a number", err.Error())
	assert.Equal(t, []string{"name is required", "price must be a number"}, Messages(wrapped))
	assert.True(t, IsValidation(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.Nil(t, Messages(errors.New("boom")))
}

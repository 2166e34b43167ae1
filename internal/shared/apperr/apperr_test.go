package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("create venue: %w", Invalid("venue", "name", "must not be blank"))

	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrNotFound))

	var vErr *ValidationError
	if assert.True(t, errors.As(err, &vErr)) {
		assert.Equal(t, "name", vErr.Field)
	}
	assert.Equal(t, "create venue: venue.name: must not be blank", err.Error())
}

func TestOccupiedIsAlsoValidation(t *testing.T) {
	err := fmt.Errorf("delete layout: %w", Occupied("layout", 4, 2))

	assert.True(t, errors.Is(err, ErrOccupied))
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "delete layout: layout 4 has 2 occupied event seat(s)", err.Error())
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", Invalid("seat", "row", "must be positive"), http.StatusBadRequest},
		{"not found", NotFound("event", 7), http.StatusNotFound},
		{"occupied", Occupied("layout", 1, 2), http.StatusConflict},
		{"conflict", Conflict("area", 3), http.StatusConflict},
		{"seat unavailable", ErrSeatUnavailable, http.StatusConflict},
		{"insufficient funds", ErrInsufficientFunds, http.StatusPaymentRequired},
		{"inconsistent", ErrInconsistentState, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

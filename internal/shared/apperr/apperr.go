// Package apperr holds the error taxonomy shared by every service. Handlers
// branch on these values with errors.Is / errors.As and translate them into
// HTTP status codes through HTTPStatus.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrOccupied is returned when a delete is blocked by an occupied event seat.
	ErrOccupied = errors.New("occupied seats block this operation")
	// ErrConflict is returned when a row changed since the caller read it.
	ErrConflict = errors.New("conflict")
	ErrNotFound = errors.New("not found")
	// ErrSeatUnavailable is returned by a purchase on a seat that is not free.
	ErrSeatUnavailable   = errors.New("seat unavailable")
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInconsistentState signals a ticket/seat pair that violates the
	// occupancy invariant. It is an internal error, never a caller error.
	ErrInconsistentState = errors.New("inconsistent ticket state")
)

// ValidationError describes a caller-fixable input problem.
type ValidationError struct {
	Entity string `json:"entity"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Entity, e.Reason)
	}
	return fmt.Sprintf("%s.%s: %s", e.Entity, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid builds a ValidationError.
func Invalid(entity, field, reason string) error {
	return &ValidationError{Entity: entity, Field: field, Reason: reason}
}

// NotFound wraps ErrNotFound with the entity and id that was looked up.
func NotFound(entity string, id int64) error {
	return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
}

// OccupiedError reports a delete blocked by occupied event seats. It is a
// validation failure too: the caller can retry once the tickets are gone.
type OccupiedError struct {
	Entity string
	ID     int64
	Seats  int
}

func (e *OccupiedError) Error() string {
	return fmt.Sprintf("%s %d has %d occupied event seat(s)", e.Entity, e.ID, e.Seats)
}

func (e *OccupiedError) Is(target error) bool {
	return target == ErrOccupied || target == ErrValidation
}

// Occupied builds an OccupiedError for the node whose deletion was blocked.
func Occupied(entity string, id int64, seats int) error {
	return &OccupiedError{Entity: entity, ID: id, Seats: seats}
}

// Conflict wraps ErrConflict for an optimistic concurrency failure.
func Conflict(entity string, id int64) error {
	return fmt.Errorf("%s %d was modified concurrently: %w", entity, id, ErrConflict)
}

// HTTPStatus maps an error from the service layer to a response code.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrOccupied):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict),
		errors.Is(err, ErrSeatUnavailable):
		return http.StatusConflict
	case errors.Is(err, ErrInsufficientFunds):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

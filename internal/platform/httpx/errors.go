package httpx

import (
	"errors"
	"net/http"
)

// Sentinel errors shared by the domain layer.
var (
	// ErrValidation marks a missing or malformed field caught before any store call.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a request or approval id that does not resolve to a record.
	ErrNotFound = errors.New("resource not found")
	// ErrPrecondition marks an action attempted while its gating condition is false.
	ErrPrecondition = errors.New("precondition failed")
	// ErrDuplicate marks a uniqueness conflict reported by the store.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrForbidden marks an action the current session may not perform.
	ErrForbidden = errors.New("forbidden")
)

// RespondError maps domain errors to HTTP responses using RFC7807.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrPrecondition):
		Problem(w, http.StatusConflict, "Precondition Failed", err.Error())
	case errors.Is(err, ErrDuplicate):
		Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, ErrForbidden):
		Problem(w, http.StatusForbidden, "Forbidden", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

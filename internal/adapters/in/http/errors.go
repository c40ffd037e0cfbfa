package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// statusFromError maps domain and application errors to HTTP status codes.
// Validation problems are the client's fault; state machine violations and
// lost assignment races are conflicts with current server state.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, driver.ErrDriverUnavailable),
		errors.Is(err, errs.ErrObjectUnavailable),
		errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, order.ErrFareMismatch),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

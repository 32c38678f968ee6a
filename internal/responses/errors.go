package responses

import (
	"errors"
	"net/http"

	"backoffice/internal/services"
	"backoffice/internal/store"
)

// StatusFor maps service and store errors onto HTTP statuses.
func StatusFor(err error) int {
	var (
		validation *services.ValidationError
		duplicate  *services.DuplicateError
		confirm    *services.ConfirmationRequiredError
		transport  *store.TransportError
		remote     *store.RemoteError
	)

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &duplicate):
		return http.StatusConflict
	case errors.As(err, &confirm):
		return http.StatusPreconditionRequired
	case errors.Is(err, services.ErrEmptyExport),
		errors.Is(err, services.ErrItemNotFound),
		errors.Is(err, services.ErrTableNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken),
		errors.Is(err, services.ErrTokenRevoked):
		return http.StatusUnauthorized
	case errors.As(err, &transport), errors.As(err, &remote):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

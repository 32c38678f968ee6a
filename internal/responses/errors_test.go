package responses

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"backoffice/internal/services"
	"backoffice/internal/store"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&services.ValidationError{Field: "price"}, http.StatusBadRequest},
		{&services.DuplicateError{Field: "table", Key: "1"}, http.StatusConflict},
		{&services.ConfirmationRequiredError{Prompt: "sure?"}, http.StatusPreconditionRequired},
		{services.ErrEmptyExport, http.StatusNotFound},
		{services.ErrTableNotFound, http.StatusNotFound},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{fmt.Errorf("%w: token is expired", services.ErrInvalidToken), http.StatusUnauthorized},
		{services.ErrTokenRevoked, http.StatusUnauthorized},
		{fmt.Errorf("failed to check token: %w", errors.New("dial tcp: connection refused")), http.StatusInternalServerError},
		{fmt.Errorf("failed to load tables: %w", &store.TransportError{Op: "select", Err: context.DeadlineExceeded}), http.StatusBadGateway},
		{fmt.Errorf("failed to add item: %w", &store.RemoteError{Op: "insert", Status: 400}), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}

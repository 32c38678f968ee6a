package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"backoffice/internal/responses"
	"backoffice/internal/services"
)

// fail writes err with its mapped status. A pending confirmation carries the
// prompt in data so the client can ask and retry with confirm=true.
func fail(c *gin.Context, err error, message string) {
	_ = c.Error(err)

	var confirm *services.ConfirmationRequiredError
	if errors.As(err, &confirm) {
		responses.JSON(c, http.StatusPreconditionRequired, responses.StatusError, gin.H{"prompt": confirm.Prompt}, message, err)
		return
	}
	responses.Fail(c, responses.StatusFor(err), err, message)
}

package responses

import (
	"mime"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope every JSON endpoint answers with.
type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

func JSON(c *gin.Context, statusCode int, status string, data any, message string, err error) {
	resp := APIResponse{
		Status:  status,
		Message: message,
		Data:    data,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(statusCode, resp)
}

func Success(c *gin.Context, statusCode int, data any, message string) {
	JSON(c, statusCode, StatusSuccess, data, message, nil)
}

func Fail(c *gin.Context, statusCode int, err error, message string) {
	JSON(c, statusCode, StatusError, nil, message, err)
}

// Attachment sends a generated file for download.
func Attachment(c *gin.Context, statusCode int, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	c.Data(statusCode, contentType, data)
}

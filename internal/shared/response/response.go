package response

import (
	"github.com/gin-gonic/gin"
)

type ErrorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func Success(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// Message writes {"message": msg} plus one optional named payload, e.g.
// {"message": "...", "leave": {...}}.
func Message(c *gin.Context, status int, msg string, key string, data any) {
	body := gin.H{"message": msg}
	if key != "" {
		body[key] = data
	}
	c.JSON(status, body)
}

func Error(c *gin.Context, status int, errorCode string, message string, details any) {
	c.JSON(status, ErrorBody{
		Error:   message,
		Code:    errorCode,
		Details: details,
	})
}

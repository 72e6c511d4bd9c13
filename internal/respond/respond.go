// Package respond defines the single JSON envelope every handler returns, so
// clients never see ad-hoc response shapes.
package respond

import "github.com/gin-gonic/gin"

// Envelope is the success shape: a human message plus the payload.
type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorBody is the failure shape. Detail is optional and safe to show to
// clients (never raw internal errors).
type ErrorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// OK writes a success envelope with the given status.
func OK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Message: message, Data: data})
}

// Error writes a failure envelope with the given status.
func Error(c *gin.Context, status int, code string, detail string) {
	c.JSON(status, ErrorBody{Error: code, Detail: detail})
}

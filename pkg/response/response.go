package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/portal-api/pkg/errors"
)

// ErrorBody is the contract for every non-2xx response.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// MessageBody accompanies mutations that have nothing else to return.
type MessageBody struct {
	Message string `json:"message"`
}

var redactInternal bool

// RedactInternalErrors hides 500 messages from clients (enabled in production).
func RedactInternalErrors(enabled bool) {
	redactInternal = enabled
}

// JSON sends the payload as-is.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Message responds with 200 and a {"message": ...} body.
func Message(c *gin.Context, message string) {
	JSON(c, http.StatusOK, MessageBody{Message: message})
}

// Error converts err to the common error structure and writes it.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	message := appErr.Message
	if appErr.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
		if redactInternal {
			message = appErrors.ErrInternal.Message
		}
	}
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, ErrorBody{Error: message, Code: appErr.Code})
}

// Abort writes the error and stops the handler chain.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

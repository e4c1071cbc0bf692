package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// FromBusiness maps a domain error onto the HTTP status its kind implies.
func FromBusiness(c *gin.Context, err error, fallbackMessage string) {
	code, ok := BusinessCode(err)
	if !ok {
		Internal(c, "internal_error", fallbackMessage)
		return
	}

	msg := err.Error()

	switch code {
	case CodeValidation:
		BadRequest(c, code, msg)
	case CodeInvalidTransition:
		BadRequest(c, code, msg)
	case CodeConflict:
		Conflict(c, code, msg)
	case CodeOwnerConflict:
		Forbidden(c, code, msg)
	case CodeNotFound:
		NotFound(c, code, msg)
	default:
		BadRequest(c, code, msg)
	}
}

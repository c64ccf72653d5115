package httperr

import (
	"errors"
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

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func TooManyRequests(c *gin.Context, code, message string) {
	Write(c, http.StatusTooManyRequests, code, message)
}

// StatusFor maps a taxonomy code to its HTTP status.
func StatusFor(code string) int {
	switch code {
	case CodeAreaNotFound, CodeBookingNotFound:
		return http.StatusNotFound
	case CodeDuplicatePhone:
		return http.StatusConflict
	case CodeStoreUnavailable:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// Respond writes any error produced by a use case. Anything outside the
// taxonomy is answered as a generic internal error.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		Internal(c, CodeStoreUnavailable, MessageFor(CodeStoreUnavailable))
		return
	}

	msg := be.Message
	if msg == "" || be.Code == CodeStoreUnavailable {
		msg = MessageFor(be.Code)
	}
	Write(c, StatusFor(be.Code), be.Code, msg)
}

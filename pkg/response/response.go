package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgLog "skill-registry/pkg/log"
)

// Common error codes.
const (
	CodeBadRequest      = "BAD_REQUEST"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeRateLimited     = "RATE_LIMITED"
	CodeInternal        = "INTERNAL_ERROR"
	DefaultErrorMessage = "Something went wrong"
)

func meta(c *gin.Context) Meta {
	m := Meta{Version: Version}
	if c.Request != nil {
		m.RequestID = pkgLog.RequestIDFromContext(c.Request.Context())
	}
	return m
}

// NewOKResp returns a success body with the given data.
func NewOKResp(c *gin.Context, data any) Resp {
	return Resp{
		Success: true,
		Data:    data,
		Meta:    meta(c),
	}
}

// NewErrorResp returns a failure body.
func NewErrorResp(c *gin.Context, code, message string) Resp {
	return Resp{
		Success: false,
		Error:   &ErrorBody{Code: code, Message: message},
		Meta:    meta(c),
	}
}

// OK sends 200 JSON with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, NewOKResp(c, data))
}

// Error sends a failure envelope with the given status.
func Error(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, NewErrorResp(c, code, message))
}

// BadRequest sends 400.
func BadRequest(c *gin.Context, code, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// Unauthorized sends 401.
func Unauthorized(c *gin.Context, code, message string) {
	Error(c, http.StatusUnauthorized, code, message)
}

// Forbidden sends 403.
func Forbidden(c *gin.Context, code, message string) {
	Error(c, http.StatusForbidden, code, message)
}

// NotFound sends 404.
func NotFound(c *gin.Context, code, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// TooManyRequests sends 429.
func TooManyRequests(c *gin.Context) {
	Error(c, http.StatusTooManyRequests, CodeRateLimited, "Rate limit exceeded")
}

// InternalError sends 500 without leaking err.
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CodeInternal, DefaultErrorMessage)
}

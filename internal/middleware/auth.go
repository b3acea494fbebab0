package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"skill-registry/pkg/response"
)

// HeaderAPIKey is the admin credential header.
const HeaderAPIKey = "X-API-Key"

// Auth guards admin routes with a static API key.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.apiKey == "" {
			c.Next()
			return
		}

		key := c.GetHeader(HeaderAPIKey)
		if key == "" {
			response.Unauthorized(c, response.CodeUnauthorized, HeaderAPIKey+" header required")
			return
		}
		if subtle.ConstantTimeCompare([]byte(key), []byte(m.apiKey)) != 1 {
			m.l.Warnf(c.Request.Context(), "middleware.Auth: invalid API key from %s", c.ClientIP())
			response.Unauthorized(c, response.CodeUnauthorized, "Invalid API key")
			return
		}
		c.Next()
	}
}

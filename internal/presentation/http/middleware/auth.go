package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/aiqso/odoo-bridge/internal/presentation/http/dto/response"
)

// WebhookAuthMiddleware guards the mutating endpoints with a shared token.
// The automation platform sends it in X-Webhook-Token. An empty configured
// token disables the check, which is only acceptable in development.
func WebhookAuthMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		provided := c.GetHeader("X-Webhook-Token")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			response.Unauthorized(c, "Invalid or missing webhook token")
			c.Abort()
			return
		}
		c.Next()
	}
}

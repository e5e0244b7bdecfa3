package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"auction-house/internal/models"
	"auction-house/utils"
)

// Context keys set by the auth middleware.
const (
	ctxUsername = "username"
	ctxRole     = "role"
)

// RequestLoggerMiddleware logs incoming requests with timing
func RequestLoggerMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next() // process request

	utils.Info("HTTP Request", map[string]any{
		"method":  c.Request.Method,
		"path":    c.Request.URL.Path,
		"status":  c.Writer.Status(),
		"latency": time.Since(start).String(),
	})
}

// AuthRequired rejects requests without a valid bearer token and stores the
// caller's username and role on the request context.
func AuthRequired(tokens *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  http.StatusUnauthorized,
				"message": "missing bearer token",
			})
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			utils.Warn("rejected request with invalid token", map[string]any{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  http.StatusUnauthorized,
				"message": "invalid or expired token",
			})
			return
		}

		c.Set(ctxUsername, claims.Subject)
		c.Set(ctxRole, string(claims.Role))
		c.Next()
	}
}

// AdminRequired gates admin routes on the role claim. The engine re-checks
// the role tag on every privileged call, so a stale claim cannot elevate.
func AdminRequired(c *gin.Context) {
	if c.GetString(ctxRole) != string(models.RoleAdmin) {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"status":  http.StatusForbidden,
			"message": "admin role required",
		})
		return
	}
	c.Next()
}

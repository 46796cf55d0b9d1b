// Package middleware provides HTTP middleware components.
package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"tillpoint/pkg/logger"
)

// Recovery recovers from panics and converts them into 500 responses.
// Logs the stack trace but never exposes internal details to clients.
// The body is written here: ErrorHandler runs before the handler on
// the middleware chain's return path, so it has already unwound by the
// time the panic is caught.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error(c.Request.Context(), "panic recovered",
					"error", err,
					"stack", string(debug.Stack()),
				)

				if !c.Writer.Written() {
					c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
						"status":  "fail",
						"message": "Internal server error",
					})
					return
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tillpoint/internal/core/apperror"
	"tillpoint/pkg/logger"
)

// ErrorHandler transforms errors into the API's fail envelope:
// {"status": "fail", "message": ...}. Internal causes are logged,
// never sent to clients.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		// Response already written by a handler; do not override it.
		if c.Writer.Written() {
			return
		}

		if appErr, ok := apperror.AsAppError(err); ok {
			if appErr.Err != nil {
				logger.Error(c.Request.Context(), "request error",
					"code", appErr.Code,
					"cause", appErr.Err,
				)
			}

			body := gin.H{
				"status":  "fail",
				"message": appErr.Message,
			}
			if len(appErr.Details) > 0 {
				body["details"] = appErr.Details
			}
			c.JSON(appErr.HTTPStatus, body)
			return
		}

		logger.Error(c.Request.Context(), "unhandled error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "fail",
			"message": "Internal server error",
		})
	}
}

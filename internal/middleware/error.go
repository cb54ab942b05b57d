package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperr "github.com/beautysalon/salon-api/pkg/errors"
	"github.com/beautysalon/salon-api/pkg/logger"
)

// ErrorHandler renders errors attached to the context. Application errors
// map onto their HTTP status; anything else is a 500 with the detail kept
// out of the response.
func ErrorHandler(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperr.AppError
		if errors.As(err, &appErr) {
			if appErr.Code == apperr.ErrPersistence {
				log.Error(err, "request failed", "path", c.Request.URL.Path)
			}
			c.JSON(appErr.StatusCode(), gin.H{
				"success": false,
				"message": appErr.Message,
			})
			return
		}

		log.Error(err, "unhandled error", "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "internal server error",
		})
	}
}

package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eventpulse/feedback-backend/errors"
	"github.com/eventpulse/feedback-backend/logger"
)

// ErrorHandler drains errors attached to the gin context and renders the API
// error envelopes. It also recovers panics so no request can crash its worker.
//
// Envelope shapes:
//   - validation failures: {"error": "Invalid request body", "details": ...}
//   - everything else:     {"error": "<HTTP phrase>", "message": "<text>"}
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				err := fmt.Errorf("panic: %v", r)
				logger.LogHTTPError(c, err, http.StatusInternalServerError, "Recovered from panic")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":   errors.HTTPPhrase(http.StatusInternalServerError),
					"message": "Internal server error",
				})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		if appError, ok := err.(*errors.AppError); ok {
			renderAppError(c, appError)
			return
		}

		// Anything that reached the context without being wrapped is an
		// internal failure; its message is passed through like the
		// generic-error path of the translator.
		logger.LogHTTPError(c, err, http.StatusInternalServerError, "Unexpected server error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   errors.HTTPPhrase(http.StatusInternalServerError),
			"message": err.Error(),
		})
	}
}

func renderAppError(c *gin.Context, appError *errors.AppError) {
	statusCode := appError.GetHTTPStatus()
	logger.LogHTTPError(c, appError, statusCode, fmt.Sprintf("%s error", appError.Type))

	// Request-body failures carry the full field list; other validation
	// errors (bad path params) fall through to the generic envelope.
	if appError.Type == errors.ValidationError && len(appError.Fields) > 0 {
		c.JSON(statusCode, gin.H{
			"error":   "Invalid request body",
			"details": appError.Fields,
		})
		return
	}

	if appError.Type == errors.RateLimitError {
		c.Header("Retry-After", strconv.Itoa(appError.RetryAfterSeconds()))
	}

	c.JSON(statusCode, gin.H{
		"error":   errors.HTTPPhrase(statusCode),
		"message": appError.Message,
	})
}

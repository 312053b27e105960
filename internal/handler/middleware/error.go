package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"vehicle-rental/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders errors that reached c.Errors without a response.
// Handlers normally abort through httperr; this covers bare c.Error calls and
// status-only aborts.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}
		// latest error wins
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]

			if err.IsType(gin.ErrorTypePublic) {
				if resp, ok := err.Meta.(httperr.Response); ok {
					c.JSON(resp.Status, resp)
					return
				}
			}
		}
		if last := c.Errors.Last(); last != nil {
			status, code := httperr.Classify(last.Err)
			msg := last.Err.Error()
			if status == http.StatusInternalServerError {
				msg = internalMessage
			}
			c.JSON(status, newResponse(status, code, msg))
			return
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		c.JSON(http.StatusInternalServerError, newResponse(http.StatusInternalServerError, "internal", internalMessage))
	}
}

const internalMessage = "Internal server error"

func newResponse(status int, code, msg string) httperr.Response {
	resp := httperr.Response{Status: status}
	resp.Error.Message = msg
	resp.Error.Code = code
	return resp
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("recovered from panic",
					"error", err,
					"path", c.Request.URL.Path,
					"request_id", GetRequestID(c),
					"stack", string(debug.Stack()),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					newResponse(http.StatusInternalServerError, "internal", internalMessage))
			}
		}()
		c.Next()
	}
}

package middleware

import (
	"contacts-api/internal/transport/httpdto"
	"contacts-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler reports any error a handler attached to the context and
// writes a uniform body for it. Handlers that already wrote their own
// response never reach this path.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		if l != nil {
			l.ErrorCtx(c.Request.Context(), "request error: "+err.Error())
		}
		if c.Writer.Written() {
			return
		}
		c.JSON(c.Writer.Status(), httpdto.NewErrorResponse(err.Error()))
	}
}

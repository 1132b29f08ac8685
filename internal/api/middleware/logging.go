package middleware

import (
	"time"

	"github.com/formgate/formgate/internal/logging"
	"github.com/formgate/formgate/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs every request through the application logger
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger := logging.GetGlobalLogger()
		logger.LogHTTPRequest(
			c.Request.Method,
			c.Request.URL.Path,
			utils.GetRealIP(c),
			c.Writer.Status(),
			time.Since(start).String(),
		)
	}
}

package utils

import (
	"github.com/formgate/formgate/internal/logging"

	"github.com/gin-gonic/gin"
)

// HandleAPIError logs the internal error detail and emits the concise,
// non-technical outcome. The raw error never reaches the caller.
func HandleAPIError(c *gin.Context, err error, status int, message string) {
	logger := logging.GetGlobalLogger()
	logger.LogHTTPError(
		c.Request.Method,
		c.Request.URL.Path,
		GetRealIP(c),
		status,
		message,
		err,
	)

	HandleFailure(c, status, message)
}

package utils

import (
	"net/http"

	"github.com/formgate/formgate/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

// HandleSuccess emits the terminal success outcome
func HandleSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, common.NewSuccessResponse(message))
}

// HandleFailure emits a terminal failure outcome and stops the request
func HandleFailure(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, common.NewErrorResponse(message))
}

// HandleFieldFailure emits a terminal failure outcome tagged with the form
// field that caused it
func HandleFieldFailure(c *gin.Context, status int, message, field string) {
	c.AbortWithStatusJSON(status, common.NewFieldErrorResponse(message, field))
}

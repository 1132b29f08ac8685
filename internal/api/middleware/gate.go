package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/formgate/formgate/internal/service"
	"github.com/formgate/formgate/internal/utils"

	"github.com/gin-gonic/gin"
)

// Automation signatures that never belong to a browser posting a form.
// The rejection message is the same for every signature so the criteria
// are not leaked.
var botSignatures = []string{
	"curl/",
	"wget/",
	"python-requests",
	"go-http-client",
	"java/",
	"libwww-perl",
	"scrapy",
	"httpclient",
}

// RequireAjax rejects requests that did not arrive through the frontend's
// asynchronous submit. Disabled via configuration for plain-form setups.
func RequireAjax() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("X-Requested-With") != "XMLHttpRequest" {
			utils.HandleFailure(c, http.StatusForbidden, "Asynchronous requests only.")
			return
		}
		c.Next()
	}
}

// BotFilter rejects requests whose client identification is missing or
// matches a known automation signature, before any expensive work happens
func BotFilter() gin.HandlerFunc {
	return func(c *gin.Context) {
		ua := strings.ToLower(strings.TrimSpace(c.Request.UserAgent()))
		if ua == "" {
			err := fmt.Errorf("%w: empty user agent", service.ErrBotSignature)
			utils.HandleAPIError(c, err, http.StatusForbidden, "Submission rejected.")
			return
		}
		for _, sig := range botSignatures {
			if strings.Contains(ua, sig) {
				err := fmt.Errorf("%w: %q", service.ErrBotSignature, ua)
				utils.HandleAPIError(c, err, http.StatusForbidden, "Submission rejected.")
				return
			}
		}
		c.Next()
	}
}

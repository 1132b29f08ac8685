package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionCookieName identifies the caller session the submission window is
// scoped to
const SessionCookieName = "fg_session"

// ContextKeySession is where the session ID lands in the request context
const ContextKeySession = "SessionID"

// Session assigns each caller an opaque session ID cookie. The rate-limit
// window is keyed by it, mirroring the server-side session the classic
// form handlers kept.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.New().String()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookieName, sessionID, 86400, "/", "", false, true)
		}

		c.Set(ContextKeySession, sessionID)
		c.Next()
	}
}

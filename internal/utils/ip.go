package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// GetRealIP extracts the client IP from various headers, respecting reverse
// proxies. Used consistently so rate limiting and the mail templates see
// the same address.
func GetRealIP(c *gin.Context) string {
	// X-Real-IP is set by the reverse proxy in front of us
	if ip := c.GetHeader("X-Real-IP"); ip != "" {
		return ip
	}

	// X-Forwarded-For can be a comma-separated list; the leftmost entry
	// is the original client
	if forwardedFor := c.GetHeader("X-Forwarded-For"); forwardedFor != "" {
		ips := strings.Split(forwardedFor, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	return c.ClientIP()
}

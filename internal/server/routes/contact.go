package routes

import (
	"github.com/formgate/formgate/internal/api/handlers"
	"github.com/formgate/formgate/internal/api/middleware"
	"github.com/formgate/formgate/internal/config"

	"github.com/gin-gonic/gin"
)

// SetupContactRoutes configures the contact form route. Only POST is
// registered; every other method falls through to the engine's 405
// handler. The middleware order is the pipeline order: request gate,
// bot filter, global throttle, session, then the handler.
func SetupContactRoutes(router *gin.RouterGroup, cfg *config.Config, contact *handlers.ContactHandler) {
	public := router.Group("/contact")
	{
		chain := []gin.HandlerFunc{
			middleware.BotFilter(),
			middleware.RateLimitMiddleware(middleware.RateLimitConfig{
				RPS:   cfg.ThrottleRPS,
				Burst: cfg.ThrottleBurst,
			}),
			middleware.Session(),
		}
		if cfg.RequireAjax {
			chain = append([]gin.HandlerFunc{middleware.RequireAjax()}, chain...)
		}
		chain = append(chain, contact.Submit)

		public.POST("/submit", chain...)
	}
}

package routes

import (
	"github.com/formgate/formgate/internal/config"

	"github.com/gin-gonic/gin"
)

// Setup configures all route groups
func Setup(router *gin.Engine, cfg *config.Config, h *Handlers) {
	// Health check endpoint - no gating
	router.GET("/health", h.Health.Check)

	v1 := router.Group("/api/v1")

	SetupContactRoutes(v1, cfg, h.Contact)
}

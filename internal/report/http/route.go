package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers court report routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/reports")
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.GET("/:id", h.Get)
		group.POST("/:id/photos", h.AddPhoto)
	}

	// === Admin Routes ===
	{
		group.PATCH("/:id", adminMiddleware, h.Update)
	}
}

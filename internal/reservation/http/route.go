package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers reservation routes and the per-court availability grid.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	g.GET("/courts/:id/availability", authMiddleware, h.Availability)

	group := g.Group("/reservations")
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.GET("/:id", h.Get)
		group.POST("/:id/cancel", h.Cancel)
	}

	// === Admin Routes ===
	{
		group.POST("/:id/approve", adminMiddleware, h.Approve)
		group.POST("/:id/reject", adminMiddleware, h.Reject)
		group.POST("/:id/complete", adminMiddleware, h.Complete)
	}
}

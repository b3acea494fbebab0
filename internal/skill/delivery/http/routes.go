package http

import (
	"github.com/gin-gonic/gin"

	"skill-registry/internal/middleware"
)

// RegisterRoutes mounts the public catalogue under rg/skills, registry stats
// and the admin sync endpoint. Publishing and sync sit behind mw.Auth.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	rg.GET("/stats", h.Stats)

	skills := rg.Group("/skills")
	{
		skills.GET("", h.List)
		skills.POST("", mw.Auth(), h.Publish)
		skills.POST("/scan", h.PreviewScan)
		skills.GET("/:slug", h.Detail)
		skills.GET("/:slug/install", h.Install)
	}

	admin := rg.Group("/admin", mw.Auth())
	{
		admin.POST("/sync", h.Sync)
	}
}

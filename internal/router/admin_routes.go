package router

import "github.com/gin-gonic/gin"

// RegisterAdminRoutes registers the review dashboard. Every route requires an admin session.
func (rt *Router) RegisterAdminRoutes(r *gin.Engine) {
	admin := rt.handlers.Admin
	adminGroup := r.Group("/admin", rt.adminAuth)
	{
		adminGroup.GET("/dashboard", admin.Dashboard)
		adminGroup.GET("/applications", admin.List)
		adminGroup.GET("/application/:id", admin.View)
		adminGroup.POST("/application/:id/update", admin.Update)
		adminGroup.GET("/download-resume/:id", admin.DownloadResume)
		adminGroup.GET("/api/applications-chart", admin.Chart)
	}
}

package router

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers the marketing pages and the two public forms.
func (rt *Router) RegisterPublicRoutes(r *gin.Engine) {
	h := rt.handlers
	r.GET("/", h.Page.Index)
	r.GET("/services", h.Page.Services)
	r.GET("/internships", h.Page.Internships)
	r.GET("/about", h.Page.About)

	r.GET("/apply", h.Apply.Form)
	r.POST("/apply", h.Apply.Submit)

	r.GET("/contact", h.Contact.Form)
	r.POST("/contact", h.Contact.Submit)
}

// Package router registers the HTTP routes.
package router

import (
	"ecotech_server/internal/handler"
	"ecotech_server/internal/infrastructure/middleware"
	"ecotech_server/internal/session"

	"github.com/gin-gonic/gin"
)

// Router holds what the route groups need.
type Router struct {
	handlers  *handler.Handlers
	adminAuth gin.HandlerFunc
}

// NewRouter creates a Router. The admin guard loads admins through loader.
func NewRouter(handlers *handler.Handlers, sessions *session.Manager, loader middleware.AdminLoader) *Router {
	return &Router{
		handlers:  handlers,
		adminAuth: middleware.RequireAdmin(sessions, loader),
	}
}

// RegisterRoutes registers every route group on r.
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	rt.RegisterPublicRoutes(r)
	rt.RegisterAuthRoutes(r)
	rt.RegisterAdminRoutes(r)
}

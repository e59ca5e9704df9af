package router

import "github.com/gin-gonic/gin"

// RegisterAuthRoutes registers login and logout. Logout needs a session.
func (rt *Router) RegisterAuthRoutes(r *gin.Engine) {
	authGroup := r.Group("/auth")
	{
		authGroup.GET("/login", rt.handlers.Auth.LoginForm)
		authGroup.POST("/login", rt.handlers.Auth.Login)
		authGroup.GET("/logout", rt.adminAuth, rt.handlers.Auth.Logout)
	}
}
